package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDomainError_Is_MatchesByCode(t *testing.T) {
	wrapped := ErrRoomNotFound.WithCause(errors.New("no rows"))

	if !errors.Is(wrapped, ErrRoomNotFound) {
		t.Error("wrapped error should match its sentinel by code")
	}
	if errors.Is(wrapped, ErrRoomClosed) {
		t.Error("wrapped error should not match a different code")
	}
}

func TestDomainError_WithCause_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrStoreUnavailable.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}

	de, ok := AsDomainError(err)
	if !ok {
		t.Fatal("expected a domain error")
	}
	if de.Code() != "STORE_UNAVAILABLE" {
		t.Errorf("expected STORE_UNAVAILABLE, got %s", de.Code())
	}
	if de.HTTPStatus() != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", de.HTTPStatus())
	}
}

func TestAsDomainError_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", ErrNotRoomMember)

	de, ok := AsDomainError(err)
	if !ok {
		t.Fatal("expected a domain error through fmt wrapping")
	}
	if de.Code() != "NOT_ROOM_MEMBER" {
		t.Errorf("expected NOT_ROOM_MEMBER, got %s", de.Code())
	}
	if de.Category() != CategoryForbidden {
		t.Errorf("expected forbidden category, got %s", de.Category())
	}
}

func TestAsDomainError_PlainError(t *testing.T) {
	if _, ok := AsDomainError(errors.New("plain")); ok {
		t.Error("plain error should not convert to a domain error")
	}
}
