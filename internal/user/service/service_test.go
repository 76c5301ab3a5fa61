package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/splitroom/backend/internal/common/clock"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/common/jwtverify"
	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/user/domain"
)

const testSecret = "test-secret-that-is-long-enough-0123"

type mockUserRepo struct {
	resolveOrCreateFunc func(ctx context.Context, user domain.User) (domain.User, error)
	findByIDFunc        func(ctx context.Context, id domain.ID) (domain.User, error)
}

func (m *mockUserRepo) ResolveOrCreate(ctx context.Context, user domain.User) (domain.User, error) {
	return m.resolveOrCreateFunc(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return m.findByIDFunc(ctx, id)
}

type seqIDGenerator struct {
	n int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

func setupUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	repo := &mockUserRepo{}
	ids := &seqIDGenerator{}
	issuer := NewTokenIssuer(testSecret, ids, time.Hour, clock.NewMockClock(time.Now()))
	return NewUserService(repo, ids, issuer, log), repo
}

func TestUserService_Login_Success(t *testing.T) {
	svc, repo := setupUserService(t)

	repo.resolveOrCreateFunc = func(ctx context.Context, user domain.User) (domain.User, error) {
		if user.OpenID != "wx-open-id" {
			t.Errorf("expected open_id wx-open-id, got %s", user.OpenID)
		}
		user.CreatedAt = time.Now()
		return user, nil
	}

	result, err := svc.Login(context.Background(), "wx-open-id", "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := jwtverify.ParseToken(result.Token, []byte(testSecret))
	if err != nil {
		t.Fatalf("issued token must parse: %v", err)
	}
	if claims.UserID != string(result.User.ID) {
		t.Errorf("token sub %s does not match user %s", claims.UserID, result.User.ID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected usr claim alice, got %s", claims.Username)
	}
}

func TestUserService_Login_ResolvesExistingUser(t *testing.T) {
	svc, repo := setupUserService(t)

	repo.resolveOrCreateFunc = func(ctx context.Context, user domain.User) (domain.User, error) {
		// The upsert found an existing row; the generated id is discarded.
		return domain.User{ID: "existing-id", OpenID: user.OpenID, Username: user.Username}, nil
	}

	result, err := svc.Login(context.Background(), "wx-open-id", "alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.User.ID != "existing-id" {
		t.Errorf("expected existing user id, got %s", result.User.ID)
	}
}

func TestUserService_Login_EmptyOpenID(t *testing.T) {
	svc, _ := setupUserService(t)

	for _, openID := range []string{"", "   ", strings.Repeat("x", 129)} {
		if _, err := svc.Login(context.Background(), openID, "alice"); !errors.Is(err, commonerrors.ErrEmptyOpenID) {
			t.Errorf("Login with open_id %q: expected EMPTY_OPEN_ID, got %v", openID, err)
		}
	}
}

func TestUserService_Login_UsernameLength(t *testing.T) {
	svc, _ := setupUserService(t)

	for _, username := range []string{"", strings.Repeat("x", 65)} {
		if _, err := svc.Login(context.Background(), "wx-open-id", username); !errors.Is(err, commonerrors.ErrUsernameLength) {
			t.Errorf("Login with username %q: expected USERNAME_LENGTH, got %v", username, err)
		}
	}
}
