package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	membershipdomain "github.com/splitroom/backend/internal/membership/domain"
	membershiprepo "github.com/splitroom/backend/internal/membership/repository"
	roomdomain "github.com/splitroom/backend/internal/room/domain"
	transferdomain "github.com/splitroom/backend/internal/transfer/domain"
	userdomain "github.com/splitroom/backend/internal/user/domain"
)

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func serve(f *apiFixture, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	f.api.Register(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return env
}

func TestAPI_Login_Success(t *testing.T) {
	f := setupAPI(t)

	f.users.resolveOrCreateFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		user.CreatedAt = time.Now()
		return user, nil
	}

	body, _ := json.Marshal(map[string]string{"open_id": "wx-1", "username": "alice"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := serve(f, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" || resp.User.Username != "alice" {
		t.Errorf("unexpected login response %+v", resp)
	}
}

func TestAPI_Login_InvalidJSON(t *testing.T) {
	f := setupAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("not json")))
	rec := serve(f, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "INVALID_JSON" {
		t.Errorf("expected INVALID_JSON, got %s", env.Code)
	}
}

func TestAPI_Login_MissingFields(t *testing.T) {
	f := setupAPI(t)

	body, _ := json.Marshal(map[string]string{"open_id": "wx-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := serve(f, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "BAD_REQUEST" {
		t.Errorf("expected BAD_REQUEST, got %s", env.Code)
	}
}

func TestAPI_RequiresAuthorization(t *testing.T) {
	f := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/123456", nil)
	rec := serve(f, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "MISSING_AUTHORIZATION" {
		t.Errorf("expected MISSING_AUTHORIZATION, got %s", env.Code)
	}
}

func TestAPI_GetRoom_InvalidCode(t *testing.T) {
	f := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/12ab56", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, "user-1", "alice"))
	rec := serve(f, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "INVALID_ROOM_CODE" {
		t.Errorf("expected INVALID_ROOM_CODE, got %s", env.Code)
	}
}

func TestAPI_Join_ClosedRoom(t *testing.T) {
	f := setupAPI(t)

	closedAt := time.Now()
	f.rooms.findByCodeFunc = func(ctx context.Context, code string) (roomdomain.Room, error) {
		return roomdomain.Room{ID: 1, Code: code, Status: roomdomain.StatusClosed, ClosedAt: &closedAt}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/rooms/123456/join", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, "user-1", "alice"))
	rec := serve(f, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "ROOM_CLOSED" {
		t.Errorf("expected ROOM_CLOSED, got %s", env.Code)
	}
}

func TestAPI_RecordTransfer_FromMismatch(t *testing.T) {
	f := setupAPI(t)

	f.rooms.findByCodeFunc = func(ctx context.Context, code string) (roomdomain.Room, error) {
		return roomdomain.Room{ID: 1, Code: code, Status: roomdomain.StatusActive}, nil
	}

	body, _ := json.Marshal(map[string]string{
		"from_user_id": "someone-else",
		"to_user_id":   "bob",
		"amount":       "10.00",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/rooms/123456/transfers", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+f.token(t, "alice", "alice"))
	rec := serve(f, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "TRANSFER_FROM_MISMATCH" {
		t.Errorf("expected TRANSFER_FROM_MISMATCH, got %s", env.Code)
	}
}

func TestAPI_RecordTransfer_Success(t *testing.T) {
	f := setupAPI(t)

	f.rooms.findByCodeFunc = func(ctx context.Context, code string) (roomdomain.Room, error) {
		return roomdomain.Room{ID: 1, Code: code, Status: roomdomain.StatusActive}, nil
	}
	f.members.findOpenFunc = func(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error) {
		return membershipdomain.Membership{ID: 1, RoomID: roomID, UserID: userID}, nil
	}
	f.transfers.insertFunc = func(ctx context.Context, tr transferdomain.Transfer) (transferdomain.Transfer, error) {
		tr.ID = 99
		tr.CreatedAt = time.Now()
		return tr, nil
	}

	body, _ := json.Marshal(map[string]string{
		"to_user_id": "bob",
		"amount":     "12.50",
		"note":       "dinner",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/rooms/123456/transfers", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+f.token(t, "alice", "alice"))
	rec := serve(f, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp transferDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 99 || resp.FromUserID != "alice" || resp.Amount != "12.50" {
		t.Errorf("unexpected transfer response %+v", resp)
	}
}

func TestAPI_RecordTransfer_BadAmount(t *testing.T) {
	f := setupAPI(t)

	f.rooms.findByCodeFunc = func(ctx context.Context, code string) (roomdomain.Room, error) {
		return roomdomain.Room{ID: 1, Code: code, Status: roomdomain.StatusActive}, nil
	}

	body, _ := json.Marshal(map[string]string{
		"to_user_id": "bob",
		"amount":     "1.234",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/rooms/123456/transfers", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+f.token(t, "alice", "alice"))
	rec := serve(f, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "INVALID_AMOUNT" {
		t.Errorf("expected INVALID_AMOUNT, got %s", env.Code)
	}
}

func TestAPI_Balances_RequiresMembership(t *testing.T) {
	f := setupAPI(t)

	f.rooms.findByCodeFunc = func(ctx context.Context, code string) (roomdomain.Room, error) {
		return roomdomain.Room{ID: 1, Code: code, Status: roomdomain.StatusActive}, nil
	}
	f.members.findOpenFunc = func(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error) {
		return membershipdomain.Membership{}, membershiprepo.ErrNoOpenMembership
	}

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/123456/balances", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, "stranger", "stranger"))
	rec := serve(f, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Code != "NOT_ROOM_MEMBER" {
		t.Errorf("expected NOT_ROOM_MEMBER, got %s", env.Code)
	}
}

func TestAPI_CreateRoom_OwnerAutoJoins(t *testing.T) {
	f := setupAPI(t)

	f.rooms.insertFunc = func(ctx context.Context, room roomdomain.Room) (roomdomain.Room, error) {
		room.ID = 1
		room.Status = roomdomain.StatusActive
		room.CreatedAt = time.Now()
		return room, nil
	}

	var joinedUser string
	f.members.insertOpenFunc = func(ctx context.Context, mem membershipdomain.Membership) (membershipdomain.Membership, error) {
		joinedUser = mem.UserID
		mem.ID = 1
		mem.JoinedAt = time.Now()
		return mem, nil
	}

	body, _ := json.Marshal(map[string]string{"name": "trip"})
	req := httptest.NewRequest(http.MethodPost, "/api/rooms", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+f.token(t, "owner-1", "alice"))
	rec := serve(f, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if joinedUser != "owner-1" {
		t.Errorf("expected owner to be auto-joined, got %q", joinedUser)
	}

	var resp roomDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Members) != 1 || resp.Members[0].UserID != "owner-1" {
		t.Errorf("expected owner in member list, got %+v", resp.Members)
	}
}
