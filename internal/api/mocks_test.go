package api

import (
	"context"
	"testing"
	"time"

	"github.com/splitroom/backend/internal/common/clock"
	commoncrypto "github.com/splitroom/backend/internal/common/crypto"
	"github.com/splitroom/backend/internal/common/db"
	"github.com/splitroom/backend/internal/common/logger"
	membershipdomain "github.com/splitroom/backend/internal/membership/domain"
	membershiprepo "github.com/splitroom/backend/internal/membership/repository"
	membershipsvc "github.com/splitroom/backend/internal/membership/service"
	"github.com/splitroom/backend/internal/money"
	roomdomain "github.com/splitroom/backend/internal/room/domain"
	roomrepo "github.com/splitroom/backend/internal/room/repository"
	roomsvc "github.com/splitroom/backend/internal/room/service"
	"github.com/splitroom/backend/internal/roomfeed"
	statsdomain "github.com/splitroom/backend/internal/stats/domain"
	statssvc "github.com/splitroom/backend/internal/stats/service"
	transferdomain "github.com/splitroom/backend/internal/transfer/domain"
	transferrepo "github.com/splitroom/backend/internal/transfer/repository"
	transfersvc "github.com/splitroom/backend/internal/transfer/service"
	userdomain "github.com/splitroom/backend/internal/user/domain"
	usersvc "github.com/splitroom/backend/internal/user/service"
)

const testSecret = "api-test-secret-0123456789abcdef0123"

type mockUserRepo struct {
	resolveOrCreateFunc func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	findByIDFunc        func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) ResolveOrCreate(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	return m.resolveOrCreateFunc(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	return m.findByIDFunc(ctx, id)
}

type mockRoomRepo struct {
	insertFunc     func(ctx context.Context, room roomdomain.Room) (roomdomain.Room, error)
	findByCodeFunc func(ctx context.Context, code string) (roomdomain.Room, error)
	findByIDFunc   func(ctx context.Context, id int64) (roomdomain.Room, error)
	closeFunc      func(ctx context.Context, id int64) (roomdomain.Room, error)
}

func (m *mockRoomRepo) Insert(ctx context.Context, room roomdomain.Room) (roomdomain.Room, error) {
	return m.insertFunc(ctx, room)
}

func (m *mockRoomRepo) FindByCode(ctx context.Context, code string) (roomdomain.Room, error) {
	return m.findByCodeFunc(ctx, code)
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id int64) (roomdomain.Room, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockRoomRepo) Close(ctx context.Context, id int64) (roomdomain.Room, error) {
	return m.closeFunc(ctx, id)
}

func (m *mockRoomRepo) WithQuerier(q db.Querier) roomrepo.Repository { return m }

type mockMembershipRepo struct {
	insertOpenFunc  func(ctx context.Context, mem membershipdomain.Membership) (membershipdomain.Membership, error)
	findOpenFunc    func(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error)
	closeOpenFunc   func(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error)
	listActiveFunc  func(ctx context.Context, roomID int64) ([]membershipdomain.Membership, error)
	listHistoryFunc func(ctx context.Context, roomID int64, userID string) ([]membershipdomain.Membership, error)
}

func (m *mockMembershipRepo) InsertOpen(ctx context.Context, mem membershipdomain.Membership) (membershipdomain.Membership, error) {
	return m.insertOpenFunc(ctx, mem)
}

func (m *mockMembershipRepo) FindOpen(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error) {
	return m.findOpenFunc(ctx, roomID, userID)
}

func (m *mockMembershipRepo) CloseOpen(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error) {
	return m.closeOpenFunc(ctx, roomID, userID)
}

func (m *mockMembershipRepo) ListActive(ctx context.Context, roomID int64) ([]membershipdomain.Membership, error) {
	return m.listActiveFunc(ctx, roomID)
}

func (m *mockMembershipRepo) ListHistory(ctx context.Context, roomID int64, userID string) ([]membershipdomain.Membership, error) {
	return m.listHistoryFunc(ctx, roomID, userID)
}

func (m *mockMembershipRepo) WithQuerier(q db.Querier) membershiprepo.Repository { return m }

type mockTransferRepo struct {
	insertFunc     func(ctx context.Context, t transferdomain.Transfer) (transferdomain.Transfer, error)
	listByRoomFunc func(ctx context.Context, roomID int64, limit, offset int) ([]transferdomain.Transfer, error)
	roomTotalsFunc func(ctx context.Context, roomID int64) (int64, money.Amount, error)
	balancesFunc   func(ctx context.Context, roomID int64) ([]transferdomain.Balance, error)
}

func (m *mockTransferRepo) Insert(ctx context.Context, t transferdomain.Transfer) (transferdomain.Transfer, error) {
	return m.insertFunc(ctx, t)
}

func (m *mockTransferRepo) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]transferdomain.Transfer, error) {
	return m.listByRoomFunc(ctx, roomID, limit, offset)
}

func (m *mockTransferRepo) RoomTotals(ctx context.Context, roomID int64) (int64, money.Amount, error) {
	return m.roomTotalsFunc(ctx, roomID)
}

func (m *mockTransferRepo) Balances(ctx context.Context, roomID int64) ([]transferdomain.Balance, error) {
	return m.balancesFunc(ctx, roomID)
}

func (m *mockTransferRepo) WithQuerier(q db.Querier) transferrepo.Repository { return m }

type mockStatsRepo struct {
	overviewFunc func(ctx context.Context) (statsdomain.Overview, error)
}

func (m *mockStatsRepo) Overview(ctx context.Context) (statsdomain.Overview, error) {
	return m.overviewFunc(ctx)
}

type fakeTxManager struct{}

func (fakeTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	return fn(ctx, nil)
}

type fixedIDGenerator struct{}

func (fixedIDGenerator) NewID() (string, error) { return "generated-id", nil }

type apiFixture struct {
	api       *API
	users     *mockUserRepo
	rooms     *mockRoomRepo
	members   *mockMembershipRepo
	transfers *mockTransferRepo
	stats     *mockStatsRepo
	issuer    *usersvc.TokenIssuer
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	var ids commoncrypto.IDGenerator = fixedIDGenerator{}
	issuer := usersvc.NewTokenIssuer(testSecret, ids, time.Hour, clock.NewRealClock())

	userRepo := &mockUserRepo{}
	roomRepo := &mockRoomRepo{}
	memberRepo := &mockMembershipRepo{}
	transferRepo := &mockTransferRepo{}
	statsRepo := &mockStatsRepo{}

	hub := roomfeed.NewHub(log)

	a := New(
		usersvc.NewUserService(userRepo, ids, issuer, log),
		roomsvc.NewRoomService(roomRepo, roomsvc.NewRandomCodeGenerator(), 5, log),
		membershipsvc.NewMembershipService(memberRepo, hub, log),
		transfersvc.NewTransferService(transferRepo, memberRepo, fakeTxManager{}, hub, 999900, log),
		statssvc.NewStatsService(statsRepo, log),
		hub,
		testSecret,
		log,
	)

	return &apiFixture{
		api:       a,
		users:     userRepo,
		rooms:     roomRepo,
		members:   memberRepo,
		transfers: transferRepo,
		stats:     statsRepo,
		issuer:    issuer,
	}
}

func (f *apiFixture) token(t *testing.T, userID, username string) string {
	t.Helper()
	token, err := f.issuer.IssueToken(userdomain.User{ID: userdomain.ID(userID), Username: username})
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}
