package service

import (
	"context"
	"testing"

	"github.com/splitroom/backend/internal/common/db"
	"github.com/splitroom/backend/internal/common/logger"
	membershipdomain "github.com/splitroom/backend/internal/membership/domain"
	membershiprepo "github.com/splitroom/backend/internal/membership/repository"
	"github.com/splitroom/backend/internal/money"
	"github.com/splitroom/backend/internal/roomfeed"
	"github.com/splitroom/backend/internal/transfer/domain"
	transferrepo "github.com/splitroom/backend/internal/transfer/repository"
)

type mockTransferRepo struct {
	insertFunc     func(ctx context.Context, t domain.Transfer) (domain.Transfer, error)
	listByRoomFunc func(ctx context.Context, roomID int64, limit, offset int) ([]domain.Transfer, error)
	roomTotalsFunc func(ctx context.Context, roomID int64) (int64, money.Amount, error)
	balancesFunc   func(ctx context.Context, roomID int64) ([]domain.Balance, error)
}

func (m *mockTransferRepo) Insert(ctx context.Context, t domain.Transfer) (domain.Transfer, error) {
	return m.insertFunc(ctx, t)
}

func (m *mockTransferRepo) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Transfer, error) {
	return m.listByRoomFunc(ctx, roomID, limit, offset)
}

func (m *mockTransferRepo) RoomTotals(ctx context.Context, roomID int64) (int64, money.Amount, error) {
	return m.roomTotalsFunc(ctx, roomID)
}

func (m *mockTransferRepo) Balances(ctx context.Context, roomID int64) ([]domain.Balance, error) {
	return m.balancesFunc(ctx, roomID)
}

func (m *mockTransferRepo) WithQuerier(q db.Querier) transferrepo.Repository {
	return m
}

type mockMembershipRepo struct {
	findOpenFunc   func(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error)
	listActiveFunc func(ctx context.Context, roomID int64) ([]membershipdomain.Membership, error)
}

func (m *mockMembershipRepo) InsertOpen(ctx context.Context, mem membershipdomain.Membership) (membershipdomain.Membership, error) {
	panic("not used")
}

func (m *mockMembershipRepo) FindOpen(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error) {
	return m.findOpenFunc(ctx, roomID, userID)
}

func (m *mockMembershipRepo) CloseOpen(ctx context.Context, roomID int64, userID string) (membershipdomain.Membership, error) {
	panic("not used")
}

func (m *mockMembershipRepo) ListActive(ctx context.Context, roomID int64) ([]membershipdomain.Membership, error) {
	return m.listActiveFunc(ctx, roomID)
}

func (m *mockMembershipRepo) ListHistory(ctx context.Context, roomID int64, userID string) ([]membershipdomain.Membership, error) {
	panic("not used")
}

func (m *mockMembershipRepo) WithQuerier(q db.Querier) membershiprepo.Repository {
	return m
}

// fakeTxManager runs fn directly; the mock repositories ignore the querier.
type fakeTxManager struct{}

func (fakeTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	return fn(ctx, nil)
}

type recordingPublisher struct {
	events []roomfeed.Event
}

func (p *recordingPublisher) Publish(roomID int64, event roomfeed.Event) {
	event.RoomID = roomID
	p.events = append(p.events, event)
}

func setupTransferService(t *testing.T) (*TransferService, *mockTransferRepo, *mockMembershipRepo, *recordingPublisher) {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	transfers := &mockTransferRepo{}
	members := &mockMembershipRepo{}
	feed := &recordingPublisher{}
	svc := NewTransferService(transfers, members, fakeTxManager{}, feed, 999900, log)
	return svc, transfers, members, feed
}
