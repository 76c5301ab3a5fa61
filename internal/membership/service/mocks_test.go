package service

import (
	"context"
	"testing"

	"github.com/splitroom/backend/internal/common/db"
	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/membership/domain"
	membershiprepo "github.com/splitroom/backend/internal/membership/repository"
	"github.com/splitroom/backend/internal/roomfeed"
)

type mockMembershipRepo struct {
	insertOpenFunc  func(ctx context.Context, m domain.Membership) (domain.Membership, error)
	findOpenFunc    func(ctx context.Context, roomID int64, userID string) (domain.Membership, error)
	closeOpenFunc   func(ctx context.Context, roomID int64, userID string) (domain.Membership, error)
	listActiveFunc  func(ctx context.Context, roomID int64) ([]domain.Membership, error)
	listHistoryFunc func(ctx context.Context, roomID int64, userID string) ([]domain.Membership, error)
}

func (m *mockMembershipRepo) InsertOpen(ctx context.Context, mem domain.Membership) (domain.Membership, error) {
	return m.insertOpenFunc(ctx, mem)
}

func (m *mockMembershipRepo) FindOpen(ctx context.Context, roomID int64, userID string) (domain.Membership, error) {
	return m.findOpenFunc(ctx, roomID, userID)
}

func (m *mockMembershipRepo) CloseOpen(ctx context.Context, roomID int64, userID string) (domain.Membership, error) {
	return m.closeOpenFunc(ctx, roomID, userID)
}

func (m *mockMembershipRepo) ListActive(ctx context.Context, roomID int64) ([]domain.Membership, error) {
	return m.listActiveFunc(ctx, roomID)
}

func (m *mockMembershipRepo) ListHistory(ctx context.Context, roomID int64, userID string) ([]domain.Membership, error) {
	return m.listHistoryFunc(ctx, roomID, userID)
}

func (m *mockMembershipRepo) WithQuerier(q db.Querier) membershiprepo.Repository {
	return m
}

type recordingPublisher struct {
	events []roomfeed.Event
}

func (p *recordingPublisher) Publish(roomID int64, event roomfeed.Event) {
	event.RoomID = roomID
	p.events = append(p.events, event)
}

func setupMembershipService(t *testing.T) (*MembershipService, *mockMembershipRepo, *recordingPublisher) {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	repo := &mockMembershipRepo{}
	feed := &recordingPublisher{}
	return NewMembershipService(repo, feed, log), repo, feed
}
