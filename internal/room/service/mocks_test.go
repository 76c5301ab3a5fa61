package service

import (
	"context"
	"testing"

	"github.com/splitroom/backend/internal/common/db"
	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/room/domain"
	roomrepo "github.com/splitroom/backend/internal/room/repository"
)

type mockRoomRepo struct {
	insertFunc     func(ctx context.Context, room domain.Room) (domain.Room, error)
	findByCodeFunc func(ctx context.Context, code string) (domain.Room, error)
	findByIDFunc   func(ctx context.Context, id int64) (domain.Room, error)
	closeFunc      func(ctx context.Context, id int64) (domain.Room, error)
}

func (m *mockRoomRepo) Insert(ctx context.Context, room domain.Room) (domain.Room, error) {
	return m.insertFunc(ctx, room)
}

func (m *mockRoomRepo) FindByCode(ctx context.Context, code string) (domain.Room, error) {
	return m.findByCodeFunc(ctx, code)
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id int64) (domain.Room, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockRoomRepo) Close(ctx context.Context, id int64) (domain.Room, error) {
	return m.closeFunc(ctx, id)
}

func (m *mockRoomRepo) WithQuerier(q db.Querier) roomrepo.Repository {
	return m
}

type fixedCodeGenerator struct {
	codes []string
	next  int
}

func (g *fixedCodeGenerator) Generate() string {
	code := g.codes[g.next%len(g.codes)]
	g.next++
	return code
}

func setupRoomService(t *testing.T, codes ...string) (*RoomService, *mockRoomRepo) {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	if len(codes) == 0 {
		codes = []string{"123456"}
	}

	repo := &mockRoomRepo{}
	svc := NewRoomService(repo, &fixedCodeGenerator{codes: codes}, 5, log)
	return svc, repo
}
