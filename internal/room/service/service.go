package service

import (
	"context"
	"errors"
	"strings"

	"github.com/splitroom/backend/internal/common/constants"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/observability/metrics"
	"github.com/splitroom/backend/internal/room/domain"
	roomrepo "github.com/splitroom/backend/internal/room/repository"
)

type RoomService struct {
	repo        roomrepo.Repository
	codes       CodeGenerator
	maxAttempts int
	log         *logger.Logger
}

func NewRoomService(repo roomrepo.Repository, codes CodeGenerator, maxAttempts int, log *logger.Logger) *RoomService {
	if maxAttempts <= 0 {
		maxAttempts = constants.RoomCodeMaxAttempts
	}
	return &RoomService{
		repo:        repo,
		codes:       codes,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Create allocates a room under a fresh six-digit code. Codes are drawn at
// random and inserted blind; a collision surfaces as a unique violation
// and the loop regenerates, up to maxAttempts. There is deliberately no
// existence pre-check: check-then-insert would race under concurrent
// creation.
func (s *RoomService) Create(ctx context.Context, ownerID, name string) (domain.Room, error) {
	name = strings.TrimSpace(name)
	// Clamp by rune, not byte, so multi-byte names are never cut mid-rune.
	if runes := []rune(name); len(runes) > constants.RoomNameMaxLength {
		name = string(runes[:constants.RoomNameMaxLength])
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		code := s.codes.Generate()

		room, err := s.repo.Insert(ctx, domain.Room{
			Code:    code,
			Name:    name,
			OwnerID: ownerID,
		})
		if err == nil {
			metrics.RoomsCreated.Inc()
			s.log.WithFields(ctx, logger.Fields{
				"room_id": room.ID,
				"code":    room.Code,
				"action":  "room_created",
			}).Info("room created")
			return room, nil
		}

		if errors.Is(err, roomrepo.ErrRoomCodeTaken) {
			metrics.RoomCodeCollisions.Inc()
			s.log.WithFields(ctx, logger.Fields{
				"code":    code,
				"attempt": attempt,
				"action":  "room_code_collision",
			}).Warn("room code collision, regenerating")
			continue
		}

		return domain.Room{}, err
	}

	metrics.RoomCodeExhaustions.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"attempts": s.maxAttempts,
		"action":   "room_code_exhausted",
	}).Error("room code allocation exhausted retry budget")
	return domain.Room{}, commonerrors.ErrRoomCodeSpaceExhausted
}

// GetByCode looks a room up by its share code. With activeOnly set, a
// closed holder is reported as not found; callers that want history pass
// false and check the status themselves.
func (s *RoomService) GetByCode(ctx context.Context, code string, activeOnly bool) (domain.Room, error) {
	if !domain.ValidCode(code) {
		return domain.Room{}, commonerrors.ErrInvalidRoomCode
	}

	room, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Room{}, err
	}

	if activeOnly && !room.IsActive() {
		return domain.Room{}, commonerrors.ErrRoomNotFound
	}

	return room, nil
}

// Close transitions the room to closed. Owner-only; closed rooms reject
// further joins and transfers but remain readable.
func (s *RoomService) Close(ctx context.Context, code, callerID string) (domain.Room, error) {
	room, err := s.GetByCode(ctx, code, false)
	if err != nil {
		return domain.Room{}, err
	}

	if room.OwnerID != callerID {
		return domain.Room{}, commonerrors.ErrNotRoomOwner
	}

	if !room.IsActive() {
		return domain.Room{}, commonerrors.ErrRoomClosed
	}

	closed, err := s.repo.Close(ctx, room.ID)
	if err != nil {
		// Lost a close race; the room is already closed.
		if errors.Is(err, roomrepo.ErrRoomNotFound) {
			return domain.Room{}, commonerrors.ErrRoomClosed
		}
		return domain.Room{}, err
	}

	metrics.RoomsClosed.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"room_id": closed.ID,
		"code":    closed.Code,
		"action":  "room_closed",
	}).Info("room closed")

	return closed, nil
}
