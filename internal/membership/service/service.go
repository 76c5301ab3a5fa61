package service

import (
	"context"
	"errors"
	"strings"

	"github.com/splitroom/backend/internal/common/constants"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/membership/domain"
	membershiprepo "github.com/splitroom/backend/internal/membership/repository"
	"github.com/splitroom/backend/internal/observability/metrics"
	roomdomain "github.com/splitroom/backend/internal/room/domain"
	"github.com/splitroom/backend/internal/roomfeed"
)

type MembershipService struct {
	repo membershiprepo.Repository
	feed roomfeed.Publisher
	log  *logger.Logger
}

func NewMembershipService(repo membershiprepo.Repository, feed roomfeed.Publisher, log *logger.Logger) *MembershipService {
	if feed == nil {
		feed = roomfeed.NopPublisher{}
	}
	return &MembershipService{
		repo: repo,
		feed: feed,
		log:  log,
	}
}

// Join opens a membership record for the user. Joining while already a
// member is a no-op returning the existing open record, so clients can
// retry safely; the partial unique index resolves concurrent joins for the
// same pair. Re-joining after a leave starts a new record and the old one
// is kept for audit.
func (s *MembershipService) Join(ctx context.Context, room roomdomain.Room, userID, username string) (domain.Membership, error) {
	if !room.IsActive() {
		return domain.Membership{}, commonerrors.ErrRoomClosed
	}

	username = strings.TrimSpace(username)
	if len(username) < constants.UsernameMinLength || len(username) > constants.UsernameMaxLength {
		return domain.Membership{}, commonerrors.ErrUsernameLength
	}

	m, err := s.repo.InsertOpen(ctx, domain.Membership{
		RoomID:   room.ID,
		UserID:   userID,
		Username: username,
	})
	if err != nil {
		if errors.Is(err, membershiprepo.ErrOpenMembershipExists) {
			existing, findErr := s.repo.FindOpen(ctx, room.ID, userID)
			if findErr != nil {
				return domain.Membership{}, findErr
			}
			s.log.WithFields(ctx, logger.Fields{
				"room_id": room.ID,
				"user_id": userID,
				"action":  "join_idempotent",
			}).Debug("join repeated for open membership")
			return existing, nil
		}
		return domain.Membership{}, err
	}

	metrics.MembershipJoins.Inc()
	s.feed.Publish(room.ID, roomfeed.Event{
		Type: roomfeed.EventMemberJoined,
		Payload: map[string]any{
			"user_id":  userID,
			"username": username,
		},
	})

	s.log.WithFields(ctx, logger.Fields{
		"room_id": room.ID,
		"user_id": userID,
		"action":  "member_joined",
	}).Info("member joined room")

	return m, nil
}

// Leave closes the open record for the pair. Leaving twice reports
// MEMBERSHIP_NOT_FOUND.
func (s *MembershipService) Leave(ctx context.Context, room roomdomain.Room, userID string) (domain.Membership, error) {
	m, err := s.repo.CloseOpen(ctx, room.ID, userID)
	if err != nil {
		return domain.Membership{}, err
	}

	metrics.MembershipLeaves.Inc()
	s.feed.Publish(room.ID, roomfeed.Event{
		Type: roomfeed.EventMemberLeft,
		Payload: map[string]any{
			"user_id": userID,
		},
	})

	s.log.WithFields(ctx, logger.Fields{
		"room_id": room.ID,
		"user_id": userID,
		"action":  "member_left",
	}).Info("member left room")

	return m, nil
}

func (s *MembershipService) ListActive(ctx context.Context, roomID int64) ([]domain.Membership, error) {
	return s.repo.ListActive(ctx, roomID)
}

func (s *MembershipService) History(ctx context.Context, roomID int64, userID string) ([]domain.Membership, error) {
	return s.repo.ListHistory(ctx, roomID, userID)
}

// IsActiveMember reports whether the user currently holds an open record.
func (s *MembershipService) IsActiveMember(ctx context.Context, roomID int64, userID string) (bool, error) {
	_, err := s.repo.FindOpen(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, membershiprepo.ErrNoOpenMembership) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
