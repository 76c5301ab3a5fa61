package service

import (
	"context"
	"errors"
	"strings"

	"github.com/splitroom/backend/internal/common/constants"
	"github.com/splitroom/backend/internal/common/db"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/common/logger"
	membershiprepo "github.com/splitroom/backend/internal/membership/repository"
	"github.com/splitroom/backend/internal/money"
	"github.com/splitroom/backend/internal/observability/metrics"
	roomdomain "github.com/splitroom/backend/internal/room/domain"
	"github.com/splitroom/backend/internal/roomfeed"
	"github.com/splitroom/backend/internal/transfer/domain"
	transferrepo "github.com/splitroom/backend/internal/transfer/repository"
)

type TransferService struct {
	transfers    transferrepo.Repository
	members      membershiprepo.Repository
	txm          db.TxManager
	feed         roomfeed.Publisher
	ceilingMinor int64
	log          *logger.Logger
}

func NewTransferService(
	transfers transferrepo.Repository,
	members membershiprepo.Repository,
	txm db.TxManager,
	feed roomfeed.Publisher,
	ceilingMinor int64,
	log *logger.Logger,
) *TransferService {
	if feed == nil {
		feed = roomfeed.NopPublisher{}
	}
	if ceilingMinor <= 0 {
		ceilingMinor = constants.TransferCeilingMinor
	}
	return &TransferService{
		transfers:    transfers,
		members:      members,
		txm:          txm,
		feed:         feed,
		ceilingMinor: ceilingMinor,
		log:          log,
	}
}

// Record validates and appends one ledger entry. Checks run cheapest
// first so the caller gets the most precise error; the final insert
// re-verifies both memberships inside the write, so a leave that lands
// between the pre-check and the insert still rejects the entry.
func (s *TransferService) Record(ctx context.Context, room roomdomain.Room, fromUserID, toUserID string, amount money.Amount, note string) (domain.Transfer, error) {
	if !room.IsActive() {
		return domain.Transfer{}, commonerrors.ErrRoomClosed
	}
	if fromUserID == toUserID {
		return domain.Transfer{}, commonerrors.ErrTransferSameUser
	}
	if err := money.Validate(amount, s.ceilingMinor); err != nil {
		return domain.Transfer{}, err
	}

	note = strings.TrimSpace(note)
	// Clamp by rune, not byte, so multi-byte notes are never cut mid-rune.
	if runes := []rune(note); len(runes) > constants.NoteMaxLength {
		note = string(runes[:constants.NoteMaxLength])
	}

	for _, userID := range []string{fromUserID, toUserID} {
		if _, err := s.members.FindOpen(ctx, room.ID, userID); err != nil {
			if errors.Is(err, membershiprepo.ErrNoOpenMembership) {
				return domain.Transfer{}, commonerrors.ErrNotRoomMember
			}
			return domain.Transfer{}, err
		}
	}

	t, err := s.transfers.Insert(ctx, domain.Transfer{
		RoomID:     room.ID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		Note:       note,
	})
	if err != nil {
		return domain.Transfer{}, err
	}

	metrics.TransfersRecorded.Inc()
	s.feed.Publish(room.ID, roomfeed.Event{
		Type: roomfeed.EventTransferRecorded,
		Payload: map[string]any{
			"transfer_id":  t.ID,
			"from_user_id": t.FromUserID,
			"to_user_id":   t.ToUserID,
			"amount":       t.Amount.String(),
		},
	})

	s.log.WithFields(ctx, logger.Fields{
		"room_id":      room.ID,
		"transfer_id":  t.ID,
		"from_user_id": t.FromUserID,
		"to_user_id":   t.ToUserID,
		"amount_minor": t.Amount.Minor(),
		"action":       "transfer_recorded",
	}).Info("transfer recorded")

	return t, nil
}

func (s *TransferService) List(ctx context.Context, roomID int64, limit, offset int) ([]domain.Transfer, error) {
	if limit <= 0 {
		limit = constants.DefaultTransferPageSize
	}
	if limit > constants.MaxTransferPageSize {
		limit = constants.MaxTransferPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.transfers.ListByRoom(ctx, roomID, limit, offset)
}

// Balances computes every member's net position from the ledger. Active
// members without any entries are reported with a zero balance; departed
// members keep their rows as long as they have entries, so the totals
// always sum to zero.
func (s *TransferService) Balances(ctx context.Context, roomID int64) ([]domain.Balance, error) {
	return s.balances(ctx, s.transfers, s.members, roomID)
}

func (s *TransferService) balances(ctx context.Context, transfers transferrepo.Repository, members membershiprepo.Repository, roomID int64) ([]domain.Balance, error) {
	balances, err := transfers.Balances(ctx, roomID)
	if err != nil {
		return nil, err
	}

	active, err := members.ListActive(ctx, roomID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(balances))
	for _, b := range balances {
		seen[b.UserID] = struct{}{}
	}
	for _, m := range active {
		if _, ok := seen[m.UserID]; ok {
			continue
		}
		balances = append(balances, domain.Balance{
			UserID:   m.UserID,
			Username: m.Username,
			Net:      0,
		})
	}

	metrics.BalanceComputations.Inc()
	return balances, nil
}

// Summary reads balances and ledger totals inside one repeatable-read
// snapshot, so a transfer committing mid-read cannot appear in the totals
// but not in the balances.
func (s *TransferService) Summary(ctx context.Context, roomID int64) (domain.Summary, error) {
	var summary domain.Summary
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, q db.Querier) error {
		transfers := s.transfers.WithQuerier(q)
		members := s.members.WithQuerier(q)

		balances, err := s.balances(ctx, transfers, members, roomID)
		if err != nil {
			return err
		}

		count, volume, err := transfers.RoomTotals(ctx, roomID)
		if err != nil {
			return err
		}

		summary = domain.Summary{
			Balances:      balances,
			TransferCount: count,
			TotalVolume:   volume,
		}
		return nil
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}
