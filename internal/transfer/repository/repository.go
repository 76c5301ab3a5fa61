package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/splitroom/backend/internal/common/db"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/money"
	"github.com/splitroom/backend/internal/transfer/domain"
)

// ErrPartyNotMember signals the membership guard in Insert rejected the
// write: at least one party had no open membership at commit time.
var ErrPartyNotMember = commonerrors.ErrNotRoomMember

type Repository interface {
	Insert(ctx context.Context, t domain.Transfer) (domain.Transfer, error)
	ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Transfer, error)
	RoomTotals(ctx context.Context, roomID int64) (count int64, volume money.Amount, err error)
	Balances(ctx context.Context, roomID int64) ([]domain.Balance, error)
	WithQuerier(q db.Querier) Repository
}

type PgRepository struct {
	q db.Querier
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{q: pool}
}

func (r *PgRepository) WithQuerier(q db.Querier) Repository {
	return &PgRepository{q: q}
}

// Insert appends a ledger entry. The statement re-checks inside the write
// that the room is still active and both parties hold open memberships, so
// a leave or close racing the insert cannot land an entry; the guard
// failing surfaces as ErrPartyNotMember.
func (r *PgRepository) Insert(ctx context.Context, t domain.Transfer) (domain.Transfer, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`INSERT INTO transfers (room_id, from_user_id, to_user_id, amount_minor, note)
		 SELECT $1, $2, $3, $4, $5
		 WHERE (
		     SELECT count(*)
		     FROM room_members
		     WHERE room_id = $1 AND user_id IN ($2, $3) AND left_at IS NULL
		 ) = 2
		 AND EXISTS (
		     SELECT 1 FROM rooms WHERE id = $1 AND status = 'active'
		 )
		 RETURNING id, room_id, from_user_id, to_user_id, amount_minor, note, created_at`,
		t.RoomID,
		t.FromUserID,
		t.ToUserID,
		t.Amount.Minor(),
		t.Note,
	)

	inserted, err := scanTransfer(row)
	if err := db.HandleQueryError(err, ErrPartyNotMember, "insert transfer", start); err != nil {
		return domain.Transfer{}, err
	}
	return inserted, nil
}

// ListByRoom returns entries newest first.
func (r *PgRepository) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Transfer, error) {
	start := time.Now()
	rows, err := r.q.Query(
		ctx,
		`SELECT id, room_id, from_user_id, to_user_id, amount_minor, note, created_at
		 FROM transfers
		 WHERE room_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		roomID,
		limit,
		offset,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list transfers", start)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list transfers: %w", err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	db.MeasureQueryDuration("list transfers", start)
	return transfers, nil
}

func (r *PgRepository) RoomTotals(ctx context.Context, roomID int64) (int64, money.Amount, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`SELECT count(*), COALESCE(SUM(amount_minor), 0)
		 FROM transfers
		 WHERE room_id = $1`,
		roomID,
	)

	var count, volume int64
	err := row.Scan(&count, &volume)
	if err := db.HandleQueryError(err, nil, "room totals", start); err != nil {
		return 0, 0, err
	}
	return count, money.Amount(volume), nil
}

// Balances folds the ledger for one room in a single statement: each entry
// debits the sender and credits the recipient, grouped per user, so net is
// amounts received minus amounts sent. Users without entries do not
// appear; the service layer fills in zero rows for active members.
func (r *PgRepository) Balances(ctx context.Context, roomID int64) ([]domain.Balance, error) {
	start := time.Now()
	rows, err := r.q.Query(
		ctx,
		`SELECT u.id, u.username, SUM(e.delta)::bigint AS net
		 FROM (
		     SELECT from_user_id AS user_id, -amount_minor AS delta
		     FROM transfers WHERE room_id = $1
		     UNION ALL
		     SELECT to_user_id, amount_minor
		     FROM transfers WHERE room_id = $1
		 ) e
		 JOIN users u ON u.id = e.user_id
		 GROUP BY u.id, u.username
		 ORDER BY net DESC, u.id ASC`,
		roomID,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "room balances", start)
	}
	defer rows.Close()

	var balances []domain.Balance
	for rows.Next() {
		var b domain.Balance
		var net int64
		if err := rows.Scan(&b.UserID, &b.Username, &net); err != nil {
			return nil, fmt.Errorf("failed to read room balances: %w", err)
		}
		b.Net = money.Amount(net)
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read room balances: %w", err)
	}

	db.MeasureQueryDuration("room balances", start)
	return balances, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransfer(row rowScanner) (domain.Transfer, error) {
	var t domain.Transfer
	var minor int64
	err := row.Scan(&t.ID, &t.RoomID, &t.FromUserID, &t.ToUserID, &minor, &t.Note, &t.CreatedAt)
	if err != nil {
		return domain.Transfer{}, err
	}
	t.Amount = money.Amount(minor)
	return t, nil
}
