package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/splitroom/backend/internal/common/db"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/membership/domain"
)

var (
	ErrNoOpenMembership = commonerrors.ErrMembershipNotFound

	// ErrOpenMembershipExists signals the partial unique index rejected a
	// second open record for the same (room, user) pair. The service treats
	// it as an idempotent join, not a failure.
	ErrOpenMembershipExists = errors.New("open membership already exists")
)

const openMembershipConstraint = "uq_room_members_open"

type Repository interface {
	InsertOpen(ctx context.Context, m domain.Membership) (domain.Membership, error)
	FindOpen(ctx context.Context, roomID int64, userID string) (domain.Membership, error)
	CloseOpen(ctx context.Context, roomID int64, userID string) (domain.Membership, error)
	ListActive(ctx context.Context, roomID int64) ([]domain.Membership, error)
	ListHistory(ctx context.Context, roomID int64, userID string) ([]domain.Membership, error)
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

func (r *PgRepository) InsertOpen(ctx context.Context, m domain.Membership) (domain.Membership, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`INSERT INTO room_members (room_id, user_id, username)
		 VALUES ($1, $2, $3)
		 RETURNING id, room_id, user_id, username, joined_at, left_at`,
		m.RoomID,
		m.UserID,
		m.Username,
	)

	inserted, err := scanMembership(row)
	if err != nil {
		if db.IsUniqueViolation(err, openMembershipConstraint) {
			return domain.Membership{}, ErrOpenMembershipExists
		}
		return domain.Membership{}, db.HandleQueryError(err, ErrNoOpenMembership, "insert membership", start)
	}

	db.MeasureQueryDuration("insert membership", start)
	return inserted, nil
}

func (r *PgRepository) FindOpen(ctx context.Context, roomID int64, userID string) (domain.Membership, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`SELECT id, room_id, user_id, username, joined_at, left_at
		 FROM room_members
		 WHERE room_id = $1 AND user_id = $2 AND left_at IS NULL`,
		roomID,
		userID,
	)

	m, err := scanMembership(row)
	if err := db.HandleQueryError(err, ErrNoOpenMembership, "find open membership", start); err != nil {
		return domain.Membership{}, err
	}
	return m, nil
}

func (r *PgRepository) CloseOpen(ctx context.Context, roomID int64, userID string) (domain.Membership, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`UPDATE room_members
		 SET left_at = now()
		 WHERE room_id = $1 AND user_id = $2 AND left_at IS NULL
		 RETURNING id, room_id, user_id, username, joined_at, left_at`,
		roomID,
		userID,
	)

	m, err := scanMembership(row)
	if err := db.HandleQueryError(err, ErrNoOpenMembership, "close open membership", start); err != nil {
		return domain.Membership{}, err
	}
	return m, nil
}

// ListActive reads all open records in one statement, so concurrent joins
// and leaves cannot produce duplicate or missing members within a single
// listing.
func (r *PgRepository) ListActive(ctx context.Context, roomID int64) ([]domain.Membership, error) {
	start := time.Now()
	rows, err := r.q.Query(
		ctx,
		`SELECT id, room_id, user_id, username, joined_at, left_at
		 FROM room_members
		 WHERE room_id = $1 AND left_at IS NULL
		 ORDER BY joined_at ASC, id ASC`,
		roomID,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list active memberships", start)
	}
	defer rows.Close()

	members, err := collectMemberships(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list active memberships: %w", err)
	}

	db.MeasureQueryDuration("list active memberships", start)
	return members, nil
}

func (r *PgRepository) ListHistory(ctx context.Context, roomID int64, userID string) ([]domain.Membership, error) {
	start := time.Now()
	rows, err := r.q.Query(
		ctx,
		`SELECT id, room_id, user_id, username, joined_at, left_at
		 FROM room_members
		 WHERE room_id = $1 AND user_id = $2
		 ORDER BY joined_at ASC, id ASC`,
		roomID,
		userID,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list membership history", start)
	}
	defer rows.Close()

	history, err := collectMemberships(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership history: %w", err)
	}

	db.MeasureQueryDuration("list membership history", start)
	return history, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type rowsScanner interface {
	Next() bool
	Err() error
	Scan(dest ...interface{}) error
}

func scanMembership(row rowScanner) (domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(&m.ID, &m.RoomID, &m.UserID, &m.Username, &m.JoinedAt, &m.LeftAt)
	if err != nil {
		return domain.Membership{}, err
	}
	return m, nil
}

func collectMemberships(rows rowsScanner) ([]domain.Membership, error) {
	var members []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
