package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/splitroom/backend/internal/common/db"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/room/domain"
)

var (
	ErrRoomNotFound = commonerrors.ErrRoomNotFound

	// ErrRoomCodeTaken signals a unique violation on the active-code index;
	// the service resolves it by regenerating the code and retrying.
	ErrRoomCodeTaken = errors.New("room code already taken")
)

const activeCodeConstraint = "uq_rooms_active_code"

type Repository interface {
	Insert(ctx context.Context, room domain.Room) (domain.Room, error)
	FindByCode(ctx context.Context, code string) (domain.Room, error)
	FindByID(ctx context.Context, id int64) (domain.Room, error)
	Close(ctx context.Context, id int64) (domain.Room, error)
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

func (r *PgRepository) Insert(ctx context.Context, room domain.Room) (domain.Room, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`INSERT INTO rooms (code, name, owner_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, code, name, owner_id, status, created_at, closed_at`,
		room.Code,
		room.Name,
		room.OwnerID,
		string(domain.StatusActive),
	)

	inserted, err := scanRoom(row)
	if err != nil {
		if db.IsUniqueViolation(err, activeCodeConstraint) {
			return domain.Room{}, ErrRoomCodeTaken
		}
		return domain.Room{}, db.HandleQueryError(err, ErrRoomNotFound, "insert room", start)
	}

	db.MeasureQueryDuration("insert room", start)
	return inserted, nil
}

// FindByCode returns the room currently holding code, preferring the active
// holder; if no room is active under that code, the most recently closed
// one is returned so history stays readable.
func (r *PgRepository) FindByCode(ctx context.Context, code string) (domain.Room, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`SELECT id, code, name, owner_id, status, created_at, closed_at
		 FROM rooms
		 WHERE code = $1
		 ORDER BY (status = 'active') DESC, created_at DESC
		 LIMIT 1`,
		code,
	)

	room, err := scanRoom(row)
	if err := db.HandleQueryError(err, ErrRoomNotFound, "find room by code", start); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Room, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`SELECT id, code, name, owner_id, status, created_at, closed_at
		 FROM rooms
		 WHERE id = $1`,
		id,
	)

	room, err := scanRoom(row)
	if err := db.HandleQueryError(err, ErrRoomNotFound, "find room by id", start); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (r *PgRepository) Close(ctx context.Context, id int64) (domain.Room, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`UPDATE rooms
		 SET status = 'closed', closed_at = now()
		 WHERE id = $1 AND status = 'active'
		 RETURNING id, code, name, owner_id, status, created_at, closed_at`,
		id,
	)

	room, err := scanRoom(row)
	if err := db.HandleQueryError(err, ErrRoomNotFound, "close room", start); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (domain.Room, error) {
	var room domain.Room
	var name *string
	err := row.Scan(&room.ID, &room.Code, &name, &room.OwnerID, &room.Status, &room.CreatedAt, &room.ClosedAt)
	if err != nil {
		return domain.Room{}, err
	}
	if name != nil {
		room.Name = *name
	}
	return room, nil
}
