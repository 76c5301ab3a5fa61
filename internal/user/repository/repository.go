package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/splitroom/backend/internal/common/db"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/user/domain"
)

var ErrUserNotFound = commonerrors.ErrUserNotFound

type Repository interface {
	ResolveOrCreate(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

type PgRepository struct {
	q db.Querier
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{q: pool}
}

// ResolveOrCreate upserts on open_id. Concurrent first-logins for the same
// open_id serialize on the unique index and both resolve to the same row;
// the freshly generated id is discarded when the row already exists.
func (r *PgRepository) ResolveOrCreate(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`INSERT INTO users (id, open_id, username)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (open_id) DO UPDATE SET username = EXCLUDED.username
		 RETURNING id, open_id, username, created_at`,
		string(user.ID),
		user.OpenID,
		user.Username,
	)

	var resolved domain.User
	err := row.Scan(&resolved.ID, &resolved.OpenID, &resolved.Username, &resolved.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, "resolve or create user", start); err != nil {
		return domain.User{}, err
	}
	return resolved, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`SELECT id, open_id, username, created_at FROM users WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.OpenID, &user.Username, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by id", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
