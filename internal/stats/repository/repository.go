package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/splitroom/backend/internal/common/db"
	"github.com/splitroom/backend/internal/stats/domain"
)

type Repository interface {
	Overview(ctx context.Context) (domain.Overview, error)
}

type PgRepository struct {
	q db.Querier
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{q: pool}
}

// Overview gathers all counters in one statement of scalar subqueries, so
// the numbers come from a single snapshot.
func (r *PgRepository) Overview(ctx context.Context) (domain.Overview, error) {
	start := time.Now()
	row := r.q.QueryRow(
		ctx,
		`SELECT
		     (SELECT count(*) FROM users),
		     (SELECT count(*) FROM rooms),
		     (SELECT count(*) FROM rooms WHERE status = 'active'),
		     (SELECT count(*) FROM transfers),
		     (SELECT COALESCE(SUM(amount_minor), 0) FROM transfers),
		     (SELECT count(*) FROM rooms
		      WHERE created_at >= date_trunc('day', now())),
		     (SELECT count(*) FROM rooms
		      WHERE created_at >= date_trunc('day', now()) - interval '1 day'
		        AND created_at <  date_trunc('day', now())),
		     (SELECT count(*) FROM transfers
		      WHERE created_at >= date_trunc('day', now())),
		     (SELECT count(*) FROM transfers
		      WHERE created_at >= date_trunc('day', now()) - interval '1 day'
		        AND created_at <  date_trunc('day', now()))`,
	)

	var o domain.Overview
	err := row.Scan(
		&o.TotalUsers,
		&o.TotalRooms,
		&o.ActiveRooms,
		&o.TotalTransfers,
		&o.TotalVolumeMinor,
		&o.RoomsToday,
		&o.RoomsYesterday,
		&o.TransfersToday,
		&o.TransfersYesterday,
	)
	if err := db.HandleQueryError(err, nil, "stats overview", start); err != nil {
		return domain.Overview{}, err
	}

	db.MeasureQueryDuration("stats overview", start)
	return o, nil
}
