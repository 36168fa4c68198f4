package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/metrics"
	"github.com/osse101/MineIdler_Go/internal/repository"
)

// HiscoresRepository ranks users by inventory value
type HiscoresRepository struct {
	db *pgxpool.Pool
}

var _ repository.Hiscores = (*HiscoresRepository)(nil)

// NewHiscoresRepository creates a new HiscoresRepository
func NewHiscoresRepository(db *pgxpool.Pool) *HiscoresRepository {
	return &HiscoresRepository{db: db}
}

// GetTopByValue returns users ordered by total inventory value, ties broken
// by user id. Rank is left for the caller to assign.
func (r *HiscoresRepository) GetTopByValue(ctx context.Context, limit int) ([]domain.HiscoreEntry, error) {
	defer metrics.ObserveQuery(metrics.QueryHiscores, time.Now())

	rows, err := r.db.Query(ctx, `
		SELECT user_id, SUM(value)::float8 AS total_value, COUNT(*)
		FROM inventory
		GROUP BY user_id
		ORDER BY total_value DESC, user_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgHiscoresFailed, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.HiscoreEntry, error) {
		var e domain.HiscoreEntry
		err := row.Scan(&e.UserID, &e.TotalValue, &e.ItemCount)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgHiscoresFailed, err)
	}
	return entries, nil
}
