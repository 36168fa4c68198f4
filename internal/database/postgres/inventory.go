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

// InventoryRepository implements repository.Inventory for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

var _ repository.Inventory = (*InventoryRepository)(nil)

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// InsertInventoryItems bulk-loads the batch with COPY, which persists every
// row or none
func (r *InventoryRepository) InsertInventoryItems(ctx context.Context, items []domain.NewInventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	defer metrics.ObserveQuery(metrics.QueryInsertInventory, time.Now())

	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"inventory"},
		[]string{"user_id", "item_id", "quality", "value", "modifiers"},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			item := items[i]
			return []any{
				item.UserID,
				int32(item.ItemID),
				item.Quality,
				item.Value,
				modifiersParam(item.Modifiers),
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertInventoryFailed, err)
	}
	return nil
}

func (r *InventoryRepository) CountInventory(ctx context.Context, userID int64) (int64, error) {
	defer metrics.ObserveQuery(metrics.QueryInventoryCount, time.Now())

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgCountInventoryFailed, err)
	}
	return count, nil
}

// GetInventory returns one page of the user's items. Rows with equal sort
// keys are ordered by row id in the same direction so pages are stable.
func (r *InventoryRepository) GetInventory(ctx context.Context, userID int64, query domain.InventoryQuery) ([]domain.InventoryRow, error) {
	defer metrics.ObserveQuery(metrics.QueryInventory, time.Now())

	query = query.Normalize()
	column, ok := inventorySortColumns[string(query.SortBy)]
	if !ok {
		return nil, fmt.Errorf("%s: %s", ErrMsgUnknownSortColumn, query.SortBy)
	}
	direction := "DESC"
	if query.SortDirection == domain.SortAscending {
		direction = "ASC"
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM inventory inv
		JOIN items i ON i.id = inv.item_id
		WHERE inv.user_id = $1
		ORDER BY %s %s, inv.id %s
		LIMIT $2 OFFSET $3`, inventoryColumns, column, direction, direction)

	rows, err := r.db.Query(ctx, sql, userID, int64(query.PageSize), query.Offset())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryInventoryFailed, err)
	}
	result, err := pgx.CollectRows(rows, scanInventoryRow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryInventoryFailed, err)
	}
	return result, nil
}

func (r *InventoryRepository) GetAggregatedInventory(ctx context.Context, userID int64) ([]domain.AggregatedItem, error) {
	defer metrics.ObserveQuery(metrics.QueryAggregatedInventory, time.Now())

	rows, err := r.db.Query(ctx, `
		SELECT item_id, COUNT(*), SUM(quality)::float8, SUM(value)::float8
		FROM inventory
		WHERE user_id = $1
		GROUP BY item_id
		ORDER BY item_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAggregateFailed, err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AggregatedItem, error) {
		var (
			agg    domain.AggregatedItem
			itemID int32
		)
		err := row.Scan(&itemID, &agg.Count, &agg.TotalQuality, &agg.TotalValue)
		agg.ItemID = uint32(itemID)
		return agg, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAggregateFailed, err)
	}
	return result, nil
}
