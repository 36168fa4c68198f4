package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/repository"
)

// UpgradeRepository implements repository.Upgrade for PostgreSQL
type UpgradeRepository struct {
	db *pgxpool.Pool
}

var _ repository.Upgrade = (*UpgradeRepository)(nil)

// NewUpgradeRepository creates a new UpgradeRepository
func NewUpgradeRepository(db *pgxpool.Pool) *UpgradeRepository {
	return &UpgradeRepository{db: db}
}

// GetUpgrades returns level 0 for users without a base row
func (r *UpgradeRepository) GetUpgrades(ctx context.Context, userID int64) (domain.Upgrades, error) {
	var level int32
	err := r.db.QueryRow(ctx, `SELECT storage_level FROM bases WHERE user_id = $1`, userID).Scan(&level)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Upgrades{}, nil
	}
	if err != nil {
		return domain.Upgrades{}, fmt.Errorf("%s: %w", ErrMsgGetUpgradesFailed, err)
	}
	return domain.Upgrades{StorageLevel: uint32(level)}, nil
}

func (r *UpgradeRepository) BeginTx(ctx context.Context) (repository.UpgradeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTxFailed, err)
	}
	return &upgradeTx{tx: tx}, nil
}

// upgradeTx holds row locks on the user's base and inventory until it ends
type upgradeTx struct {
	tx pgx.Tx
}

func (t *upgradeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *upgradeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *upgradeTx) EnsureBase(ctx context.Context, userID int64) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO bases (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	return err
}

func (t *upgradeTx) GetStorageLevelForUpdate(ctx context.Context, userID int64) (uint32, error) {
	var level int32
	err := t.tx.QueryRow(ctx,
		`SELECT storage_level FROM bases WHERE user_id = $1 FOR UPDATE`, userID).Scan(&level)
	if err != nil {
		return 0, err
	}
	return uint32(level), nil
}

func (t *upgradeTx) IncrementStorageLevel(ctx context.Context, userID int64) (uint32, error) {
	var level int32
	err := t.tx.QueryRow(ctx,
		`UPDATE bases SET storage_level = storage_level + 1 WHERE user_id = $1 RETURNING storage_level`,
		userID).Scan(&level)
	if err != nil {
		return 0, err
	}
	return uint32(level), nil
}

func (t *upgradeTx) LockInventory(ctx context.Context, userID int64) ([]domain.InventoryRow, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory inv
		WHERE inv.user_id = $1
		FOR UPDATE`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanInventoryRow)
}

func (t *upgradeTx) DeleteInventoryRows(ctx context.Context, userID int64, rowIDs []int64) error {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM inventory WHERE user_id = $1 AND id = ANY($2)`, userID, rowIDs)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != int64(len(rowIDs)) {
		return fmt.Errorf("deleted %d inventory rows, expected %d", tag.RowsAffected(), len(rowIDs))
	}
	return nil
}
