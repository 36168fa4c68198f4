package repository

import (
	"context"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// Upgrade defines the interface for base upgrade persistence
type Upgrade interface {
	GetUpgrades(ctx context.Context, userID int64) (domain.Upgrades, error)
	BeginTx(ctx context.Context) (UpgradeTx, error)
}

// UpgradeTx holds the row locks for one upgrade purchase
type UpgradeTx interface {
	Tx
	// EnsureBase creates the user's base row at level 0 if it does not exist
	EnsureBase(ctx context.Context, userID int64) error
	GetStorageLevelForUpdate(ctx context.Context, userID int64) (uint32, error)
	IncrementStorageLevel(ctx context.Context, userID int64) (uint32, error)
	// LockInventory returns every inventory row of the user and locks them
	// until the transaction ends
	LockInventory(ctx context.Context, userID int64) ([]domain.InventoryRow, error)
	DeleteInventoryRows(ctx context.Context, userID int64, rowIDs []int64) error
}
