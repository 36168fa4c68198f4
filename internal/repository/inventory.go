package repository

import (
	"context"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// Inventory defines the interface for inventory persistence
type Inventory interface {
	// InsertInventoryItems writes the whole batch in one statement; it either
	// persists every item or none.
	InsertInventoryItems(ctx context.Context, items []domain.NewInventoryItem) error
	CountInventory(ctx context.Context, userID int64) (int64, error)
	GetInventory(ctx context.Context, userID int64, query domain.InventoryQuery) ([]domain.InventoryRow, error)
	GetAggregatedInventory(ctx context.Context, userID int64) ([]domain.AggregatedItem, error)
}

// ItemCatalog mirrors item descriptors into storage
type ItemCatalog interface {
	UpsertItemDescriptors(ctx context.Context, items []domain.ItemDescriptor) error
}

// Hiscores defines the interface for leaderboard queries
type Hiscores interface {
	GetTopByValue(ctx context.Context, limit int) ([]domain.HiscoreEntry, error)
}
