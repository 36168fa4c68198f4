package domain

import "time"

// Inventory capacity constants
const (
	BaseInventorySize           = 5000
	InventoryCapacityPerUpgrade = 1000
)

// Inventory page size bounds
const (
	DefaultInventoryPageSize = 100
	MaxInventoryPageSize     = 1000
)

// NewInventoryItem is a generated item queued for persistence
type NewInventoryItem struct {
	UserID int64 `json:"user_id"`
	GeneratedItem
}

// InventoryRow is one persisted item instance owned by a user
type InventoryRow struct {
	RowID     int64          `json:"row_id"`
	UserID    int64          `json:"user_id"`
	ItemID    uint32         `json:"item_id"`
	Quality   float32        `json:"quality"`
	Value     float32        `json:"value"`
	Modifiers []ItemModifier `json:"modifiers"`
	CreatedAt time.Time      `json:"created_at"`
}

// ItemCost is a quality-weighted resource requirement
type ItemCost struct {
	ItemID       uint32  `json:"item_id"`
	TotalQuality float32 `json:"total_quality"`
}

// InventorySortBy selects the column an inventory page is ordered by
type InventorySortBy string

const (
	SortByDateAcquired InventorySortBy = "date_acquired"
	SortByRarityTier   InventorySortBy = "rarity_tier"
	SortByValue        InventorySortBy = "value"
)

// SortDirection orders an inventory page
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// InventoryQuery selects one page of a user's inventory
type InventoryQuery struct {
	PageSize      uint32
	PageNumber    uint32
	SortBy        InventorySortBy
	SortDirection SortDirection
}

// Normalize fills defaults and clamps the page size.
func (q InventoryQuery) Normalize() InventoryQuery {
	if q.PageSize == 0 {
		q.PageSize = DefaultInventoryPageSize
	}
	if q.PageSize > MaxInventoryPageSize {
		q.PageSize = MaxInventoryPageSize
	}
	switch q.SortBy {
	case SortByDateAcquired, SortByRarityTier, SortByValue:
	default:
		q.SortBy = SortByDateAcquired
	}
	switch q.SortDirection {
	case SortAscending, SortDescending:
	default:
		q.SortDirection = SortDescending
	}
	return q
}

// Offset returns the row offset of the page.
func (q InventoryQuery) Offset() int64 {
	return int64(q.PageNumber) * int64(q.PageSize)
}

// AggregatedItem summarises every instance of one item a user holds
type AggregatedItem struct {
	ItemID       uint32  `json:"item_id"`
	Count        int64   `json:"count"`
	TotalQuality float64 `json:"total_quality"`
	TotalValue   float64 `json:"total_value"`
}

// HiscoreEntry ranks a user by the total value of their inventory
type HiscoreEntry struct {
	Rank       int     `json:"rank"`
	UserID     int64   `json:"user_id"`
	TotalValue float64 `json:"total_value"`
	ItemCount  int64   `json:"item_count"`
}
