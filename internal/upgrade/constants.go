package upgrade

import "time"

// Storage upgrade resources, charged in this order
const (
	ItemWoodenBeam    = "wooden_beam"
	ItemWoodenPalette = "wooden_palette"
	ItemRoofShingles  = "roof_shingles"
)

// Storage upgrade cost curve: base = CostBase * (level+1) * CostGrowth^(CostGrowthExponent*level)
const (
	CostBase           = 3.0
	CostGrowth         = 1.18
	CostGrowthExponent = 0.33

	WoodenBeamRatio    = 1.0
	WoodenPaletteRatio = 1.25
	RoofShinglesRatio  = 0.8
)

// Upgrades cache defaults
const (
	DefaultCacheSize = 10000
	DefaultCacheTTL  = 10 * time.Minute
)

// Error messages
const (
	ErrMsgUnknownCostItem   = "upgrade cost item missing from catalog"
	ErrMsgGetUpgradesFailed = "failed to get upgrades"
	ErrMsgCountFailed       = "failed to count inventory"
	ErrMsgBeginTxFailed     = "failed to begin transaction"
	ErrMsgEnsureBaseFailed  = "failed to create base"
	ErrMsgLockLevelFailed   = "failed to lock storage level"
	ErrMsgDebitFailed       = "failed to debit inventory"
	ErrMsgIncrementFailed   = "failed to increment storage level"
	ErrMsgCommitFailed      = "failed to commit transaction"
)

// Log messages
const (
	LogMsgGetUpgradesFailed = "Failed to get upgrades"
	LogMsgCountFailed       = "Failed to count inventory"
	LogMsgUpgradeFailed     = "Storage upgrade failed"
	LogMsgUpgradeRejected   = "Storage upgrade rejected"
	LogMsgUpgraded          = "Storage upgraded"
)
