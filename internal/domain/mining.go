package domain

import "time"

// StopReason says why a mining session was ended from outside its loop
type StopReason int

const (
	StopReasonManual StopReason = iota
	StopReasonInventoryFull
)

func (r StopReason) String() string {
	switch r {
	case StopReasonManual:
		return "manual"
	case StopReasonInventoryFull:
		return "inventory_full"
	default:
		return "unknown"
	}
}

// MiningUpdate is pushed to the session consumer on every tick.
// The first update of a session carries no item.
type MiningUpdate struct {
	Item                *GeneratedItem `json:"item,omitempty"`
	MillisUntilNextTick int64          `json:"millis_until_next_tick"`
}

// MiningSessionInfo describes a user's active session
type MiningSessionInfo struct {
	Token     string    `json:"token"`
	Location  string    `json:"location"`
	StartedAt time.Time `json:"started_at"`
}

// Upgrades holds the per-user base upgrade levels
type Upgrades struct {
	StorageLevel uint32 `json:"storage_level"`
}

// StorageCapacity returns the inventory capacity granted by the storage level.
func (u Upgrades) StorageCapacity() int64 {
	return BaseInventorySize + InventoryCapacityPerUpgrade*int64(u.StorageLevel)
}

// BaseInfo combines a user's upgrades with their current inventory usage
type BaseInfo struct {
	Upgrades  Upgrades `json:"upgrades"`
	Capacity  int64    `json:"capacity"`
	Used      int64    `json:"used"`
	Available int64    `json:"available"`
}
