package postgres

// Inventory columns, in the order scanInventoryRow expects
const inventoryColumns = "inv.id, inv.user_id, inv.item_id, inv.quality, inv.value, inv.modifiers, inv.created_at"

// Inventory sort columns by sort key
var inventorySortColumns = map[string]string{
	"date_acquired": "inv.created_at",
	"rarity_tier":   "i.rarity_tier",
	"value":         "inv.value",
}

// Error messages
const (
	ErrMsgInsertInventoryFailed = "failed to insert inventory items"
	ErrMsgCountInventoryFailed  = "failed to count inventory"
	ErrMsgQueryInventoryFailed  = "failed to query inventory"
	ErrMsgAggregateFailed       = "failed to aggregate inventory"
	ErrMsgHiscoresFailed        = "failed to query hiscores"
	ErrMsgUpsertItemsFailed     = "failed to upsert item descriptors"
	ErrMsgGetUpgradesFailed     = "failed to get upgrades"
	ErrMsgBeginTxFailed         = "failed to begin transaction"
	ErrMsgUnknownSortColumn     = "unknown inventory sort column"
)
