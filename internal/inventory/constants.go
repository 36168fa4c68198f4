package inventory

// Error messages
const (
	ErrMsgLockInventoryFailed  = "failed to lock inventory"
	ErrMsgDeleteRowsFailed     = "failed to delete inventory rows"
	ErrMsgGetInventoryFailed   = "failed to get inventory"
	ErrMsgGetAggregatedFailed  = "failed to get aggregated inventory"
	ErrMsgCountInventoryFailed = "failed to count inventory"
)

// Log messages
const (
	LogMsgGetInventoryFailed   = "Failed to get inventory"
	LogMsgGetAggregatedFailed  = "Failed to get aggregated inventory"
	LogMsgCountInventoryFailed = "Failed to count inventory"
)
