package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPlayerID       = "Missing player identity"

	// Query parameter error messages
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Mining error messages
	ErrMsgStreamingUnsupported = "Streaming not supported"
)

// Operation names used in logs
const (
	OpStartMining    = "Start mining"
	OpStopMining     = "Stop mining"
	OpGetBase        = "Get base"
	OpGetStorageCost = "Get storage cost"
	OpUpgradeStorage = "Upgrade storage"
	OpGetInventory   = "Get inventory"
	OpGetAggregated  = "Get aggregated inventory"
	OpGetHiscores    = "Get hiscores"
)

// Query parameter names
const (
	QueryParamPageSize      = "page_size"
	QueryParamPage          = "page"
	QueryParamSortBy        = "sort_by"
	QueryParamSortDirection = "sort_direction"
	QueryParamLimit         = "limit"
)

// StreamErrorCodeInternal is the error event code of unexpected stream failures
const StreamErrorCodeInternal = "internal"

// HeaderMiningToken carries the token of the session a client wants to resume
const HeaderMiningToken = "X-Mining-Token"
