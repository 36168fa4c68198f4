package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPRequestsRejected = "http_requests_rejected_total"
)

// Mining metric names
const (
	MetricNameActiveMineSessions    = "active_mine_sessions"
	MetricNameItemsMined            = "items_mined_total"
	MetricNameItemValueMined        = "item_value_mined_total"
	MetricNameMiningSessionsStopped = "mining_sessions_stopped_total"
)

// Inventory writer metric names
const (
	MetricNameInventoryFlushes        = "inventory_flushes_total"
	MetricNameInventoryFlushSize      = "inventory_flush_size"
	MetricNameInventoryWriterBuffered = "inventory_writer_buffered"
	MetricNameInventoryCapacityChecks = "inventory_capacity_checks_total"
)

// Storage and economy metric names
const (
	MetricNameDBQueryDuration = "db_query_duration_seconds"
	MetricNameStorageUpgrades = "storage_upgrades_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPRequestsRejected = "Total number of HTTP requests rejected before routing, by reason"

	HelpTextActiveMineSessions    = "Number of mining sessions currently running"
	HelpTextItemsMined            = "Total number of items mined"
	HelpTextItemValueMined        = "Total value of items mined"
	HelpTextMiningSessionsStopped = "Total number of mining sessions that ended, by reason"

	HelpTextInventoryFlushes        = "Total number of inventory batch flushes, by result"
	HelpTextInventoryFlushSize      = "Number of items written per successful flush"
	HelpTextInventoryWriterBuffered = "Number of items buffered in the inventory writer"
	HelpTextInventoryCapacityChecks = "Total number of post-flush capacity checks, by result"

	HelpTextDBQueryDuration = "Database query latency in seconds"
	HelpTextStorageUpgrades = "Total number of storage upgrade attempts, by result"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelLocation = "location"
	LabelReason   = "reason"
	LabelResult   = "result"
	LabelQuery    = "query"
)

// Result label values
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
	ResultStopped  = "stopped"
)

// Stop reason label values beyond domain.StopReason
const (
	ReasonSuperseded   = "superseded"
	ReasonDisconnected = "disconnected"
	ReasonShutdown     = "shutdown"
)

// Rejection reason label values
const (
	ReasonUnauthorized = "unauthorized"
	ReasonRateLimited  = "rate_limited"
)

// Query label values
const (
	QueryInventory           = "inventory"
	QueryAggregatedInventory = "aggregated_inventory"
	QueryInventoryCount      = "inventory_count"
	QueryHiscores            = "hiscores"
	QueryInsertInventory     = "insert_inventory"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// DBLatencyBuckets covers 0.5ms to 5s
var DBLatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 5}

// FlushSizeBuckets covers single items up to large backlogs
var FlushSizeBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
