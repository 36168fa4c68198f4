package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// ============================================================================
// Log Messages - Inventory Writer
// ============================================================================

// Log messages for inventory writer operations
const (
	LogMsgWriterStarted          = "Inventory writer started"
	LogMsgWriterStopped          = "Inventory writer stopped"
	LogMsgFlushFailed            = "Failed to flush inventory batch"
	LogMsgFlushed                = "Flushed inventory batch"
	LogMsgShutdownFlushAbandoned = "Inventory writer shutdown abandoned unflushed items"
	LogMsgCapacityCheckFailed    = "Inventory capacity check failed"
	LogMsgCapacityPoolSaturated  = "Worker pool saturated, running capacity check inline"
)

// ============================================================================
// Error Messages - Inventory Writer
// ============================================================================

// Error message formats for inventory writer jobs
const (
	ErrMsgCapacityCheckFailed = "capacity check for user %d: %w"
)

// ============================================================================
// Inventory Writer Defaults
// ============================================================================

// Inventory writer defaults, used when a WriterConfig field is zero
const (
	DefaultWriterQueueSize      = 1024
	DefaultFlushInterval        = 2 * time.Second
	DefaultFlushBatchSize       = 100
	DefaultFlushTimeout         = 10 * time.Second
	DefaultCapacityCheckTimeout = 5 * time.Second
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount = 2
	TestQueueSize   = 10
)
