package mining

import "time"

// DefaultTickInterval is the cadence between two rolls of a session
const DefaultTickInterval = 8200 * time.Millisecond

// Log messages
const (
	LogMsgSessionStarted     = "Mining session started"
	LogMsgSessionEnded       = "Mining session ended"
	LogMsgSessionSuperseded  = "Mining session superseded"
	LogMsgEnqueueFailed      = "Failed to hand mined item to writer"
	LogMsgCapacityLookupFail = "Failed to look up available capacity"
	LogMsgShutdownStarted    = "Stopping all mining sessions"
	LogMsgShutdownTimeout    = "Mining sessions did not stop before shutdown deadline"
)

// Error messages
const (
	ErrMsgCapacityCheckFailed = "failed to check inventory capacity"
)
