package sse

import "time"

// SSE connection settings
const (
	// KeepaliveInterval is how often an idle stream sends a keepalive
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout bounds each event write to the client connection
	WriteTimeout = 10 * time.Second
)

// Event types for SSE
const (
	// EventTypeSession opens a mining stream and carries its token
	EventTypeSession = "session"

	// EventTypeTick is sent on every mining tick
	EventTypeTick = "tick"

	// EventTypeError ends a stream that stopped on an error
	EventTypeError = "error"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgWriteError    = "Failed to write SSE event"
	LogMsgDeadlineError = "Failed to set SSE write deadline"
)

// Error messages
const (
	ErrMsgStreamingUnsupported = "streaming not supported"
)
