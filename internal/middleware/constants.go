package middleware

// HTTP header names
const (
	// HeaderPlayerID carries the gateway-authenticated player id
	HeaderPlayerID = "X-Player-ID"
)

// Error messages
const (
	ErrMsgMissingPlayerID = "missing X-Player-ID header"
	ErrMsgInvalidPlayerID = "X-Player-ID must be a positive integer"
)

// Log messages
const (
	LogMsgInvalidPlayerID = "Rejected request with invalid player id"
)
