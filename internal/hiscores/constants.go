package hiscores

import "time"

// Page size bounds
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Caching
const (
	CacheKeyPrefix  = "hiscores:top:"
	DefaultCacheTTL = 30 * time.Second
)

const (
	ErrMsgGetTopFailed = "failed to get hiscores"
	LogMsgGetTopFailed = "Failed to get hiscores"
)
