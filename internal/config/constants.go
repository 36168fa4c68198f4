package config

// Error messages
const (
	ErrMsgFailedToLoadConfig = "failed to load config"
	ErrMsgInvalidConfig      = "invalid config"
)

// Cache backends
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)
