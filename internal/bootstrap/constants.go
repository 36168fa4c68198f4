package bootstrap

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingMineIdler   = "Starting MineIdler"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgCatalogLoaded       = "Item catalog loaded"
	LogMsgCatalogSynced       = "Item catalog synced to database"
	LogMsgCacheSelected       = "Cache backend selected"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgServerStopped        = "Server stopped"
	LogMsgMiningShutdownFailed = "Mining shutdown did not finish"
	LogMsgWriterShutdownFailed = "Inventory writer final flush failed"
	LogMsgCacheCloseFailed     = "Cache close failed"
	LogMsgServerExited         = "Server exited"
)

// Error messages
const (
	ErrMsgLoadCatalogFailed  = "failed to load item catalog"
	ErrMsgSyncCatalogFailed  = "failed to sync item catalog to database"
	ErrMsgConnectCacheFailed = "failed to connect cache"
	ErrMsgCostItemsMissing   = "item catalog lacks storage upgrade items"
)

// RedisKeyPrefix namespaces every cached key in a shared redis
const RedisKeyPrefix = "mine-idler"
