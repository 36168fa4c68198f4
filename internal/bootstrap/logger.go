package bootstrap

import (
	"log/slog"

	"github.com/osse101/MineIdler_Go/internal/config"
	"github.com/osse101/MineIdler_Go/internal/logger"
)

// SetupLogger installs the process-wide structured logger. Source locations
// are only recorded in development.
func SetupLogger(cfg *config.Config) {
	loggerConfig := logger.NewConfig(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.ServiceName,
		cfg.Log.Version,
		cfg.Log.Environment,
		cfg.Log.IsDevelopment(),
	)
	logger.InitLogger(loggerConfig)

	slog.Info(LogMsgLoggingInitialized, "level", loggerConfig.LogLevel())
	slog.Info(LogMsgStartingMineIdler,
		"environment", cfg.Log.Environment,
		"log_level", cfg.Log.Level,
		"log_format", cfg.Log.Format,
		"version", cfg.Log.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Name,
		"port", cfg.Server.Port,
		"tick_interval", cfg.Mining.TickInterval,
		"cache_type", cfg.Cache.Type)
}
