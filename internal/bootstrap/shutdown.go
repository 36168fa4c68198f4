package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/MineIdler_Go/internal/database"
	"github.com/osse101/MineIdler_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server   *server.Server
	Services *Services
	DBPool   database.Pool
}

// GracefulShutdown stops the application in dependency order:
//  1. HTTP server stops accepting requests
//  2. Mining sessions end, which closes their open streams
//  3. HTTP server finishes the remaining in-flight requests
//  4. Inventory writer flushes what the sessions produced
//  5. Capacity check workers drain
//  6. Cache and database connections close
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- c.Server.Stop(ctx)
	}()

	if err := c.Services.Mining.Shutdown(ctx); err != nil {
		slog.Error(LogMsgMiningShutdownFailed, "error", err)
	}

	if err := <-serverDone; err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if err := c.Services.Writer.Shutdown(ctx); err != nil {
		slog.Error(LogMsgWriterShutdownFailed, "error", err)
	}
	c.Services.WorkerPool.Stop()

	if err := c.Services.Cache.Close(); err != nil {
		slog.Error(LogMsgCacheCloseFailed, "error", err)
	}
	c.DBPool.Close()

	slog.Info(LogMsgServerStopped)
}
