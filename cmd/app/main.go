package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/MineIdler_Go/internal/bootstrap"
	"github.com/osse101/MineIdler_Go/internal/config"
	"github.com/osse101/MineIdler_Go/internal/database"
	"github.com/osse101/MineIdler_Go/internal/handler"
	"github.com/osse101/MineIdler_Go/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	bootstrap.SetupLogger(cfg)
	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.DatabaseURL(),
		cfg.Database.MaxConns, cfg.Database.MaxConnIdleTime, cfg.Database.MaxConnLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return err
	}

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		dbPool.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	if err := bootstrap.SyncItemCatalog(ctx, repos.Catalog, cat); err != nil {
		dbPool.Close()
		return err
	}

	c, err := bootstrap.NewCache(ctx, cfg.Cache)
	if err != nil {
		dbPool.Close()
		return err
	}

	svcs, err := bootstrap.InitializeServices(cfg, repos, cat, c)
	if err != nil {
		_ = c.Close()
		dbPool.Close()
		return err
	}
	svcs.Start()

	srv := server.NewServer(server.Config{
		Port:              cfg.Server.Port,
		APIKey:            cfg.Server.APIKey,
		TrustedProxies:    cfg.Server.TrustedProxies,
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		KeepaliveInterval: cfg.Server.SSEKeepalive,
	}, dbPool, svcs.ServerServices(cat))

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:   srv,
		Services: svcs,
		DBPool:   dbPool,
	})

	slog.Info(bootstrap.LogMsgServerExited)
	return nil
}
