package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/MineIdler_Go/internal/config"
	"github.com/osse101/MineIdler_Go/internal/database"
)

const (
	waitMaxRetries    = 30
	waitRetryInterval = 2 * time.Second
	waitPoolSize      = 2
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(ctx context.Context, args []string) error {
	PrintHeader("Waiting for database...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < waitMaxRetries; i++ {
		ctx, cancel := context.WithTimeout(ctx, waitRetryInterval)
		pool, err := database.NewPool(ctx, cfg.DatabaseURL(), waitPoolSize, time.Minute, time.Minute)
		cancel()
		if err == nil {
			pool.Close()
			PrintSuccess("Database is ready")
			return nil
		}
		lastErr = err

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, waitMaxRetries, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitRetryInterval):
		}
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", waitMaxRetries, lastErr)
}
