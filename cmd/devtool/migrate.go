package main

import (
	"context"
	"fmt"

	"github.com/osse101/MineIdler_Go/internal/config"
	"github.com/osse101/MineIdler_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply or inspect the embedded database migrations (up, status)"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL(),
		cfg.Database.MaxConns, cfg.Database.MaxConnIdleTime, cfg.Database.MaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		PrintHeader("Applying migrations...")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Database is up to date")
	case "status":
		PrintHeader("Migration status")
		statuses, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("  %05d  %-10s  %s\n", s.Source.Version, s.State, applied)
		}
	default:
		return fmt.Errorf("unknown subcommand %q: want up or status", args[0])
	}
	return nil
}
