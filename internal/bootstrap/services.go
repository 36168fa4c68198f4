package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/MineIdler_Go/internal/cache"
	"github.com/osse101/MineIdler_Go/internal/catalog"
	"github.com/osse101/MineIdler_Go/internal/config"
	"github.com/osse101/MineIdler_Go/internal/hiscores"
	"github.com/osse101/MineIdler_Go/internal/inventory"
	"github.com/osse101/MineIdler_Go/internal/mining"
	"github.com/osse101/MineIdler_Go/internal/server"
	"github.com/osse101/MineIdler_Go/internal/upgrade"
	"github.com/osse101/MineIdler_Go/internal/worker"
)

// Services holds the wired domain services and the background workers they
// depend on
type Services struct {
	Mining    mining.Service
	Upgrade   upgrade.Service
	Inventory inventory.Service
	Hiscores  hiscores.Service

	Cache      cache.Cache
	WorkerPool *worker.Pool
	Writer     *worker.InventoryWriter
}

// NewCache returns the cache backend selected by CACHE_TYPE
func NewCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	slog.Info(LogMsgCacheSelected, "type", cfg.Type)
	if cfg.Type != config.CacheTypeRedis {
		return cache.NewMemoryCache(cfg.Size, cfg.TTL), nil
	}

	c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:      cfg.RedisAddress(),
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		KeyPrefix: RedisKeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgConnectCacheFailed, err)
	}
	return c, nil
}

// InitializeServices wires repositories, catalog and workers into the domain
// services. The worker pool and writer are created but not started.
func InitializeServices(cfg *config.Config, repos *Repositories, cat *catalog.Catalog, c cache.Cache) (*Services, error) {
	costs, err := upgrade.NewCostCalculator(cat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCostItemsMissing, err)
	}

	upgradeSvc := upgrade.NewService(repos.Upgrade, repos.Inventory, costs, upgrade.Config{
		CacheSize: cfg.Cache.UpgradesSize,
		CacheTTL:  cfg.Cache.UpgradesTTL,
	})

	pool := worker.NewPool(cfg.Mining.CapacityWorkers, cfg.Mining.CapacityQueueSize, cfg.Mining.CapacityCheckTimeout)
	writer := worker.NewInventoryWriter(repos.Inventory, pool, worker.WriterConfig{
		QueueSize:            cfg.Mining.WriterQueueSize,
		FlushInterval:        cfg.Mining.FlushInterval,
		BatchSize:            cfg.Mining.FlushBatchSize,
		CapacityCheckTimeout: cfg.Mining.CapacityCheckTimeout,
	})

	miningSvc := mining.NewService(cat, upgradeSvc, writer, mining.Config{
		TickInterval: cfg.Mining.TickInterval,
	})
	writer.SetCapacityChecker(miningSvc)

	return &Services{
		Mining:     miningSvc,
		Upgrade:    upgradeSvc,
		Inventory:  inventory.NewService(repos.Inventory),
		Hiscores:   hiscores.NewService(repos.Hiscores, c, cfg.Cache.TTL),
		Cache:      c,
		WorkerPool: pool,
		Writer:     writer,
	}, nil
}

// Start launches the background workers
func (s *Services) Start() {
	s.WorkerPool.Start()
	s.Writer.Start()
}

// ServerServices exposes the services the HTTP routes call
func (s *Services) ServerServices(cat *catalog.Catalog) server.Services {
	return server.Services{
		Mining:    s.Mining,
		Upgrade:   s.Upgrade,
		Inventory: s.Inventory,
		Hiscores:  s.Hiscores,
		Catalog:   cat,
	}
}
