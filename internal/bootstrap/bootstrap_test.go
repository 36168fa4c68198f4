package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineIdler_Go/internal/cache"
	"github.com/osse101/MineIdler_Go/internal/config"
	"github.com/osse101/MineIdler_Go/internal/domain"
)

type fakeItemCatalog struct {
	upserted []domain.ItemDescriptor
	err      error
}

func (f *fakeItemCatalog) UpsertItemDescriptors(ctx context.Context, items []domain.ItemDescriptor) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = items
	return nil
}

func TestLoadCatalog(t *testing.T) {
	t.Run("embedded default", func(t *testing.T) {
		cat, err := LoadCatalog(&config.Config{})

		require.NoError(t, err)
		_, err = cat.Location("starter")
		assert.NoError(t, err)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadCatalog(&config.Config{Catalog: config.CatalogConfig{Dir: t.TempDir()}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgLoadCatalogFailed)
	})
}

func TestSyncItemCatalog(t *testing.T) {
	cat, err := LoadCatalog(&config.Config{})
	require.NoError(t, err)

	t.Run("upserts every item", func(t *testing.T) {
		repo := &fakeItemCatalog{}

		require.NoError(t, SyncItemCatalog(context.Background(), repo, cat))
		assert.Len(t, repo.upserted, len(cat.Items()))
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		repo := &fakeItemCatalog{err: errors.New("relation \"items\" does not exist")}

		err := SyncItemCatalog(context.Background(), repo, cat)

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgSyncCatalogFailed)
	})
}

func TestNewCache_Memory(t *testing.T) {
	c, err := NewCache(context.Background(), config.CacheConfig{Type: config.CacheTypeMemory, Size: 8, TTL: time.Minute})
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.(*cache.MemoryCache)
	assert.True(t, ok)
}

func TestNewCache_RedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewCache(ctx, config.CacheConfig{Type: config.CacheTypeRedis, RedisHost: "127.0.0.1", RedisPort: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgConnectCacheFailed)
}

func TestInitializeServices(t *testing.T) {
	cat, err := LoadCatalog(&config.Config{})
	require.NoError(t, err)
	cfg := &config.Config{
		Mining: config.MiningConfig{
			TickInterval:         time.Second,
			WriterQueueSize:      4,
			FlushInterval:        time.Second,
			FlushBatchSize:       4,
			CapacityWorkers:      1,
			CapacityQueueSize:    4,
			CapacityCheckTimeout: time.Second,
		},
		Cache: config.CacheConfig{UpgradesSize: 8, UpgradesTTL: time.Minute, TTL: time.Second},
	}

	svcs, err := InitializeServices(cfg, InitializeRepositories(nil), cat, cache.NewMemoryCache(8, time.Minute))

	require.NoError(t, err)
	assert.NotNil(t, svcs.Mining)
	assert.NotNil(t, svcs.Upgrade)
	assert.NotNil(t, svcs.Inventory)
	assert.NotNil(t, svcs.Hiscores)
	assert.NotNil(t, svcs.Writer)

	routes := svcs.ServerServices(cat)
	assert.Equal(t, svcs.Mining, routes.Mining)
	assert.NotNil(t, routes.Catalog)
}
