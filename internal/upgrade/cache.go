package upgrade

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

type cachedUpgradesEntry struct {
	Version  string
	Upgrades domain.Upgrades
	CachedAt time.Time
}

// upgradesCache keeps recently read upgrade levels in memory with
// time-based expiration. Writers must Set after commit so readers never see
// a level older than the last committed one for longer than the TTL.
type upgradesCache struct {
	lru *expirable.LRU[int64, *cachedUpgradesEntry]
}

func newUpgradesCache(size int, ttl time.Duration) *upgradesCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &upgradesCache{
		lru: expirable.NewLRU[int64, *cachedUpgradesEntry](size, nil, ttl),
	}
}

// Get returns the cached upgrades, dropping entries of an older schema
func (c *upgradesCache) Get(userID int64) (domain.Upgrades, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return domain.Upgrades{}, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return domain.Upgrades{}, false
	}
	return entry.Upgrades, true
}

func (c *upgradesCache) Set(userID int64, upgrades domain.Upgrades) {
	c.lru.Add(userID, &cachedUpgradesEntry{
		Version:  CacheSchemaVersion,
		Upgrades: upgrades,
		CachedAt: time.Now(),
	})
}

func (c *upgradesCache) Invalidate(userID int64) {
	c.lru.Remove(userID)
}
