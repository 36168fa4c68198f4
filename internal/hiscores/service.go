package hiscores

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/osse101/MineIdler_Go/internal/cache"
	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/repository"
)

// Service defines the interface for the leaderboard
type Service interface {
	Top(ctx context.Context, limit int) ([]domain.HiscoreEntry, error)
}

type service struct {
	repo  repository.Hiscores
	cache cache.Cache
	ttl   time.Duration
}

// NewService creates a hiscores service caching each page for ttl
func NewService(repo repository.Hiscores, c cache.Cache, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{repo: repo, cache: c, ttl: ttl}
}

// Top returns the users with the most valuable inventories
func (s *service) Top(ctx context.Context, limit int) ([]domain.HiscoreEntry, error) {
	limit = ClampLimit(limit)
	key := CacheKeyPrefix + strconv.Itoa(limit)

	return cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]domain.HiscoreEntry, error) {
		entries, err := s.repo.GetTopByValue(ctx, limit)
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgGetTopFailed, "limit", limit, "error", err)
			return nil, fmt.Errorf("%w: %s", domain.ErrStorage, ErrMsgGetTopFailed)
		}
		for i := range entries {
			entries[i].Rank = i + 1
		}
		return entries, nil
	})
}

// ClampLimit bounds a requested page size to [1, MaxLimit], using
// DefaultLimit when none was given
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
