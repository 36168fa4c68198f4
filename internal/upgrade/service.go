package upgrade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/inventory"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/metrics"
	"github.com/osse101/MineIdler_Go/internal/repository"
)

// InventoryCounter counts a user's inventory rows
type InventoryCounter interface {
	CountInventory(ctx context.Context, userID int64) (int64, error)
}

// Config sizes the upgrades cache
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// Service defines the interface for base upgrades
type Service interface {
	GetUpgrades(ctx context.Context, userID int64) (domain.Upgrades, error)
	GetBaseInfo(ctx context.Context, userID int64) (domain.BaseInfo, error)
	AvailableCapacity(ctx context.Context, userID int64) (int64, error)
	NextStorageCost(ctx context.Context, userID int64) ([]domain.ItemCost, error)
	UpgradeStorage(ctx context.Context, userID int64) (domain.Upgrades, error)
}

type service struct {
	repo      repository.Upgrade
	inventory InventoryCounter
	costs     *CostCalculator
	cache     *upgradesCache
}

// NewService creates a new upgrade service
func NewService(repo repository.Upgrade, inv InventoryCounter, costs *CostCalculator, cfg Config) Service {
	return &service{
		repo:      repo,
		inventory: inv,
		costs:     costs,
		cache:     newUpgradesCache(cfg.CacheSize, cfg.CacheTTL),
	}
}

func (s *service) GetUpgrades(ctx context.Context, userID int64) (domain.Upgrades, error) {
	if upgrades, ok := s.cache.Get(userID); ok {
		return upgrades, nil
	}

	upgrades, err := s.repo.GetUpgrades(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgGetUpgradesFailed, "user_id", userID, "error", err)
		return domain.Upgrades{}, fmt.Errorf("%w: %s", domain.ErrStorage, ErrMsgGetUpgradesFailed)
	}
	s.cache.Set(userID, upgrades)
	return upgrades, nil
}

func (s *service) GetBaseInfo(ctx context.Context, userID int64) (domain.BaseInfo, error) {
	upgrades, err := s.GetUpgrades(ctx, userID)
	if err != nil {
		return domain.BaseInfo{}, err
	}
	used, err := s.countInventory(ctx, userID)
	if err != nil {
		return domain.BaseInfo{}, err
	}

	capacity := upgrades.StorageCapacity()
	return domain.BaseInfo{
		Upgrades:  upgrades,
		Capacity:  capacity,
		Used:      used,
		Available: capacity - used,
	}, nil
}

// AvailableCapacity is capacity minus held items. It goes negative when a
// flush lands after the inventory was already full.
func (s *service) AvailableCapacity(ctx context.Context, userID int64) (int64, error) {
	info, err := s.GetBaseInfo(ctx, userID)
	if err != nil {
		return 0, err
	}
	return info.Available, nil
}

func (s *service) NextStorageCost(ctx context.Context, userID int64) ([]domain.ItemCost, error) {
	upgrades, err := s.GetUpgrades(ctx, userID)
	if err != nil {
		return nil, err
	}
	cost := s.costs.Cost(upgrades.StorageLevel)
	return cost[:], nil
}

// UpgradeStorage pays for the next storage level out of the user's inventory
// and raises the level, all in one transaction
func (s *service) UpgradeStorage(ctx context.Context, userID int64) (domain.Upgrades, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return domain.Upgrades{}, s.storageError(ctx, userID, ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.EnsureBase(ctx, userID); err != nil {
		return domain.Upgrades{}, s.storageError(ctx, userID, ErrMsgEnsureBaseFailed, err)
	}

	level, err := tx.GetStorageLevelForUpdate(ctx, userID)
	if err != nil {
		return domain.Upgrades{}, s.storageError(ctx, userID, ErrMsgLockLevelFailed, err)
	}

	cost := s.costs.Cost(level)
	if err := inventory.Debit(ctx, tx, userID, cost[:]); err != nil {
		if errors.Is(err, domain.ErrStorage) {
			return domain.Upgrades{}, s.storageError(ctx, userID, ErrMsgDebitFailed, err)
		}
		metrics.StorageUpgrades.WithLabelValues(metrics.ResultRejected).Inc()
		log.Info(LogMsgUpgradeRejected, "user_id", userID, "level", level, "reason", err)
		return domain.Upgrades{}, err
	}

	newLevel, err := tx.IncrementStorageLevel(ctx, userID)
	if err != nil {
		return domain.Upgrades{}, s.storageError(ctx, userID, ErrMsgIncrementFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Upgrades{}, s.storageError(ctx, userID, ErrMsgCommitFailed, err)
	}

	upgrades := domain.Upgrades{StorageLevel: newLevel}
	s.cache.Set(userID, upgrades)
	metrics.StorageUpgrades.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgUpgraded, "user_id", userID, "storage_level", newLevel)
	return upgrades, nil
}

func (s *service) countInventory(ctx context.Context, userID int64) (int64, error) {
	used, err := s.inventory.CountInventory(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgCountFailed, "user_id", userID, "error", err)
		return 0, fmt.Errorf("%w: %s", domain.ErrStorage, ErrMsgCountFailed)
	}
	return used, nil
}

// storageError logs the underlying failure and returns an opaque error
func (s *service) storageError(ctx context.Context, userID int64, msg string, err error) error {
	metrics.StorageUpgrades.WithLabelValues(metrics.ResultFailure).Inc()
	logger.FromContext(ctx).Error(LogMsgUpgradeFailed,
		"user_id", userID,
		"step", msg,
		"error", err)
	s.cache.Invalidate(userID)
	return fmt.Errorf("%w: %s", domain.ErrStorage, msg)
}
