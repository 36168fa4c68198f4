package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/repository"
)

// Service defines the interface for inventory reads
type Service interface {
	GetInventory(ctx context.Context, userID int64, query domain.InventoryQuery) ([]domain.InventoryRow, error)
	GetAggregatedInventory(ctx context.Context, userID int64) ([]domain.AggregatedItem, error)
	CountInventory(ctx context.Context, userID int64) (int64, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

func (s *service) GetInventory(ctx context.Context, userID int64, query domain.InventoryQuery) ([]domain.InventoryRow, error) {
	query = query.Normalize()
	rows, err := s.repo.GetInventory(ctx, userID, query)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgGetInventoryFailed,
			"user_id", userID,
			"page", query.PageNumber,
			"error", err)
		return nil, fmt.Errorf("%w: %s", domain.ErrStorage, ErrMsgGetInventoryFailed)
	}
	return rows, nil
}

func (s *service) GetAggregatedInventory(ctx context.Context, userID int64) ([]domain.AggregatedItem, error) {
	items, err := s.repo.GetAggregatedInventory(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgGetAggregatedFailed, "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %s", domain.ErrStorage, ErrMsgGetAggregatedFailed)
	}
	return items, nil
}

func (s *service) CountInventory(ctx context.Context, userID int64) (int64, error) {
	count, err := s.repo.CountInventory(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgCountInventoryFailed, "user_id", userID, "error", err)
		return 0, fmt.Errorf("%w: %s", domain.ErrStorage, ErrMsgCountInventoryFailed)
	}
	return count, nil
}
