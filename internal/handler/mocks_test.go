package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// MockUpgradeService mocks upgrade.Service
type MockUpgradeService struct {
	mock.Mock
}

func (m *MockUpgradeService) GetUpgrades(ctx context.Context, userID int64) (domain.Upgrades, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Upgrades), args.Error(1)
}

func (m *MockUpgradeService) GetBaseInfo(ctx context.Context, userID int64) (domain.BaseInfo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.BaseInfo), args.Error(1)
}

func (m *MockUpgradeService) AvailableCapacity(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUpgradeService) NextStorageCost(ctx context.Context, userID int64) ([]domain.ItemCost, error) {
	args := m.Called(ctx, userID)
	cost, _ := args.Get(0).([]domain.ItemCost)
	return cost, args.Error(1)
}

func (m *MockUpgradeService) UpgradeStorage(ctx context.Context, userID int64) (domain.Upgrades, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Upgrades), args.Error(1)
}

// MockInventoryService mocks inventory.Service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetInventory(ctx context.Context, userID int64, query domain.InventoryQuery) ([]domain.InventoryRow, error) {
	args := m.Called(ctx, userID, query)
	rows, _ := args.Get(0).([]domain.InventoryRow)
	return rows, args.Error(1)
}

func (m *MockInventoryService) GetAggregatedInventory(ctx context.Context, userID int64) ([]domain.AggregatedItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]domain.AggregatedItem)
	return items, args.Error(1)
}

func (m *MockInventoryService) CountInventory(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockHiscoresService mocks hiscores.Service
type MockHiscoresService struct {
	mock.Mock
}

func (m *MockHiscoresService) Top(ctx context.Context, limit int) ([]domain.HiscoreEntry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]domain.HiscoreEntry)
	return entries, args.Error(1)
}
