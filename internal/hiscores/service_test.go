package hiscores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineIdler_Go/internal/cache"
	"github.com/osse101/MineIdler_Go/internal/domain"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) GetTopByValue(ctx context.Context, limit int) ([]domain.HiscoreEntry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]domain.HiscoreEntry)
	return entries, args.Error(1)
}

func TestTop_RanksAndCaches(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepo{}
	repo.On("GetTopByValue", mock.Anything, 2).Return([]domain.HiscoreEntry{
		{UserID: 5, TotalValue: 900, ItemCount: 3},
		{UserID: 7, TotalValue: 100, ItemCount: 40},
	}, nil).Once()
	svc := NewService(repo, cache.NewMemoryCache(10, time.Minute), time.Minute)

	first, err := svc.Top(ctx, 2)
	require.NoError(t, err)
	second, err := svc.Top(ctx, 2)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, 1, first[0].Rank)
	assert.Equal(t, 2, first[1].Rank)
	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestTop_StorageError(t *testing.T) {
	repo := &MockRepo{}
	repo.On("GetTopByValue", mock.Anything, DefaultLimit).Return(nil, errors.New("timeout"))
	svc := NewService(repo, cache.NewMemoryCache(10, time.Minute), time.Minute)

	_, err := svc.Top(context.Background(), 0)

	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-1, DefaultLimit},
		{0, DefaultLimit},
		{1, 1},
		{50, 50},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampLimit(tt.in), "input %d", tt.in)
	}
}
