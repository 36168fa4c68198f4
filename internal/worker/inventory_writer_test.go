package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

type fakeStore struct {
	mu       sync.Mutex
	batches  [][]domain.NewInventoryItem
	failures int
	calls    int
}

func (s *fakeStore) InsertInventoryItems(ctx context.Context, items []domain.NewInventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures > 0 {
		s.failures--
		return errors.New("connection refused")
	}
	s.batches = append(s.batches, append([]domain.NewInventoryItem(nil), items...))
	return nil
}

func (s *fakeStore) persisted() []domain.NewInventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []domain.NewInventoryItem
	for _, b := range s.batches {
		all = append(all, b...)
	}
	return all
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeChecker struct {
	mu    sync.Mutex
	users map[int64]int
}

func (c *fakeChecker) CheckCapacity(ctx context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.users == nil {
		c.users = make(map[int64]int)
	}
	c.users[userID]++
	return nil
}

func (c *fakeChecker) checked() map[int64]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int64]int, len(c.users))
	for k, v := range c.users {
		out[k] = v
	}
	return out
}

func item(userID int64, quality float32) domain.NewInventoryItem {
	return domain.NewInventoryItem{
		UserID:        userID,
		GeneratedItem: domain.GeneratedItem{ItemID: 1, Quality: quality, Value: 1, Modifiers: []domain.ItemModifier{}},
	}
}

func enqueueN(t *testing.T, w *InventoryWriter, userID int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, w.Enqueue(context.Background(), item(userID, float32(i+1)/float32(n+1))))
	}
}

func shutdown(t *testing.T, w *InventoryWriter) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
}

func TestInventoryWriter_TimeTrigger(t *testing.T) {
	store := &fakeStore{}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: 150 * time.Millisecond, BatchSize: 100})
	w.Start()
	defer shutdown(t, w)

	enqueueN(t, w, 1, 5)

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, store.persisted(), "nothing flushes before a threshold fires")

	assert.Eventually(t, func() bool {
		return len(store.persisted()) == 5
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, store.callCount())
}

func TestInventoryWriter_FlushesImmediatelyAfterIdleInterval(t *testing.T) {
	store := &fakeStore{}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: 400 * time.Millisecond, BatchSize: 100})
	w.Start()
	defer shutdown(t, w)

	time.Sleep(500 * time.Millisecond)
	start := time.Now()
	enqueueN(t, w, 1, 1)

	require.Eventually(t, func() bool {
		return len(store.persisted()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Less(t, time.Since(start), 150*time.Millisecond, "an item arriving after a full idle interval should not wait for the next tick")
}

func TestInventoryWriter_SizeTrigger(t *testing.T) {
	store := &fakeStore{}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: time.Hour, BatchSize: 10})
	w.Start()
	defer shutdown(t, w)

	enqueueN(t, w, 1, 9)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, store.persisted())

	enqueueN(t, w, 1, 1)
	assert.Eventually(t, func() bool {
		return len(store.persisted()) == 10
	}, time.Second, 5*time.Millisecond)
}

func TestInventoryWriter_IdleWriterDoesNotFlush(t *testing.T) {
	store := &fakeStore{}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: 10 * time.Millisecond})
	w.Start()

	time.Sleep(60 * time.Millisecond)
	shutdown(t, w)

	assert.Zero(t, store.callCount())
}

func TestInventoryWriter_RetainsBufferAcrossFailure(t *testing.T) {
	store := &fakeStore{failures: 1}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: 30 * time.Millisecond, BatchSize: 100})
	w.Start()
	defer shutdown(t, w)

	enqueueN(t, w, 1, 7)

	assert.Eventually(t, func() bool {
		return len(store.persisted()) == 7
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, store.callCount(), 2)

	seen := make(map[float32]bool)
	for _, it := range store.persisted() {
		assert.False(t, seen[it.Quality], "duplicate row persisted")
		seen[it.Quality] = true
	}
}

func TestInventoryWriter_SchedulesCapacityChecksPerUser(t *testing.T) {
	store := &fakeStore{}
	checker := &fakeChecker{}
	pool := NewPool(TestWorkerCount, TestQueueSize, time.Second)
	pool.Start()
	defer pool.Stop()

	w := NewInventoryWriter(store, pool, WriterConfig{FlushInterval: time.Hour, BatchSize: 4})
	w.SetCapacityChecker(checker)
	w.Start()
	defer shutdown(t, w)

	enqueueN(t, w, 1, 2)
	enqueueN(t, w, 2, 1)
	enqueueN(t, w, 1, 1)

	assert.Eventually(t, func() bool {
		got := checker.checked()
		return got[1] == 1 && got[2] == 1
	}, time.Second, 5*time.Millisecond)
}

func TestInventoryWriter_ShutdownFlushesRemainder(t *testing.T) {
	store := &fakeStore{}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: time.Hour, BatchSize: 100})
	w.Start()

	enqueueN(t, w, 3, 3)
	shutdown(t, w)

	assert.Len(t, store.persisted(), 3)
	err := w.Enqueue(context.Background(), item(3, 0.5))
	assert.ErrorIs(t, err, domain.ErrWriterClosed)
}

func TestInventoryWriter_ShutdownWithoutStartFlushesQueue(t *testing.T) {
	store := &fakeStore{}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: time.Hour, BatchSize: 100})

	enqueueN(t, w, 4, 3)
	shutdown(t, w)

	assert.Len(t, store.persisted(), 3)
	assert.Equal(t, 1, store.callCount())

	w.Start()
	err := w.Enqueue(context.Background(), item(4, 0.5))
	assert.ErrorIs(t, err, domain.ErrWriterClosed)
}

func TestInventoryWriter_ShutdownWithoutStartReportsUnflushedItems(t *testing.T) {
	store := &fakeStore{failures: 1000}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: 10 * time.Millisecond, BatchSize: 100})
	enqueueN(t, w, 1, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := w.Shutdown(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, store.persisted())
}

func TestInventoryWriter_ShutdownGivesUpWhenContextEnds(t *testing.T) {
	store := &fakeStore{failures: 1000}
	w := NewInventoryWriter(store, nil, WriterConfig{FlushInterval: 10 * time.Millisecond, BatchSize: 100})
	w.Start()
	enqueueN(t, w, 1, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	err := w.Shutdown(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, store.persisted())
}

func TestInventoryWriter_EnqueueBlocksUntilContextDone(t *testing.T) {
	w := NewInventoryWriter(&fakeStore{}, nil, WriterConfig{QueueSize: 1})
	// Not started, so the queue never drains
	require.NoError(t, w.Enqueue(context.Background(), item(1, 0.5)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := w.Enqueue(ctx, item(1, 0.6))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type failingChecker struct{}

func (failingChecker) CheckCapacity(ctx context.Context, userID int64) error {
	return domain.ErrStorage
}

func TestCapacityCheckJob_ReturnsCheckerError(t *testing.T) {
	job := &capacityCheckJob{checker: failingChecker{}, userID: 9}

	err := job.Process(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "user 9")
}

func TestCapacityCheckJob_Success(t *testing.T) {
	checker := &fakeChecker{}
	job := &capacityCheckJob{checker: checker, userID: 2}

	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, 1, checker.checked()[2])
}

func TestDistinctUsers(t *testing.T) {
	users := distinctUsers([]domain.NewInventoryItem{item(3, 0.1), item(1, 0.2), item(3, 0.3), item(2, 0.4)})
	assert.Equal(t, []int64{3, 1, 2}, users)
}
