package mining

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineIdler_Go/internal/catalog"
	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/loot"
	"github.com/osse101/MineIdler_Go/internal/testing/leaktest"
)

const (
	testTick     = 20 * time.Millisecond
	testUser     = int64(42)
	testLocation = "quarry"
	waitFor      = 2 * time.Second
)

type fakeLocations struct {
	location *catalog.Location
}

func (f *fakeLocations) Location(name string) (*catalog.Location, error) {
	if name != f.location.Descriptor.Name {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidLocation, name)
	}
	return f.location, nil
}

type fakeCapacity struct {
	available atomic.Int64
}

func (f *fakeCapacity) AvailableCapacity(ctx context.Context, userID int64) (int64, error) {
	return f.available.Load(), nil
}

type fakeSink struct {
	mu    sync.Mutex
	items []domain.NewInventoryItem
	block chan struct{}
}

func (f *fakeSink) Enqueue(ctx context.Context, item domain.NewInventoryItem) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, item)
	return nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

type fixture struct {
	svc      Service
	capacity *fakeCapacity
	sink     *fakeSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	table, err := loot.NewTable([]loot.Entry{
		&loot.ItemEntry{ItemID: 1, RarityTier: 2, Weight: 1, Quality: loot.Uniform()},
	})
	require.NoError(t, err)

	f := &fixture{capacity: &fakeCapacity{}, sink: &fakeSink{}}
	f.capacity.available.Store(100)
	locations := &fakeLocations{location: &catalog.Location{
		Descriptor: domain.MineLocationDescriptor{ID: 1, Name: testLocation},
		Table:      table,
	}}
	f.svc = NewService(locations, f.capacity, f.sink, Config{TickInterval: testTick})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		_ = f.svc.Shutdown(ctx)
	})
	return f
}

func next(t *testing.T, stream *Stream) (domain.MiningUpdate, bool) {
	t.Helper()
	select {
	case update, ok := <-stream.Updates():
		return update, ok
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for mining update")
		return domain.MiningUpdate{}, false
	}
}

// drain reads until the stream closes and returns how many items arrived
func drain(t *testing.T, stream *Stream) int {
	t.Helper()
	items := 0
	for {
		update, ok := next(t, stream)
		if !ok {
			return items
		}
		if update.Item != nil {
			items++
		}
	}
}

func TestStart_AnnouncesThenMines(t *testing.T) {
	f := newFixture(t)

	stream, err := f.svc.Start(context.Background(), testUser, testLocation, "")
	require.NoError(t, err)
	assert.NotEmpty(t, stream.Token)
	assert.Equal(t, testLocation, stream.Location)

	first, ok := next(t, stream)
	require.True(t, ok)
	assert.Nil(t, first.Item, "first update only announces the cadence")
	assert.Equal(t, testTick.Milliseconds(), first.MillisUntilNextTick)

	second, ok := next(t, stream)
	require.True(t, ok)
	require.NotNil(t, second.Item)
	assert.Equal(t, uint32(1), second.Item.ItemID)
	assert.Greater(t, second.Item.Quality, float32(0))
	assert.Less(t, second.Item.Quality, float32(1))

	assert.Eventually(t, func() bool { return f.sink.count() >= 1 }, waitFor, 5*time.Millisecond)
	f.sink.mu.Lock()
	assert.Equal(t, testUser, f.sink.items[0].UserID)
	f.sink.mu.Unlock()
}

func TestStart_InvalidLocation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Start(context.Background(), testUser, "nowhere", "")

	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
	_, active := f.svc.ActiveSession(testUser)
	assert.False(t, active)
}

func TestStart_InventoryFull(t *testing.T) {
	f := newFixture(t)
	f.capacity.available.Store(0)

	_, err := f.svc.Start(context.Background(), testUser, testLocation, "")

	assert.ErrorIs(t, err, domain.ErrInventoryFull)
	_, active := f.svc.ActiveSession(testUser)
	assert.False(t, active)
}

func TestStart_ResumeTokenIsKept(t *testing.T) {
	f := newFixture(t)

	stream, err := f.svc.Start(context.Background(), testUser, testLocation, "resume-me")
	require.NoError(t, err)

	assert.Equal(t, "resume-me", stream.Token)
	info, active := f.svc.ActiveSession(testUser)
	require.True(t, active)
	assert.Equal(t, "resume-me", info.Token)
	assert.Equal(t, testLocation, info.Location)
}

func TestStart_SupersedesPreviousSession(t *testing.T) {
	f := newFixture(t)

	old, err := f.svc.Start(context.Background(), testUser, testLocation, "")
	require.NoError(t, err)
	current, err := f.svc.Start(context.Background(), testUser, testLocation, "")
	require.NoError(t, err)

	assert.Equal(t, 0, drain(t, old), "superseded loop emits no items")
	assert.NoError(t, old.Err())

	_, _ = next(t, current)
	update, ok := next(t, current)
	require.True(t, ok)
	assert.NotNil(t, update.Item)

	info, active := f.svc.ActiveSession(testUser)
	require.True(t, active)
	assert.Equal(t, current.Token, info.Token)
}

func TestStart_ResumeWithSameTokenStillSupersedes(t *testing.T) {
	f := newFixture(t)

	old, err := f.svc.Start(context.Background(), testUser, testLocation, "same")
	require.NoError(t, err)
	current, err := f.svc.Start(context.Background(), testUser, testLocation, "same")
	require.NoError(t, err)

	assert.Equal(t, 0, drain(t, old))
	_, active := f.svc.ActiveSession(testUser)
	assert.True(t, active, "releasing the replaced loop keeps the new entry")

	assert.True(t, f.svc.Stop(testUser, domain.StopReasonManual, "same"))
	drain(t, current)
}

func TestStop(t *testing.T) {
	f := newFixture(t)
	stream, err := f.svc.Start(context.Background(), testUser, testLocation, "")
	require.NoError(t, err)

	assert.False(t, f.svc.Stop(testUser, domain.StopReasonManual, "stale-token"))
	_, active := f.svc.ActiveSession(testUser)
	assert.True(t, active, "stale stop is a no-op")

	assert.True(t, f.svc.Stop(testUser, domain.StopReasonManual, stream.Token))
	drain(t, stream)
	assert.NoError(t, stream.Err())

	_, active = f.svc.ActiveSession(testUser)
	assert.False(t, active)
	assert.False(t, f.svc.Stop(testUser, domain.StopReasonManual, ""))
}

func TestStop_WithoutTokenRemovesActive(t *testing.T) {
	f := newFixture(t)
	stream, err := f.svc.Start(context.Background(), testUser, testLocation, "")
	require.NoError(t, err)

	assert.True(t, f.svc.Stop(testUser, domain.StopReasonManual, ""))
	drain(t, stream)
}

func TestStop_AbortsBlockedEnqueue(t *testing.T) {
	f := newFixture(t)
	f.sink.block = make(chan struct{})
	stream, err := f.svc.Start(context.Background(), testUser, testLocation, "")
	require.NoError(t, err)
	_, _ = next(t, stream)

	time.Sleep(3 * testTick)
	assert.True(t, f.svc.Stop(testUser, domain.StopReasonManual, ""))

	assert.Equal(t, 0, drain(t, stream))
	assert.Zero(t, f.sink.count())
}

func TestCheckCapacity_StopsFullInventory(t *testing.T) {
	f := newFixture(t)
	stream, err := f.svc.Start(context.Background(), testUser, testLocation, "")
	require.NoError(t, err)

	require.NoError(t, f.svc.CheckCapacity(context.Background(), testUser))
	_, active := f.svc.ActiveSession(testUser)
	assert.True(t, active, "capacity left keeps the session")

	f.capacity.available.Store(0)
	require.NoError(t, f.svc.CheckCapacity(context.Background(), testUser))

	drain(t, stream)
	assert.ErrorIs(t, stream.Err(), domain.ErrInventoryFull)
}

func TestCheckCapacity_NoSession(t *testing.T) {
	f := newFixture(t)
	f.capacity.available.Store(0)

	assert.NoError(t, f.svc.CheckCapacity(context.Background(), testUser))
}

func TestConsumerDisconnectReleasesSession(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := f.svc.Start(ctx, testUser, testLocation, "")
	require.NoError(t, err)
	cancel()

	drain(t, stream)
	_, active := f.svc.ActiveSession(testUser)
	assert.False(t, active)
}

func TestShutdown(t *testing.T) {
	defer leaktest.Check(t)()
	f := newFixture(t)

	streams := make([]*Stream, 3)
	for i := range streams {
		s, err := f.svc.Start(context.Background(), int64(i+1), testLocation, "")
		require.NoError(t, err)
		streams[i] = s
	}

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, f.svc.Shutdown(ctx))

	for _, s := range streams {
		drain(t, s)
		assert.NoError(t, s.Err())
	}

	_, err := f.svc.Start(context.Background(), testUser, testLocation, "")
	assert.ErrorIs(t, err, domain.ErrMiningClosed)
}

func TestConcurrentStartsLeaveOneSession(t *testing.T) {
	defer leaktest.Check(t)()
	f := newFixture(t)

	var wg sync.WaitGroup
	streams := make([]*Stream, 20)
	for i := range streams {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := f.svc.Start(context.Background(), testUser, testLocation, "")
			assert.NoError(t, err)
			streams[i] = s
		}(i)
	}
	wg.Wait()

	info, active := f.svc.ActiveSession(testUser)
	require.True(t, active)

	var winner *Stream
	for _, s := range streams {
		if s.Token == info.Token {
			winner = s
			continue
		}
		drain(t, s)
	}
	require.NotNil(t, winner)

	assert.True(t, f.svc.Stop(testUser, domain.StopReasonManual, winner.Token))
	drain(t, winner)
}
