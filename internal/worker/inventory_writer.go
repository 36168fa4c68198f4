package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/metrics"
)

// InventoryStore persists batches of generated items
type InventoryStore interface {
	InsertInventoryItems(ctx context.Context, items []domain.NewInventoryItem) error
}

// CapacityChecker is told which users received items after a successful flush
type CapacityChecker interface {
	CheckCapacity(ctx context.Context, userID int64) error
}

// WriterConfig controls batching of the inventory writer
type WriterConfig struct {
	QueueSize            int
	FlushInterval        time.Duration
	BatchSize            int
	FlushTimeout         time.Duration
	CapacityCheckTimeout time.Duration
}

func (c WriterConfig) withDefaults() WriterConfig {
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultWriterQueueSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = DefaultFlushInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultFlushBatchSize
	}
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = DefaultFlushTimeout
	}
	if c.CapacityCheckTimeout <= 0 {
		c.CapacityCheckTimeout = DefaultCapacityCheckTimeout
	}
	return c
}

// InventoryWriter drains generated items from every mining session and
// persists them in batches. The buffer is owned by the run loop alone.
type InventoryWriter struct {
	store InventoryStore
	pool  *Pool
	cfg   WriterConfig

	checkerMu sync.RWMutex
	checker   CapacityChecker

	queue chan domain.NewInventoryItem

	// intakeMu is held for reading by every Enqueue so Shutdown can wait for
	// in-flight sends before the final drain.
	intakeMu  sync.RWMutex
	closed    bool
	stopping  chan struct{}
	drain     chan context.Context
	done      chan struct{}
	startOnce sync.Once
	started   bool
	closeOnce sync.Once
	// finalErr is written by the run loop before done is closed
	finalErr error
}

// NewInventoryWriter creates a writer; call Start to begin draining.
// pool may be nil, in which case capacity checks run on their own goroutines.
func NewInventoryWriter(store InventoryStore, pool *Pool, cfg WriterConfig) *InventoryWriter {
	cfg = cfg.withDefaults()
	return &InventoryWriter{
		store:    store,
		pool:     pool,
		cfg:      cfg,
		queue:    make(chan domain.NewInventoryItem, cfg.QueueSize),
		stopping: make(chan struct{}),
		drain:    make(chan context.Context),
		done:     make(chan struct{}),
	}
}

// SetCapacityChecker wires the component notified after each successful flush
func (w *InventoryWriter) SetCapacityChecker(checker CapacityChecker) {
	w.checkerMu.Lock()
	defer w.checkerMu.Unlock()
	w.checker = checker
}

func (w *InventoryWriter) capacityChecker() CapacityChecker {
	w.checkerMu.RLock()
	defer w.checkerMu.RUnlock()
	return w.checker
}

// Start launches the drain loop
func (w *InventoryWriter) Start() {
	w.startOnce.Do(func() {
		w.intakeMu.Lock()
		defer w.intakeMu.Unlock()
		if w.closed {
			return
		}
		w.started = true
		go w.run()
	})
}

// Enqueue hands an item to the writer, blocking while the queue is full.
// It returns ctx.Err() if ctx ends first and domain.ErrWriterClosed once
// Shutdown has begun. An item is never dropped after Enqueue returns nil.
func (w *InventoryWriter) Enqueue(ctx context.Context, item domain.NewInventoryItem) error {
	w.intakeMu.RLock()
	defer w.intakeMu.RUnlock()
	if w.closed {
		return domain.ErrWriterClosed
	}

	select {
	case w.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-w.stopping:
		return domain.ErrWriterClosed
	}
}

// Shutdown stops intake, flushes everything still queued or buffered and
// waits for the drain loop to exit. Flush retries continue until ctx ends.
func (w *InventoryWriter) Shutdown(ctx context.Context) error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopping)

		w.intakeMu.Lock()
		w.closed = true
		started := w.started
		w.intakeMu.Unlock()

		if !started {
			// No drain loop owns the queue, so flush it here
			err = w.finalFlush(ctx, nil)
			return
		}

		select {
		case w.drain <- ctx:
		case <-ctx.Done():
			err = ctx.Err()
			return
		}

		select {
		case <-w.done:
			err = w.finalErr
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

func (w *InventoryWriter) run() {
	defer close(w.done)
	log := logger.FromContext(context.Background())
	log.Info(LogMsgWriterStarted,
		"flush_interval", w.cfg.FlushInterval,
		"batch_size", w.cfg.BatchSize)

	timer := time.NewTimer(w.cfg.FlushInterval)
	defer timer.Stop()

	buffer := make([]domain.NewInventoryItem, 0, w.cfg.BatchSize)
	// After a failed flush the size trigger waits for the next interval
	backingOff := false
	// lastFlush marks the most recent flush attempt, successful or not
	lastFlush := time.Now()

	flushBuffer := func() {
		var ok bool
		buffer, ok = w.flush(context.Background(), buffer)
		backingOff = !ok
		lastFlush = time.Now()
		resetTimer(timer, w.cfg.FlushInterval)
	}

	for {
		select {
		case item := <-w.queue:
			buffer = append(buffer, item)
			metrics.InventoryWriterBuffered.Set(float64(len(buffer)))
			sizeDue := len(buffer) >= w.cfg.BatchSize && !backingOff
			if sizeDue || time.Since(lastFlush) >= w.cfg.FlushInterval {
				flushBuffer()
			}

		case <-timer.C:
			if len(buffer) > 0 {
				flushBuffer()
				continue
			}
			timer.Reset(w.cfg.FlushInterval)

		case ctx := <-w.drain:
			w.finalErr = w.finalFlush(ctx, buffer)
			log.Info(LogMsgWriterStopped)
			return
		}
	}
}

// finalFlush collects the remaining queue into the buffer and retries the
// flush until it succeeds or ctx ends
func (w *InventoryWriter) finalFlush(ctx context.Context, buffer []domain.NewInventoryItem) error {
collect:
	for {
		select {
		case item := <-w.queue:
			buffer = append(buffer, item)
		default:
			break collect
		}
	}

	for len(buffer) > 0 {
		var ok bool
		buffer, ok = w.flush(ctx, buffer)
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			logger.FromContext(ctx).Error(LogMsgShutdownFlushAbandoned, "items", len(buffer))
			return ctx.Err()
		case <-time.After(w.cfg.FlushInterval):
		}
	}
	return nil
}

// flush persists the buffer in one call. On success it returns a fresh empty
// buffer; on failure it returns the same buffer so the items are retried.
func (w *InventoryWriter) flush(ctx context.Context, buffer []domain.NewInventoryItem) ([]domain.NewInventoryItem, bool) {
	flushCtx, cancel := context.WithTimeout(ctx, w.cfg.FlushTimeout)
	defer cancel()

	if err := w.store.InsertInventoryItems(flushCtx, buffer); err != nil {
		metrics.InventoryFlushes.WithLabelValues(metrics.ResultFailure).Inc()
		logger.FromContext(ctx).Error(LogMsgFlushFailed,
			"items", len(buffer),
			"error", err)
		return buffer, false
	}

	metrics.InventoryFlushes.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.InventoryFlushSize.Observe(float64(len(buffer)))
	metrics.InventoryWriterBuffered.Set(0)
	logger.FromContext(ctx).Debug(LogMsgFlushed, "items", len(buffer))

	w.scheduleCapacityChecks(distinctUsers(buffer))
	return make([]domain.NewInventoryItem, 0, w.cfg.BatchSize), true
}

func (w *InventoryWriter) scheduleCapacityChecks(userIDs []int64) {
	checker := w.capacityChecker()
	if checker == nil {
		return
	}

	for _, userID := range userIDs {
		job := &capacityCheckJob{checker: checker, userID: userID}
		if w.pool != nil && w.pool.Enqueue(job) {
			continue
		}
		logger.FromContext(context.Background()).Debug(LogMsgCapacityPoolSaturated, "user_id", userID)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), w.cfg.CapacityCheckTimeout)
			defer cancel()
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgCapacityCheckFailed, "error", err)
			}
		}()
	}
}

// capacityCheckJob asks the checker to stop a user's session if their
// inventory has filled up
type capacityCheckJob struct {
	checker CapacityChecker
	userID  int64
}

func (j *capacityCheckJob) Process(ctx context.Context) error {
	if err := j.checker.CheckCapacity(ctx, j.userID); err != nil {
		metrics.InventoryCapacityChecks.WithLabelValues(metrics.ResultFailure).Inc()
		return fmt.Errorf(ErrMsgCapacityCheckFailed, j.userID, err)
	}
	metrics.InventoryCapacityChecks.WithLabelValues(metrics.ResultSuccess).Inc()
	return nil
}

func distinctUsers(items []domain.NewInventoryItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	users := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.UserID]; ok {
			continue
		}
		seen[item.UserID] = struct{}{}
		users = append(users, item.UserID)
	}
	return users
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
