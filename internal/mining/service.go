package mining

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MineIdler_Go/internal/catalog"
	"github.com/osse101/MineIdler_Go/internal/concurrency"
	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/loot"
	"github.com/osse101/MineIdler_Go/internal/metrics"
)

// ItemSink accepts mined items for persistence, blocking while saturated
type ItemSink interface {
	Enqueue(ctx context.Context, item domain.NewInventoryItem) error
}

// CapacityProvider reports how many more items a user can hold
type CapacityProvider interface {
	AvailableCapacity(ctx context.Context, userID int64) (int64, error)
}

// LocationLookup resolves mine locations by name
type LocationLookup interface {
	Location(name string) (*catalog.Location, error)
}

// Config controls session cadence
type Config struct {
	TickInterval time.Duration
	// NewRand returns the random source of a new session
	NewRand func() *rand.Rand
}

// Service defines the interface for mining sessions
type Service interface {
	Start(ctx context.Context, userID int64, location, resumeToken string) (*Stream, error)
	Stop(userID int64, reason domain.StopReason, token string) bool
	CheckCapacity(ctx context.Context, userID int64) error
	ActiveSession(userID int64) (domain.MiningSessionInfo, bool)
	Shutdown(ctx context.Context) error
}

type service struct {
	locations LocationLookup
	capacity  CapacityProvider
	sink      ItemSink
	cfg       Config

	registry  registry
	userLocks *concurrency.LockManager[int64]

	lifecycleMu sync.RWMutex
	closing     bool
	loops       sync.WaitGroup
}

// NewService creates a new mining service
func NewService(locations LocationLookup, capacity CapacityProvider, sink ItemSink, cfg Config) Service {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.NewRand == nil {
		cfg.NewRand = loot.NewRand
	}
	return &service{
		locations: locations,
		capacity:  capacity,
		sink:      sink,
		cfg:       cfg,
		userLocks: concurrency.NewLockManager[int64](),
	}
}

// Start begins a session for the user at the named location, replacing any
// session the user already has. ctx is the lifetime of the consumer; when it
// ends the session ends.
func (s *service) Start(ctx context.Context, userID int64, locationName, resumeToken string) (*Stream, error) {
	log := logger.FromContext(ctx)

	location, err := s.locations.Location(locationName)
	if err != nil {
		return nil, err
	}

	mu := s.userLocks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	available, err := s.capacity.AvailableCapacity(ctx, userID)
	if err != nil {
		log.Error(LogMsgCapacityLookupFail, "user_id", userID, "error", err)
		return nil, err
	}
	if available <= 0 {
		return nil, domain.ErrInventoryFull
	}

	s.lifecycleMu.RLock()
	defer s.lifecycleMu.RUnlock()
	if s.closing {
		return nil, domain.ErrMiningClosed
	}

	token := resumeToken
	if token == "" {
		token = uuid.NewString()
	}

	sessCtx, cancel := context.WithCancel(ctx)
	sess := newSession(userID, token, location.Descriptor.Name, cancel)
	stream := newStream(token, location.Descriptor.Name)

	if prev := s.registry.install(sess); prev != nil {
		log.Info(LogMsgSessionSuperseded, "user_id", userID, "location", prev.location)
	}

	l := &loop{
		svc:      s,
		sess:     sess,
		stream:   stream,
		table:    location.Table,
		rng:      s.cfg.NewRand(),
		interval: s.cfg.TickInterval,
		consumer: ctx,
		ctx:      sessCtx,
	}

	s.loops.Add(1)
	metrics.ActiveMineSessions.WithLabelValues(sess.location).Inc()
	go l.run()

	log.Info(LogMsgSessionStarted,
		"user_id", userID,
		"location", sess.location,
		"resumed", resumeToken != "")
	return stream, nil
}

// Stop ends the user's session. A non-empty token must match the session's.
func (s *service) Stop(userID int64, reason domain.StopReason, token string) bool {
	return s.registry.stop(userID, reason, token)
}

// CheckCapacity stops the user's session once their inventory is full
func (s *service) CheckCapacity(ctx context.Context, userID int64) error {
	if s.registry.get(userID) == nil {
		return nil
	}

	available, err := s.capacity.AvailableCapacity(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCapacityCheckFailed, err)
	}
	if available <= 0 {
		s.registry.stop(userID, domain.StopReasonInventoryFull, "")
	}
	return nil
}

func (s *service) ActiveSession(userID int64) (domain.MiningSessionInfo, bool) {
	sess := s.registry.get(userID)
	if sess == nil {
		return domain.MiningSessionInfo{}, false
	}
	return sess.info(), true
}

// Shutdown stops every session and waits for their loops, bounded by ctx.
// No session can start afterwards.
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.lifecycleMu.Lock()
	s.closing = true
	s.lifecycleMu.Unlock()

	sessions := s.registry.all()
	log.Info(LogMsgShutdownStarted, "sessions", len(sessions))
	for _, sess := range sessions {
		s.registry.stop(sess.userID, domain.StopReasonManual, "")
	}

	done := make(chan struct{})
	go func() {
		s.loops.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}

func (s *service) isClosing() bool {
	s.lifecycleMu.RLock()
	defer s.lifecycleMu.RUnlock()
	return s.closing
}
