package mining

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// session is the registry entry for one running loop. Entries are compared
// by pointer, so a resumed session with a reused token is still distinct
// from the one it replaced.
type session struct {
	userID    int64
	token     string
	location  string
	startedAt time.Time

	stopCh      chan domain.StopReason
	cancel      context.CancelFunc
	releaseOnce sync.Once
}

func newSession(userID int64, token, location string, cancel context.CancelFunc) *session {
	return &session{
		userID:    userID,
		token:     token,
		location:  location,
		startedAt: time.Now(),
		stopCh:    make(chan domain.StopReason, 1),
		cancel:    cancel,
	}
}

// signal delivers the stop reason to the loop and cancels its context.
// Only the first reason is kept.
func (s *session) signal(reason domain.StopReason) {
	select {
	case s.stopCh <- reason:
	default:
	}
	s.cancel()
}

func (s *session) info() domain.MiningSessionInfo {
	return domain.MiningSessionInfo{
		Token:     s.token,
		Location:  s.location,
		StartedAt: s.startedAt,
	}
}

// registry maps user ids to their single active session
type registry struct {
	sessions sync.Map // int64 -> *session
}

// install makes s the user's session, replacing any previous one, and
// returns the replaced session
func (r *registry) install(s *session) *session {
	prev, loaded := r.sessions.Swap(s.userID, s)
	if !loaded {
		return nil
	}
	return prev.(*session)
}

func (r *registry) get(userID int64) *session {
	v, ok := r.sessions.Load(userID)
	if !ok {
		return nil
	}
	return v.(*session)
}

// isCurrent reports whether s still owns its user's mining slot
func (r *registry) isCurrent(s *session) bool {
	return r.get(s.userID) == s
}

// stop removes the user's session and signals its loop. With a token, only a
// session holding that token is removed.
func (r *registry) stop(userID int64, reason domain.StopReason, token string) bool {
	for {
		s := r.get(userID)
		if s == nil {
			return false
		}
		if token != "" && s.token != token {
			return false
		}
		if r.sessions.CompareAndDelete(userID, s) {
			s.signal(reason)
			return true
		}
		// The entry changed under us; look again
	}
}

// release tears down s exactly once, removing it from the registry only if
// it has not been replaced
func (r *registry) release(s *session) {
	s.releaseOnce.Do(func() {
		r.sessions.CompareAndDelete(s.userID, s)
		s.cancel()
	})
}

// all returns a snapshot of every active session
func (r *registry) all() []*session {
	var out []*session
	r.sessions.Range(func(_, v any) bool {
		out = append(out, v.(*session))
		return true
	})
	return out
}
