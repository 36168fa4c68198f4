package mining

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/loot"
	"github.com/osse101/MineIdler_Go/internal/metrics"
)

// Stream delivers the updates of one session to its consumer
type Stream struct {
	Token    string
	Location string

	updates chan domain.MiningUpdate
	// err is written before updates is closed
	err error
}

func newStream(token, location string) *Stream {
	return &Stream{
		Token:    token,
		Location: location,
		updates:  make(chan domain.MiningUpdate, 1),
	}
}

// Updates is closed when the session ends
func (s *Stream) Updates() <-chan domain.MiningUpdate {
	return s.updates
}

// Err returns the terminal error of the session. It is only meaningful after
// Updates has been closed, and is nil unless the inventory filled up.
func (s *Stream) Err() error {
	return s.err
}

// loop is the per-session state machine: announce, then wait and roll until
// something ends the session
type loop struct {
	svc      *service
	sess     *session
	stream   *Stream
	table    *loot.Table
	rng      *rand.Rand
	interval time.Duration

	// consumer ends when the stream's reader goes away; ctx also ends on stop
	consumer context.Context
	ctx      context.Context
}

func (l *loop) run() {
	exit := metrics.ReasonDisconnected
	defer func() {
		l.svc.registry.release(l.sess)
		close(l.stream.updates)
		metrics.ActiveMineSessions.WithLabelValues(l.sess.location).Dec()
		if exit == domain.StopReasonManual.String() && l.svc.isClosing() {
			exit = metrics.ReasonShutdown
		}
		metrics.MiningSessionsStopped.WithLabelValues(exit).Inc()
		logger.FromContext(l.ctx).Info(LogMsgSessionEnded,
			"user_id", l.sess.userID,
			"location", l.sess.location,
			"reason", exit)
		l.svc.loops.Done()
	}()

	if !l.send(domain.MiningUpdate{MillisUntilNextTick: l.interval.Milliseconds()}) {
		exit = l.endReason()
		return
	}

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
		case <-l.ctx.Done():
			exit = l.endReason()
			return
		}

		if reason, stopped := l.pendingStop(); stopped {
			exit = l.finish(reason)
			return
		}
		if !l.svc.registry.isCurrent(l.sess) {
			exit = metrics.ReasonSuperseded
			return
		}

		item := l.table.Roll(l.rng)
		err := l.svc.sink.Enqueue(l.ctx, domain.NewInventoryItem{UserID: l.sess.userID, GeneratedItem: item})
		if err != nil {
			if errors.Is(err, domain.ErrWriterClosed) {
				exit = metrics.ReasonShutdown
				return
			}
			if !errors.Is(err, context.Canceled) {
				logger.FromContext(l.ctx).Error(LogMsgEnqueueFailed,
					"user_id", l.sess.userID,
					"error", err)
			}
			exit = l.endReason()
			return
		}
		metrics.ItemsMined.WithLabelValues(l.sess.location).Inc()
		metrics.ItemValueMined.WithLabelValues(l.sess.location).Add(float64(item.Value))

		if !l.send(domain.MiningUpdate{Item: &item, MillisUntilNextTick: l.interval.Milliseconds()}) {
			exit = l.endReason()
			return
		}
		timer.Reset(l.interval)
	}
}

// send blocks until the consumer takes the update or the session ends
func (l *loop) send(update domain.MiningUpdate) bool {
	select {
	case l.stream.updates <- update:
		return true
	case <-l.ctx.Done():
		return false
	}
}

func (l *loop) pendingStop() (domain.StopReason, bool) {
	select {
	case reason := <-l.sess.stopCh:
		return reason, true
	default:
		return 0, false
	}
}

// endReason classifies an exit caused by the session context ending
func (l *loop) endReason() string {
	if reason, stopped := l.pendingStop(); stopped {
		return l.finish(reason)
	}
	if !l.svc.registry.isCurrent(l.sess) && l.consumer.Err() == nil {
		return metrics.ReasonSuperseded
	}
	return metrics.ReasonDisconnected
}

// finish records the terminal error for a stop reason
func (l *loop) finish(reason domain.StopReason) string {
	if reason == domain.StopReasonInventoryFull {
		l.stream.err = domain.ErrInventoryFull
	}
	return reason.String()
}
