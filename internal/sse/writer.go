package sse

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Writer streams events over one HTTP response
type Writer struct {
	w   http.ResponseWriter
	rc  *http.ResponseController
	seq int
}

// ErrStreamingUnsupported is returned when no writer in the middleware chain
// can flush
var ErrStreamingUnsupported = errors.New(ErrMsgStreamingUnsupported)

// NewWriter writes the SSE headers and flushes them so the client sees the
// stream open before the first event
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sw := &Writer{w: w, rc: http.NewResponseController(w)}
	if err := sw.rc.Flush(); err != nil {
		if errors.Is(err, http.ErrNotSupported) {
			return nil, ErrStreamingUnsupported
		}
		return nil, err
	}
	return sw, nil
}

// Send writes one event and flushes it
func (s *Writer) Send(eventType string, payload interface{}) error {
	s.seq++
	return s.write(Event{
		ID:        strconv.Itoa(s.seq),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	})
}

// Keepalive writes a keepalive event, which carries no id
func (s *Writer) Keepalive() error {
	return s.write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()})
}

func (s *Writer) write(event Event) error {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		return fmt.Errorf("%s: %w", LogMsgWriteError, err)
	}

	if err := s.rc.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("%s: %w", LogMsgDeadlineError, err)
	}
	if _, err := s.w.Write(msg); err != nil {
		return err
	}
	return s.rc.Flush()
}
