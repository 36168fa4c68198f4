package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := RateLimitMiddleware(nil, detector)(okHandler())

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < MaxRequestsPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	count := detector.clients[ip].requests
	detector.mu.Unlock()
	assert.Equal(t, MaxRequestsPerWindow+1, count)
	assert.JSONEq(t, `{"error":"Too Many Requests"}`, rec.Body.String())

	other := httptest.NewRequest(http.MethodGet, "/test", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "limits are per client")
}

func TestSuspiciousActivityDetector_WindowResets(t *testing.T) {
	ctx := context.Background()
	detector := NewSuspiciousActivityDetector()
	for i := 0; i < MaxRequestsPerWindow+1; i++ {
		detector.RecordRequest(ctx, "10.1.1.1")
	}
	detector.RecordFailedAuth(ctx, "10.1.1.1")
	assert.False(t, detector.RecordRequest(ctx, "10.1.1.1"))

	detector.mu.Lock()
	detector.windowStart = detector.windowStart.Add(-2 * ActivityWindow)
	detector.mu.Unlock()

	assert.True(t, detector.RecordRequest(ctx, "10.1.1.1"))

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 1, detector.clients["10.1.1.1"].requests)
	assert.Zero(t, detector.clients["10.1.1.1"].failedAuth)
}
