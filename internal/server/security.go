package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/metrics"
)

// AuthMiddleware requires the shared API key on every non-public path
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r, trustedProxies)
			detector.RecordFailedAuth(r.Context(), ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"path", r.URL.Path,
				"has_key", providedKey != "",
				"ip", ip)

			reject(w, http.StatusUnauthorized, metrics.ReasonUnauthorized, ErrMsgUnauthorized)
		})
	}
}

func isPublicPath(path string) bool {
	return slices.ContainsFunc(PublicPaths, func(prefix string) bool {
		return strings.HasPrefix(path, prefix)
	})
}

// RateLimitMiddleware rejects clients exceeding MaxRequestsPerWindow. A mining
// stream counts once however long it stays open.
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(r.Context(), extractIP(r, trustedProxies)) {
				reject(w, http.StatusTooManyRequests, metrics.ReasonRateLimited, ErrMsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// reject answers with the same JSON error shape the API handlers use
func reject(w http.ResponseWriter, status int, reason, message string) {
	metrics.HTTPRequestsRejected.WithLabelValues(reason).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// clientActivity is one client's counters for the current window
type clientActivity struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and failed logins per client IP
// over a fixed ActivityWindow
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	clients     map[string]*clientActivity
	windowStart time.Time
}

// NewSuspiciousActivityDetector creates a detector with an empty window
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		clients:     make(map[string]*clientActivity),
		windowStart: time.Now(),
	}
}

// RecordFailedAuth counts a failed authentication and alerts once a client
// reaches FailedAuthAlertThreshold
func (s *SuspiciousActivityDetector) RecordFailedAuth(ctx context.Context, ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.client(ip)
	client.failedAuth++
	if client.failedAuth >= FailedAuthAlertThreshold {
		logger.FromContext(ctx).Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", client.failedAuth)
	}
}

// RecordRequest counts a request and reports whether the client is still
// under MaxRequestsPerWindow
func (s *SuspiciousActivityDetector) RecordRequest(ctx context.Context, ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.client(ip)
	client.requests++
	if client.requests <= MaxRequestsPerWindow {
		return true
	}

	if client.requests%HighRateLogEvery == 0 {
		logger.FromContext(ctx).Warn(SecurityAlertHighRate,
			"ip", ip,
			"count", client.requests,
			"window", ActivityWindow)
	}
	return false
}

// client returns ip's counters, starting a fresh window when the current one
// has expired. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) client(ip string) *clientActivity {
	if time.Since(s.windowStart) > ActivityWindow {
		clear(s.clients)
		s.windowStart = time.Now()
	}

	client, ok := s.clients[ip]
	if !ok {
		client = &clientActivity{}
		s.clients[ip] = client
	}
	return client
}

// extractIP returns the client address, honouring X-Forwarded-For only when
// the direct peer is a trusted proxy
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	// Rightmost entry is the hop our trusted proxy saw
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	headers := [][2]string{
		{HeaderContentType, HeaderValueNoSniff},
		{HeaderFrameOptions, HeaderValueSameOrigin},
		{HeaderXSSProtection, HeaderValueXSSBlock},
		{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Set(h[0], h[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
