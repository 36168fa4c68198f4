package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/MineIdler_Go/internal/database"
	"github.com/osse101/MineIdler_Go/internal/handler"
	"github.com/osse101/MineIdler_Go/internal/hiscores"
	"github.com/osse101/MineIdler_Go/internal/inventory"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/metrics"
	"github.com/osse101/MineIdler_Go/internal/middleware"
	"github.com/osse101/MineIdler_Go/internal/mining"
	"github.com/osse101/MineIdler_Go/internal/upgrade"
)

// Config holds the HTTP server settings
type Config struct {
	Port              int
	APIKey            string
	TrustedProxies    []string
	MaxBodyBytes      int64
	ReadHeaderTimeout time.Duration
	KeepaliveInterval time.Duration
}

// Services are the domain services the routes call
type Services struct {
	Mining    mining.Service
	Upgrade   upgrade.Service
	Inventory inventory.Service
	Hiscores  hiscores.Service
	Catalog   handler.CatalogReader
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, dbPool database.Pool, svcs Services) *Server {
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: NewRouter(cfg, dbPool, svcs),
			// No WriteTimeout: mining streams stay open; each SSE write sets its own deadline
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree
func NewRouter(cfg Config, dbPool database.Pool, svcs Services) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	miningHandlers := handler.NewMiningHandlers(svcs.Mining, cfg.KeepaliveInterval)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/hiscores", handler.HandleGetHiscores(svcs.Hiscores))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/items", handler.HandleGetItems(svcs.Catalog))
			r.Get("/locations", handler.HandleGetLocations(svcs.Catalog))
		})

		// Player routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity)

			r.Route("/mining", func(r chi.Router) {
				r.Post("/start", miningHandlers.HandleStart)
				r.Post("/stop", miningHandlers.HandleStop)
				r.Get("/status", miningHandlers.HandleStatus)
			})

			r.Route("/base", func(r chi.Router) {
				r.Get("/", handler.HandleGetBase(svcs.Upgrade))
				r.Get("/storage/cost", handler.HandleGetStorageCost(svcs.Upgrade))
				r.Post("/storage/upgrade", handler.HandleUpgradeStorage(svcs.Upgrade))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", handler.HandleGetInventory(svcs.Inventory))
				r.Get("/aggregate", handler.HandleGetAggregatedInventory(svcs.Inventory))
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the flusher of a streaming response
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops accepting requests and waits for in-flight ones, bounded by ctx.
// Open mining streams end once the mining service shuts down.
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
