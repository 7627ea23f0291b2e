package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/stockledger/internal/adapter/http/handler"
	"github.com/iho/stockledger/internal/adapter/http/middleware"
	"github.com/iho/stockledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	DashboardHandler   *handler.DashboardHandler
	SafetyStockHandler *handler.SafetyStockHandler
	PageHandler        *handler.PageHandler
	HealthHandler      *handler.HealthHandler
	// IdempotencyStore is optional; keyed writes are not deduplicated without it.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	// RateLimiter is optional and applies to write endpoints only.
	RateLimiter *middleware.RateLimiter
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
	// MetricsHandler defaults to promhttp.Handler().
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	writes := []func(http.Handler) http.Handler{}
	if cfg.RateLimiter != nil {
		writes = append(writes, cfg.RateLimiter.Limit)
	}

	// Health and metrics
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// HTML dashboard
	r.Get("/", cfg.PageHandler.Dashboard)
	r.With(writes...).Post("/items/{code}/safety-stock", cfg.PageHandler.UpdateSafetyStock)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", cfg.DashboardHandler.ListItems)
		r.Get("/items/{code}", cfg.DashboardHandler.GetItem)
		r.Get("/items/{code}/transactions", cfg.DashboardHandler.ListTransactions)
		r.Get("/shortages", cfg.DashboardHandler.ListShortages)

		r.Group(func(r chi.Router) {
			r.Use(writes...)
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
			}

			r.Put("/items/{code}/safety-stock", cfg.SafetyStockHandler.Update)
			r.Post("/cache/reload", cfg.DashboardHandler.Reload)
		})
	})

	return r
}
