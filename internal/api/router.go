package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"scamtrace/internal/api/handlers"
	apimiddleware "scamtrace/internal/api/middleware"
	"scamtrace/internal/config"
	"scamtrace/internal/infrastructure/cache"
	"scamtrace/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting needs Redis
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Health checks
	router.Get("/health", r.handlers.Health.Check)
	router.Get("/ready", r.handlers.Health.Ready)

	// API v1 routes
	router.Route("/api/v1", func(api chi.Router) {
		// Fingerprint matching
		api.Post("/fingerprint", r.handlers.Fingerprint.Match)

		// Reverse indicator lookup
		api.Get("/lookup", r.handlers.Lookup.Get)

		// Campaign catalog
		api.Route("/campaigns", func(campaigns chi.Router) {
			campaigns.Get("/", r.handlers.Campaigns.List)
			campaigns.Get("/{slug}", r.handlers.Campaigns.Get)
			campaigns.Get("/{slug}/indicators", r.handlers.Campaigns.ListIndicators)
		})

		// Community reports
		api.Post("/reports", r.handlers.Reports.Submit)

		// Alerts
		api.Route("/alerts", func(alerts chi.Router) {
			alerts.Get("/", r.handlers.Alerts.Feed)
			alerts.Post("/", r.handlers.Alerts.Generate)
			alerts.Post("/generate", r.handlers.Alerts.GenerateFromCampaigns)
			alerts.Get("/stream", r.handlers.Streaming.HandleWebSocket)
		})

		// Alert subscribers
		api.Route("/subscribers", func(subs chi.Router) {
			subs.Post("/", r.handlers.Alerts.Subscribe)
			subs.Delete("/{id}", r.handlers.Alerts.Unsubscribe)
		})

		// Public stats
		api.Get("/stats", r.handlers.Stats.Get)
		api.Get("/streaming/stats", r.handlers.Streaming.GetStats)
	})

	return router
}
