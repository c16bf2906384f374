package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scamtrace/internal/api"
	"scamtrace/internal/api/handlers"
	"scamtrace/internal/config"
	"scamtrace/internal/domain/models"
	"scamtrace/internal/domain/services"
	"scamtrace/internal/infrastructure/cache"
	"scamtrace/internal/infrastructure/database"
	"scamtrace/internal/infrastructure/database/repository"
	"scamtrace/internal/infrastructure/memory"
	"scamtrace/internal/streaming"
	"scamtrace/pkg/logger"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting scamtrace")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Infrastructure is best-effort: without Postgres the service runs on
	// the in-memory store, without Redis it runs uncached and unthrottled.
	db, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	store, err := initStore(ctx, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}

	// Streaming infrastructure
	var natsPublisher *streaming.NATSPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err = streaming.NewNATSPublisher(ctx, cfg.NATS, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to NATS, continuing with local feed only")
			natsPublisher = nil
		}
	}

	eventBus := streaming.NewEventBus(natsPublisher, log)
	wsHub := streaming.NewWebSocketHub(log)
	go wsHub.Run(ctx)

	publisher := streaming.NewEventBusPublisher(eventBus, wsHub)

	// Domain services
	matcher := services.NewMatcher(store, cfg.Matching, log)
	lookup := services.NewLookup(store, log)
	alerts := services.NewAlerts(store, cfg.Alerts, publisher, log)
	reports := services.NewReports(store, matcher, alerts, cfg.Matching, log)

	deps := handlers.Dependencies{
		Store:   store,
		Matcher: matcher,
		Lookup:  lookup,
		Alerts:  alerts,
		Reports: reports,
		DB:      db,
		Cache:   redisCache,
		Hub:     wsHub,
		Bus:     eventBus,
		Logger:  log,
		Version: cfg.App.Version,
	}
	h := handlers.NewHandlers(deps)

	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	eventBus.Close()

	log.Info().Msg("shutdown complete")
}

// initInfrastructure connects to Postgres and Redis, tolerating both being
// unreachable for local development.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to PostgreSQL, falling back to in-memory store")
		db = nil
	}

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		redisCache = nil
	}

	return db, redisCache
}

// initStore builds the campaign store, migrating and seeding Postgres when
// available, or a seeded in-memory store otherwise.
func initStore(ctx context.Context, db *database.PostgresDB, log *logger.Logger) (services.Store, error) {
	if db == nil {
		s := memory.New()
		s.Seed(models.DefaultCampaigns())
		log.Info().Msg("in-memory store seeded with default campaigns")
		return s, nil
	}

	if err := db.Migrate(ctx); err != nil {
		return nil, err
	}

	repos := repository.New(db.Pool())

	existing, err := repos.GetAllCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		defaults := models.DefaultCampaigns()
		for i := range defaults {
			if err := repos.UpsertCampaign(ctx, &defaults[i]); err != nil {
				return nil, err
			}
		}
		log.Info().Int("campaigns", len(defaults)).Msg("database seeded with default campaigns")
	}

	return repos, nil
}
