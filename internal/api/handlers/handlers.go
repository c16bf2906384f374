package handlers

import (
	"scamtrace/internal/domain/services"
	"scamtrace/internal/infrastructure/cache"
	"scamtrace/internal/infrastructure/database"
	"scamtrace/internal/streaming"
	"scamtrace/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health      *HealthHandler
	Stats       *StatsHandler
	Campaigns   *CampaignsHandler
	Fingerprint *FingerprintHandler
	Lookup      *LookupHandler
	Reports     *ReportsHandler
	Alerts      *AlertsHandler
	Streaming   *StreamingHandler
}

// Dependencies holds dependencies for handlers. DB and Cache may be nil
// when running in degraded in-memory mode.
type Dependencies struct {
	Store   services.Store
	Matcher *services.Matcher
	Lookup  *services.Lookup
	Alerts  *services.Alerts
	Reports *services.Reports
	DB      *database.PostgresDB
	Cache   *cache.RedisCache
	Hub     *streaming.WebSocketHub
	Bus     *streaming.EventBus
	Logger  *logger.Logger
	Version string
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(deps.DB, deps.Cache, deps.Version, deps.Logger),
		Stats:       NewStatsHandler(deps.Store, deps.Cache, deps.Logger),
		Campaigns:   NewCampaignsHandler(deps.Store, deps.Logger),
		Fingerprint: NewFingerprintHandler(deps.Matcher, deps.Logger),
		Lookup:      NewLookupHandler(deps.Lookup, deps.Cache, deps.Logger),
		Reports:     NewReportsHandler(deps.Reports, deps.Cache, deps.Logger),
		Alerts:      NewAlertsHandler(deps.Alerts, deps.Logger),
		Streaming:   NewStreamingHandler(deps.Hub, deps.Bus, deps.Logger),
	}
}
