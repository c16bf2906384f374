package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"scamtrace/internal/domain/services"
	"scamtrace/internal/infrastructure/cache"
	"scamtrace/pkg/logger"
)

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	store  services.Store
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(store services.Store, c *cache.RedisCache, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		store:  store,
		cache:  c,
		logger: log.WithComponent("stats"),
	}
}

// StatsResponse is the public stats document
type StatsResponse struct {
	TotalCampaigns   int            `json:"total_campaigns"`
	ActiveCampaigns  int            `json:"active_campaigns"`
	TotalIndicators  int            `json:"total_indicators"`
	IndicatorsByType map[string]int `json:"indicators_by_type"`
	TotalReports     int            `json:"total_reports"`
	TotalVariants    int            `json:"total_variants"`
	LastUpdate       time.Time      `json:"last_update"`
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var stats StatsResponse

	if h.cache != nil {
		if err := h.cache.GetJSON(r.Context(), cache.KeyStats, &stats); err == nil {
			writeStats(w, stats)
			return
		}
	}

	stats, err := h.computeStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		http.Error(w, `{"error":"failed to compute stats"}`, http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(r.Context(), cache.KeyStats, stats, 5*time.Minute)
	}

	writeStats(w, stats)
}

func (h *StatsHandler) computeStats(ctx context.Context) (StatsResponse, error) {
	stats := StatsResponse{
		IndicatorsByType: make(map[string]int),
		LastUpdate:       time.Now().UTC(),
	}

	campaigns, err := h.store.GetAllCampaigns(ctx)
	if err != nil {
		return stats, err
	}

	for _, c := range campaigns {
		stats.TotalCampaigns++
		if c.IsActive() {
			stats.ActiveCampaigns++
		}
		stats.TotalReports += c.ReportCount
		stats.TotalVariants += len(c.Variants)
		for _, ind := range c.Indicators {
			stats.TotalIndicators++
			stats.IndicatorsByType[string(ind.Type)]++
		}
	}

	return stats, nil
}

func writeStats(w http.ResponseWriter, stats StatsResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	json.NewEncoder(w).Encode(stats)
}
