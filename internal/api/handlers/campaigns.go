package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scamtrace/internal/domain/models"
	"scamtrace/internal/domain/services"
	"scamtrace/pkg/logger"
)

// CampaignsHandler handles campaign endpoints
type CampaignsHandler struct {
	store  services.Store
	logger *logger.Logger
}

// NewCampaignsHandler creates a new CampaignsHandler
func NewCampaignsHandler(store services.Store, log *logger.Logger) *CampaignsHandler {
	return &CampaignsHandler{
		store:  store,
		logger: log.WithComponent("campaigns"),
	}
}

// List handles GET /api/v1/campaigns
func (h *CampaignsHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.store.GetAllCampaigns(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list campaigns")
		http.Error(w, `{"error":"failed to list campaigns"}`, http.StatusInternalServerError)
		return
	}

	summaries := make([]models.CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		summaries = append(summaries, c.Summary())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data":  summaries,
		"total": len(summaries),
	})
}

// Get handles GET /api/v1/campaigns/{slug}
func (h *CampaignsHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	campaign, err := h.store.GetCampaignBySlug(r.Context(), slug)
	if err != nil {
		h.logger.Error().Err(err).Str("slug", slug).Msg("failed to get campaign")
		http.Error(w, `{"error":"failed to get campaign"}`, http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "campaign not found"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

// ListIndicators handles GET /api/v1/campaigns/{slug}/indicators
func (h *CampaignsHandler) ListIndicators(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	campaign, err := h.store.GetCampaignBySlug(r.Context(), slug)
	if err != nil {
		h.logger.Error().Err(err).Str("slug", slug).Msg("failed to get campaign")
		http.Error(w, `{"error":"failed to get campaign"}`, http.StatusInternalServerError)
		return
	}
	if campaign == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "campaign not found"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data":  campaign.Indicators,
		"total": len(campaign.Indicators),
	})
}
