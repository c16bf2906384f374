package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scamtrace/internal/domain/models"
	"scamtrace/internal/domain/services"
	"scamtrace/pkg/logger"
)

// AlertsHandler handles alert and subscriber endpoints
type AlertsHandler struct {
	alerts *services.Alerts
	logger *logger.Logger
}

// NewAlertsHandler creates a new AlertsHandler
func NewAlertsHandler(alerts *services.Alerts, log *logger.Logger) *AlertsHandler {
	return &AlertsHandler{
		alerts: alerts,
		logger: log.WithComponent("alerts"),
	}
}

// Generate handles POST /api/v1/alerts
func (h *AlertsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var params services.AlertParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	if params.CampaignID == uuid.Nil {
		http.Error(w, `{"error":"campaign_id is required"}`, http.StatusBadRequest)
		return
	}

	alert, err := h.alerts.Generate(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("alert generation failed")
		http.Error(w, `{"error":"alert generation failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(alert)
}

// GenerateFromCampaigns handles POST /api/v1/alerts/generate
func (h *AlertsHandler) GenerateFromCampaigns(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alerts.GenerateFromCampaigns(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("bulk alert generation failed")
		http.Error(w, `{"error":"alert generation failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"data":  alerts,
		"total": len(alerts),
	})
}

// Feed handles GET /api/v1/alerts
func (h *AlertsHandler) Feed(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	alerts, err := h.alerts.Feed(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch alert feed")
		http.Error(w, `{"error":"failed to fetch alerts"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data":  alerts,
		"total": len(alerts),
	})
}

// Subscribe handles POST /api/v1/subscribers
func (h *AlertsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var sub models.Subscriber
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := h.alerts.Subscribe(r.Context(), &sub)
	if err != nil {
		h.logger.Error().Err(err).Msg("subscriber registration failed")
		http.Error(w, `{"error":"subscriber registration failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Unsubscribe handles DELETE /api/v1/subscribers/{id}
func (h *AlertsHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid subscriber id"}`, http.StatusBadRequest)
		return
	}

	removed, err := h.alerts.Unsubscribe(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("unsubscribe failed")
		http.Error(w, `{"error":"unsubscribe failed"}`, http.StatusInternalServerError)
		return
	}
	if !removed {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "subscriber not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
