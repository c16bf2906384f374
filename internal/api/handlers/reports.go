package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"scamtrace/internal/domain/services"
	"scamtrace/internal/infrastructure/cache"
	"scamtrace/pkg/logger"
)

// ReportsHandler handles community report submission
type ReportsHandler struct {
	reports *services.Reports
	cache   *cache.RedisCache
	logger  *logger.Logger
}

// NewReportsHandler creates a new ReportsHandler
func NewReportsHandler(reports *services.Reports, c *cache.RedisCache, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		reports: reports,
		cache:   c,
		logger:  log.WithComponent("reports"),
	}
}

// ReportRequest is the body for POST /api/v1/reports
type ReportRequest struct {
	Content string `json:"content"`
	Region  string `json:"region,omitempty"`
}

// Submit handles POST /api/v1/reports
func (h *ReportsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		http.Error(w, `{"error":"content is required"}`, http.StatusBadRequest)
		return
	}

	result, err := h.reports.Ingest(r.Context(), req.Content, req.Region)
	if err != nil {
		h.logger.Error().Err(err).Msg("report ingest failed")
		http.Error(w, `{"error":"report ingest failed"}`, http.StatusInternalServerError)
		return
	}

	// Indicator counts moved, drop stale cached lookups
	if h.cache != nil && !result.Duplicate {
		values := make([]string, 0,
			len(result.Report.Phones)+len(result.Report.Emails)+
				len(result.Report.URLs)+len(result.Report.Wallets))
		for _, vs := range [][]string{result.Report.Phones, result.Report.Emails, result.Report.URLs, result.Report.Wallets} {
			values = append(values, vs...)
		}
		if err := h.cache.InvalidateLookup(r.Context(), values...); err != nil {
			h.logger.Warn().Err(err).Msg("failed to invalidate lookup cache")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}
