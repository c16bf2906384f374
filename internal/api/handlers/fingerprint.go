package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"scamtrace/internal/domain/services"
	"scamtrace/pkg/logger"
)

// FingerprintHandler handles message fingerprinting endpoints
type FingerprintHandler struct {
	matcher *services.Matcher
	logger  *logger.Logger
}

// NewFingerprintHandler creates a new FingerprintHandler
func NewFingerprintHandler(matcher *services.Matcher, log *logger.Logger) *FingerprintHandler {
	return &FingerprintHandler{
		matcher: matcher,
		logger:  log.WithComponent("fingerprint"),
	}
}

// FingerprintRequest is the body for POST /api/v1/fingerprint
type FingerprintRequest struct {
	Content string `json:"content"`
	Kind    string `json:"kind,omitempty"`
}

// Match handles POST /api/v1/fingerprint
func (h *FingerprintHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req FingerprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		http.Error(w, `{"error":"content is required"}`, http.StatusBadRequest)
		return
	}
	if req.Kind == "" {
		req.Kind = services.ContentKindText
	}

	result, err := h.matcher.Fingerprint(r.Context(), req.Content, req.Kind)
	if err != nil {
		h.logger.Error().Err(err).Msg("fingerprint failed")
		http.Error(w, `{"error":"fingerprint failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
