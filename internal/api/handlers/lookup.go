package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"scamtrace/internal/domain/models"
	"scamtrace/internal/domain/services"
	"scamtrace/internal/infrastructure/cache"
	"scamtrace/pkg/logger"
)

const lookupCacheTTL = 2 * time.Minute

// LookupHandler handles reverse indicator lookup endpoints
type LookupHandler struct {
	lookup *services.Lookup
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewLookupHandler creates a new LookupHandler
func NewLookupHandler(lookup *services.Lookup, c *cache.RedisCache, log *logger.Logger) *LookupHandler {
	return &LookupHandler{
		lookup: lookup,
		cache:  c,
		logger: log.WithComponent("lookup"),
	}
}

// Get handles GET /api/v1/lookup?q=<value>&type=<hint>
func (h *LookupHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, `{"error":"q parameter is required"}`, http.StatusBadRequest)
		return
	}
	typeHint := r.URL.Query().Get("type")

	// Only untyped queries are cached; hinted ones are rare and cheap
	cacheable := h.cache != nil && typeHint == ""
	if cacheable {
		var cached models.LookupResult
		if err := h.cache.GetCachedLookup(r.Context(), query, &cached); err == nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(&cached)
			return
		}
	}

	result, err := h.lookup.Lookup(r.Context(), query, typeHint)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("lookup failed")
		http.Error(w, `{"error":"lookup failed"}`, http.StatusInternalServerError)
		return
	}

	if cacheable {
		_ = h.cache.CacheLookup(r.Context(), query, result, lookupCacheTTL)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
