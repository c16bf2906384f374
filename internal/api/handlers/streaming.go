package handlers

import (
	"encoding/json"
	"net/http"

	"scamtrace/internal/streaming"
	"scamtrace/pkg/logger"
)

// StreamingHandler handles the live alert feed endpoints
type StreamingHandler struct {
	hub    *streaming.WebSocketHub
	bus    *streaming.EventBus
	logger *logger.Logger
}

// NewStreamingHandler creates a new StreamingHandler
func NewStreamingHandler(hub *streaming.WebSocketHub, bus *streaming.EventBus, log *logger.Logger) *StreamingHandler {
	return &StreamingHandler{
		hub:    hub,
		bus:    bus,
		logger: log.WithComponent("streaming"),
	}
}

// HandleWebSocket handles GET /api/v1/alerts/stream
func (h *StreamingHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		http.Error(w, `{"error":"streaming not available"}`, http.StatusServiceUnavailable)
		return
	}
	h.hub.ServeWebSocket(w, r)
}

// GetStats handles GET /api/v1/streaming/stats
func (h *StreamingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]any{
		"websocket_clients": 0,
		"bus_subscribers":   0,
	}
	if h.hub != nil {
		stats["websocket_clients"] = h.hub.ClientCount()
	}
	if h.bus != nil {
		stats["bus_subscribers"] = h.bus.SubscriberCount()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
