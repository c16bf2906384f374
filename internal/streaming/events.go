package streaming

import (
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/domain/models"
)

// EventType represents the type of alert feed event
type EventType string

const (
	EventTypeAlert            EventType = "alert"
	EventTypeCampaignSurge    EventType = "campaign_surge"
	EventTypeCampaignDetected EventType = "campaign_detected"
)

// AlertEvent is a real-time alert pushed over the live feed
type AlertEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	AlertID    string               `json:"alert_id"`
	CampaignID string               `json:"campaign_id"`
	Title      string               `json:"title"`
	Body       string               `json:"body"`
	Severity   models.AlertSeverity `json:"severity"`

	Provinces []string `json:"provinces,omitempty"`
	Carriers  []string `json:"carriers,omitempty"`
	Banks     []string `json:"banks,omitempty"`
	AgeRanges []string `json:"age_ranges,omitempty"`
	SentCount int      `json:"sent_count"`
}

// NewAlertEvent wraps a generated alert for the feed
func NewAlertEvent(alert *models.Alert) *AlertEvent {
	eventType := EventTypeAlert
	if alert.Severity == models.AlertCritical {
		eventType = EventTypeCampaignSurge
	}

	return &AlertEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now(),
		AlertID:    alert.ID.String(),
		CampaignID: alert.CampaignID.String(),
		Title:      alert.Title,
		Body:       alert.Body,
		Severity:   alert.Severity,
		Provinces:  alert.Provinces,
		Carriers:   alert.Carriers,
		Banks:      alert.Banks,
		AgeRanges:  alert.AgeRanges,
		SentCount:  alert.SentCount,
	}
}

// Subscription represents a feed client's filter preferences
type Subscription struct {
	// Minimum severity to receive (empty = all)
	MinSeverity models.AlertSeverity `json:"min_severity,omitempty"`

	// Only events targeting this province or with no province filter
	Province string `json:"province,omitempty"`

	// Filter by campaign IDs (empty = all)
	CampaignIDs []string `json:"campaign_ids,omitempty"`
}

var severityOrder = map[models.AlertSeverity]int{
	models.AlertInfo:     1,
	models.AlertWarning:  2,
	models.AlertCritical: 3,
}

// Matches checks if an event passes the subscription filters. An event
// with no province targeting reaches everyone.
func (s *Subscription) Matches(event *AlertEvent) bool {
	if s.MinSeverity != "" {
		if severityOrder[event.Severity] < severityOrder[s.MinSeverity] {
			return false
		}
	}

	if s.Province != "" && len(event.Provinces) > 0 {
		found := false
		for _, p := range event.Provinces {
			if p == s.Province {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(s.CampaignIDs) > 0 {
		found := false
		for _, c := range s.CampaignIDs {
			if c == event.CampaignID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
