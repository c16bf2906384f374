package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertSeverity represents how urgent a generated alert is
type AlertSeverity string

const (
	AlertInfo     AlertSeverity = "info"
	AlertWarning  AlertSeverity = "warning"
	AlertCritical AlertSeverity = "critical"
)

// Alert is a generated notice tied to a campaign. Each filter dimension is
// a list; an empty list leaves that dimension unconstrained.
type Alert struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	CampaignID uuid.UUID     `json:"campaign_id" db:"campaign_id"`
	Title      string        `json:"title" db:"title"`
	Body       string        `json:"body" db:"body"`
	Severity   AlertSeverity `json:"severity" db:"severity"`

	Provinces []string `json:"provinces,omitempty" db:"provinces"`
	Carriers  []string `json:"carriers,omitempty" db:"carriers"`
	Banks     []string `json:"banks,omitempty" db:"banks"`
	AgeRanges []string `json:"age_ranges,omitempty" db:"age_ranges"`

	// Number of subscribers that matched at generation time. A snapshot,
	// not a live count.
	SentCount int `json:"sent_count" db:"sent_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Subscriber is a notification target keyed by demographic and
// institutional filters.
type Subscriber struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Province string    `json:"province,omitempty" db:"province"`
	Carrier  string    `json:"carrier,omitempty" db:"carrier"`
	Bank     string    `json:"bank,omitempty" db:"bank"`
	AgeRange string    `json:"age_range,omitempty" db:"age_range"`

	Cadence      string     `json:"cadence,omitempty" db:"cadence"`
	Active       bool       `json:"active" db:"active"`
	LastNotified *time.Time `json:"last_notified,omitempty" db:"last_notified"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// Matches reports whether the alert targets the subscriber. Filters are
// conjunctive across dimensions; an empty alert-side list is a wildcard.
// A subscriber field left unset passes any filter on that dimension.
func (a *Alert) Matches(s *Subscriber) bool {
	if !dimensionMatches(a.Provinces, s.Province) {
		return false
	}
	if !dimensionMatches(a.Carriers, s.Carrier) {
		return false
	}
	if !dimensionMatches(a.Banks, s.Bank) {
		return false
	}
	if !dimensionMatches(a.AgeRanges, s.AgeRange) {
		return false
	}
	return true
}

func dimensionMatches(filter []string, value string) bool {
	if len(filter) == 0 || value == "" {
		return true
	}
	for _, f := range filter {
		if f == value {
			return true
		}
	}
	return false
}

// ParseAlertSeverity parses a string into AlertSeverity
func ParseAlertSeverity(s string) AlertSeverity {
	switch s {
	case "critical":
		return AlertCritical
	case "warning":
		return AlertWarning
	default:
		return AlertInfo
	}
}
