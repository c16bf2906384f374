package models

import (
	"time"

	"github.com/google/uuid"
)

// IndicatorType represents the type of a contact artifact
type IndicatorType string

const (
	IndicatorTypePhone        IndicatorType = "phone"
	IndicatorTypeEmail        IndicatorType = "email"
	IndicatorTypeURL          IndicatorType = "url"
	IndicatorTypeDomain       IndicatorType = "domain"
	IndicatorTypeCryptoWallet IndicatorType = "crypto_wallet"
	IndicatorTypeIP           IndicatorType = "ip"
	IndicatorTypeUnknown      IndicatorType = "unknown"
)

// RiskLevel grades an indicator by report volume and recency
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// Indicator is a single typed contact artifact known to be used by a
// campaign. An indicator value belongs to exactly one campaign at a time.
type Indicator struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	CampaignID uuid.UUID     `json:"campaign_id" db:"campaign_id"`
	Type       IndicatorType `json:"type" db:"type"`
	Value      string        `json:"value" db:"value"`

	FirstSeen   time.Time `json:"first_seen" db:"first_seen"`
	LastSeen    time.Time `json:"last_seen" db:"last_seen"`
	ReportCount int       `json:"report_count" db:"report_count"`
}

// Risk derives the risk tier from report volume and recency. Thresholds are
// monotonic in report count: raising the count never lowers the tier.
func (i *Indicator) Risk(now time.Time) RiskLevel {
	age := now.Sub(i.LastSeen)
	switch {
	case i.ReportCount > 500 && age <= 7*24*time.Hour:
		return RiskCritical
	case i.ReportCount > 100 && age <= 30*24*time.Hour:
		return RiskHigh
	case i.ReportCount > 20:
		return RiskMedium
	default:
		return RiskLow
	}
}

// String returns the string representation of IndicatorType
func (t IndicatorType) String() string {
	return string(t)
}

// ParseIndicatorType parses a string into IndicatorType
func ParseIndicatorType(s string) IndicatorType {
	switch s {
	case "phone":
		return IndicatorTypePhone
	case "email":
		return IndicatorTypeEmail
	case "url":
		return IndicatorTypeURL
	case "domain":
		return IndicatorTypeDomain
	case "crypto_wallet", "wallet":
		return IndicatorTypeCryptoWallet
	case "ip":
		return IndicatorTypeIP
	default:
		return IndicatorTypeUnknown
	}
}

// RiskWeight returns a numeric weight for sorting by risk
func (r RiskLevel) RiskWeight() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}
