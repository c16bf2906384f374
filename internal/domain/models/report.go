package models

import (
	"time"

	"github.com/google/uuid"
)

// TriageStatus tracks how far a community report has been processed
type TriageStatus string

const (
	TriagePending     TriageStatus = "pending"
	TriageClassified  TriageStatus = "classified"
	TriageNewCampaign TriageStatus = "new_campaign"
)

// CommunityReport is a raw submission, linked (or not yet linked) to a
// campaign, with the indicators pulled out of its content.
type CommunityReport struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CampaignID *uuid.UUID `json:"campaign_id,omitempty" db:"campaign_id"`

	Content string `json:"content" db:"content"`
	Region  string `json:"region,omitempty" db:"region"`

	// Extracted artifacts
	Phones  []string `json:"phones,omitempty" db:"phones"`
	Emails  []string `json:"emails,omitempty" db:"emails"`
	URLs    []string `json:"urls,omitempty" db:"urls"`
	Wallets []string `json:"wallets,omitempty" db:"wallets"`

	// Content sketch for near-duplicate suppression
	Sketch uint32 `json:"-" db:"sketch"`

	Status      TriageStatus `json:"status" db:"status"`
	SubmittedAt time.Time    `json:"submitted_at" db:"submitted_at"`
}

// Excerpt returns the report content truncated for display
func (r *CommunityReport) Excerpt(maxLen int) string {
	if maxLen <= 0 || len(r.Content) <= maxLen {
		return r.Content
	}
	return r.Content[:maxLen] + "..."
}
