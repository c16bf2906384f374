package models

import "github.com/google/uuid"

// CampaignSummary is a trimmed campaign view used in result payloads
type CampaignSummary struct {
	ID          uuid.UUID      `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Category    ScamCategory   `json:"category"`
	Status      CampaignStatus `json:"status"`
	ReportCount int            `json:"report_count"`
}

// Summary converts a campaign to its summary view
func (c *Campaign) Summary() CampaignSummary {
	return CampaignSummary{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Category:    c.Category,
		Status:      c.Status,
		ReportCount: c.ReportCount,
	}
}

// FingerprintResult is the outcome of matching content against known
// campaigns. A miss is a valid result, not an error.
type FingerprintResult struct {
	Matched    bool    `json:"matched"`
	Confidence float64 `json:"confidence"`
	Similarity float64 `json:"similarity,omitempty"`

	Campaign *CampaignSummary `json:"campaign,omitempty"`
	Variant  *Variant         `json:"variant,omitempty"`

	// Indicators on the matched campaign other than the one that hit
	RelatedIndicators []Indicator `json:"related_indicators"`

	// Same-category campaigns ranked by report volume
	SimilarCampaigns []CampaignSummary `json:"similar_campaigns"`

	// Which strategy produced the match: "indicator", "extracted", "fuzzy"
	MatchedBy string `json:"matched_by,omitempty"`
}

// RelatedIndicator tags an indicator with its relationship to the query
type RelatedIndicator struct {
	Indicator
	Relation string `json:"relation"`
}

// ReportExcerpt is a truncated community report for lookup payloads
type ReportExcerpt struct {
	ID          uuid.UUID    `json:"id"`
	Excerpt     string       `json:"excerpt"`
	Region      string       `json:"region,omitempty"`
	SubmittedAt string       `json:"submitted_at"`
	Status      TriageStatus `json:"status"`
}

// LookupResult is everything known about a single indicator value.
// On a miss, Found is false and every list is empty but non-nil.
type LookupResult struct {
	Found bool `json:"found"`

	Query        string        `json:"query"`
	InferredType IndicatorType `json:"inferred_type"`
	Normalized   string        `json:"normalized"`

	Indicator *Indicator `json:"indicator,omitempty"`
	Risk      RiskLevel  `json:"risk,omitempty"`
	Status    string     `json:"status,omitempty"` // "active" or "inactive"

	Campaigns         []CampaignSummary  `json:"campaigns"`
	RelatedIndicators []RelatedIndicator `json:"related_indicators"`
	CommunityReports  []ReportExcerpt    `json:"community_reports"`
}

// EmptyLookupResult builds the canonical miss response for a query
func EmptyLookupResult(query string, inferred IndicatorType, normalized string) *LookupResult {
	return &LookupResult{
		Found:             false,
		Query:             query,
		InferredType:      inferred,
		Normalized:        normalized,
		Campaigns:         []CampaignSummary{},
		RelatedIndicators: []RelatedIndicator{},
		CommunityReports:  []ReportExcerpt{},
	}
}
