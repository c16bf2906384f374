package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"scamtrace/internal/domain/models"
	"scamtrace/internal/domain/services/textproc"
	"scamtrace/pkg/logger"
)

const (
	maxAssociatedCampaigns = 5
	maxReportExcerpts      = 10
	excerptLength          = 100
)

// Lookup answers "what do we know about this indicator" queries. A value
// never seen before is a found=false result, not an error.
type Lookup struct {
	store  Store
	logger *logger.Logger
}

// NewLookup creates a reverse-lookup service
func NewLookup(store Store, log *logger.Logger) *Lookup {
	return &Lookup{
		store:  store,
		logger: log.WithComponent("lookup"),
	}
}

// Lookup resolves a bare indicator value. typeHint overrides shape-based
// inference when the caller already knows what it has. Malformed queries
// resolve to type unknown and are searched anyway.
func (l *Lookup) Lookup(ctx context.Context, query, typeHint string) (*models.LookupResult, error) {
	query = strings.TrimSpace(query)

	var typ models.IndicatorType
	if typeHint != "" {
		typ = models.ParseIndicatorType(typeHint)
	} else {
		typ = textproc.InferIndicatorType(query)
	}
	normalized := textproc.NormalizeIndicator(typ, query)

	if normalized == "" {
		return models.EmptyLookupResult(query, typ, normalized), nil
	}

	campaign, indicator, err := l.search(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if campaign == nil || indicator == nil {
		return models.EmptyLookupResult(query, typ, normalized), nil
	}

	l.logger.Debug().
		Str("query", query).
		Str("type", typ.String()).
		Str("campaign", campaign.Slug).
		Msg("reverse lookup hit")

	return l.assemble(ctx, query, typ, normalized, campaign, indicator)
}

// search tries an exact normalized match first, then scans stored values
// for substring containment of the query. Containment is intentional: it
// supports partial-number and partial-domain queries.
func (l *Lookup) search(ctx context.Context, normalized string) (*models.Campaign, *models.Indicator, error) {
	campaign, indicator, err := l.store.FindIndicatorByValue(ctx, normalized)
	if err != nil {
		return nil, nil, fmt.Errorf("exact indicator search failed: %w", err)
	}
	if campaign != nil && indicator != nil {
		return campaign, indicator, nil
	}

	campaigns, err := l.store.GetAllCampaigns(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("indicator scan failed: %w", err)
	}
	sort.Slice(campaigns, func(i, j int) bool { return campaigns[i].Slug < campaigns[j].Slug })

	for _, c := range campaigns {
		for i := range c.Indicators {
			if strings.Contains(c.Indicators[i].Value, normalized) {
				return c, &c.Indicators[i], nil
			}
		}
	}
	return nil, nil, nil
}

// assemble builds the full lookup payload: campaign membership, related
// indicators, community report excerpts, and the derived risk tier.
func (l *Lookup) assemble(ctx context.Context, query string, typ models.IndicatorType, normalized string, campaign *models.Campaign, indicator *models.Indicator) (*models.LookupResult, error) {
	result := &models.LookupResult{
		Found:             true,
		Query:             query,
		InferredType:      typ,
		Normalized:        normalized,
		Indicator:         indicator,
		Risk:              indicator.Risk(time.Now()),
		Campaigns:         []models.CampaignSummary{campaign.Summary()},
		RelatedIndicators: []models.RelatedIndicator{},
		CommunityReports:  []models.ReportExcerpt{},
	}

	result.Status = "inactive"
	if campaign.IsActive() {
		result.Status = "active"
	}

	// Associated campaigns: same category, ranked by report volume
	campaigns, err := l.store.GetAllCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("associated campaign scan failed: %w", err)
	}
	var same []*models.Campaign
	for _, c := range campaigns {
		if c.ID != campaign.ID && c.Category == campaign.Category {
			same = append(same, c)
		}
	}
	sort.Slice(same, func(i, j int) bool { return same[i].ReportCount > same[j].ReportCount })
	for i, c := range same {
		if i >= maxAssociatedCampaigns {
			break
		}
		result.Campaigns = append(result.Campaigns, c.Summary())
	}

	// Every other indicator on the owning campaign
	for _, ind := range campaign.Indicators {
		if ind.ID == indicator.ID {
			continue
		}
		result.RelatedIndicators = append(result.RelatedIndicators, models.RelatedIndicator{
			Indicator: ind,
			Relation:  "same_campaign",
		})
	}

	// Most recent community reports, truncated for display
	reports, err := l.store.GetReportsByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("report fetch failed: %w", err)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].SubmittedAt.After(reports[j].SubmittedAt) })
	for i, r := range reports {
		if i >= maxReportExcerpts {
			break
		}
		result.CommunityReports = append(result.CommunityReports, models.ReportExcerpt{
			ID:          r.ID,
			Excerpt:     r.Excerpt(excerptLength),
			Region:      r.Region,
			SubmittedAt: r.SubmittedAt.Format(time.RFC3339),
			Status:      r.Status,
		})
	}

	return result, nil
}
