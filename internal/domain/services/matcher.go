package services

import (
	"context"
	"fmt"
	"sort"

	"scamtrace/internal/config"
	"scamtrace/internal/domain/models"
	"scamtrace/internal/domain/services/textproc"
	"scamtrace/pkg/logger"
)

// ContentKindText marks free-text content for fingerprinting; any other
// kind is treated as a single indicator value of that type.
const ContentKindText = "text"

// Matcher fingerprints incoming content against known campaigns. It only
// reads the store and is safe to run in parallel across queries.
type Matcher struct {
	store  Store
	cfg    config.MatchingConfig
	logger *logger.Logger
}

// NewMatcher creates a fingerprint matcher
func NewMatcher(store Store, cfg config.MatchingConfig, log *logger.Logger) *Matcher {
	return &Matcher{
		store:  store,
		cfg:    cfg,
		logger: log.WithComponent("matcher"),
	}
}

// Fingerprint matches content against known campaigns. Strategies are
// tried in strict order, short-circuiting on first success: exact indicator
// lookup, extracted-indicator lookup, then fuzzy template similarity.
// A miss is a valid result, never an error; only store failures propagate.
func (m *Matcher) Fingerprint(ctx context.Context, content, kind string) (*models.FingerprintResult, error) {
	if content == "" {
		return emptyFingerprint(), nil
	}

	// Strategy 1: the content is itself a single indicator value
	if kind != "" && kind != ContentKindText {
		typ := models.ParseIndicatorType(kind)
		normalized := textproc.NormalizeIndicator(typ, content)
		res, err := m.exactLookup(ctx, normalized, content, "indicator")
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}

	// Strategy 2: extract indicators from the text and retry exact lookup
	extracted := textproc.ExtractIndicators(content)
	for _, tv := range extracted.All() {
		res, err := m.exactLookup(ctx, tv.Value, content, "extracted")
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}

	// Strategy 3: fuzzy-match normalized text against every variant template
	return m.fuzzyMatch(ctx, content)
}

// exactLookup attempts an exact indicator hit and, on success, assembles
// the enriched result.
func (m *Matcher) exactLookup(ctx context.Context, value, content, matchedBy string) (*models.FingerprintResult, error) {
	if value == "" {
		return nil, nil
	}
	campaign, indicator, err := m.store.FindIndicatorByValue(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("indicator lookup failed: %w", err)
	}
	if campaign == nil || indicator == nil {
		return nil, nil
	}

	m.logger.Debug().
		Str("campaign", campaign.Slug).
		Str("indicator", indicator.Value).
		Str("matched_by", matchedBy).
		Msg("exact indicator hit")

	summary := campaign.Summary()
	result := &models.FingerprintResult{
		Matched:           true,
		Confidence:        m.cfg.ExactConfidence,
		Campaign:          &summary,
		Variant:           m.bestVariant(campaign, content),
		RelatedIndicators: otherIndicators(campaign, indicator),
		MatchedBy:         matchedBy,
	}

	similar, err := m.similarCampaigns(ctx, campaign)
	if err != nil {
		return nil, err
	}
	result.SimilarCampaigns = similar
	return result, nil
}

// bestVariant picks the campaign variant whose normalized template is most
// similar to the input, so indicator hits still surface the right wording.
func (m *Matcher) bestVariant(campaign *models.Campaign, content string) *models.Variant {
	if len(campaign.Variants) == 0 {
		return nil
	}
	grams := textproc.NGrams(textproc.Normalize(content), m.cfg.NGramSize)

	best := 0
	bestSim := -1.0
	for i := range campaign.Variants {
		sim := textproc.Jaccard(grams, textproc.NGrams(textproc.Normalize(campaign.Variants[i].Template), m.cfg.NGramSize))
		if sim > bestSim {
			bestSim = sim
			best = i
		}
	}
	v := campaign.Variants[best]
	return &v
}

// fuzzyMatch scans every variant template across every campaign tracking
// the single best (campaign, variant, similarity) triple. Campaigns are
// sorted by slug so a tie keeps a deterministic first-encountered winner.
func (m *Matcher) fuzzyMatch(ctx context.Context, content string) (*models.FingerprintResult, error) {
	campaigns, err := m.store.GetAllCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("campaign scan failed: %w", err)
	}
	sort.Slice(campaigns, func(i, j int) bool { return campaigns[i].Slug < campaigns[j].Slug })

	grams := textproc.NGrams(textproc.Normalize(content), m.cfg.NGramSize)

	var (
		bestCampaign *models.Campaign
		bestVariant  *models.Variant
		bestSim      float64
	)
	for _, c := range campaigns {
		for i := range c.Variants {
			sim := textproc.Jaccard(grams, textproc.NGrams(textproc.Normalize(c.Variants[i].Template), m.cfg.NGramSize))
			if sim > bestSim {
				bestSim = sim
				bestCampaign = c
				v := c.Variants[i]
				bestVariant = &v
			}
		}
	}

	if bestCampaign == nil || bestSim < m.cfg.FuzzyFloor {
		return emptyFingerprint(), nil
	}

	// Two-tier confidence band: near-verbatim overlap is trusted far more
	// than borderline matches above the floor.
	confidence := m.cfg.WeakConfidence
	if bestSim >= m.cfg.StrongSimilarity {
		confidence = m.cfg.StrongConfidence
	}

	m.logger.Debug().
		Str("campaign", bestCampaign.Slug).
		Float64("similarity", bestSim).
		Float64("confidence", confidence).
		Msg("fuzzy template hit")

	summary := bestCampaign.Summary()
	result := &models.FingerprintResult{
		Matched:           true,
		Confidence:        confidence,
		Similarity:        bestSim,
		Campaign:          &summary,
		Variant:           bestVariant,
		RelatedIndicators: append([]models.Indicator{}, bestCampaign.Indicators...),
		MatchedBy:         "fuzzy",
	}

	similar, err := m.similarCampaigns(ctx, bestCampaign)
	if err != nil {
		return nil, err
	}
	result.SimilarCampaigns = similar
	return result, nil
}

// similarCampaigns returns up to SimilarCampaignMax same-category campaigns
// ranked by report volume, excluding the matched one.
func (m *Matcher) similarCampaigns(ctx context.Context, matched *models.Campaign) ([]models.CampaignSummary, error) {
	campaigns, err := m.store.GetAllCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("similar campaign scan failed: %w", err)
	}

	var same []*models.Campaign
	for _, c := range campaigns {
		if c.ID != matched.ID && c.Category == matched.Category {
			same = append(same, c)
		}
	}
	sort.Slice(same, func(i, j int) bool {
		if same[i].ReportCount != same[j].ReportCount {
			return same[i].ReportCount > same[j].ReportCount
		}
		return same[i].Slug < same[j].Slug
	})

	limit := m.cfg.SimilarCampaignMax
	if len(same) < limit {
		limit = len(same)
	}
	out := make([]models.CampaignSummary, 0, limit)
	for _, c := range same[:limit] {
		out = append(out, c.Summary())
	}
	return out, nil
}

func otherIndicators(campaign *models.Campaign, hit *models.Indicator) []models.Indicator {
	out := make([]models.Indicator, 0, len(campaign.Indicators))
	for _, ind := range campaign.Indicators {
		if ind.ID != hit.ID {
			out = append(out, ind)
		}
	}
	return out
}

func emptyFingerprint() *models.FingerprintResult {
	return &models.FingerprintResult{
		Matched:           false,
		Confidence:        0,
		RelatedIndicators: []models.Indicator{},
		SimilarCampaigns:  []models.CampaignSummary{},
	}
}
