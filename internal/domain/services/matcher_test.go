package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/config"
	"scamtrace/internal/domain/models"
	"scamtrace/internal/infrastructure/memory"
	"scamtrace/pkg/logger"
)

func seededMatcher(t *testing.T) (*Matcher, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.Seed(models.DefaultCampaigns())
	return NewMatcher(store, config.DefaultMatching(), logger.NewDefault()), store
}

func TestFingerprintExtractedIndicator(t *testing.T) {
	m, _ := seededMatcher(t)

	content := "URGENT notice from the CRA. Our records show you owe back taxes. " +
		"Pay immediately via gift card or a warrant will be issued for your arrest. " +
		"Call 1-888-555-0147 now."
	res, err := m.Fingerprint(context.Background(), content, ContentKindText)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	if !res.Matched {
		t.Fatal("expected a match for seeded CRA wording")
	}
	if res.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", res.Confidence)
	}
	if res.MatchedBy != "extracted" {
		t.Errorf("matched_by = %q, want extracted", res.MatchedBy)
	}
	if res.Campaign == nil || res.Campaign.Slug != "cra-gift-card" {
		t.Fatalf("campaign = %+v, want cra-gift-card", res.Campaign)
	}
	if res.Variant == nil {
		t.Error("indicator hits should still surface the closest variant")
	}
	if res.RelatedIndicators == nil {
		t.Error("related indicators must be non-nil")
	}
	for _, ind := range res.RelatedIndicators {
		if ind.Value == "8885550147" {
			t.Error("the hit indicator must be excluded from related indicators")
		}
	}
}

func TestFingerprintIndicatorKind(t *testing.T) {
	m, _ := seededMatcher(t)

	res, err := m.Fingerprint(context.Background(), "+1 (888) 555-0147", "phone")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if !res.Matched || res.MatchedBy != "indicator" {
		t.Fatalf("matched=%v matched_by=%q, want indicator hit", res.Matched, res.MatchedBy)
	}
	if res.Campaign.Slug != "cra-gift-card" {
		t.Errorf("campaign = %q, want cra-gift-card", res.Campaign.Slug)
	}
}

func TestFingerprintFuzzyStrong(t *testing.T) {
	m, _ := seededMatcher(t)

	// Same wording as the seeded variant but pointing at a new domain, so
	// no indicator matches and only template similarity can attribute it.
	content := "INTERAC e-Transfer: You have received a refund of $208.50 from " +
		"your mobile provider. Deposit now: http://interac-refund-ca.xyz/claim"
	res, err := m.Fingerprint(context.Background(), content, ContentKindText)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	if !res.Matched {
		t.Fatal("expected a fuzzy match for near-verbatim template")
	}
	if res.MatchedBy != "fuzzy" {
		t.Errorf("matched_by = %q, want fuzzy", res.MatchedBy)
	}
	if res.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", res.Confidence)
	}
	if res.Similarity < 0.9 {
		t.Errorf("similarity = %v, want >= 0.9", res.Similarity)
	}
	if res.Campaign.Slug != "interac-refund" {
		t.Errorf("campaign = %q, want interac-refund", res.Campaign.Slug)
	}
}

func TestFingerprintFuzzyWeak(t *testing.T) {
	store := memory.New()
	id := uuid.New()
	store.Seed([]models.Campaign{{
		ID:       id,
		Slug:     "test-scheme",
		Name:     "Test Scheme",
		Category: models.CategoryOther,
		Status:   models.CampaignStatusActive,
		LastSeen: time.Now(),
		Variants: []models.Variant{{
			ID:         uuid.New(),
			CampaignID: id,
			Template:   "alpha bravo charlie delta echo foxtrot golf hotel india juliett",
		}},
	}})
	m := NewMatcher(store, config.DefaultMatching(), logger.NewDefault())

	// Eight shared bigrams over a union of ten: similarity 0.8, above
	// the floor but below the strong band.
	content := "alpha bravo charlie delta echo foxtrot golf hotel india kilo"
	res, err := m.Fingerprint(context.Background(), content, ContentKindText)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	if !res.Matched || res.MatchedBy != "fuzzy" {
		t.Fatalf("matched=%v matched_by=%q, want fuzzy hit", res.Matched, res.MatchedBy)
	}
	if res.Confidence != 0.65 {
		t.Errorf("confidence = %v, want 0.65", res.Confidence)
	}
	if math.Abs(res.Similarity-0.8) > 1e-9 {
		t.Errorf("similarity = %v, want 0.8", res.Similarity)
	}
}

func TestFingerprintNoMatch(t *testing.T) {
	m, _ := seededMatcher(t)

	res, err := m.Fingerprint(context.Background(), "looking forward to the community garden potluck this weekend", ContentKindText)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if res.Matched {
		t.Fatalf("unrelated text matched %q", res.Campaign.Slug)
	}
	if res.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", res.Confidence)
	}
	if res.RelatedIndicators == nil || res.SimilarCampaigns == nil {
		t.Error("miss payload lists must be non-nil")
	}
	if len(res.RelatedIndicators) != 0 || len(res.SimilarCampaigns) != 0 {
		t.Error("miss payload lists must be empty")
	}
}

func TestFingerprintUnknownIndicator(t *testing.T) {
	m, _ := seededMatcher(t)

	res, err := m.Fingerprint(context.Background(), "5555550000", "phone")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if res.Matched {
		t.Error("an unseen phone number should not match")
	}
}

func TestFingerprintEmptyContent(t *testing.T) {
	m, _ := seededMatcher(t)

	res, err := m.Fingerprint(context.Background(), "", ContentKindText)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if res.Matched {
		t.Error("empty content should never match")
	}
}

func TestFingerprintSimilarCampaigns(t *testing.T) {
	store := memory.New()
	campaigns := []models.Campaign{
		bankingCampaign("target-scheme", 500, "4165550100"),
		bankingCampaign("rival-a", 400, "4165550101"),
		bankingCampaign("rival-b", 300, "4165550102"),
		bankingCampaign("rival-c", 200, "4165550103"),
		bankingCampaign("rival-d", 100, "4165550104"),
	}
	store.Seed(campaigns)
	m := NewMatcher(store, config.DefaultMatching(), logger.NewDefault())

	res, err := m.Fingerprint(context.Background(), "4165550100", "phone")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if !res.Matched || res.Campaign.Slug != "target-scheme" {
		t.Fatalf("unexpected match: %+v", res.Campaign)
	}

	if len(res.SimilarCampaigns) != 3 {
		t.Fatalf("got %d similar campaigns, want 3", len(res.SimilarCampaigns))
	}
	wantOrder := []string{"rival-a", "rival-b", "rival-c"}
	for i, want := range wantOrder {
		if res.SimilarCampaigns[i].Slug != want {
			t.Errorf("similar[%d] = %q, want %q", i, res.SimilarCampaigns[i].Slug, want)
		}
	}
}

func bankingCampaign(slug string, reports int, phone string) models.Campaign {
	id := uuid.New()
	return models.Campaign{
		ID:          id,
		Slug:        slug,
		Name:        slug,
		Category:    models.CategoryBanking,
		Status:      models.CampaignStatusActive,
		ReportCount: reports,
		LastSeen:    time.Now(),
		Indicators: []models.Indicator{{
			ID:          uuid.New(),
			CampaignID:  id,
			Type:        models.IndicatorTypePhone,
			Value:       phone,
			FirstSeen:   time.Now(),
			LastSeen:    time.Now(),
			ReportCount: reports,
		}},
	}
}
