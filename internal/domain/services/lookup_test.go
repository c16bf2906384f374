package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/domain/models"
	"scamtrace/internal/infrastructure/memory"
	"scamtrace/pkg/logger"
)

func seededLookup(t *testing.T) (*Lookup, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.Seed(models.DefaultCampaigns())
	return NewLookup(store, logger.NewDefault()), store
}

func TestLookupPhoneCountryCodeEquivalence(t *testing.T) {
	l, _ := seededLookup(t)
	ctx := context.Background()

	for _, q := range []string{"+1 (888) 555-0147", "8885550147", "888-555-0147"} {
		res, err := l.Lookup(ctx, q, "")
		if err != nil {
			t.Fatalf("Lookup(%q): %v", q, err)
		}
		if !res.Found {
			t.Fatalf("Lookup(%q) missed", q)
		}
		if res.InferredType != models.IndicatorTypePhone {
			t.Errorf("Lookup(%q) inferred %v, want phone", q, res.InferredType)
		}
		if res.Normalized != "8885550147" {
			t.Errorf("Lookup(%q) normalized to %q", q, res.Normalized)
		}
		if len(res.Campaigns) == 0 || res.Campaigns[0].Slug != "cra-gift-card" {
			t.Errorf("Lookup(%q) resolved to %+v", q, res.Campaigns)
		}
	}
}

func TestLookupMiss(t *testing.T) {
	l, _ := seededLookup(t)

	res, err := l.Lookup(context.Background(), "9995550000", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res.Found {
		t.Fatal("unknown number should miss")
	}
	if res.Campaigns == nil || res.RelatedIndicators == nil || res.CommunityReports == nil {
		t.Error("miss payload lists must be non-nil")
	}
	if len(res.Campaigns) != 0 {
		t.Errorf("miss should carry no campaigns, got %d", len(res.Campaigns))
	}
}

func TestLookupEmptyQuery(t *testing.T) {
	l, _ := seededLookup(t)

	res, err := l.Lookup(context.Background(), "   ", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res.Found {
		t.Error("blank query should miss")
	}
}

func TestLookupSubstringContainment(t *testing.T) {
	l, _ := seededLookup(t)

	// Partial number: the stored value contains the queried digits.
	res, err := l.Lookup(context.Background(), "555-0147", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !res.Found {
		t.Fatal("partial number should resolve via containment")
	}
	if res.Campaigns[0].Slug != "cra-gift-card" {
		t.Errorf("resolved to %q, want cra-gift-card", res.Campaigns[0].Slug)
	}
}

func TestLookupTypeHintOverride(t *testing.T) {
	l, _ := seededLookup(t)

	res, err := l.Lookup(context.Background(), "canadapost-track.info", "domain")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !res.Found || res.InferredType != models.IndicatorTypeDomain {
		t.Fatalf("found=%v type=%v, want domain hit", res.Found, res.InferredType)
	}
}

func TestLookupStatusAndRisk(t *testing.T) {
	l, _ := seededLookup(t)
	ctx := context.Background()

	// Declining campaign, indicator last seen two months ago.
	res, err := l.Lookup(ctx, "canadapost-track.info", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !res.Found {
		t.Fatal("seeded domain should resolve")
	}
	if res.Status != "inactive" {
		t.Errorf("status = %q, want inactive", res.Status)
	}
	if res.Risk != models.RiskMedium {
		t.Errorf("risk = %v, want medium for a stale indicator", res.Risk)
	}

	// Active campaign, heavy and fresh indicator.
	res, err = l.Lookup(ctx, "http://interac-refund-ca.top/claim", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !res.Found {
		t.Fatal("seeded url should resolve")
	}
	if res.Status != "active" {
		t.Errorf("status = %q, want active", res.Status)
	}
	if res.Risk != models.RiskCritical {
		t.Errorf("risk = %v, want critical", res.Risk)
	}
}

func TestLookupRelatedIndicators(t *testing.T) {
	l, _ := seededLookup(t)

	res, err := l.Lookup(context.Background(), "8775550102", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !res.Found {
		t.Fatal("seeded phone should resolve")
	}
	if len(res.RelatedIndicators) != 1 {
		t.Fatalf("got %d related indicators, want 1", len(res.RelatedIndicators))
	}
	rel := res.RelatedIndicators[0]
	if rel.Value != "billing@secure-refund-desk.com" || rel.Relation != "same_campaign" {
		t.Errorf("unexpected related indicator: %+v", rel)
	}
}

func TestLookupReportExcerpts(t *testing.T) {
	l, store := seededLookup(t)
	ctx := context.Background()

	cra, err := store.GetCampaignBySlug(ctx, "cra-gift-card")
	if err != nil {
		t.Fatalf("GetCampaignBySlug: %v", err)
	}
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		_ = store.AddReport(ctx, &models.CommunityReport{
			ID:          uuid.New(),
			CampaignID:  &cra.ID,
			Content:     fmt.Sprintf("report %02d ", i) + strings.Repeat("x", 120),
			Region:      "ON",
			Status:      models.TriageClassified,
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	res, err := l.Lookup(ctx, "8885550147", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(res.CommunityReports) != 10 {
		t.Fatalf("got %d excerpts, want the 10 most recent", len(res.CommunityReports))
	}
	if !strings.HasPrefix(res.CommunityReports[0].Excerpt, "report 11") {
		t.Errorf("excerpts not newest first: %q", res.CommunityReports[0].Excerpt)
	}
	for _, ex := range res.CommunityReports {
		if len(ex.Excerpt) != 103 || !strings.HasSuffix(ex.Excerpt, "...") {
			t.Errorf("excerpt not truncated to 100 chars: %q", ex.Excerpt)
		}
	}
}
