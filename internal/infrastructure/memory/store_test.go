package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/domain/models"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	s.Seed(models.DefaultCampaigns())
	return s
}

func TestSeedAndGetAll(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	campaigns, err := s.GetAllCampaigns(ctx)
	if err != nil {
		t.Fatalf("GetAllCampaigns: %v", err)
	}
	if len(campaigns) != 5 {
		t.Fatalf("got %d campaigns, want 5", len(campaigns))
	}
	for i := 1; i < len(campaigns); i++ {
		if campaigns[i-1].Slug >= campaigns[i].Slug {
			t.Errorf("campaigns not sorted by slug: %q before %q", campaigns[i-1].Slug, campaigns[i].Slug)
		}
	}
}

func TestGetCampaignBySlug(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	c, err := s.GetCampaignBySlug(ctx, "cra-gift-card")
	if err != nil {
		t.Fatalf("GetCampaignBySlug: %v", err)
	}
	if c == nil || c.Name != "CRA Gift Card Demand" {
		t.Fatalf("unexpected campaign: %+v", c)
	}

	missing, err := s.GetCampaignBySlug(ctx, "no-such-slug")
	if err != nil {
		t.Fatalf("GetCampaignBySlug: %v", err)
	}
	if missing != nil {
		t.Errorf("missing slug should return nil, got %+v", missing)
	}
}

func TestFindIndicatorByValue(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	campaign, indicator, err := s.FindIndicatorByValue(ctx, "8885550147")
	if err != nil {
		t.Fatalf("FindIndicatorByValue: %v", err)
	}
	if campaign == nil || indicator == nil {
		t.Fatal("expected a hit for seeded phone indicator")
	}
	if campaign.Slug != "cra-gift-card" {
		t.Errorf("owner = %q, want cra-gift-card", campaign.Slug)
	}
	if indicator.Type != models.IndicatorTypePhone {
		t.Errorf("type = %v, want phone", indicator.Type)
	}

	campaign, indicator, err = s.FindIndicatorByValue(ctx, "0000000000")
	if err != nil {
		t.Fatalf("FindIndicatorByValue: %v", err)
	}
	if campaign != nil || indicator != nil {
		t.Error("unknown value should miss with nils")
	}
}

func TestBumpCampaignMonotonic(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	c, _ := s.GetCampaignBySlug(ctx, "pig-butchering-crypto")
	before := c.ReportCount
	lastSeen := c.LastSeen

	if err := s.BumpCampaign(ctx, c.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("BumpCampaign: %v", err)
	}
	if c.ReportCount != before+1 {
		t.Errorf("report count = %d, want %d", c.ReportCount, before+1)
	}
	if !c.LastSeen.After(lastSeen) {
		t.Error("last_seen should have advanced")
	}

	// A stale timestamp increments the count but never rewinds last_seen.
	current := c.LastSeen
	if err := s.BumpCampaign(ctx, c.ID, time.Now().Add(-24*time.Hour)); err != nil {
		t.Fatalf("BumpCampaign: %v", err)
	}
	if c.ReportCount != before+2 {
		t.Errorf("report count = %d, want %d", c.ReportCount, before+2)
	}
	if !c.LastSeen.Equal(current) {
		t.Error("stale seenAt must not rewind last_seen")
	}
}

func TestTouchIndicatorOneOwner(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	cra, _ := s.GetCampaignBySlug(ctx, "cra-gift-card")
	interac, _ := s.GetCampaignBySlug(ctx, "interac-refund")

	// Touching a value owned by another campaign is a no-op.
	if err := s.TouchIndicator(ctx, interac.ID, models.IndicatorTypePhone, "8885550147"); err != nil {
		t.Fatalf("TouchIndicator: %v", err)
	}
	owner, ind, _ := s.FindIndicatorByValue(ctx, "8885550147")
	if owner.ID != cra.ID {
		t.Errorf("indicator changed owner to %q", owner.Slug)
	}
	if ind.ReportCount != 1240 {
		t.Errorf("foreign touch bumped report count to %d", ind.ReportCount)
	}

	// Touching an owned value bumps its count.
	if err := s.TouchIndicator(ctx, cra.ID, models.IndicatorTypePhone, "8885550147"); err != nil {
		t.Fatalf("TouchIndicator: %v", err)
	}
	_, ind, _ = s.FindIndicatorByValue(ctx, "8885550147")
	if ind.ReportCount != 1241 {
		t.Errorf("report count = %d, want 1241", ind.ReportCount)
	}

	// A fresh value is inserted and indexed.
	if err := s.TouchIndicator(ctx, cra.ID, models.IndicatorTypePhone, "6475550000"); err != nil {
		t.Fatalf("TouchIndicator: %v", err)
	}
	owner, ind, _ = s.FindIndicatorByValue(ctx, "6475550000")
	if owner == nil || owner.ID != cra.ID {
		t.Fatal("new indicator not indexed to the touching campaign")
	}
	if ind.ReportCount != 1 {
		t.Errorf("new indicator report count = %d, want 1", ind.ReportCount)
	}
}

func TestUpsertCampaignReindexes(t *testing.T) {
	s := New()
	ctx := context.Background()

	id := uuid.New()
	c := &models.Campaign{
		ID:   id,
		Slug: "test-campaign",
		Name: "Test",
		Indicators: []models.Indicator{
			{ID: uuid.New(), CampaignID: id, Type: models.IndicatorTypePhone, Value: "4165550000"},
		},
	}
	if err := s.UpsertCampaign(ctx, c); err != nil {
		t.Fatalf("UpsertCampaign: %v", err)
	}

	replacement := &models.Campaign{
		ID:   id,
		Slug: "test-campaign",
		Name: "Test",
		Indicators: []models.Indicator{
			{ID: uuid.New(), CampaignID: id, Type: models.IndicatorTypePhone, Value: "4165550001"},
		},
	}
	if err := s.UpsertCampaign(ctx, replacement); err != nil {
		t.Fatalf("UpsertCampaign: %v", err)
	}

	if owner, _, _ := s.FindIndicatorByValue(ctx, "4165550000"); owner != nil {
		t.Error("stale indicator value still indexed after upsert")
	}
	if owner, _, _ := s.FindIndicatorByValue(ctx, "4165550001"); owner == nil {
		t.Error("replacement indicator value not indexed")
	}
}

func TestAddReportBuckets(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	cra, _ := s.GetCampaignBySlug(ctx, "cra-gift-card")
	linked := &models.CommunityReport{ID: uuid.New(), CampaignID: &cra.ID, Content: "x", SubmittedAt: time.Now()}
	orphan := &models.CommunityReport{ID: uuid.New(), Content: "y", SubmittedAt: time.Now()}

	if err := s.AddReport(ctx, linked); err != nil {
		t.Fatalf("AddReport: %v", err)
	}
	if err := s.AddReport(ctx, orphan); err != nil {
		t.Fatalf("AddReport: %v", err)
	}

	got, _ := s.GetReportsByCampaign(ctx, cra.ID)
	if len(got) != 1 || got[0].ID != linked.ID {
		t.Errorf("campaign bucket = %d reports, want the linked one", len(got))
	}
	unlinked, _ := s.GetReportsByCampaign(ctx, uuid.Nil)
	if len(unlinked) != 1 || unlinked[0].ID != orphan.ID {
		t.Errorf("nil bucket = %d reports, want the orphan", len(unlinked))
	}
}

func TestGetAlertsNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 3; i++ {
		_ = s.AddAlert(ctx, &models.Alert{
			ID:        uuid.New(),
			Title:     string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	alerts, err := s.GetAlerts(ctx, 0)
	if err != nil {
		t.Fatalf("GetAlerts: %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("got %d alerts, want 3", len(alerts))
	}
	if alerts[0].Title != "c" || alerts[2].Title != "a" {
		t.Errorf("alerts not newest first: %q, %q, %q", alerts[0].Title, alerts[1].Title, alerts[2].Title)
	}

	limited, _ := s.GetAlerts(ctx, 2)
	if len(limited) != 2 || limited[0].Title != "c" {
		t.Errorf("limit 2 returned %d alerts starting with %q", len(limited), limited[0].Title)
	}
}

func TestSubscriberLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	active := &models.Subscriber{ID: uuid.New(), Province: "ON", Active: true}
	dormant := &models.Subscriber{ID: uuid.New(), Province: "BC", Active: false}
	_ = s.AddSubscriber(ctx, active)
	_ = s.AddSubscriber(ctx, dormant)

	subs, err := s.GetActiveSubscribers(ctx)
	if err != nil {
		t.Fatalf("GetActiveSubscribers: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != active.ID {
		t.Fatalf("active subscribers = %d, want just the active one", len(subs))
	}

	removed, err := s.RemoveSubscriber(ctx, active.ID)
	if err != nil || !removed {
		t.Fatalf("RemoveSubscriber = %v, %v; want true, nil", removed, err)
	}
	if removed, _ := s.RemoveSubscriber(ctx, active.ID); removed {
		t.Error("second removal should report false")
	}
	if subs, _ := s.GetActiveSubscribers(ctx); len(subs) != 0 {
		t.Errorf("still %d active subscribers after removal", len(subs))
	}
}
