package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/config"
	"scamtrace/internal/domain/models"
	"scamtrace/internal/infrastructure/memory"
	"scamtrace/pkg/logger"
)

type capturePublisher struct {
	published []*models.Alert
}

func (p *capturePublisher) PublishAlert(ctx context.Context, alert *models.Alert) {
	p.published = append(p.published, alert)
}

func newAlertsService(t *testing.T) (*Alerts, *memory.Store, *capturePublisher) {
	t.Helper()
	store := memory.New()
	pub := &capturePublisher{}
	return NewAlerts(store, config.DefaultAlerts(), pub, logger.NewDefault()), store, pub
}

func TestSubscribeDefaults(t *testing.T) {
	a, store, _ := newAlertsService(t)
	ctx := context.Background()

	sub, err := a.Subscribe(ctx, &models.Subscriber{Province: "ON"})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.ID == uuid.Nil {
		t.Error("subscriber should be assigned an id")
	}
	if !sub.Active {
		t.Error("new subscribers start active")
	}
	if sub.Cadence != "immediate" {
		t.Errorf("cadence = %q, want immediate", sub.Cadence)
	}

	subs, _ := store.GetActiveSubscribers(ctx)
	if len(subs) != 1 {
		t.Errorf("store has %d active subscribers, want 1", len(subs))
	}
}

func TestUnsubscribe(t *testing.T) {
	a, _, _ := newAlertsService(t)
	ctx := context.Background()

	sub, _ := a.Subscribe(ctx, &models.Subscriber{})
	removed, err := a.Unsubscribe(ctx, sub.ID)
	if err != nil || !removed {
		t.Fatalf("Unsubscribe = %v, %v; want true, nil", removed, err)
	}
	removed, err = a.Unsubscribe(ctx, uuid.New())
	if err != nil || removed {
		t.Fatalf("unknown id should report false, got %v, %v", removed, err)
	}
}

func TestGenerateSentCountSnapshot(t *testing.T) {
	a, store, pub := newAlertsService(t)
	ctx := context.Background()

	_, _ = a.Subscribe(ctx, &models.Subscriber{Province: "ON"})
	_, _ = a.Subscribe(ctx, &models.Subscriber{Province: "BC"})
	_, _ = a.Subscribe(ctx, &models.Subscriber{}) // no filters, reached by anything

	alert, err := a.Generate(ctx, AlertParams{
		CampaignID: uuid.New(),
		Title:      "Active scam campaign",
		Body:       "details",
		Severity:   models.AlertWarning,
		Provinces:  []string{"ON"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// ON subscriber and the unfiltered subscriber; BC is excluded.
	if alert.SentCount != 2 {
		t.Errorf("sent_count = %d, want 2", alert.SentCount)
	}
	if len(pub.published) != 1 || pub.published[0].ID != alert.ID {
		t.Errorf("alert was not published exactly once")
	}

	// Later signups never change the stored snapshot.
	_, _ = a.Subscribe(ctx, &models.Subscriber{Province: "ON"})
	stored, _ := store.GetAlerts(ctx, 1)
	if stored[0].SentCount != 2 {
		t.Errorf("stored sent_count = %d, want unchanged 2", stored[0].SentCount)
	}
}

func TestGenerateDefaultSeverity(t *testing.T) {
	a, _, _ := newAlertsService(t)

	alert, err := a.Generate(context.Background(), AlertParams{CampaignID: uuid.New(), Title: "t"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if alert.Severity != models.AlertInfo {
		t.Errorf("severity = %v, want info default", alert.Severity)
	}
}

func TestSeverityForVolume(t *testing.T) {
	a, _, _ := newAlertsService(t)

	tests := []struct {
		count int
		want  models.AlertSeverity
	}{
		{0, models.AlertInfo},
		{999, models.AlertInfo},
		{1000, models.AlertWarning},
		{2999, models.AlertWarning},
		{3000, models.AlertCritical},
		{10000, models.AlertCritical},
	}
	for _, tt := range tests {
		if got := a.SeverityForVolume(tt.count); got != tt.want {
			t.Errorf("SeverityForVolume(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestNotifyThresholdCrossed(t *testing.T) {
	a, store, _ := newAlertsService(t)
	ctx := context.Background()

	c := &models.Campaign{
		ID:          uuid.New(),
		Slug:        "surging-scheme",
		Name:        "Surging Scheme",
		Status:      models.CampaignStatusActive,
		Regions:     []string{"ON"},
		ReportCount: 101,
	}

	// First crossing fires.
	if err := a.NotifyThresholdCrossed(ctx, c, 100); err != nil {
		t.Fatalf("NotifyThresholdCrossed: %v", err)
	}
	alerts, _ := store.GetAlerts(ctx, 0)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts after crossing, want 1", len(alerts))
	}

	// Already past the threshold: no re-fire.
	c.ReportCount = 102
	if err := a.NotifyThresholdCrossed(ctx, c, 101); err != nil {
		t.Fatalf("NotifyThresholdCrossed: %v", err)
	}
	// Still below it: nothing to announce.
	below := &models.Campaign{ID: uuid.New(), Slug: "quiet", Name: "Quiet", ReportCount: 100}
	if err := a.NotifyThresholdCrossed(ctx, below, 99); err != nil {
		t.Fatalf("NotifyThresholdCrossed: %v", err)
	}

	alerts, _ = store.GetAlerts(ctx, 0)
	if len(alerts) != 1 {
		t.Errorf("got %d alerts, want still 1", len(alerts))
	}
}

func TestGenerateFromCampaigns(t *testing.T) {
	a, store, _ := newAlertsService(t)
	ctx := context.Background()

	store.Seed([]models.Campaign{
		{ID: uuid.New(), Slug: "busy", Name: "Busy", Status: models.CampaignStatusActive, ReportCount: 1200, Regions: []string{"ON"}},
		{ID: uuid.New(), Slug: "quiet", Name: "Quiet", Status: models.CampaignStatusActive, ReportCount: 50},
		{ID: uuid.New(), Slug: "dormant", Name: "Dormant", Status: models.CampaignStatusDormant, ReportCount: 9000},
	})

	alerts, err := a.GenerateFromCampaigns(ctx)
	if err != nil {
		t.Fatalf("GenerateFromCampaigns: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1 for the busy active campaign", len(alerts))
	}
	if alerts[0].Severity != models.AlertWarning {
		t.Errorf("severity = %v, want warning at 1200 reports", alerts[0].Severity)
	}
	if len(alerts[0].Provinces) != 1 || alerts[0].Provinces[0] != "ON" {
		t.Errorf("alert should target the campaign's regions, got %v", alerts[0].Provinces)
	}
}

func TestFeedLimits(t *testing.T) {
	a, store, _ := newAlertsService(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		_ = store.AddAlert(ctx, &models.Alert{
			ID:        uuid.New(),
			Title:     string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	feed, err := a.Feed(ctx, 0)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(feed) != 5 {
		t.Fatalf("got %d alerts, want 5", len(feed))
	}
	if feed[0].Title != "e" {
		t.Errorf("feed not newest first, got %q", feed[0].Title)
	}

	feed, _ = a.Feed(ctx, 2)
	if len(feed) != 2 {
		t.Errorf("limit 2 returned %d alerts", len(feed))
	}

	// Requests beyond the configured cap fall back to the cap.
	feed, _ = a.Feed(ctx, 10000)
	if len(feed) != 5 {
		t.Errorf("oversized limit returned %d alerts", len(feed))
	}
}
