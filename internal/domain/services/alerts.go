package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/config"
	"scamtrace/internal/domain/models"
	"scamtrace/pkg/logger"
)

// AlertPublisher receives generated alerts for fan-out to live feeds.
// Publishing is best-effort; alert generation never fails on publish.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *models.Alert)
}

// AlertParams are the inputs for manual alert generation
type AlertParams struct {
	CampaignID uuid.UUID            `json:"campaign_id"`
	Title      string               `json:"title"`
	Body       string               `json:"body"`
	Severity   models.AlertSeverity `json:"severity"`
	Provinces  []string             `json:"provinces,omitempty"`
	Carriers   []string             `json:"carriers,omitempty"`
	Banks      []string             `json:"banks,omitempty"`
	AgeRanges  []string             `json:"age_ranges,omitempty"`
}

// Alerts handles subscriber registration and alert generation/fan-out
type Alerts struct {
	store     Store
	cfg       config.AlertsConfig
	publisher AlertPublisher
	logger    *logger.Logger
}

// NewAlerts creates an alert targeting service. publisher may be nil.
func NewAlerts(store Store, cfg config.AlertsConfig, publisher AlertPublisher, log *logger.Logger) *Alerts {
	return &Alerts{
		store:     store,
		cfg:       cfg,
		publisher: publisher,
		logger:    log.WithComponent("alerts"),
	}
}

// Subscribe registers a notification target. No deduplication is performed;
// every call creates a fresh subscriber.
func (a *Alerts) Subscribe(ctx context.Context, sub *models.Subscriber) (*models.Subscriber, error) {
	sub.ID = uuid.New()
	sub.Active = true
	sub.CreatedAt = time.Now()
	if sub.Cadence == "" {
		sub.Cadence = "immediate"
	}

	if err := a.store.AddSubscriber(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to add subscriber: %w", err)
	}

	a.logger.Info().
		Str("subscriber", sub.ID.String()).
		Str("province", sub.Province).
		Msg("subscriber registered")
	return sub, nil
}

// Unsubscribe removes a subscriber; false means the id was not registered
func (a *Alerts) Unsubscribe(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := a.store.RemoveSubscriber(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove subscriber: %w", err)
	}
	return removed, nil
}

// Generate creates an alert from explicit parameters. SentCount is the
// number of active subscribers matching at generation time, a snapshot.
func (a *Alerts) Generate(ctx context.Context, params AlertParams) (*models.Alert, error) {
	alert := &models.Alert{
		ID:         uuid.New(),
		CampaignID: params.CampaignID,
		Title:      params.Title,
		Body:       params.Body,
		Severity:   params.Severity,
		Provinces:  params.Provinces,
		Carriers:   params.Carriers,
		Banks:      params.Banks,
		AgeRanges:  params.AgeRanges,
		CreatedAt:  time.Now(),
	}
	if alert.Severity == "" {
		alert.Severity = models.AlertInfo
	}

	count, err := a.matchingSubscribers(ctx, alert)
	if err != nil {
		return nil, err
	}
	alert.SentCount = count

	if err := a.store.AddAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to store alert: %w", err)
	}

	if a.publisher != nil {
		a.publisher.PublishAlert(ctx, alert)
	}

	a.logger.Info().
		Str("alert", alert.ID.String()).
		Str("severity", string(alert.Severity)).
		Int("sent_count", alert.SentCount).
		Msg("alert generated")
	return alert, nil
}

// GenerateFromCampaigns emits one alert per active campaign whose report
// count exceeds the auto threshold, targeted at the campaign's regions.
func (a *Alerts) GenerateFromCampaigns(ctx context.Context) ([]*models.Alert, error) {
	campaigns, err := a.store.GetAllCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("campaign scan failed: %w", err)
	}

	alerts := []*models.Alert{}
	for _, c := range campaigns {
		if !c.IsActive() || c.ReportCount <= a.cfg.AutoThreshold {
			continue
		}
		alert, err := a.Generate(ctx, AlertParams{
			CampaignID: c.ID,
			Title:      fmt.Sprintf("Active scam campaign: %s", c.Name),
			Body: fmt.Sprintf("%s has drawn %d community reports and is circulating in %s.",
				c.Name, c.ReportCount, regionList(c.Regions)),
			Severity:  a.SeverityForVolume(c.ReportCount),
			Provinces: c.Regions,
		})
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// NotifyThresholdCrossed generates an alert when a campaign's report count
// first climbs past the auto threshold.
func (a *Alerts) NotifyThresholdCrossed(ctx context.Context, c *models.Campaign, previousCount int) error {
	if previousCount > a.cfg.AutoThreshold || c.ReportCount <= a.cfg.AutoThreshold {
		return nil
	}
	_, err := a.Generate(ctx, AlertParams{
		CampaignID: c.ID,
		Title:      fmt.Sprintf("Surging scam campaign: %s", c.Name),
		Body: fmt.Sprintf("%s crossed %d community reports and is circulating in %s.",
			c.Name, a.cfg.AutoThreshold, regionList(c.Regions)),
		Severity:  a.SeverityForVolume(c.ReportCount),
		Provinces: c.Regions,
	})
	return err
}

// Feed returns the most recent alerts, newest first
func (a *Alerts) Feed(ctx context.Context, limit int) ([]*models.Alert, error) {
	if limit <= 0 || limit > a.cfg.FeedLimit {
		limit = a.cfg.FeedLimit
	}
	alerts, err := a.store.GetAlerts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}
	return alerts, nil
}

// SeverityForVolume escalates alert severity with report volume
func (a *Alerts) SeverityForVolume(reportCount int) models.AlertSeverity {
	switch {
	case reportCount >= a.cfg.CriticalThreshold:
		return models.AlertCritical
	case reportCount >= a.cfg.WarningThreshold:
		return models.AlertWarning
	default:
		return models.AlertInfo
	}
}

func (a *Alerts) matchingSubscribers(ctx context.Context, alert *models.Alert) (int, error) {
	subs, err := a.store.GetActiveSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch subscribers: %w", err)
	}
	count := 0
	for _, s := range subs {
		if alert.Matches(s) {
			count++
		}
	}
	return count, nil
}

func regionList(regions []string) string {
	if len(regions) == 0 {
		return "multiple regions"
	}
	out := regions[0]
	for _, r := range regions[1:] {
		out += ", " + r
	}
	return out
}
