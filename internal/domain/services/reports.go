package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/config"
	"scamtrace/internal/domain/models"
	"scamtrace/internal/domain/services/textproc"
	"scamtrace/pkg/logger"
)

// IngestResult describes what happened to a submitted community report
type IngestResult struct {
	Report    *models.CommunityReport   `json:"report"`
	Duplicate bool                      `json:"duplicate"`
	Match     *models.FingerprintResult `json:"match,omitempty"`
}

// Reports is the write-side ingestion pipeline: extract indicators, drop
// near-duplicate submissions, attribute the report to a campaign via the
// matcher, and refresh counts.
type Reports struct {
	store   Store
	matcher *Matcher
	alerts  *Alerts
	cfg     config.MatchingConfig
	logger  *logger.Logger
}

// NewReports creates a report ingestion service. alerts may be nil.
func NewReports(store Store, matcher *Matcher, alerts *Alerts, cfg config.MatchingConfig, log *logger.Logger) *Reports {
	return &Reports{
		store:   store,
		matcher: matcher,
		alerts:  alerts,
		cfg:     cfg,
		logger:  log.WithComponent("reports"),
	}
}

// Ingest processes a raw community submission. Near-duplicates of recent
// reports on the same campaign are recorded but do not bump counts, so
// resubmission storms cannot inflate campaign volume.
func (r *Reports) Ingest(ctx context.Context, content, region string) (*IngestResult, error) {
	extracted := textproc.ExtractIndicators(content)
	report := &models.CommunityReport{
		ID:          uuid.New(),
		Content:     content,
		Region:      region,
		Phones:      extracted.Phones,
		Emails:      extracted.Emails,
		URLs:        extracted.URLs,
		Wallets:     extracted.Wallets,
		Sketch:      uint32(textproc.NewSketch(content)),
		Status:      models.TriagePending,
		SubmittedAt: time.Now(),
	}

	match, err := r.matcher.Fingerprint(ctx, content, ContentKindText)
	if err != nil {
		return nil, fmt.Errorf("report attribution failed: %w", err)
	}

	result := &IngestResult{Report: report, Match: match}

	if !match.Matched {
		if err := r.store.AddReport(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to store report: %w", err)
		}
		return result, nil
	}

	report.CampaignID = &match.Campaign.ID
	report.Status = models.TriageClassified

	dup, err := r.isDuplicate(ctx, match.Campaign.ID, textproc.Sketch(report.Sketch))
	if err != nil {
		return nil, err
	}
	result.Duplicate = dup

	if err := r.store.AddReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}
	if dup {
		r.logger.Debug().Str("campaign", match.Campaign.Slug).Msg("near-duplicate report, counts unchanged")
		return result, nil
	}

	if err := r.bumpCounts(ctx, match, extracted, report.SubmittedAt); err != nil {
		return nil, err
	}
	return result, nil
}

// isDuplicate compares the sketch against recent reports of the campaign
func (r *Reports) isDuplicate(ctx context.Context, campaignID uuid.UUID, sketch textproc.Sketch) (bool, error) {
	recent, err := r.store.GetReportsByCampaign(ctx, campaignID)
	if err != nil {
		return false, fmt.Errorf("duplicate check failed: %w", err)
	}
	for _, prev := range recent {
		if textproc.NearDuplicate(sketch, textproc.Sketch(prev.Sketch), r.cfg.DedupHammingMax) {
			return true, nil
		}
	}
	return false, nil
}

// bumpCounts refreshes the matched campaign and any of its indicators seen
// in this report, then fires the alert threshold check.
func (r *Reports) bumpCounts(ctx context.Context, match *models.FingerprintResult, extracted *textproc.Extracted, seenAt time.Time) error {
	previous := match.Campaign.ReportCount
	if err := r.store.BumpCampaign(ctx, match.Campaign.ID, seenAt); err != nil {
		return fmt.Errorf("failed to bump campaign: %w", err)
	}

	for _, tv := range extracted.All() {
		if err := r.store.TouchIndicator(ctx, match.Campaign.ID, tv.Type, tv.Value); err != nil {
			return fmt.Errorf("failed to touch indicator: %w", err)
		}
	}

	if r.alerts != nil {
		updated, err := r.store.GetCampaignBySlug(ctx, match.Campaign.Slug)
		if err != nil {
			return fmt.Errorf("failed to reload campaign: %w", err)
		}
		if updated != nil {
			if err := r.alerts.NotifyThresholdCrossed(ctx, updated, previous); err != nil {
				return fmt.Errorf("threshold alert failed: %w", err)
			}
		}
	}
	return nil
}
