// Package services implements the campaign fingerprinting engine: content
// matching, reverse indicator lookup, alert targeting, and community report
// ingestion. All read paths only consult the store; writes are serialized
// by the store implementation.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/domain/models"
)

// Store is the record store consumed by the engine. Implementations must
// return campaigns with their variants and indicators populated, and must
// serialize writes: the matcher's scan is not isolated from concurrent
// mutation.
//
// An indicator value belongs to exactly one campaign at a time, so
// FindIndicatorByValue returns a single owner. Shared scam infrastructure
// reused across schemes would need a multi-owner model; the schema keeps
// the one-owner invariant for now.
type Store interface {
	// Campaigns
	GetAllCampaigns(ctx context.Context) ([]*models.Campaign, error)
	GetCampaignBySlug(ctx context.Context, slug string) (*models.Campaign, error)
	UpsertCampaign(ctx context.Context, c *models.Campaign) error
	// BumpCampaign increments the report count and moves last_seen forward.
	// Counts and last_seen are monotonic; implementations never decrease them.
	BumpCampaign(ctx context.Context, id uuid.UUID, seenAt time.Time) error

	// Indicators
	FindIndicatorByValue(ctx context.Context, value string) (*models.Campaign, *models.Indicator, error)
	TouchIndicator(ctx context.Context, campaignID uuid.UUID, typ models.IndicatorType, value string) error

	// Reports
	GetReportsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.CommunityReport, error)
	AddReport(ctx context.Context, r *models.CommunityReport) error

	// Alerts and subscribers
	AddAlert(ctx context.Context, a *models.Alert) error
	GetAlerts(ctx context.Context, limit int) ([]*models.Alert, error)
	AddSubscriber(ctx context.Context, s *models.Subscriber) error
	RemoveSubscriber(ctx context.Context, id uuid.UUID) (bool, error)
	GetActiveSubscribers(ctx context.Context) ([]*models.Subscriber, error)
}
