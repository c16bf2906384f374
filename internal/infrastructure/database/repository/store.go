package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"scamtrace/internal/domain/models"
)

// Repositories bundles the per-entity repositories behind the domain
// store interface, so services can run against Postgres or the
// in-memory store interchangeably.
type Repositories struct {
	Campaigns  *CampaignRepository
	Indicators *IndicatorRepository
	Reports    *ReportRepository
	Alerts     *AlertRepository
}

// New creates the repository bundle on a shared connection pool
func New(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Campaigns:  NewCampaignRepository(pool),
		Indicators: NewIndicatorRepository(pool),
		Reports:    NewReportRepository(pool),
		Alerts:     NewAlertRepository(pool),
	}
}

func (r *Repositories) GetAllCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	return r.Campaigns.GetAll(ctx)
}

func (r *Repositories) GetCampaignBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	return r.Campaigns.GetBySlug(ctx, slug)
}

func (r *Repositories) UpsertCampaign(ctx context.Context, c *models.Campaign) error {
	return r.Campaigns.Upsert(ctx, c)
}

func (r *Repositories) BumpCampaign(ctx context.Context, id uuid.UUID, seenAt time.Time) error {
	return r.Campaigns.Bump(ctx, id, seenAt)
}

func (r *Repositories) FindIndicatorByValue(ctx context.Context, value string) (*models.Campaign, *models.Indicator, error) {
	ind, err := r.Indicators.FindByValue(ctx, value)
	if err != nil || ind == nil {
		return nil, nil, err
	}
	campaign, err := r.Campaigns.GetByID(ctx, ind.CampaignID)
	if err != nil {
		return nil, nil, err
	}
	if campaign == nil {
		// orphaned indicator row, treat as a miss
		return nil, nil, nil
	}
	return campaign, ind, nil
}

func (r *Repositories) TouchIndicator(ctx context.Context, campaignID uuid.UUID, typ models.IndicatorType, value string) error {
	return r.Indicators.Touch(ctx, campaignID, typ, value, time.Now())
}

func (r *Repositories) GetReportsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.CommunityReport, error) {
	return r.Reports.ByCampaign(ctx, campaignID)
}

func (r *Repositories) AddReport(ctx context.Context, report *models.CommunityReport) error {
	return r.Reports.Add(ctx, report)
}

func (r *Repositories) AddAlert(ctx context.Context, a *models.Alert) error {
	return r.Alerts.Add(ctx, a)
}

func (r *Repositories) GetAlerts(ctx context.Context, limit int) ([]*models.Alert, error) {
	return r.Alerts.List(ctx, limit)
}

func (r *Repositories) AddSubscriber(ctx context.Context, s *models.Subscriber) error {
	return r.Alerts.AddSubscriber(ctx, s)
}

func (r *Repositories) RemoveSubscriber(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Alerts.RemoveSubscriber(ctx, id)
}

func (r *Repositories) GetActiveSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	return r.Alerts.ActiveSubscribers(ctx)
}
