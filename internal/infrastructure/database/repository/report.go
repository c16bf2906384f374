package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"scamtrace/internal/domain/models"
)

// ReportRepository handles community report persistence
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Add stores a triaged community report
func (r *ReportRepository) Add(ctx context.Context, report *models.CommunityReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.SubmittedAt.IsZero() {
		report.SubmittedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO reports (id, campaign_id, content, region, sketch,
			phones, emails, urls, wallets, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		report.ID, report.CampaignID, report.Content, report.Region,
		int64(report.Sketch), report.Phones, report.Emails, report.URLs,
		report.Wallets, report.Status, report.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// ByCampaign retrieves the reports attributed to a campaign, newest first
func (r *ReportRepository) ByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.CommunityReport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, content, region, sketch,
			phones, emails, urls, wallets, status, submitted_at
		FROM reports
		WHERE campaign_id = $1
		ORDER BY submitted_at DESC`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.CommunityReport
	for rows.Next() {
		var rep models.CommunityReport
		var sketch int64
		if err := rows.Scan(&rep.ID, &rep.CampaignID, &rep.Content, &rep.Region,
			&sketch, &rep.Phones, &rep.Emails, &rep.URLs, &rep.Wallets,
			&rep.Status, &rep.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		rep.Sketch = uint32(sketch)
		reports = append(reports, &rep)
	}
	return reports, rows.Err()
}
