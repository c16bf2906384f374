package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scamtrace/internal/domain/models"
)

// IndicatorRepository handles indicator persistence
type IndicatorRepository struct {
	pool *pgxpool.Pool
}

// NewIndicatorRepository creates a new indicator repository
func NewIndicatorRepository(pool *pgxpool.Pool) *IndicatorRepository {
	return &IndicatorRepository{pool: pool}
}

// FindByValue retrieves the indicator with the given canonical value,
// nil when no campaign owns it.
func (r *IndicatorRepository) FindByValue(ctx context.Context, value string) (*models.Indicator, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, type, value, first_seen, last_seen, report_count
		FROM indicators WHERE value = $1`, value)

	var ind models.Indicator
	err := row.Scan(&ind.ID, &ind.CampaignID, &ind.Type, &ind.Value,
		&ind.FirstSeen, &ind.LastSeen, &ind.ReportCount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find indicator: %w", err)
	}
	return &ind, nil
}

// Touch records a fresh sighting of a value for a campaign. The value stays
// with its first owner: a row already bound to another campaign is left
// alone, and an unowned value is inserted under the given campaign.
func (r *IndicatorRepository) Touch(ctx context.Context, campaignID uuid.UUID, typ models.IndicatorType, value string, seenAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE indicators SET
			last_seen = GREATEST(last_seen, $3),
			report_count = report_count + 1
		WHERE value = $2 AND campaign_id = $1`, campaignID, value, seenAt)
	if err != nil {
		return fmt.Errorf("failed to touch indicator: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO indicators (id, campaign_id, type, value, first_seen, last_seen, report_count)
		VALUES ($1, $2, $3, $4, $5, $5, 1)
		ON CONFLICT (value) DO NOTHING`,
		uuid.New(), campaignID, typ, value, seenAt)
	if err != nil {
		return fmt.Errorf("failed to insert indicator: %w", err)
	}
	return nil
}
