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

// CampaignRepository handles campaign persistence
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `
	c.id, c.slug, c.name, c.category, c.status, c.regions,
	c.first_seen, c.last_seen, c.report_count, c.created_at, c.updated_at`

// GetAll retrieves every campaign with its variants and indicators,
// ordered by slug so downstream scans iterate deterministically.
func (r *CampaignRepository) GetAll(ctx context.Context) ([]*models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		ORDER BY c.slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("campaign rows failed: %w", err)
	}

	for _, c := range campaigns {
		if err := r.attachChildren(ctx, c); err != nil {
			return nil, err
		}
	}
	return campaigns, nil
}

// GetBySlug retrieves a single campaign with children, nil when absent
func (r *CampaignRepository) GetBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		WHERE c.slug = $1`, slug)

	c, err := scanCampaign(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachChildren(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a single campaign with children, nil when absent
func (r *CampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		WHERE c.id = $1`, id)

	c, err := scanCampaign(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachChildren(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Upsert inserts a campaign or replaces its mutable fields, then replaces
// its variants and indicators.
func (r *CampaignRepository) Upsert(ctx context.Context, c *models.Campaign) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO campaigns (id, slug, name, category, status, regions,
			first_seen, last_seen, report_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			regions = EXCLUDED.regions,
			last_seen = GREATEST(campaigns.last_seen, EXCLUDED.last_seen),
			report_count = GREATEST(campaigns.report_count, EXCLUDED.report_count),
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.Slug, c.Name, c.Category, c.Status, c.Regions,
		c.FirstSeen, c.LastSeen, c.ReportCount, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert campaign: %w", err)
	}

	for i := range c.Variants {
		v := &c.Variants[i]
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		v.CampaignID = c.ID
		var minAmt, maxAmt *float64
		var currency *string
		if v.Amounts != nil {
			minAmt, maxAmt, currency = &v.Amounts.Min, &v.Amounts.Max, &v.Amounts.Currency
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO variants (id, campaign_id, template, phones, urls, emails,
				wallets, payment_methods, amount_min, amount_max, amount_currency,
				first_seen, report_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (id) DO UPDATE SET
				template = EXCLUDED.template,
				report_count = GREATEST(variants.report_count, EXCLUDED.report_count)`,
			v.ID, v.CampaignID, v.Template, v.Phones, v.URLs, v.Emails,
			v.Wallets, v.PaymentMethods, minAmt, maxAmt, currency,
			v.FirstSeen, v.ReportCount,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert variant: %w", err)
		}
	}

	for i := range c.Indicators {
		ind := &c.Indicators[i]
		if ind.ID == uuid.Nil {
			ind.ID = uuid.New()
		}
		ind.CampaignID = c.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO indicators (id, campaign_id, type, value, first_seen,
				last_seen, report_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (value) DO UPDATE SET
				last_seen = GREATEST(indicators.last_seen, EXCLUDED.last_seen),
				report_count = GREATEST(indicators.report_count, EXCLUDED.report_count)`,
			ind.ID, ind.CampaignID, ind.Type, ind.Value,
			ind.FirstSeen, ind.LastSeen, ind.ReportCount,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert indicator: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}
	return nil
}

// Bump increments the report count and moves last_seen forward, never back
func (r *CampaignRepository) Bump(ctx context.Context, id uuid.UUID, seenAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET
			report_count = report_count + 1,
			last_seen = GREATEST(last_seen, $2),
			updated_at = NOW()
		WHERE id = $1`, id, seenAt)
	if err != nil {
		return fmt.Errorf("failed to bump campaign: %w", err)
	}
	return nil
}

// attachChildren loads the variants and indicators owned by a campaign
func (r *CampaignRepository) attachChildren(ctx context.Context, c *models.Campaign) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, template, phones, urls, emails, wallets,
			payment_methods, amount_min, amount_max, amount_currency,
			first_seen, report_count
		FROM variants WHERE campaign_id = $1
		ORDER BY first_seen`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	c.Variants = nil
	for rows.Next() {
		var v models.Variant
		var minAmt, maxAmt *float64
		var currency *string
		if err := rows.Scan(&v.ID, &v.CampaignID, &v.Template, &v.Phones, &v.URLs,
			&v.Emails, &v.Wallets, &v.PaymentMethods, &minAmt, &maxAmt, &currency,
			&v.FirstSeen, &v.ReportCount); err != nil {
			return fmt.Errorf("failed to scan variant: %w", err)
		}
		if minAmt != nil && maxAmt != nil && currency != nil {
			v.Amounts = &models.AmountRange{Min: *minAmt, Max: *maxAmt, Currency: *currency}
		}
		c.Variants = append(c.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("variant rows failed: %w", err)
	}

	indRows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, type, value, first_seen, last_seen, report_count
		FROM indicators WHERE campaign_id = $1
		ORDER BY first_seen`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to list indicators: %w", err)
	}
	defer indRows.Close()

	c.Indicators = nil
	for indRows.Next() {
		var ind models.Indicator
		if err := indRows.Scan(&ind.ID, &ind.CampaignID, &ind.Type, &ind.Value,
			&ind.FirstSeen, &ind.LastSeen, &ind.ReportCount); err != nil {
			return fmt.Errorf("failed to scan indicator: %w", err)
		}
		c.Indicators = append(c.Indicators, ind)
	}
	return indRows.Err()
}

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	c := &models.Campaign{}
	err := row.Scan(
		&c.ID, &c.Slug, &c.Name, &c.Category, &c.Status, &c.Regions,
		&c.FirstSeen, &c.LastSeen, &c.ReportCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan campaign: %w", err)
	}
	return c, nil
}
