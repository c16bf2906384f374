package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"scamtrace/internal/domain/models"
)

// AlertRepository handles alert and subscriber persistence
type AlertRepository struct {
	pool *pgxpool.Pool
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

// Add stores a generated alert
func (r *AlertRepository) Add(ctx context.Context, a *models.Alert) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO alerts (id, campaign_id, title, body, severity,
			provinces, carriers, banks, age_ranges, sent_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.CampaignID, a.Title, a.Body, a.Severity,
		a.Provinces, a.Carriers, a.Banks, a.AgeRanges, a.SentCount, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// List retrieves alerts newest first, up to limit
func (r *AlertRepository) List(ctx context.Context, limit int) ([]*models.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, title, body, severity,
			provinces, carriers, banks, age_ranges, sent_count, created_at
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := []*models.Alert{}
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.Title, &a.Body, &a.Severity,
			&a.Provinces, &a.Carriers, &a.Banks, &a.AgeRanges,
			&a.SentCount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, &a)
	}
	return alerts, rows.Err()
}

// AddSubscriber stores a notification subscriber
func (r *AlertRepository) AddSubscriber(ctx context.Context, s *models.Subscriber) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO subscribers (id, province, carrier, bank, age_range,
			cadence, active, last_notified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Province, s.Carrier, s.Bank, s.AgeRange,
		s.Cadence, s.Active, s.LastNotified, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return nil
}

// RemoveSubscriber deactivates a subscriber, reporting whether it existed
func (r *AlertRepository) RemoveSubscriber(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE subscribers SET active = FALSE WHERE id = $1 AND active`, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove subscriber: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ActiveSubscribers retrieves every active subscriber
func (r *AlertRepository) ActiveSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, province, carrier, bank, age_range,
			cadence, active, last_notified, created_at
		FROM subscribers
		WHERE active
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscriber
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.Province, &s.Carrier, &s.Bank, &s.AgeRange,
			&s.Cadence, &s.Active, &s.LastNotified, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}
