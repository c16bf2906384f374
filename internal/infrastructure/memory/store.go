// Package memory provides a thread-safe in-memory implementation of the
// engine's store interface, used in tests and when the service runs
// without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"scamtrace/internal/domain/models"
)

// Store is a mutex-guarded in-memory record store. Secondary indexes keep
// indicator lookups O(1); everything else is a scan over small slices.
type Store struct {
	mu sync.RWMutex

	campaigns map[uuid.UUID]*models.Campaign
	bySlug    map[string]uuid.UUID

	// indicator value -> owning campaign. One owner per value.
	indicatorOwner map[string]uuid.UUID

	reports     map[uuid.UUID][]*models.CommunityReport
	alerts      []*models.Alert
	subscribers map[uuid.UUID]*models.Subscriber
}

// New creates an empty, ready-to-use Store
func New() *Store {
	return &Store{
		campaigns:      make(map[uuid.UUID]*models.Campaign),
		bySlug:         make(map[string]uuid.UUID),
		indicatorOwner: make(map[string]uuid.UUID),
		reports:        make(map[uuid.UUID][]*models.CommunityReport),
		subscribers:    make(map[uuid.UUID]*models.Subscriber),
	}
}

// Seed loads campaigns (with variants and indicators) into the store
func (s *Store) Seed(campaigns []models.Campaign) {
	for i := range campaigns {
		c := campaigns[i]
		_ = s.UpsertCampaign(context.Background(), &c)
	}
}

// GetAllCampaigns returns every campaign, sorted by slug for deterministic
// iteration downstream.
func (s *Store) GetAllCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// GetCampaignBySlug returns a campaign by slug, nil when absent
func (s *Store) GetCampaignBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[slug]
	if !ok {
		return nil, nil
	}
	return s.campaigns[id], nil
}

// UpsertCampaign inserts or replaces a campaign and refreshes the
// indicator index.
func (s *Store) UpsertCampaign(ctx context.Context, c *models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	if old, ok := s.campaigns[c.ID]; ok {
		for _, ind := range old.Indicators {
			delete(s.indicatorOwner, ind.Value)
		}
	}
	s.campaigns[c.ID] = c
	s.bySlug[c.Slug] = c.ID
	for _, ind := range c.Indicators {
		s.indicatorOwner[ind.Value] = c.ID
	}
	return nil
}

// BumpCampaign increments the report count and moves last_seen forward.
// Both are monotonic: a stale seenAt never rewinds last_seen.
func (s *Store) BumpCampaign(ctx context.Context, id uuid.UUID, seenAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil
	}
	c.ReportCount++
	if seenAt.After(c.LastSeen) {
		c.LastSeen = seenAt
	}
	c.UpdatedAt = time.Now()
	return nil
}

// FindIndicatorByValue returns the campaign owning an exact indicator
// value, or nils on a miss.
func (s *Store) FindIndicatorByValue(ctx context.Context, value string) (*models.Campaign, *models.Indicator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.indicatorOwner[value]
	if !ok {
		return nil, nil, nil
	}
	c := s.campaigns[id]
	for i := range c.Indicators {
		if c.Indicators[i].Value == value {
			return c, &c.Indicators[i], nil
		}
	}
	return nil, nil, nil
}

// TouchIndicator bumps an indicator seen in a fresh report, inserting it
// when new. A value already owned by a different campaign is left alone to
// preserve the one-owner invariant.
func (s *Store) TouchIndicator(ctx context.Context, campaignID uuid.UUID, typ models.IndicatorType, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok {
		return nil
	}
	now := time.Now()

	if owner, ok := s.indicatorOwner[value]; ok {
		if owner != campaignID {
			return nil
		}
		for i := range c.Indicators {
			if c.Indicators[i].Value == value {
				c.Indicators[i].ReportCount++
				if now.After(c.Indicators[i].LastSeen) {
					c.Indicators[i].LastSeen = now
				}
				return nil
			}
		}
		return nil
	}

	c.Indicators = append(c.Indicators, models.Indicator{
		ID:          uuid.New(),
		CampaignID:  campaignID,
		Type:        typ,
		Value:       value,
		FirstSeen:   now,
		LastSeen:    now,
		ReportCount: 1,
	})
	s.indicatorOwner[value] = campaignID
	return nil
}

// GetReportsByCampaign returns the reports linked to a campaign
func (s *Store) GetReportsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.CommunityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.CommunityReport{}, s.reports[campaignID]...), nil
}

// AddReport stores a community report
func (s *Store) AddReport(ctx context.Context, r *models.CommunityReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.CampaignID != nil {
		s.reports[*r.CampaignID] = append(s.reports[*r.CampaignID], r)
	} else {
		s.reports[uuid.Nil] = append(s.reports[uuid.Nil], r)
	}
	return nil
}

// AddAlert stores a generated alert
func (s *Store) AddAlert(ctx context.Context, a *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
	return nil
}

// GetAlerts returns up to limit alerts, newest first
func (s *Store) GetAlerts(ctx context.Context, limit int) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]*models.Alert{}, s.alerts...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AddSubscriber registers a subscriber
func (s *Store) AddSubscriber(ctx context.Context, sub *models.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[sub.ID] = sub
	return nil
}

// RemoveSubscriber deletes a subscriber; false when the id was absent
func (s *Store) RemoveSubscriber(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[id]; !ok {
		return false, nil
	}
	delete(s.subscribers, id)
	return true, nil
}

// GetActiveSubscribers returns every active subscriber
func (s *Store) GetActiveSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Subscriber
	for _, sub := range s.subscribers {
		if sub.Active {
			out = append(out, sub)
		}
	}
	return out, nil
}
