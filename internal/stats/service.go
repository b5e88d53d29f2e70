package stats

import (
	"context"

	"github.com/uptrace/bun"
)

// Service aggregates content metrics for the admin dashboard straight off the
// database; nothing here is cached.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// ContentOverview is the dashboard headline block.
type ContentOverview struct {
	TotalBonuses     int `json:"totalBonuses"`
	ActiveBonuses    int `json:"activeBonuses"`
	PendingBonuses   int `json:"pendingBonuses"`
	TotalCampaigns   int `json:"totalCampaigns"`
	PendingCampaigns int `json:"pendingCampaigns"`
	PendingReviews   int `json:"pendingReviews"`
	TotalClicks      int `json:"totalClicks"`
}

// TypeClickMetrics groups CTA clicks by bonus type.
type TypeClickMetrics struct {
	BonusType   string `bun:"bonus_type" json:"bonusType"`
	BonusCount  int    `bun:"bonus_count" json:"bonusCount"`
	TotalClicks int    `bun:"total_clicks" json:"totalClicks"`
}

// TopBonusMetrics is one row of the most-clicked ranking.
type TopBonusMetrics struct {
	ID          string `bun:"id" json:"id"`
	Slug        string `bun:"slug" json:"slug"`
	Title       string `bun:"title" json:"title"`
	BonusType   string `bun:"bonus_type" json:"bonusType"`
	ClickCount  int    `bun:"click_count" json:"clickCount"`
	IsFeatured  bool   `bun:"is_featured" json:"isFeatured"`
}

// Overview collects the headline counters.
func (s *Service) Overview(ctx context.Context) (*ContentOverview, error) {
	overview := &ContentOverview{}

	queries := []struct {
		dest *int
		sql  string
	}{
		{&overview.TotalBonuses, "SELECT COUNT(*) FROM bonuses"},
		{&overview.ActiveBonuses, "SELECT COUNT(*) FROM bonuses WHERE is_active = TRUE AND is_approved = TRUE"},
		{&overview.PendingBonuses, "SELECT COUNT(*) FROM bonuses WHERE is_approved = FALSE"},
		{&overview.TotalCampaigns, "SELECT COUNT(*) FROM campaigns"},
		{&overview.PendingCampaigns, "SELECT COUNT(*) FROM campaigns WHERE is_approved = FALSE"},
		{&overview.PendingReviews, "SELECT COUNT(*) FROM site_reviews WHERE status = 'pending'"},
		{&overview.TotalClicks, "SELECT COALESCE(SUM(click_count), 0) FROM bonuses"},
	}
	for _, q := range queries {
		if err := s.db.NewRaw(q.sql).Scan(ctx, q.dest); err != nil {
			return nil, err
		}
	}
	return overview, nil
}

// ClicksByType breaks CTA clicks down by bonus type, busiest type first.
func (s *Service) ClicksByType(ctx context.Context) ([]TypeClickMetrics, error) {
	var metrics []TypeClickMetrics
	err := s.db.NewRaw(`
		SELECT
			bonus_type,
			COUNT(*) AS bonus_count,
			COALESCE(SUM(click_count), 0) AS total_clicks
		FROM
			bonuses
		GROUP BY
			bonus_type
		ORDER BY
			total_clicks DESC
	`).Scan(ctx, &metrics)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

// TopBonuses ranks bonuses by CTA clicks.
func (s *Service) TopBonuses(ctx context.Context, limit int) ([]TopBonusMetrics, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var metrics []TopBonusMetrics
	err := s.db.NewRaw(`
		SELECT
			id, slug, title, bonus_type, click_count, is_featured
		FROM
			bonuses
		WHERE
			click_count > 0
		ORDER BY
			click_count DESC
		LIMIT ?
	`, limit).Scan(ctx, &metrics)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
