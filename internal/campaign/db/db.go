package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"ms-content/internal/content"
	"ms-content/internal/models"
)

type DB struct {
	*content.Store[models.Campaign]
}

func New(bunDB *bun.DB) *DB {
	return &DB{Store: content.NewStore[models.Campaign](bunDB)}
}

func (d *DB) List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	q := applyFilter(d.Bun.NewSelect().Model(&campaigns), filter)
	q = q.Order("is_featured DESC", "priority DESC", "created_at DESC")
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (d *DB) ListPublic(ctx context.Context, filter models.CampaignFilter, now time.Time) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	q := applyFilter(d.Bun.NewSelect().Model(&campaigns), filter)
	q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("end_date IS NULL").WhereOr("end_date >= ?", now)
	})
	q = q.Order("is_featured DESC", "priority DESC", "created_at DESC")
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// PublicBySlug applies the listing's moderation gate to the detail read:
// pending, deactivated and expired campaigns read as absent.
func (d *DB) PublicBySlug(ctx context.Context, slug string, now time.Time) (*models.Campaign, error) {
	var campaign models.Campaign
	err := d.Bun.NewSelect().
		Model(&campaign).
		Where("slug = ?", slug).
		Where("is_approved = ?", true).
		Where("is_active = ?", true).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("end_date IS NULL").WhereOr("end_date >= ?", now)
		}).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (d *DB) Pending(ctx context.Context, page, pageSize int) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	total, err := d.Bun.NewSelect().
		Model(&campaigns).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return campaigns, int64(total), nil
}

func (d *DB) BulkSetApproved(ctx context.Context, ids []string, approved bool) ([]string, []string, error) {
	return d.BulkSetBool(ctx, ids, "is_approved", approved)
}

func applyFilter(q *bun.SelectQuery, filter models.CampaignFilter) *bun.SelectQuery {
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(title) LIKE LOWER(?)", pattern).
				WhereOr("LOWER(slug) LIKE LOWER(?)", pattern)
		})
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Approved != nil {
		q = q.Where("is_approved = ?", *filter.Approved)
	} else {
		q = q.Where("is_approved = ?", true)
	}
	return q
}
