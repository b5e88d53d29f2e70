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

// DB layers the bonus-specific queries over the shared content store.
type DB struct {
	*content.Store[models.Bonus]
}

func New(bunDB *bun.DB) *DB {
	return &DB{Store: content.NewStore[models.Bonus](bunDB)}
}

// List serves the admin surface. A nil Approved filter defaults to approved
// rows only; pending items must be asked for explicitly.
func (d *DB) List(ctx context.Context, filter models.BonusFilter) ([]models.Bonus, error) {
	var bonuses []models.Bonus
	q := d.Bun.NewSelect().Model(&bonuses)
	q = applyFilter(q, filter)
	q = defaultOrder(q)
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return bonuses, nil
}

// ListPublic additionally drops expired rows.
func (d *DB) ListPublic(ctx context.Context, filter models.BonusFilter, now time.Time) ([]models.Bonus, error) {
	var bonuses []models.Bonus
	q := d.Bun.NewSelect().Model(&bonuses)
	q = applyFilter(q, filter)
	q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("end_date IS NULL").WhereOr("end_date >= ?", now)
	})
	q = defaultOrder(q)
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return bonuses, nil
}

// PublicBySlug is the site detail read. The same moderation gate as the
// public listing applies: pending, deactivated and expired rows read as
// absent, so a guessable slug leaks nothing.
func (d *DB) PublicBySlug(ctx context.Context, slug string, now time.Time) (*models.Bonus, error) {
	var bonus models.Bonus
	err := d.Bun.NewSelect().
		Model(&bonus).
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
	return &bonus, nil
}

// Pending pages the moderation queue, oldest first so nothing starves.
func (d *DB) Pending(ctx context.Context, page, pageSize int) ([]models.Bonus, int64, error) {
	var bonuses []models.Bonus
	total, err := d.Bun.NewSelect().
		Model(&bonuses).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return bonuses, int64(total), nil
}

func (d *DB) BulkSetApproved(ctx context.Context, ids []string, approved bool) ([]string, []string, error) {
	return d.BulkSetBool(ctx, ids, "is_approved", approved)
}

func (d *DB) IncrementClicks(ctx context.Context, id string) error {
	res, err := d.Bun.NewUpdate().
		Model((*models.Bonus)(nil)).
		Set("click_count = click_count + 1").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return content.ErrNotFound
	}
	return nil
}

func applyFilter(q *bun.SelectQuery, filter models.BonusFilter) *bun.SelectQuery {
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(title) LIKE LOWER(?)", pattern).
				WhereOr("LOWER(slug) LIKE LOWER(?)", pattern)
		})
	}
	if filter.BonusType != "" {
		q = q.Where("bonus_type = ?", filter.BonusType)
	}
	if filter.GameCategory != "" {
		q = q.Where("game_category = ?", filter.GameCategory)
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
		// Moderation gate: unapproved rows are invisible unless asked for.
		q = q.Where("is_approved = ?", true)
	}
	if filter.MinAmount != nil {
		q = q.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		q = q.Where("amount <= ?", *filter.MaxAmount)
	}
	return q
}

func defaultOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("is_featured DESC", "priority DESC", "created_at DESC")
}
