package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"ms-content/internal/content"
	"ms-content/internal/models"
)

type DB struct {
	*content.Store[models.TelegramGroup]
}

func New(bunDB *bun.DB) *DB {
	return &DB{Store: content.NewStore[models.TelegramGroup](bunDB)}
}

func (d *DB) List(ctx context.Context, activeOnly bool) ([]models.TelegramGroup, error) {
	var groups []models.TelegramGroup
	q := d.Bun.NewSelect().Model(&groups)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	q = q.Order("is_featured DESC", "priority DESC", "member_count DESC")
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return groups, nil
}

// PublicBySlug only serves active groups; a deactivated group (and its
// invite link) reads as absent on the public surface.
func (d *DB) PublicBySlug(ctx context.Context, slug string) (*models.TelegramGroup, error) {
	var group models.TelegramGroup
	err := d.Bun.NewSelect().
		Model(&group).
		Where("slug = ?", slug).
		Where("is_active = ?", true).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}
