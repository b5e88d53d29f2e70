package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"ms-content/internal/content"
	"ms-content/internal/models"
)

type DB struct {
	Slides *content.Store[models.CarouselSlide]
	Logos  *content.Store[models.MarqueeLogo]
}

func New(bunDB *bun.DB) *DB {
	return &DB{
		Slides: content.NewStore[models.CarouselSlide](bunDB),
		Logos:  content.NewStore[models.MarqueeLogo](bunDB),
	}
}

func (d *DB) ListSlides(ctx context.Context, activeOnly bool, now time.Time) ([]models.CarouselSlide, error) {
	var slides []models.CarouselSlide
	q := d.Slides.Bun.NewSelect().Model(&slides)
	if activeOnly {
		q = q.Where("is_active = ?", true).
			WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("start_date IS NULL").WhereOr("start_date <= ?", now)
			}).
			WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("end_date IS NULL").WhereOr("end_date >= ?", now)
			})
	}
	q = q.Order("priority DESC", "created_at DESC")
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return slides, nil
}

func (d *DB) ListLogos(ctx context.Context, activeOnly bool) ([]models.MarqueeLogo, error) {
	var logos []models.MarqueeLogo
	q := d.Logos.Bun.NewSelect().Model(&logos)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	q = q.Order("priority DESC", "created_at DESC")
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return logos, nil
}
