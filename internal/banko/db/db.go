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
	*content.Store[models.BankoCoupon]
}

func New(bunDB *bun.DB) *DB {
	return &DB{Store: content.NewStore[models.BankoCoupon](bunDB)}
}

// List returns coupons with their matches, newest coupon date first.
func (d *DB) List(ctx context.Context, activeOnly bool) ([]models.BankoCoupon, error) {
	var coupons []models.BankoCoupon
	q := d.Bun.NewSelect().
		Model(&coupons).
		Relation("Matches", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	q = q.Order("coupon_date DESC", "priority DESC")
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return coupons, nil
}

// ByDate returns the coupons picked for one calendar day.
func (d *DB) ByDate(ctx context.Context, day time.Time) ([]models.BankoCoupon, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var coupons []models.BankoCoupon
	err := d.Bun.NewSelect().
		Model(&coupons).
		Relation("Matches", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		}).
		Where("is_active = ?", true).
		Where("coupon_date >= ?", start).
		Where("coupon_date < ?", end).
		Order("priority DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

// PublicBySlug only serves active coupons; deactivated slips read as absent
// on the public surface.
func (d *DB) PublicBySlug(ctx context.Context, slug string) (*models.BankoCoupon, error) {
	var coupon models.BankoCoupon
	err := d.Bun.NewSelect().
		Model(&coupon).
		Relation("Matches", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		}).
		Where("banko_coupon.slug = ?", slug).
		Where("banko_coupon.is_active = ?", true).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (d *DB) ByIDWithMatches(ctx context.Context, id string) (*models.BankoCoupon, error) {
	var coupon models.BankoCoupon
	err := d.Bun.NewSelect().
		Model(&coupon).
		Relation("Matches", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		}).
		Where("banko_coupon.id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// InsertWithMatches stores the coupon and its matches in one transaction.
func (d *DB) InsertWithMatches(ctx context.Context, coupon *models.BankoCoupon) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(coupon).Exec(ctx); err != nil {
			return err
		}
		if len(coupon.Matches) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&coupon.Matches).Exec(ctx)
		return err
	})
}

// ReplaceMatches swaps the full match list of a coupon atomically.
func (d *DB) ReplaceMatches(ctx context.Context, couponID string, matches []models.BankoMatch) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.BankoMatch)(nil)).
			Where("coupon_id = ?", couponID).
			Exec(ctx); err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&matches).Exec(ctx)
		return err
	})
}

// DeleteWithMatches removes the coupon and its matches together.
func (d *DB) DeleteWithMatches(ctx context.Context, id string) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.BankoMatch)(nil)).
			Where("coupon_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewDelete().
			Model((*models.BankoCoupon)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return content.ErrNotFound
		}
		return nil
	})
}
