package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"ms-content/internal/content"
	"ms-content/internal/models"
)

// DB carries two stores: one for the reviewed brands, one for the reviews
// themselves.
type DB struct {
	Brands  *content.Store[models.ReviewBrand]
	Reviews *content.Store[models.SiteReview]
}

func New(bunDB *bun.DB) *DB {
	return &DB{
		Brands:  content.NewStore[models.ReviewBrand](bunDB),
		Reviews: content.NewStore[models.SiteReview](bunDB),
	}
}

func (d *DB) ListBrands(ctx context.Context, activeOnly bool) ([]models.ReviewBrand, error) {
	var brands []models.ReviewBrand
	q := d.Brands.Bun.NewSelect().Model(&brands)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	q = q.Order("priority DESC", "created_at DESC")
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return brands, nil
}

func (d *DB) BrandByID(ctx context.Context, id string) (*models.ReviewBrand, error) {
	return d.Brands.ByID(ctx, id)
}

func (d *DB) BrandBySlug(ctx context.Context, slug string) (*models.ReviewBrand, error) {
	var brand models.ReviewBrand
	err := d.Brands.Bun.NewSelect().
		Model(&brand).
		Where("slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (d *DB) BrandSlugTaken(ctx context.Context, slug string) (bool, error) {
	return d.Brands.SlugTaken(ctx, slug)
}

func (d *DB) InsertBrand(ctx context.Context, brand *models.ReviewBrand) error {
	return d.Brands.Insert(ctx, brand)
}

func (d *DB) UpdateBrandColumns(ctx context.Context, id string, brand *models.ReviewBrand, columns ...string) error {
	return d.Brands.UpdateColumns(ctx, id, brand, columns...)
}

func (d *DB) DeleteBrand(ctx context.Context, id string) error {
	return d.Brands.Delete(ctx, id)
}

func (d *DB) ReviewByID(ctx context.Context, id string) (*models.SiteReview, error) {
	return d.Reviews.ByID(ctx, id)
}

func (d *DB) InsertReview(ctx context.Context, review *models.SiteReview) error {
	return d.Reviews.Insert(ctx, review)
}

func (d *DB) DeleteReview(ctx context.Context, id string) error {
	return d.Reviews.Delete(ctx, id)
}

// ApprovedByBrand lists the publicly visible reviews of a brand, newest first.
func (d *DB) ApprovedByBrand(ctx context.Context, brandID string) ([]models.SiteReview, error) {
	var reviews []models.SiteReview
	err := d.Reviews.Bun.NewSelect().
		Model(&reviews).
		Where("brand_id = ?", brandID).
		Where("status = ?", models.ReviewStatusApproved).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (d *DB) PendingReviews(ctx context.Context, page, pageSize int) ([]models.SiteReview, int64, error) {
	var reviews []models.SiteReview
	total, err := d.Reviews.Bun.NewSelect().
		Model(&reviews).
		Where("status = ?", models.ReviewStatusPending).
		Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return reviews, int64(total), nil
}

// BulkSetStatus moves reviews out of the pending state only; approving an
// already rejected review requires a fresh submission.
func (d *DB) BulkSetStatus(ctx context.Context, ids []string, status string) ([]string, []string, error) {
	return d.Reviews.BulkSetStatus(ctx, ids, "status", status, models.ReviewStatusPending)
}

// AddVote bumps one of the two counters.
func (d *DB) AddVote(ctx context.Context, id string, up bool) error {
	column := "down_votes"
	if up {
		column = "up_votes"
	}
	res, err := d.Reviews.Bun.NewUpdate().
		Model((*models.SiteReview)(nil)).
		Set("? = ? + 1", bun.Ident(column), bun.Ident(column)).
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
