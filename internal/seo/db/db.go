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
	*content.Store[models.SeoSetting]
}

func New(bunDB *bun.DB) *DB {
	return &DB{Store: content.NewStore[models.SeoSetting](bunDB)}
}

func (d *DB) List(ctx context.Context) ([]models.SeoSetting, error) {
	var settings []models.SeoSetting
	err := d.Bun.NewSelect().
		Model(&settings).
		Order("page_path ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (d *DB) ByPath(ctx context.Context, path string) (*models.SeoSetting, error) {
	var setting models.SeoSetting
	err := d.Bun.NewSelect().
		Model(&setting).
		Where("page_path = ?", path).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (d *DB) PathTaken(ctx context.Context, path string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.SeoSetting)(nil)).
		Where("page_path = ?", path).
		Exists(ctx)
}
