package seo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ms-content/internal/content"
	"ms-content/internal/models"
	"ms-content/internal/seo/db"
)

// Service keeps per-page SEO metadata. One row per page path; the path is the
// natural key and never changes after creation.
type Service struct {
	DB *db.DB
}

func NewService(d *db.DB) *Service {
	return &Service{DB: d}
}

func (s *Service) List(ctx context.Context) ([]models.SeoSetting, error) {
	return s.DB.List(ctx)
}

func (s *Service) ByPath(ctx context.Context, path string) (*models.SeoSetting, error) {
	return s.DB.ByPath(ctx, path)
}

func (s *Service) Create(ctx context.Context, req models.SeoSettingCreateRequest) (*models.SeoSetting, error) {
	if !strings.HasPrefix(req.PagePath, "/") {
		return nil, fmt.Errorf("%w: pagePath must start with /", content.ErrValidation)
	}
	taken, err := s.DB.PathTaken(ctx, req.PagePath)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: pagePath %q already configured", content.ErrValidation, req.PagePath)
	}

	now := time.Now()
	setting := &models.SeoSetting{
		ID:             uuid.New().String(),
		PagePath:       req.PagePath,
		Title:          req.Title,
		Description:    req.Description,
		Keywords:       req.Keywords,
		CanonicalURL:   req.CanonicalURL,
		OGImageURL:     req.OGImageURL,
		StructuredData: req.StructuredData,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.DB.Insert(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to create seo setting: %w", err)
	}
	return setting, nil
}

func (s *Service) Update(ctx context.Context, id string, req models.SeoSettingUpdateRequest) (*models.SeoSetting, error) {
	setting, err := s.DB.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var columns []string
	if req.Title != nil {
		setting.Title = *req.Title
		columns = append(columns, "title")
	}
	if req.Description != nil {
		setting.Description = *req.Description
		columns = append(columns, "description")
	}
	if req.Keywords != nil {
		setting.Keywords = *req.Keywords
		columns = append(columns, "keywords")
	}
	if req.CanonicalURL != nil {
		setting.CanonicalURL = *req.CanonicalURL
		columns = append(columns, "canonical_url")
	}
	if req.OGImageURL != nil {
		setting.OGImageURL = *req.OGImageURL
		columns = append(columns, "og_image_url")
	}
	if req.StructuredData != nil {
		setting.StructuredData = *req.StructuredData
		columns = append(columns, "structured_data")
	}
	if len(columns) == 0 {
		return setting, nil
	}
	setting.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	if err := s.DB.UpdateColumns(ctx, id, setting, columns...); err != nil {
		return nil, fmt.Errorf("failed to update seo setting %s: %w", id, err)
	}
	return setting, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.Delete(ctx, id)
}
