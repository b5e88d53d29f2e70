package display

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-content/internal/content"
	"ms-content/internal/display/db"
	"ms-content/internal/models"
	"ms-content/internal/slug"
)

// Service manages the two presentational strips of the landing page: the hero
// carousel and the partner-logo marquee.
type Service struct {
	DB *db.DB
}

func NewService(d *db.DB) *Service {
	return &Service{DB: d}
}

func (s *Service) ListSlides(ctx context.Context, activeOnly bool) ([]models.CarouselSlide, error) {
	return s.DB.ListSlides(ctx, activeOnly, time.Now())
}

func (s *Service) CreateSlide(ctx context.Context, req models.SlideCreateRequest) (*models.CarouselSlide, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", content.ErrValidation)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not precede startDate", content.ErrValidation)
	}

	uniqueSlug, err := slug.Unique(ctx, slug.Make(req.Title, "slayt"), s.DB.Slides.SlugTaken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	slide := &models.CarouselSlide{
		ID:        uuid.New().String(),
		Slug:      uniqueSlug,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		ImageURL:  req.ImageURL,
		CTAURL:    req.CTAURL,
		IsActive:  true,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.DB.Slides.Insert(ctx, slide); err != nil {
		return nil, fmt.Errorf("failed to create slide: %w", err)
	}
	return slide, nil
}

func (s *Service) UpdateSlide(ctx context.Context, id string, req models.SlideUpdateRequest) (*models.CarouselSlide, error) {
	slide, err := s.DB.Slides.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var columns []string
	if req.Title != nil {
		slide.Title = *req.Title
		columns = append(columns, "title")
	}
	if req.Subtitle != nil {
		slide.Subtitle = *req.Subtitle
		columns = append(columns, "subtitle")
	}
	if req.ImageURL != nil {
		slide.ImageURL = *req.ImageURL
		columns = append(columns, "image_url")
	}
	if req.CTAURL != nil {
		slide.CTAURL = *req.CTAURL
		columns = append(columns, "cta_url")
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	if req.Priority != nil {
		slide.Priority = *req.Priority
		columns = append(columns, "priority")
	}
	if req.StartDate != nil {
		slide.StartDate = req.StartDate
		columns = append(columns, "start_date")
	}
	if req.EndDate != nil {
		slide.EndDate = req.EndDate
		columns = append(columns, "end_date")
	}
	if len(columns) == 0 {
		return slide, nil
	}
	slide.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	if err := s.DB.Slides.UpdateColumns(ctx, id, slide, columns...); err != nil {
		return nil, fmt.Errorf("failed to update slide %s: %w", id, err)
	}
	return slide, nil
}

func (s *Service) DeleteSlide(ctx context.Context, id string) error {
	return s.DB.Slides.Delete(ctx, id)
}

// ReorderSlides persists a drag-and-drop result; the carousel has no featured
// group, so the flag is never flipped here.
func (s *Service) ReorderSlides(ctx context.Context, req models.ReorderRequest) error {
	if len(req.OrderedIDs) == 0 {
		return fmt.Errorf("%w: orderedIds must not be empty", content.ErrValidation)
	}
	return s.DB.Slides.Reorder(ctx, req.OrderedIDs, nil)
}

func (s *Service) ListLogos(ctx context.Context, activeOnly bool) ([]models.MarqueeLogo, error) {
	return s.DB.ListLogos(ctx, activeOnly)
}

func (s *Service) CreateLogo(ctx context.Context, req models.LogoCreateRequest) (*models.MarqueeLogo, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", content.ErrValidation)
	}
	if req.ImageURL == "" {
		return nil, fmt.Errorf("%w: imageUrl is required", content.ErrValidation)
	}

	uniqueSlug, err := slug.Unique(ctx, slug.Make(req.Name, "logo"), s.DB.Logos.SlugTaken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	logo := &models.MarqueeLogo{
		ID:        uuid.New().String(),
		Slug:      uniqueSlug,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.DB.Logos.Insert(ctx, logo); err != nil {
		return nil, fmt.Errorf("failed to create logo: %w", err)
	}
	return logo, nil
}

func (s *Service) UpdateLogo(ctx context.Context, id string, req models.LogoUpdateRequest) (*models.MarqueeLogo, error) {
	logo, err := s.DB.Logos.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var columns []string
	if req.Name != nil {
		logo.Name = *req.Name
		columns = append(columns, "name")
	}
	if req.ImageURL != nil {
		logo.ImageURL = *req.ImageURL
		columns = append(columns, "image_url")
	}
	if req.LinkURL != nil {
		logo.LinkURL = *req.LinkURL
		columns = append(columns, "link_url")
	}
	if req.IsActive != nil {
		logo.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	if req.Priority != nil {
		logo.Priority = *req.Priority
		columns = append(columns, "priority")
	}
	if len(columns) == 0 {
		return logo, nil
	}
	logo.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	if err := s.DB.Logos.UpdateColumns(ctx, id, logo, columns...); err != nil {
		return nil, fmt.Errorf("failed to update logo %s: %w", id, err)
	}
	return logo, nil
}

func (s *Service) DeleteLogo(ctx context.Context, id string) error {
	return s.DB.Logos.Delete(ctx, id)
}

func (s *Service) ReorderLogos(ctx context.Context, req models.ReorderRequest) error {
	if len(req.OrderedIDs) == 0 {
		return fmt.Errorf("%w: orderedIds must not be empty", content.ErrValidation)
	}
	return s.DB.Logos.Reorder(ctx, req.OrderedIDs, nil)
}
