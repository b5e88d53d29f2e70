package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-content/internal/cache"
	"ms-content/internal/content"
	"ms-content/internal/models"
	"ms-content/internal/slug"
)

const slugFallback = "kampanya"

type DBLayer interface {
	List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, error)
	ListPublic(ctx context.Context, filter models.CampaignFilter, now time.Time) ([]models.Campaign, error)
	ByID(ctx context.Context, id string) (*models.Campaign, error)
	PublicBySlug(ctx context.Context, slugStr string, now time.Time) (*models.Campaign, error)
	SlugTaken(ctx context.Context, slugStr string) (bool, error)
	Insert(ctx context.Context, campaign *models.Campaign) error
	UpdateColumns(ctx context.Context, id string, campaign *models.Campaign, columns ...string) error
	Delete(ctx context.Context, id string) error
	Pending(ctx context.Context, page, pageSize int) ([]models.Campaign, int64, error)
	BulkSetApproved(ctx context.Context, ids []string, approved bool) (succeeded, skipped []string, err error)
	Reorder(ctx context.Context, orderedIDs []string, featured *bool) error
}

type EventPublisher interface {
	PublishCampaignEvent(topic, action string, campaign models.Campaign) error
}

type Service struct {
	DB         DBLayer
	Events     EventPublisher
	Cache      *cache.Listing[models.Campaign]
	EventTopic string
}

func NewService(db DBLayer, events EventPublisher, listingCache *cache.Listing[models.Campaign], topic string) *Service {
	return &Service{DB: db, Events: events, Cache: listingCache, EventTopic: topic}
}

func (s *Service) List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, error) {
	return s.DB.List(ctx, filter)
}

func (s *Service) ListPublic(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, error) {
	cacheable := filter == (models.CampaignFilter{})
	if cacheable {
		if items, ok := s.Cache.Get(ctx); ok {
			return items, nil
		}
	}

	active := true
	approved := true
	filter.Active = &active
	filter.Approved = &approved

	items, err := s.DB.ListPublic(ctx, filter, time.Now())
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.Cache.Set(ctx, items)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Campaign, error) {
	return s.DB.ByID(ctx, id)
}

// GetBySlug serves the public detail page and honors the moderation gate.
func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*models.Campaign, error) {
	return s.DB.PublicBySlug(ctx, slugStr, time.Now())
}

func (s *Service) Create(ctx context.Context, req models.CampaignCreateRequest) (*models.Campaign, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", content.ErrValidation)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not precede startDate", content.ErrValidation)
	}

	uniqueSlug, err := slug.Unique(ctx, slug.Make(req.Title, slugFallback), s.DB.SlugTaken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	campaign := &models.Campaign{
		ID:               uuid.New().String(),
		Slug:             uniqueSlug,
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		ImageURL:         req.ImageURL,
		CTAURL:           req.CTAURL,
		Badges:           req.Badges,
		IsActive:         true,
		IsApproved:       !req.SubmitForApproval,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		BrandID:          req.BrandID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.DB.Insert(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.Cache.Invalidate(ctx)
	if err := s.Events.PublishCampaignEvent(s.EventTopic, "created", *campaign); err != nil {
		fmt.Printf("Kafka publish error (campaign created): %v\n", err)
	}
	return campaign, nil
}

func (s *Service) Update(ctx context.Context, id string, req models.CampaignUpdateRequest) (*models.Campaign, error) {
	campaign, err := s.DB.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasApproved := campaign.IsApproved
	columns := applyUpdate(campaign, req)
	if len(columns) == 0 {
		return campaign, nil
	}
	campaign.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	if err := s.DB.UpdateColumns(ctx, id, campaign, columns...); err != nil {
		return nil, fmt.Errorf("failed to update campaign %s: %w", id, err)
	}

	s.Cache.Invalidate(ctx)
	action := "updated"
	if !wasApproved && campaign.IsApproved {
		action = "approved"
	}
	if err := s.Events.PublishCampaignEvent(s.EventTopic, action, *campaign); err != nil {
		fmt.Printf("Kafka publish error (campaign %s): %v\n", action, err)
	}
	return campaign, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	campaign, err := s.DB.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(ctx, id); err != nil {
		return err
	}

	s.Cache.Invalidate(ctx)
	if err := s.Events.PublishCampaignEvent(s.EventTopic, "deleted", *campaign); err != nil {
		fmt.Printf("Kafka publish error (campaign deleted): %v\n", err)
	}
	return nil
}

func (s *Service) Pending(ctx context.Context, page, pageSize int) (*models.PendingPage, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.DB.Pending(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PendingPage{Items: items, Page: page, PageSize: pageSize, TotalCount: total}, nil
}

func (s *Service) BulkModerate(ctx context.Context, req models.BulkModerationRequest) (*models.BulkModerationResult, error) {
	var approved bool
	switch req.Action {
	case models.BulkActionApprove:
		approved = true
	case models.BulkActionUnapprove:
		approved = false
	default:
		return nil, fmt.Errorf("%w: action must be %q or %q", content.ErrValidation,
			models.BulkActionApprove, models.BulkActionUnapprove)
	}
	if len(req.IDs) == 0 {
		return nil, fmt.Errorf("%w: ids must not be empty", content.ErrValidation)
	}

	succeeded, skipped, err := s.DB.BulkSetApproved(ctx, req.IDs, approved)
	if err != nil {
		return nil, fmt.Errorf("bulk moderation failed: %w", err)
	}

	s.Cache.Invalidate(ctx)
	if approved {
		for _, id := range succeeded {
			if campaign, err := s.DB.ByID(ctx, id); err == nil {
				if err := s.Events.PublishCampaignEvent(s.EventTopic, "approved", *campaign); err != nil {
					fmt.Printf("Kafka publish error (campaign approved): %v\n", err)
				}
			}
		}
	}
	return &models.BulkModerationResult{Succeeded: succeeded, Skipped: skipped}, nil
}

func (s *Service) Reorder(ctx context.Context, req models.ReorderRequest) error {
	if len(req.OrderedIDs) == 0 {
		return fmt.Errorf("%w: orderedIds must not be empty", content.ErrValidation)
	}
	if err := s.DB.Reorder(ctx, req.OrderedIDs, req.Featured); err != nil {
		return fmt.Errorf("reorder failed: %w", err)
	}
	s.Cache.Invalidate(ctx)
	return nil
}

func applyUpdate(c *models.Campaign, req models.CampaignUpdateRequest) []string {
	var columns []string
	if req.Title != nil {
		c.Title = *req.Title
		columns = append(columns, "title")
	}
	if req.Description != nil {
		c.Description = *req.Description
		columns = append(columns, "description")
	}
	if req.ShortDescription != nil {
		c.ShortDescription = *req.ShortDescription
		columns = append(columns, "short_description")
	}
	if req.ImageURL != nil {
		c.ImageURL = *req.ImageURL
		columns = append(columns, "image_url")
	}
	if req.CTAURL != nil {
		c.CTAURL = *req.CTAURL
		columns = append(columns, "cta_url")
	}
	if req.Badges != nil {
		c.Badges = *req.Badges
		columns = append(columns, "badges")
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	if req.IsFeatured != nil {
		c.IsFeatured = *req.IsFeatured
		columns = append(columns, "is_featured")
	}
	if req.IsApproved != nil {
		c.IsApproved = *req.IsApproved
		columns = append(columns, "is_approved")
	}
	if req.Priority != nil {
		c.Priority = *req.Priority
		columns = append(columns, "priority")
	}
	if req.StartDate != nil {
		c.StartDate = req.StartDate
		columns = append(columns, "start_date")
	}
	if req.EndDate != nil {
		c.EndDate = req.EndDate
		columns = append(columns, "end_date")
	}
	if req.BrandID != nil {
		c.BrandID = req.BrandID
		columns = append(columns, "brand_id")
	}
	return columns
}
