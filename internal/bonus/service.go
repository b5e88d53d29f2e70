package bonus

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

const slugFallback = "bonus"

type DBLayer interface {
	List(ctx context.Context, filter models.BonusFilter) ([]models.Bonus, error)
	ListPublic(ctx context.Context, filter models.BonusFilter, now time.Time) ([]models.Bonus, error)
	ByID(ctx context.Context, id string) (*models.Bonus, error)
	PublicBySlug(ctx context.Context, slugStr string, now time.Time) (*models.Bonus, error)
	SlugTaken(ctx context.Context, slugStr string) (bool, error)
	Insert(ctx context.Context, bonus *models.Bonus) error
	UpdateColumns(ctx context.Context, id string, bonus *models.Bonus, columns ...string) error
	Delete(ctx context.Context, id string) error
	Pending(ctx context.Context, page, pageSize int) ([]models.Bonus, int64, error)
	BulkSetApproved(ctx context.Context, ids []string, approved bool) (succeeded, skipped []string, err error)
	Reorder(ctx context.Context, orderedIDs []string, featured *bool) error
	IncrementClicks(ctx context.Context, id string) error
}

type EventPublisher interface {
	PublishBonusEvent(topic, action string, bonus models.Bonus) error
}

type Service struct {
	DB         DBLayer
	Events     EventPublisher
	Cache      *cache.Listing[models.Bonus]
	EventTopic string
}

func NewService(db DBLayer, events EventPublisher, listingCache *cache.Listing[models.Bonus], topic string) *Service {
	return &Service{DB: db, Events: events, Cache: listingCache, EventTopic: topic}
}

// List serves the admin surface: no approval default, caller controls every
// filter.
func (s *Service) List(ctx context.Context, filter models.BonusFilter) ([]models.Bonus, error) {
	return s.DB.List(ctx, filter)
}

// ListPublic serves the site: approved and active only, expired rows dropped.
// The unfiltered call goes through the Redis listing cache.
func (s *Service) ListPublic(ctx context.Context, filter models.BonusFilter) ([]models.Bonus, error) {
	cacheable := filter == (models.BonusFilter{})
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

func (s *Service) Get(ctx context.Context, id string) (*models.Bonus, error) {
	return s.DB.ByID(ctx, id)
}

// GetBySlug serves the public detail page and honors the moderation gate.
func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*models.Bonus, error) {
	return s.DB.PublicBySlug(ctx, slugStr, time.Now())
}

func (s *Service) Create(ctx context.Context, req models.BonusCreateRequest) (*models.Bonus, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", content.ErrValidation)
	}
	if req.Amount < 0 || req.Wager < 0 || req.MinDeposit < 0 {
		return nil, fmt.Errorf("%w: amount, wager and minDeposit must not be negative", content.ErrValidation)
	}

	uniqueSlug, err := slug.Unique(ctx, slug.Make(req.Title, slugFallback), s.DB.SlugTaken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bonus := &models.Bonus{
		ID:               uuid.New().String(),
		Slug:             uniqueSlug,
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		BonusType:        req.BonusType,
		GameCategory:     req.GameCategory,
		Amount:           req.Amount,
		Wager:            req.Wager,
		MinDeposit:       req.MinDeposit,
		ImageURL:         req.ImageURL,
		PostImageURL:     req.PostImageURL,
		CTAURL:           req.CTAURL,
		Badges:           req.Badges,
		Features:         req.Features,
		IsActive:         true,
		IsFeatured:       false,
		IsApproved:       !req.SubmitForApproval,
		Priority:         0,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		BrandID:          req.BrandID,
		CreatedByLoginID: req.CreatedByLoginID,
		CreatedByName:    req.CreatedByName,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.DB.Insert(ctx, bonus); err != nil {
		return nil, fmt.Errorf("failed to create bonus: %w", err)
	}

	s.Cache.Invalidate(ctx)
	if err := s.Events.PublishBonusEvent(s.EventTopic, "created", *bonus); err != nil {
		fmt.Printf("Kafka publish error (bonus created): %v\n", err)
	}

	return bonus, nil
}

// Update applies only the supplied fields. The slug is never recomputed, even
// when the title changes.
func (s *Service) Update(ctx context.Context, id string, req models.BonusUpdateRequest) (*models.Bonus, error) {
	bonus, err := s.DB.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasApproved := bonus.IsApproved
	columns := applyUpdate(bonus, req)
	if len(columns) == 0 {
		return bonus, nil
	}
	bonus.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	if err := s.DB.UpdateColumns(ctx, id, bonus, columns...); err != nil {
		return nil, fmt.Errorf("failed to update bonus %s: %w", id, err)
	}

	s.Cache.Invalidate(ctx)
	action := "updated"
	if !wasApproved && bonus.IsApproved {
		action = "approved"
	}
	if err := s.Events.PublishBonusEvent(s.EventTopic, action, *bonus); err != nil {
		fmt.Printf("Kafka publish error (bonus %s): %v\n", action, err)
	}

	return bonus, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	bonus, err := s.DB.ByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.DB.Delete(ctx, id); err != nil {
		return err
	}

	s.Cache.Invalidate(ctx)
	if err := s.Events.PublishBonusEvent(s.EventTopic, "deleted", *bonus); err != nil {
		fmt.Printf("Kafka publish error (bonus deleted): %v\n", err)
	}
	return nil
}

// Pending pages the moderation queue, oldest submission first.
func (s *Service) Pending(ctx context.Context, page, pageSize int) (*models.PendingPage, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.DB.Pending(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PendingPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}, nil
}

// BulkModerate flips is_approved across an id list with partial success.
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
			if bonus, err := s.DB.ByID(ctx, id); err == nil {
				if err := s.Events.PublishBonusEvent(s.EventTopic, "approved", *bonus); err != nil {
					fmt.Printf("Kafka publish error (bonus approved): %v\n", err)
				}
			}
		}
	}

	return &models.BulkModerationResult{Succeeded: succeeded, Skipped: skipped}, nil
}

// Reorder persists a full drag-and-drop result atomically.
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

// RecordClick bumps the CTA click counter; best-effort, no auth.
func (s *Service) RecordClick(ctx context.Context, id string) error {
	return s.DB.IncrementClicks(ctx, id)
}

func applyUpdate(b *models.Bonus, req models.BonusUpdateRequest) []string {
	var columns []string
	if req.Title != nil {
		b.Title = *req.Title
		columns = append(columns, "title")
	}
	if req.Description != nil {
		b.Description = *req.Description
		columns = append(columns, "description")
	}
	if req.ShortDescription != nil {
		b.ShortDescription = *req.ShortDescription
		columns = append(columns, "short_description")
	}
	if req.BonusType != nil {
		b.BonusType = *req.BonusType
		columns = append(columns, "bonus_type")
	}
	if req.GameCategory != nil {
		b.GameCategory = *req.GameCategory
		columns = append(columns, "game_category")
	}
	if req.Amount != nil {
		b.Amount = *req.Amount
		columns = append(columns, "amount")
	}
	if req.Wager != nil {
		b.Wager = *req.Wager
		columns = append(columns, "wager")
	}
	if req.MinDeposit != nil {
		b.MinDeposit = *req.MinDeposit
		columns = append(columns, "min_deposit")
	}
	if req.ImageURL != nil {
		b.ImageURL = *req.ImageURL
		columns = append(columns, "image_url")
	}
	if req.PostImageURL != nil {
		b.PostImageURL = *req.PostImageURL
		columns = append(columns, "post_image_url")
	}
	if req.CTAURL != nil {
		b.CTAURL = *req.CTAURL
		columns = append(columns, "cta_url")
	}
	if req.Badges != nil {
		b.Badges = *req.Badges
		columns = append(columns, "badges")
	}
	if req.Features != nil {
		b.Features = *req.Features
		columns = append(columns, "features")
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	if req.IsFeatured != nil {
		b.IsFeatured = *req.IsFeatured
		columns = append(columns, "is_featured")
	}
	if req.IsApproved != nil {
		b.IsApproved = *req.IsApproved
		columns = append(columns, "is_approved")
	}
	if req.Priority != nil {
		b.Priority = *req.Priority
		columns = append(columns, "priority")
	}
	if req.StartDate != nil {
		b.StartDate = req.StartDate
		columns = append(columns, "start_date")
	}
	if req.EndDate != nil {
		b.EndDate = req.EndDate
		columns = append(columns, "end_date")
	}
	if req.BrandID != nil {
		b.BrandID = req.BrandID
		columns = append(columns, "brand_id")
	}
	return columns
}
