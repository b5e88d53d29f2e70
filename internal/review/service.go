package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-content/internal/content"
	"ms-content/internal/models"
	"ms-content/internal/slug"
)

const brandSlugFallback = "marka"

type DBLayer interface {
	ListBrands(ctx context.Context, activeOnly bool) ([]models.ReviewBrand, error)
	BrandByID(ctx context.Context, id string) (*models.ReviewBrand, error)
	BrandBySlug(ctx context.Context, slugStr string) (*models.ReviewBrand, error)
	BrandSlugTaken(ctx context.Context, slugStr string) (bool, error)
	InsertBrand(ctx context.Context, brand *models.ReviewBrand) error
	UpdateBrandColumns(ctx context.Context, id string, brand *models.ReviewBrand, columns ...string) error
	DeleteBrand(ctx context.Context, id string) error

	ReviewByID(ctx context.Context, id string) (*models.SiteReview, error)
	InsertReview(ctx context.Context, review *models.SiteReview) error
	DeleteReview(ctx context.Context, id string) error
	ApprovedByBrand(ctx context.Context, brandID string) ([]models.SiteReview, error)
	PendingReviews(ctx context.Context, page, pageSize int) ([]models.SiteReview, int64, error)
	BulkSetStatus(ctx context.Context, ids []string, status string) (succeeded, skipped []string, err error)
	AddVote(ctx context.Context, id string, up bool) error
}

// VoteGate is the per-caller rate limiter in front of trust votes.
type VoteGate interface {
	Claim(ctx context.Context, reviewID, callerID string) (bool, error)
	Release(ctx context.Context, reviewID, callerID string) error
}

type EventPublisher interface {
	PublishReviewEvent(topic, action string, review models.SiteReview) error
}

type Service struct {
	DB         DBLayer
	Votes      VoteGate
	Events     EventPublisher
	EventTopic string
}

func NewService(db DBLayer, votes VoteGate, events EventPublisher, topic string) *Service {
	return &Service{DB: db, Votes: votes, Events: events, EventTopic: topic}
}

func (s *Service) ListBrands(ctx context.Context, activeOnly bool) ([]models.ReviewBrand, error) {
	return s.DB.ListBrands(ctx, activeOnly)
}

func (s *Service) BrandBySlug(ctx context.Context, slugStr string) (*models.ReviewBrand, error) {
	return s.DB.BrandBySlug(ctx, slugStr)
}

func (s *Service) CreateBrand(ctx context.Context, req models.BrandCreateRequest) (*models.ReviewBrand, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", content.ErrValidation)
	}
	if req.Display.HeroSlot < 0 || req.Display.HeroSlot > 3 {
		return nil, fmt.Errorf("%w: heroSlot must be between 0 and 3", content.ErrValidation)
	}

	uniqueSlug, err := slug.Unique(ctx, slug.Make(req.Name, brandSlugFallback), s.DB.BrandSlugTaken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	brand := &models.ReviewBrand{
		ID:        uuid.New().String(),
		Slug:      uniqueSlug,
		Name:      req.Name,
		LogoURL:   req.LogoURL,
		SiteURL:   req.SiteURL,
		Display:   req.Display,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.DB.InsertBrand(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

func (s *Service) UpdateBrand(ctx context.Context, id string, req models.BrandUpdateRequest) (*models.ReviewBrand, error) {
	brand, err := s.DB.BrandByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Display != nil && (req.Display.HeroSlot < 0 || req.Display.HeroSlot > 3) {
		return nil, fmt.Errorf("%w: heroSlot must be between 0 and 3", content.ErrValidation)
	}

	var columns []string
	if req.Name != nil {
		brand.Name = *req.Name
		columns = append(columns, "name")
	}
	if req.LogoURL != nil {
		brand.LogoURL = *req.LogoURL
		columns = append(columns, "logo_url")
	}
	if req.SiteURL != nil {
		brand.SiteURL = *req.SiteURL
		columns = append(columns, "site_url")
	}
	if req.Display != nil {
		brand.Display = *req.Display
		columns = append(columns, "display")
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	if req.Priority != nil {
		brand.Priority = *req.Priority
		columns = append(columns, "priority")
	}
	if len(columns) == 0 {
		return brand, nil
	}
	brand.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	if err := s.DB.UpdateBrandColumns(ctx, id, brand, columns...); err != nil {
		return nil, fmt.Errorf("failed to update brand %s: %w", id, err)
	}
	return brand, nil
}

func (s *Service) DeleteBrand(ctx context.Context, id string) error {
	return s.DB.DeleteBrand(ctx, id)
}

// Submit files a visitor review. Every submission enters the moderation
// queue; nothing goes public without an approval.
func (s *Service) Submit(ctx context.Context, req models.ReviewCreateRequest) (*models.SiteReview, error) {
	if req.BrandID == "" {
		return nil, fmt.Errorf("%w: brandId is required", content.ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", content.ErrValidation)
	}
	if _, err := s.DB.BrandByID(ctx, req.BrandID); err != nil {
		return nil, err
	}

	now := time.Now()
	review := &models.SiteReview{
		ID:         uuid.New().String(),
		BrandID:    req.BrandID,
		AuthorName: req.AuthorName,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Status:     models.ReviewStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.DB.InsertReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	if err := s.Events.PublishReviewEvent(s.EventTopic, "created", *review); err != nil {
		fmt.Printf("Kafka publish error (review created): %v\n", err)
	}
	return review, nil
}

// ApprovedByBrand lists a brand's public reviews with the trust share filled
// in.
func (s *Service) ApprovedByBrand(ctx context.Context, brandID string) ([]models.SiteReview, error) {
	reviews, err := s.DB.ApprovedByBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].Trust = reviews[i].TrustPercent()
	}
	return reviews, nil
}

func (s *Service) Pending(ctx context.Context, page, pageSize int) (*models.PendingPage, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.DB.PendingReviews(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PendingPage{Items: items, Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Moderate resolves pending reviews. Approve and reject both act only on
// reviews still in the pending state; anything else lands in skipped.
func (s *Service) Moderate(ctx context.Context, req models.BulkModerationRequest) (*models.BulkModerationResult, error) {
	var status string
	switch req.Action {
	case models.BulkActionApprove:
		status = models.ReviewStatusApproved
	case models.BulkActionReject:
		status = models.ReviewStatusRejected
	default:
		return nil, fmt.Errorf("%w: action must be %q or %q", content.ErrValidation,
			models.BulkActionApprove, models.BulkActionReject)
	}
	if len(req.IDs) == 0 {
		return nil, fmt.Errorf("%w: ids must not be empty", content.ErrValidation)
	}

	succeeded, skipped, err := s.DB.BulkSetStatus(ctx, req.IDs, status)
	if err != nil {
		return nil, fmt.Errorf("review moderation failed: %w", err)
	}

	action := "approved"
	if status == models.ReviewStatusRejected {
		action = "rejected"
	}
	for _, id := range succeeded {
		if review, err := s.DB.ReviewByID(ctx, id); err == nil {
			if err := s.Events.PublishReviewEvent(s.EventTopic, action, *review); err != nil {
				fmt.Printf("Kafka publish error (review %s): %v\n", action, err)
			}
		}
	}
	return &models.BulkModerationResult{Succeeded: succeeded, Skipped: skipped}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.DeleteReview(ctx, id)
}

// Vote casts a trust vote on an approved review, one per caller per window.
// The Redis claim is released if the DB write fails, so a transient failure
// does not burn the caller's vote.
func (s *Service) Vote(ctx context.Context, reviewID, callerID, direction string) (*models.SiteReview, error) {
	var up bool
	switch direction {
	case "up":
		up = true
	case "down":
		up = false
	default:
		return nil, fmt.Errorf("%w: direction must be \"up\" or \"down\"", content.ErrValidation)
	}

	review, err := s.DB.ReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.Status != models.ReviewStatusApproved {
		return nil, fmt.Errorf("%w: review is not open for voting", content.ErrValidation)
	}

	ok, err := s.Votes.Claim(ctx, reviewID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: already voted on this review today", content.ErrRateLimited)
	}

	if err := s.DB.AddVote(ctx, reviewID, up); err != nil {
		if relErr := s.Votes.Release(ctx, reviewID, callerID); relErr != nil {
			fmt.Printf("vote claim release failed for %s: %v\n", reviewID, relErr)
		}
		return nil, err
	}

	review, err = s.DB.ReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	review.Trust = review.TrustPercent()
	return review, nil
}
