package banko

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-content/internal/banko/db"
	"ms-content/internal/content"
	"ms-content/internal/models"
	"ms-content/internal/slug"
)

const slugFallback = "banko-kupon"

type Service struct {
	DB *db.DB
}

func NewService(d *db.DB) *Service {
	return &Service{DB: d}
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]models.BankoCoupon, error) {
	return s.DB.List(ctx, activeOnly)
}

// Today returns the active coupons dated today, the site's main banko view.
func (s *Service) Today(ctx context.Context) ([]models.BankoCoupon, error) {
	return s.DB.ByDate(ctx, time.Now())
}

// GetBySlug serves the public detail page; only active coupons resolve.
func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*models.BankoCoupon, error) {
	return s.DB.PublicBySlug(ctx, slugStr)
}

func (s *Service) Create(ctx context.Context, req models.BankoCouponCreateRequest) (*models.BankoCoupon, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", content.ErrValidation)
	}
	if req.CouponDate.IsZero() {
		return nil, fmt.Errorf("%w: couponDate is required", content.ErrValidation)
	}
	if len(req.Matches) == 0 {
		return nil, fmt.Errorf("%w: a coupon needs at least one match", content.ErrValidation)
	}
	if err := validateMatches(req.Matches); err != nil {
		return nil, err
	}

	uniqueSlug, err := slug.Unique(ctx, slug.Make(req.Title, slugFallback), s.DB.SlugTaken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	coupon := &models.BankoCoupon{
		ID:         uuid.New().String(),
		Slug:       uniqueSlug,
		Title:      req.Title,
		CouponDate: req.CouponDate,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	coupon.Matches = buildMatches(coupon.ID, req.Matches)

	if err := s.DB.InsertWithMatches(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (s *Service) Update(ctx context.Context, id string, req models.BankoCouponUpdateRequest) (*models.BankoCoupon, error) {
	coupon, err := s.DB.ByIDWithMatches(ctx, id)
	if err != nil {
		return nil, err
	}

	var columns []string
	if req.Title != nil {
		coupon.Title = *req.Title
		columns = append(columns, "title")
	}
	if req.CouponDate != nil {
		coupon.CouponDate = *req.CouponDate
		columns = append(columns, "coupon_date")
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	if req.Priority != nil {
		coupon.Priority = *req.Priority
		columns = append(columns, "priority")
	}

	if req.Matches != nil {
		if len(*req.Matches) == 0 {
			return nil, fmt.Errorf("%w: a coupon needs at least one match", content.ErrValidation)
		}
		if err := validateMatches(*req.Matches); err != nil {
			return nil, err
		}
		coupon.Matches = buildMatches(coupon.ID, *req.Matches)
		if err := s.DB.ReplaceMatches(ctx, coupon.ID, coupon.Matches); err != nil {
			return nil, fmt.Errorf("failed to replace matches: %w", err)
		}
	}

	if len(columns) > 0 {
		coupon.UpdatedAt = time.Now()
		columns = append(columns, "updated_at")
		if err := s.DB.UpdateColumns(ctx, id, coupon, columns...); err != nil {
			return nil, fmt.Errorf("failed to update coupon %s: %w", id, err)
		}
	}
	return coupon, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.DeleteWithMatches(ctx, id)
}

func validateMatches(matches []models.BankoMatchInput) error {
	for i, m := range matches {
		if m.HomeTeam == "" || m.AwayTeam == "" {
			return fmt.Errorf("%w: match %d is missing a team name", content.ErrValidation, i+1)
		}
		if m.Odds <= 1.0 {
			return fmt.Errorf("%w: match %d odds must be above 1.00", content.ErrValidation, i+1)
		}
	}
	return nil
}

func buildMatches(couponID string, inputs []models.BankoMatchInput) []models.BankoMatch {
	matches := make([]models.BankoMatch, len(inputs))
	for i, in := range inputs {
		matches[i] = models.BankoMatch{
			ID:         uuid.New().String(),
			CouponID:   couponID,
			HomeTeam:   in.HomeTeam,
			AwayTeam:   in.AwayTeam,
			League:     in.League,
			Prediction: in.Prediction,
			Odds:       in.Odds,
			MatchTime:  in.MatchTime,
			Position:   i + 1,
		}
	}
	return matches
}
