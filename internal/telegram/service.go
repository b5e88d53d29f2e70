package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ms-content/internal/content"
	"ms-content/internal/models"
	"ms-content/internal/slug"
	"ms-content/internal/telegram/qr"
)

const slugFallback = "grup"

type DBLayer interface {
	List(ctx context.Context, activeOnly bool) ([]models.TelegramGroup, error)
	ByID(ctx context.Context, id string) (*models.TelegramGroup, error)
	PublicBySlug(ctx context.Context, slugStr string) (*models.TelegramGroup, error)
	SlugTaken(ctx context.Context, slugStr string) (bool, error)
	Insert(ctx context.Context, group *models.TelegramGroup) error
	UpdateColumns(ctx context.Context, id string, group *models.TelegramGroup, columns ...string) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, orderedIDs []string, featured *bool) error
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]models.TelegramGroup, error) {
	return s.DB.List(ctx, activeOnly)
}

// GetBySlug serves the public detail page; only active groups resolve.
func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*models.TelegramGroup, error) {
	return s.DB.PublicBySlug(ctx, slugStr)
}

func (s *Service) Create(ctx context.Context, req models.TelegramGroupCreateRequest) (*models.TelegramGroup, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", content.ErrValidation)
	}
	if !strings.HasPrefix(req.InviteURL, "https://t.me/") {
		return nil, fmt.Errorf("%w: inviteUrl must point at t.me", content.ErrValidation)
	}

	uniqueSlug, err := slug.Unique(ctx, slug.Make(req.Name, slugFallback), s.DB.SlugTaken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	group := &models.TelegramGroup{
		ID:          uuid.New().String(),
		Slug:        uniqueSlug,
		Name:        req.Name,
		Description: req.Description,
		InviteURL:   req.InviteURL,
		ImageURL:    req.ImageURL,
		MemberCount: req.MemberCount,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.DB.Insert(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create telegram group: %w", err)
	}
	return group, nil
}

func (s *Service) Update(ctx context.Context, id string, req models.TelegramGroupUpdateRequest) (*models.TelegramGroup, error) {
	group, err := s.DB.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.InviteURL != nil && !strings.HasPrefix(*req.InviteURL, "https://t.me/") {
		return nil, fmt.Errorf("%w: inviteUrl must point at t.me", content.ErrValidation)
	}

	var columns []string
	if req.Name != nil {
		group.Name = *req.Name
		columns = append(columns, "name")
	}
	if req.Description != nil {
		group.Description = *req.Description
		columns = append(columns, "description")
	}
	if req.InviteURL != nil {
		group.InviteURL = *req.InviteURL
		columns = append(columns, "invite_url")
	}
	if req.ImageURL != nil {
		group.ImageURL = *req.ImageURL
		columns = append(columns, "image_url")
	}
	if req.MemberCount != nil {
		group.MemberCount = *req.MemberCount
		columns = append(columns, "member_count")
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
		columns = append(columns, "is_active")
	}
	if req.IsFeatured != nil {
		group.IsFeatured = *req.IsFeatured
		columns = append(columns, "is_featured")
	}
	if req.Priority != nil {
		group.Priority = *req.Priority
		columns = append(columns, "priority")
	}
	if len(columns) == 0 {
		return group, nil
	}
	group.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	if err := s.DB.UpdateColumns(ctx, id, group, columns...); err != nil {
		return nil, fmt.Errorf("failed to update telegram group %s: %w", id, err)
	}
	return group, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.Delete(ctx, id)
}

func (s *Service) Reorder(ctx context.Context, req models.ReorderRequest) error {
	if len(req.OrderedIDs) == 0 {
		return fmt.Errorf("%w: orderedIds must not be empty", content.ErrValidation)
	}
	return s.DB.Reorder(ctx, req.OrderedIDs, req.Featured)
}

// InviteQR renders the group's invite link as a PNG QR code.
func (s *Service) InviteQR(ctx context.Context, slugStr string, size int) ([]byte, error) {
	group, err := s.DB.PublicBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	png, err := qr.InvitePNG(group.InviteURL, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", content.ErrValidation, err)
	}
	return png, nil
}
