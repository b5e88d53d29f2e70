package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TelegramGroup struct {
	bun.BaseModel `bun:"table:telegram_groups"`

	ID          string    `bun:"id,pk" json:"id"`
	Slug        string    `bun:"slug,unique,notnull" json:"slug"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description"`
	InviteURL   string    `bun:"invite_url" json:"inviteUrl"`
	ImageURL    string    `bun:"image_url" json:"imageUrl"`
	MemberCount int64     `bun:"member_count" json:"memberCount"`
	IsActive    bool      `bun:"is_active" json:"isActive"`
	IsFeatured  bool      `bun:"is_featured" json:"isFeatured"`
	Priority    int64     `bun:"priority" json:"priority"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

type TelegramGroupCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InviteURL   string `json:"inviteUrl"`
	ImageURL    string `json:"imageUrl"`
	MemberCount int64  `json:"memberCount"`
}

type TelegramGroupUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	InviteURL   *string `json:"inviteUrl"`
	ImageURL    *string `json:"imageUrl"`
	MemberCount *int64  `json:"memberCount"`
	IsActive    *bool   `json:"isActive"`
	IsFeatured  *bool   `json:"isFeatured"`
	Priority    *int64  `json:"priority"`
}
