package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Campaign struct {
	bun.BaseModel `bun:"table:campaigns"`

	ID               string     `bun:"id,pk" json:"id"`
	Slug             string     `bun:"slug,unique,notnull" json:"slug"`
	Title            string     `bun:"title,notnull" json:"title"`
	Description      string     `bun:"description" json:"description"`
	ShortDescription string     `bun:"short_description" json:"shortDescription"`
	ImageURL         string     `bun:"image_url" json:"imageUrl"`
	CTAURL           string     `bun:"cta_url" json:"ctaUrl"`
	Badges           []string   `bun:"badges" json:"badges"`
	IsActive         bool       `bun:"is_active" json:"isActive"`
	IsFeatured       bool       `bun:"is_featured" json:"isFeatured"`
	IsApproved       bool       `bun:"is_approved" json:"isApproved"`
	Priority         int64      `bun:"priority" json:"priority"`
	StartDate        *time.Time `bun:"start_date,nullzero" json:"startDate,omitempty"`
	EndDate          *time.Time `bun:"end_date,nullzero" json:"endDate,omitempty"`
	BrandID          *string    `bun:"brand_id,nullzero" json:"brandId,omitempty"`
	CreatedAt        time.Time  `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt        time.Time  `bun:"updated_at,notnull" json:"updatedAt"`
}

func (c *Campaign) IsExpired(now time.Time) bool {
	return c.EndDate != nil && c.EndDate.Before(now)
}

type CampaignCreateRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	ShortDescription  string     `json:"shortDescription"`
	ImageURL          string     `json:"imageUrl"`
	CTAURL            string     `json:"ctaUrl"`
	Badges            []string   `json:"badges"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	BrandID           *string    `json:"brandId"`
	SubmitForApproval bool       `json:"submitForApproval"`
}

type CampaignUpdateRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	ShortDescription *string    `json:"shortDescription"`
	ImageURL         *string    `json:"imageUrl"`
	CTAURL           *string    `json:"ctaUrl"`
	Badges           *[]string  `json:"badges"`
	IsActive         *bool      `json:"isActive"`
	IsFeatured       *bool      `json:"isFeatured"`
	IsApproved       *bool      `json:"isApproved"`
	Priority         *int64     `json:"priority"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	BrandID          *string    `json:"brandId"`
}

type CampaignFilter struct {
	Query    string
	Active   *bool
	Featured *bool
	Approved *bool
}
