package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CarouselSlide is a hero-rotation entry. Purely presentational, but it
// follows the same lifecycle/ordering shape as the content entities.
type CarouselSlide struct {
	bun.BaseModel `bun:"table:carousel_slides"`

	ID        string     `bun:"id,pk" json:"id"`
	Slug      string     `bun:"slug,unique,notnull" json:"slug"`
	Title     string     `bun:"title,notnull" json:"title"`
	Subtitle  string     `bun:"subtitle" json:"subtitle"`
	ImageURL  string     `bun:"image_url" json:"imageUrl"`
	CTAURL    string     `bun:"cta_url" json:"ctaUrl"`
	IsActive  bool       `bun:"is_active" json:"isActive"`
	Priority  int64      `bun:"priority" json:"priority"`
	StartDate *time.Time `bun:"start_date,nullzero" json:"startDate,omitempty"`
	EndDate   *time.Time `bun:"end_date,nullzero" json:"endDate,omitempty"`
	CreatedAt time.Time  `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time  `bun:"updated_at,notnull" json:"updatedAt"`
}

func (s *CarouselSlide) IsExpired(now time.Time) bool {
	return s.EndDate != nil && s.EndDate.Before(now)
}

// MarqueeLogo is one entry of the scrolling partner-logo strip.
type MarqueeLogo struct {
	bun.BaseModel `bun:"table:marquee_logos"`

	ID        string    `bun:"id,pk" json:"id"`
	Slug      string    `bun:"slug,unique,notnull" json:"slug"`
	Name      string    `bun:"name,notnull" json:"name"`
	ImageURL  string    `bun:"image_url" json:"imageUrl"`
	LinkURL   string    `bun:"link_url" json:"linkUrl"`
	IsActive  bool      `bun:"is_active" json:"isActive"`
	Priority  int64     `bun:"priority" json:"priority"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

type SlideCreateRequest struct {
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	ImageURL  string     `json:"imageUrl"`
	CTAURL    string     `json:"ctaUrl"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type SlideUpdateRequest struct {
	Title     *string    `json:"title"`
	Subtitle  *string    `json:"subtitle"`
	ImageURL  *string    `json:"imageUrl"`
	CTAURL    *string    `json:"ctaUrl"`
	IsActive  *bool      `json:"isActive"`
	Priority  *int64     `json:"priority"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type LogoCreateRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl"`
}

type LogoUpdateRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
	LinkURL  *string `json:"linkUrl"`
	IsActive *bool   `json:"isActive"`
	Priority *int64  `json:"priority"`
}
