package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Bonus struct {
	bun.BaseModel `bun:"table:bonuses"`

	ID               string     `bun:"id,pk" json:"id"`
	Slug             string     `bun:"slug,unique,notnull" json:"slug"`
	Title            string     `bun:"title,notnull" json:"title"`
	Description      string     `bun:"description" json:"description"`
	ShortDescription string     `bun:"short_description" json:"shortDescription"`
	BonusType        string     `bun:"bonus_type" json:"bonusType"`
	GameCategory     string     `bun:"game_category" json:"gameCategory"`
	Amount           float64    `bun:"amount" json:"amount"`
	Wager            float64    `bun:"wager" json:"wager"`
	MinDeposit       float64    `bun:"min_deposit" json:"minDeposit"`
	ImageURL         string     `bun:"image_url" json:"imageUrl"`
	PostImageURL     string     `bun:"post_image_url" json:"postImageUrl"`
	CTAURL           string     `bun:"cta_url" json:"ctaUrl"`
	Badges           []string   `bun:"badges" json:"badges"`
	Features         []string   `bun:"features" json:"features"`
	IsActive         bool       `bun:"is_active" json:"isActive"`
	IsFeatured       bool       `bun:"is_featured" json:"isFeatured"`
	IsApproved       bool       `bun:"is_approved" json:"isApproved"`
	Priority         int64      `bun:"priority" json:"priority"`
	StartDate        *time.Time `bun:"start_date,nullzero" json:"startDate,omitempty"`
	EndDate          *time.Time `bun:"end_date,nullzero" json:"endDate,omitempty"`
	BrandID          *string    `bun:"brand_id,nullzero" json:"brandId,omitempty"`
	CreatedByLoginID string     `bun:"created_by_login_id" json:"createdByLoginId,omitempty"`
	CreatedByName    string     `bun:"created_by_name" json:"createdByName,omitempty"`
	ClickCount       int64      `bun:"click_count" json:"clickCount"`
	CreatedAt        time.Time  `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt        time.Time  `bun:"updated_at,notnull" json:"updatedAt"`
}

// IsExpired reports whether the bonus has an end date in the past,
// independent of is_active.
func (b *Bonus) IsExpired(now time.Time) bool {
	return b.EndDate != nil && b.EndDate.Before(now)
}

// BonusCreateRequest is the POST body. Slug, id and timestamps are
// server-generated; SubmitForApproval puts the row behind the moderation gate.
type BonusCreateRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	ShortDescription  string     `json:"shortDescription"`
	BonusType         string     `json:"bonusType"`
	GameCategory      string     `json:"gameCategory"`
	Amount            float64    `json:"amount"`
	Wager             float64    `json:"wager"`
	MinDeposit        float64    `json:"minDeposit"`
	ImageURL          string     `json:"imageUrl"`
	PostImageURL      string     `json:"postImageUrl"`
	CTAURL            string     `json:"ctaUrl"`
	Badges            []string   `json:"badges"`
	Features          []string   `json:"features"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	BrandID           *string    `json:"brandId"`
	CreatedByLoginID  string     `json:"createdByLoginId"`
	CreatedByName     string     `json:"createdByName"`
	SubmitForApproval bool       `json:"submitForApproval"`
}

// BonusUpdateRequest is the PATCH body: only non-nil fields are applied.
// The slug is immutable after creation, so it has no field here.
type BonusUpdateRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	ShortDescription *string    `json:"shortDescription"`
	BonusType        *string    `json:"bonusType"`
	GameCategory     *string    `json:"gameCategory"`
	Amount           *float64   `json:"amount"`
	Wager            *float64   `json:"wager"`
	MinDeposit       *float64   `json:"minDeposit"`
	ImageURL         *string    `json:"imageUrl"`
	PostImageURL     *string    `json:"postImageUrl"`
	CTAURL           *string    `json:"ctaUrl"`
	Badges           *[]string  `json:"badges"`
	Features         *[]string  `json:"features"`
	IsActive         *bool      `json:"isActive"`
	IsFeatured       *bool      `json:"isFeatured"`
	IsApproved       *bool      `json:"isApproved"`
	Priority         *int64     `json:"priority"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	BrandID          *string    `json:"brandId"`
}

// BonusFilter mirrors the list query string.
type BonusFilter struct {
	Query        string
	BonusType    string
	GameCategory string
	Active       *bool
	Featured     *bool
	// Approved defaults to "approved only" when nil.
	Approved  *bool
	MinAmount *float64
	MaxAmount *float64
}
