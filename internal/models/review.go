package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Review moderation states. Bonuses use a plain is_approved flag; reviews
// keep the tri-state so a rejection is distinguishable from "not seen yet".
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// DisplayMetadata replaces the original free-form brand "features" blob with
// typed fields. HeroSlot 0 means not placed in the hero rotation; 1-3 are the
// three hero positions.
type DisplayMetadata struct {
	Order    int    `json:"order"`
	Badge    string `json:"badge,omitempty"`
	HeroSlot int    `json:"heroSlot,omitempty"`
}

type ReviewBrand struct {
	bun.BaseModel `bun:"table:review_brands"`

	ID        string          `bun:"id,pk" json:"id"`
	Slug      string          `bun:"slug,unique,notnull" json:"slug"`
	Name      string          `bun:"name,notnull" json:"name"`
	LogoURL   string          `bun:"logo_url" json:"logoUrl"`
	SiteURL   string          `bun:"site_url" json:"siteUrl"`
	Display   DisplayMetadata `bun:"display,type:jsonb" json:"display"`
	IsActive  bool            `bun:"is_active" json:"isActive"`
	Priority  int64           `bun:"priority" json:"priority"`
	CreatedAt time.Time       `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time       `bun:"updated_at,notnull" json:"updatedAt"`
}

type SiteReview struct {
	bun.BaseModel `bun:"table:site_reviews"`

	ID         string    `bun:"id,pk" json:"id"`
	BrandID    string    `bun:"brand_id,notnull" json:"brandId"`
	AuthorName string    `bun:"author_name" json:"authorName"`
	Rating     int       `bun:"rating" json:"rating"`
	Comment    string    `bun:"comment" json:"comment"`
	Status     string    `bun:"status,notnull" json:"status"`
	UpVotes    int64     `bun:"up_votes" json:"upVotes"`
	DownVotes  int64     `bun:"down_votes" json:"downVotes"`
	Trust      int       `bun:"-" json:"trustPercent"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// TrustPercent is the community up-vote share, 0 when nobody voted yet.
func (r *SiteReview) TrustPercent() int {
	total := r.UpVotes + r.DownVotes
	if total == 0 {
		return 0
	}
	return int(r.UpVotes * 100 / total)
}

type ReviewCreateRequest struct {
	BrandID    string `json:"brandId"`
	AuthorName string `json:"authorName"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type ReviewVoteRequest struct {
	Direction string `json:"direction"` // "up" or "down"
}

type BrandCreateRequest struct {
	Name    string          `json:"name"`
	LogoURL string          `json:"logoUrl"`
	SiteURL string          `json:"siteUrl"`
	Display DisplayMetadata `json:"display"`
}

type BrandUpdateRequest struct {
	Name     *string          `json:"name"`
	LogoURL  *string          `json:"logoUrl"`
	SiteURL  *string          `json:"siteUrl"`
	Display  *DisplayMetadata `json:"display"`
	IsActive *bool            `json:"isActive"`
	Priority *int64           `json:"priority"`
}
