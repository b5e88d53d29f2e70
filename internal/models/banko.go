package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BankoCoupon is a hand-picked daily betting coupon. The combined odds are
// not stored: they are the product of the match odds, recomputed on read.
type BankoCoupon struct {
	bun.BaseModel `bun:"table:banko_coupons"`

	ID         string       `bun:"id,pk" json:"id"`
	Slug       string       `bun:"slug,unique,notnull" json:"slug"`
	Title      string       `bun:"title,notnull" json:"title"`
	CouponDate time.Time    `bun:"coupon_date,notnull" json:"couponDate"`
	IsActive   bool         `bun:"is_active" json:"isActive"`
	Priority   int64        `bun:"priority" json:"priority"`
	Matches    []BankoMatch `bun:"rel:has-many,join:id=coupon_id" json:"matches"`
	CreatedAt  time.Time    `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time    `bun:"updated_at,notnull" json:"updatedAt"`
}

// TotalOdds multiplies the odds of every match on the coupon.
// An empty coupon has odds 0, not 1, so it never renders as a playable slip.
func (c *BankoCoupon) TotalOdds() float64 {
	if len(c.Matches) == 0 {
		return 0
	}
	total := 1.0
	for _, m := range c.Matches {
		total *= m.Odds
	}
	return total
}

type BankoMatch struct {
	bun.BaseModel `bun:"table:banko_matches"`

	ID         string    `bun:"id,pk" json:"id"`
	CouponID   string    `bun:"coupon_id,notnull" json:"couponId"`
	HomeTeam   string    `bun:"home_team,notnull" json:"homeTeam"`
	AwayTeam   string    `bun:"away_team,notnull" json:"awayTeam"`
	League     string    `bun:"league" json:"league"`
	Prediction string    `bun:"prediction" json:"prediction"`
	Odds       float64   `bun:"odds" json:"odds"`
	MatchTime  time.Time `bun:"match_time" json:"matchTime"`
	Position   int       `bun:"position" json:"position"`
}

type BankoMatchInput struct {
	HomeTeam   string    `json:"homeTeam"`
	AwayTeam   string    `json:"awayTeam"`
	League     string    `json:"league"`
	Prediction string    `json:"prediction"`
	Odds       float64   `json:"odds"`
	MatchTime  time.Time `json:"matchTime"`
}

type BankoCouponCreateRequest struct {
	Title      string            `json:"title"`
	CouponDate time.Time         `json:"couponDate"`
	Matches    []BankoMatchInput `json:"matches"`
}

type BankoCouponUpdateRequest struct {
	Title      *string            `json:"title"`
	CouponDate *time.Time         `json:"couponDate"`
	IsActive   *bool              `json:"isActive"`
	Priority   *int64             `json:"priority"`
	Matches    *[]BankoMatchInput `json:"matches"`
}
