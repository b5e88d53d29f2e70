package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SeoSetting holds per-page metadata. StructuredData carries the schema.org
// JSON-LD blob verbatim; it is opaque to the service.
type SeoSetting struct {
	bun.BaseModel `bun:"table:seo_settings"`

	ID             string         `bun:"id,pk" json:"id"`
	PagePath       string         `bun:"page_path,unique,notnull" json:"pagePath"`
	Title          string         `bun:"title" json:"title"`
	Description    string         `bun:"description" json:"description"`
	Keywords       string         `bun:"keywords" json:"keywords"`
	CanonicalURL   string         `bun:"canonical_url" json:"canonicalUrl"`
	OGImageURL     string         `bun:"og_image_url" json:"ogImageUrl"`
	StructuredData map[string]any `bun:"structured_data,type:jsonb" json:"structuredData,omitempty"`
	CreatedAt      time.Time      `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt      time.Time      `bun:"updated_at,notnull" json:"updatedAt"`
}

type SeoSettingCreateRequest struct {
	PagePath       string         `json:"pagePath"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Keywords       string         `json:"keywords"`
	CanonicalURL   string         `json:"canonicalUrl"`
	OGImageURL     string         `json:"ogImageUrl"`
	StructuredData map[string]any `json:"structuredData"`
}

type SeoSettingUpdateRequest struct {
	Title          *string         `json:"title"`
	Description    *string         `json:"description"`
	Keywords       *string         `json:"keywords"`
	CanonicalURL   *string         `json:"canonicalUrl"`
	OGImageURL     *string         `json:"ogImageUrl"`
	StructuredData *map[string]any `json:"structuredData"`
}
