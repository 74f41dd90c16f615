package domain

import "time"

// Project status values.
const (
	StatusDraft     = "DRAFT"
	StatusCompleted = "COMPLETED"
)

// Shipping tiers accepted by the listing template. Anything else falls back
// to the default tier text at render time.
const (
	ShippingSameDay = "SAME_DAY"
	ShippingD2To5   = "D2_5"
	ShippingD15To20 = "D15_20"
)

// Image is one entry of a project's ordered image list. The first entry is
// the cover image.
type Image struct {
	URL          string `json:"url"`
	Name         string `json:"name,omitempty"`
	LocalPreview bool   `json:"is_local_preview,omitempty"`
	External     bool   `json:"is_external,omitempty"`
}

// Project is a single in-progress or finished listing. It is
// storage-agnostic and shared across repository, wizard and HTTP layers.
type Project struct {
	ID                string     `json:"id"`
	SessionID         string     `json:"session_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Images            []Image    `json:"images"`
	StoreName         string     `json:"store_name,omitempty"`
	StoreLogo         string     `json:"store_logo,omitempty"`
	ShippingPolicy    string     `json:"shipping_policy,omitempty"`
	SEOKeywords       []string   `json:"seo_keywords"`
	Highlights        []string   `json:"highlights"`
	SuggestedListTime string     `json:"suggested_list_time,omitempty"`
	Status            string     `json:"status"`
	HTMLPreview       string     `json:"html_preview,omitempty"`
	GeneratedAt       *time.Time `json:"generated_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// CoverImage returns the first image, or nil when the project has none.
func (p *Project) CoverImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// PreviewStale reports whether the cached preview predates the last edit.
// Only meaningful for completed projects.
func (p *Project) PreviewStale() bool {
	if p.Status != StatusCompleted || p.GeneratedAt == nil {
		return false
	}
	return p.UpdatedAt.After(*p.GeneratedAt)
}

// ProjectPatch carries a partial update. Nil fields are left untouched;
// non-nil fields replace the stored value (shallow merge, last write wins).
type ProjectPatch struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Images            *[]Image   `json:"images,omitempty"`
	StoreName         *string    `json:"store_name,omitempty"`
	StoreLogo         *string    `json:"store_logo,omitempty"`
	ShippingPolicy    *string    `json:"shipping_policy,omitempty"`
	SEOKeywords       *[]string  `json:"seo_keywords,omitempty"`
	Highlights        *[]string  `json:"highlights,omitempty"`
	SuggestedListTime *string    `json:"suggested_list_time,omitempty"`
	Status            *string    `json:"status,omitempty"`
	HTMLPreview       *string    `json:"html_preview,omitempty"`
	GeneratedAt       *time.Time `json:"generated_at,omitempty"`
}

// Apply merges the patch onto p.
func (patch *ProjectPatch) Apply(p *Project) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.StoreName != nil {
		p.StoreName = *patch.StoreName
	}
	if patch.StoreLogo != nil {
		p.StoreLogo = *patch.StoreLogo
	}
	if patch.ShippingPolicy != nil {
		p.ShippingPolicy = *patch.ShippingPolicy
	}
	if patch.SEOKeywords != nil {
		p.SEOKeywords = *patch.SEOKeywords
	}
	if patch.Highlights != nil {
		p.Highlights = *patch.Highlights
	}
	if patch.SuggestedListTime != nil {
		p.SuggestedListTime = *patch.SuggestedListTime
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.HTMLPreview != nil {
		p.HTMLPreview = *patch.HTMLPreview
	}
	if patch.GeneratedAt != nil {
		p.GeneratedAt = patch.GeneratedAt
	}
}
