// Package templategen renders a listing project into a self-contained HTML5
// document suitable for an eBay listing body and for live preview. Output is
// deterministic: the same project always yields the same bytes.
package templategen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/listsmith/listsmith-backend/internal/listings/domain"
)

const (
	// DefaultStoreName is used when the project has no store branding.
	DefaultStoreName = "Store"

	metaDescriptionLimit = 160
)

var shippingText = map[string]string{
	domain.ShippingSameDay: "Same Business Day",
	domain.ShippingD2To5:   "2-5 Business Days",
	domain.ShippingD15To20: "15-20 Business Days",
}

var shippingSentence = map[string]string{
	domain.ShippingSameDay: "Orders placed before noon are dispatched the same business day.",
	domain.ShippingD2To5:   "Orders are dispatched within 48 hours and typically arrive within 2-5 business days.",
	domain.ShippingD15To20: "Orders are shipped internationally and typically arrive within 15-20 business days.",
}

type imageView struct {
	URL   string
	Name  string
	Cover bool
}

type pageData struct {
	Title             string
	MetaDescription   string
	MetaKeywords      string
	StructuredData    template.JS
	StoreName         string
	StoreLogo         string
	Images            []imageView
	Description       template.HTML
	Highlights        []string
	ShippingText      string
	ShippingSentence  string
	SuggestedListTime string
}

// Generate maps a project to a complete listing document. Optional fields
// all have defaults; unknown shipping tiers fall back to the 2-5 day tier.
// The description is inserted as-is: it is trusted, pre-sanitized upstream.
func Generate(p *domain.Project) string {
	storeName := p.StoreName
	if storeName == "" {
		storeName = DefaultStoreName
	}

	tier := p.ShippingPolicy
	if _, ok := shippingText[tier]; !ok {
		tier = domain.ShippingD2To5
	}

	images := make([]imageView, 0, len(p.Images))
	for i, img := range p.Images {
		images = append(images, imageView{
			URL:   img.URL,
			Name:  img.Name,
			Cover: i == 0,
		})
	}

	data := pageData{
		Title:             p.Title,
		MetaDescription:   truncateRunes(stripTags(p.Description), metaDescriptionLimit),
		MetaKeywords:      strings.Join(p.SEOKeywords, ", "),
		StructuredData:    structuredData(p, storeName),
		StoreName:         storeName,
		StoreLogo:         p.StoreLogo,
		Images:            images,
		Description:       template.HTML(p.Description),
		Highlights:        p.Highlights,
		ShippingText:      shippingText[tier],
		ShippingSentence:  shippingSentence[tier],
		SuggestedListTime: p.SuggestedListTime,
	}

	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, data); err != nil {
		// compiled at init and fed plain struct data; an empty document
		// here would violate what a completed status promises
		panic(fmt.Sprintf("listing template: %v", err))
	}
	return buf.String()
}

type ldBrand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type ldOrganization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type ldOffer struct {
	Type          string         `json:"@type"`
	ItemCondition string         `json:"itemCondition"`
	Availability  string         `json:"availability"`
	Seller        ldOrganization `json:"seller"`
}

type ldProduct struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	Image       []string `json:"image,omitempty"`
	Description string   `json:"description,omitempty"`
	Brand       ldBrand  `json:"brand"`
	Offers      ldOffer  `json:"offers"`
}

func structuredData(p *domain.Project, storeName string) template.JS {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}

	product := ldProduct{
		Context:     "https://schema.org/",
		Type:        "Product",
		Name:        p.Title,
		Image:       urls,
		Description: truncateRunes(stripTags(p.Description), metaDescriptionLimit),
		Brand:       ldBrand{Type: "Brand", Name: storeName},
		Offers: ldOffer{
			Type:          "Offer",
			ItemCondition: "https://schema.org/NewCondition",
			Availability:  "https://schema.org/InStock",
			Seller:        ldOrganization{Type: "Organization", Name: storeName},
		},
	}

	// Struct field order makes the marshaled block byte-stable.
	b, err := json.Marshal(product)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

// stripTags drops HTML tags, leaving text content. Good enough for meta
// descriptions built from the simple markup subset the editor produces.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
