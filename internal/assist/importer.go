// Package assist orchestrates the external AI and scraping collaborators
// for the listing wizard.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/listsmith/listsmith-backend/internal/assist/llm"
	"github.com/listsmith/listsmith-backend/internal/assist/scrape"
	"github.com/listsmith/listsmith-backend/internal/listings/domain"
)

// Importer turns a product URL into draft listing fields: scrape the page,
// then ask the model to extract structured fields from the raw text.
type Importer struct {
	scraper *scrape.Client
	llm     *llm.Client
}

// NewImporter creates an importer.
func NewImporter(scraper *scrape.Client, llmClient *llm.Client) *Importer {
	return &Importer{scraper: scraper, llm: llmClient}
}

type extractedFields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Highlights  []string `json:"highlights"`
}

// ImportFromURL scrapes the page and extracts listing fields. A scrape
// failure is returned as an error for the UI to show; the caller's manual
// fields stay untouched. An unparseable model answer degrades to a
// plain-text extraction instead of failing.
func (i *Importer) ImportFromURL(ctx context.Context, pageURL string) (*domain.ProjectPatch, error) {
	res, err := i.scraper.Scrape(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if !res.Success || strings.TrimSpace(res.Content) == "" {
		msg := res.Message
		if msg == "" {
			msg = "page could not be read"
		}
		return nil, fmt.Errorf("scrape failed: %s", msg)
	}

	fields := i.extract(ctx, res.Content)
	if fields == nil {
		fields = fallbackFields(res.Content)
	}

	patch := &domain.ProjectPatch{
		Title:       &fields.Title,
		Description: &fields.Description,
	}
	if len(fields.Keywords) > 0 {
		patch.SEOKeywords = &fields.Keywords
	}
	if len(fields.Highlights) > 0 {
		patch.Highlights = &fields.Highlights
	}
	return patch, nil
}

func (i *Importer) extract(ctx context.Context, content string) *extractedFields {
	prompt := "Extract eBay listing fields from this product page text. Answer with a JSON " +
		`object {"title","description","keywords","highlights"} and nothing else:` +
		"\n\n" + truncate(content, 6000)

	out, err := i.llm.Invoke(ctx, prompt, llm.InvokeOptions{Temperature: 0.2})
	if err != nil {
		return nil
	}

	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start < 0 || end <= start {
		return nil
	}

	var fields extractedFields
	if err := json.Unmarshal([]byte(out[start:end+1]), &fields); err != nil {
		return nil
	}
	if strings.TrimSpace(fields.Title) == "" {
		return nil
	}
	return &fields
}

// fallbackFields derives a rough title and description directly from the
// scraped text when the model output is unusable.
func fallbackFields(content string) *extractedFields {
	content = strings.TrimSpace(content)
	title := content
	if idx := strings.IndexAny(content, "\r\n"); idx > 0 {
		title = content[:idx]
	}
	return &extractedFields{
		Title:       truncate(strings.TrimSpace(title), 80),
		Description: truncate(content, 2000),
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
