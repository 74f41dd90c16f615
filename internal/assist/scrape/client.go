// Package scrape wraps the page-scraping service used for product-URL
// import. A failed scrape surfaces as a message for the user; it never
// crashes the wizard or touches manual-entry fields.
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Result is the scrape service's answer for one URL.
type Result struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Message string `json:"message,omitempty"`
}

// Client talks to the scrape service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a scrape client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Scrape pulls the raw text content of a product page.
func (c *Client) Scrape(ctx context.Context, pageURL string) (*Result, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid url: %s", pageURL)
	}

	reqURL := c.baseURL + "/scrape?url=" + url.QueryEscape(pageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("scrape request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("scrape failed with status %d", resp.StatusCode)
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("scrape decode: %w", err)
	}
	return &out, nil
}
