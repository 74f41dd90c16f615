// Package llm wraps the AI text service used to enhance descriptions and
// suggest keywords and listing times. Every wrapper degrades to a
// deterministic fallback when the service fails or returns something
// unusable; callers never see a hard failure for assist features.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultListTime is the recommendation used when the service cannot
// produce one.
const DefaultListTime = "Sunday evening, 7-9 PM local time"

// Client talks to the upstream text-generation service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the given base URL, capping outbound calls
// at rps requests per second.
func NewClient(baseURL string, rps float64) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// InvokeOptions tune a single generation call.
type InvokeOptions struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

type invokeRequest struct {
	Prompt string `json:"prompt"`
	InvokeOptions
}

type invokeResponse struct {
	OK     bool   `json:"ok"`
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

// Invoke sends a prompt and returns the raw model output.
func (c *Client) Invoke(ctx context.Context, prompt string, opts InvokeOptions) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	b, _ := json.Marshal(invokeRequest{Prompt: prompt, InvokeOptions: opts})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoke", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm invoke: %w", err)
	}
	defer resp.Body.Close()

	var out invokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("llm decode: %w", err)
	}
	if resp.StatusCode >= 400 || !out.OK {
		return "", fmt.Errorf("llm error (status %d): %s", resp.StatusCode, out.Error)
	}
	return out.Output, nil
}

// EnhanceDescription rewrites a product description for an eBay listing.
// On any failure the original text comes back unchanged.
func (c *Client) EnhanceDescription(ctx context.Context, text string) string {
	prompt := "Rewrite the following product description for an eBay listing. " +
		"Keep it factual, use short paragraphs, simple HTML only (p, ul, li, b):\n\n" + text
	out, err := c.Invoke(ctx, prompt, InvokeOptions{Temperature: 0.7})
	if err != nil || strings.TrimSpace(out) == "" {
		return text
	}
	return out
}

// SuggestKeywords asks for SEO keywords as a JSON array. Malformed output
// falls back to the title's own tokens.
func (c *Client) SuggestKeywords(ctx context.Context, title, description string) []string {
	prompt := "Suggest up to 10 SEO keywords for this eBay listing as a JSON array of strings.\n" +
		"Title: " + title + "\nDescription: " + description
	out, err := c.Invoke(ctx, prompt, InvokeOptions{Temperature: 0.3})
	if err == nil {
		if kws := parseStringArray(out); len(kws) > 0 {
			return kws
		}
	}
	return fallbackKeywords(title)
}

// SuggestListTime recommends when to publish the listing. Computed once per
// project by callers and cached on the record.
func (c *Client) SuggestListTime(ctx context.Context, title string) string {
	prompt := "In one short sentence, recommend the best day and time window to publish " +
		"an eBay listing for: " + title
	out, err := c.Invoke(ctx, prompt, InvokeOptions{Temperature: 0.3})
	if err != nil || strings.TrimSpace(out) == "" {
		return DefaultListTime
	}
	return strings.TrimSpace(out)
}

// parseStringArray extracts a JSON string array from model output, tolerating
// surrounding prose.
func parseStringArray(out string) []string {
	start := strings.Index(out, "[")
	end := strings.LastIndex(out, "]")
	if start < 0 || end <= start {
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(out[start:end+1]), &arr); err != nil {
		return nil
	}

	cleaned := make([]string, 0, len(arr))
	for _, s := range arr {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}

func fallbackKeywords(title string) []string {
	fields := strings.Fields(strings.ToLower(title))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?:;\"'()")
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}
