// Package languagetool provides a grammar checker adapter using the
// LanguageTool HTTP API (self-hosted or api.languagetool.org).
package languagetool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
)

// Ensure Checker implements the interface.
var _ driven.GrammarChecker = (*Checker)(nil)

// Default configuration values.
const (
	DefaultLanguage = "en-US"
	DefaultTimeout  = 30 * time.Second

	// DefaultRequestsPerSecond matches the public API limit of 20
	// requests per minute, leaving headroom for other clients.
	DefaultRequestsPerSecond = 0.3
)

// Config holds configuration for the LanguageTool checker.
type Config struct {
	// Endpoint is the LanguageTool base URL (required),
	// e.g. http://localhost:8010 or https://api.languagetool.org.
	Endpoint string

	// Language is the default check language (default: en-US).
	Language string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond caps the request rate. Zero applies the
	// conservative public-API default; self-hosted instances can
	// raise it.
	RequestsPerSecond float64
}

// Checker finds grammar issues via the LanguageTool /v2/check endpoint.
type Checker struct {
	client   *http.Client
	endpoint string
	language string
	limiter  *rate.Limiter
}

// checkResponse is the LanguageTool /v2/check response format.
type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Context struct {
			Text string `json:"text"`
		} `json:"context"`
	} `json:"matches"`
}

// NewChecker creates a new LanguageTool grammar checker.
func NewChecker(cfg Config) (*Checker, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("languagetool: endpoint is required")
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Checker{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		language: cfg.Language,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// Check returns the grammar issues found in the given text.
// An empty language falls back to the configured default.
func (c *Checker) Check(ctx context.Context, text, language string) ([]domain.GrammarIssue, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if language == "" {
		language = c.language
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("languagetool: %w", domain.ErrRateLimited)
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", language)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint+"/v2/check",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("languagetool: %w", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("languagetool error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("languagetool error (status %d): %s", resp.StatusCode, string(body))
	}

	var checkResp checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&checkResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	issues := make([]domain.GrammarIssue, 0, len(checkResp.Matches))
	for _, m := range checkResp.Matches {
		suggestions := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			suggestions = append(suggestions, r.Value)
		}
		issues = append(issues, domain.GrammarIssue{
			Message:     m.Message,
			Suggestions: suggestions,
			Offset:      m.Offset,
			Length:      m.Length,
			Context:     m.Context.Text,
		})
	}

	return issues, nil
}

// Ping validates the service is reachable by checking the /v2/languages endpoint.
func (c *Checker) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/v2/languages", http.NoBody)
	if err != nil {
		return fmt.Errorf("languagetool: failed to create ping request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("languagetool: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("languagetool: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (c *Checker) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
