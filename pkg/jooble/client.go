package jooble

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://pl.jooble.org/api"
	defaultTimeout       = 15 * time.Second
	defaultRadius        = 40
	defaultResultsOnPage = 10
	exactMatchSearchMode = "1"
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("jooble: api key is required")

// NewClient instantiates a Jooble API client
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// SearchJobs issues one search request and returns the postings in provider order.
func (c *Client) SearchJobs(ctx context.Context, query string, params SearchParams) ([]Job, error) {
	if c == nil {
		return nil, fmt.Errorf("jooble: client is nil")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("jooble: query is required")
	}

	body, err := json.Marshal(buildSearchRequest(query, params))
	if err != nil {
		return nil, fmt.Errorf("jooble: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("jooble: build request: %w", c.redact(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jooble: request failed: %w", c.redact(err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("jooble: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("jooble: decode response: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Jobs))
	for _, posting := range payload.Jobs {
		jobs = append(jobs, mapPosting(posting))
	}

	return jobs, nil
}

func buildSearchRequest(query string, params SearchParams) searchRequest {
	radius := params.Radius
	if radius <= 0 {
		radius = defaultRadius
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	perPage := params.ResultsOnPage
	if perPage <= 0 {
		perPage = defaultResultsOnPage
	}

	return searchRequest{
		Keywords:     strconv.Quote(strings.TrimSpace(query)),
		Location:     params.Location,
		Radius:       strconv.Itoa(radius),
		Page:         strconv.Itoa(page),
		SearchMode:   exactMatchSearchMode,
		ResultOnPage: strconv.Itoa(perPage),
	}
}

func mapPosting(p jobPosting) Job {
	return Job{
		ID:       p.ID.String(),
		Title:    strings.TrimSpace(p.Title),
		Company:  strings.TrimSpace(p.Company),
		Location: strings.TrimSpace(p.Location),
		Snippet:  strings.TrimSpace(p.Snippet),
		Salary:   strings.TrimSpace(p.Salary),
		Link:     p.Link,
		Source:   p.Source,
		Type:     p.Type,
		Updated:  p.Updated,
	}
}

// redact keeps the API key, which lives in the URL path, out of error messages.
func (c *Client) redact(err error) error {
	if err == nil || c.apiKey == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, c.apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, c.apiKey, "***"))
}
