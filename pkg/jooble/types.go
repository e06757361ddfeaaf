package jooble

import (
	"encoding/json"
	"net/http"
	"time"
)

// Config defines Jooble API client settings
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client queries the Jooble job search API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// SearchParams describe a job search request
type SearchParams struct {
	Location      string
	Radius        int
	Page          int
	ResultsOnPage int
}

type searchRequest struct {
	Keywords     string `json:"keywords"`
	Location     string `json:"location"`
	Radius       string `json:"radius"`
	Page         string `json:"page"`
	SearchMode   string `json:"searchMode"`
	ResultOnPage string `json:"ResultOnPage"`
}

type searchResponse struct {
	TotalCount int          `json:"totalCount"`
	Jobs       []jobPosting `json:"jobs"`
}

type jobPosting struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Location string      `json:"location"`
	Snippet  string      `json:"snippet"`
	Salary   string      `json:"salary"`
	Source   string      `json:"source"`
	Type     string      `json:"type"`
	Link     string      `json:"link"`
	Company  string      `json:"company"`
	Updated  string      `json:"updated"`
}

// Job represents a Jooble posting as returned by the API.
type Job struct {
	ID       string
	Title    string
	Company  string
	Location string
	Snippet  string
	Salary   string
	Link     string
	Source   string
	Type     string
	Updated  string
}
