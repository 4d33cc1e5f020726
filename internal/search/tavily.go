// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/ai-newsdesk/internal/httputil"
	"github.com/pdiddy/ai-newsdesk/internal/secrets"
	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

// tavilyAPIURL is the Tavily search endpoint. Declared as a var so tests can
// substitute an httptest server.
var tavilyAPIURL = "https://api.tavily.com/search"

// TavilyClient queries the Tavily search API.
type TavilyClient struct {
	APIKey    string
	UserAgent string
	Client    *http.Client
}

// NewTavily checks the API key and returns a client using cfg's timeout and
// user agent.
func NewTavily(apiKey string, cfg types.HTTPConfig) (*TavilyClient, error) {
	if err := secrets.CheckKey(apiKey); err != nil {
		return nil, fmt.Errorf("tavily api key: %w", err)
	}
	return &TavilyClient{
		APIKey:    apiKey,
		UserAgent: cfg.UserAgent,
		Client:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Search sends one search request and returns the hits in API order.
func (c *TavilyClient) Search(ctx context.Context, req Request) ([]types.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := tavilyRequest{
		Query:       req.Query,
		SearchDepth: req.Depth,
		MaxResults:  req.MaxResults,
		TimeRange:   req.TimeRange,
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.APIKey)
	if c.UserAgent != "" {
		headers.Set("User-Agent", c.UserAgent)
	}

	var tr tavilyResponse
	if err := httputil.PostJSON(ctx, c.Client, tavilyAPIURL, headers, body, &tr); err != nil {
		return nil, fmt.Errorf("Tavily API request: %w", err)
	}

	results := make([]types.SearchResult, 0, len(tr.Results))
	for _, r := range tr.Results {
		results = append(results, types.SearchResult{
			Title:   r.Title,
			Content: r.Content,
			URL:     r.URL,
			Score:   r.Score,
		})
	}
	return results, nil
}

// Tavily API JSON structures.
type tavilyRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
	TimeRange   string `json:"time_range,omitempty"`
}

type tavilyResponse struct {
	Query        string         `json:"query"`
	Results      []tavilyResult `json:"results"`
	ResponseTime float64        `json:"response_time"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}
