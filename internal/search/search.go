// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search API for recent news and returns the
// hits in the order the API ranked them.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

// Client searches a single web search API.
type Client interface {
	Search(ctx context.Context, req Request) ([]types.SearchResult, error)
}

// Request holds the search parameters.
type Request struct {
	Query      string
	Depth      string
	MaxResults int
	TimeRange  string
}

// NewRequest builds a Request from the search config, using query when it
// is non-empty and the configured query otherwise.
func NewRequest(query string, cfg types.SearchConfig) Request {
	if strings.TrimSpace(query) == "" {
		query = cfg.Query
	}
	return Request{
		Query:      query,
		Depth:      cfg.Depth,
		MaxResults: cfg.MaxResults,
		TimeRange:  cfg.TimeRange,
	}
}

// Validate rejects requests the API would refuse.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query is empty")
	}
	switch r.Depth {
	case "", "basic", "advanced":
	default:
		return fmt.Errorf("unknown search depth %q (want basic or advanced)", r.Depth)
	}
	switch r.TimeRange {
	case "", "day", "week", "month", "year":
	default:
		return fmt.Errorf("unknown time range %q (want day, week, month or year)", r.TimeRange)
	}
	if r.MaxResults < 0 {
		return fmt.Errorf("max results must not be negative, got %d", r.MaxResults)
	}
	return nil
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-6s  %s\n", "Rank", "Title", "Score", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-60s  %-6.2f  %s\n", i+1, truncate(r.Title, 60), r.Score, r.URL)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(results)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
