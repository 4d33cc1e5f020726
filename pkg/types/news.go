// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ai-newsdesk pipeline:
// raw search hits coming in, curated records going out, and the
// configuration structs that parameterize each stage.
package types

// SearchResult is one hit returned by the web search API. It lives only for
// the duration of a run.
type SearchResult struct {
	// Title is the page title as returned by the search API.
	Title string `json:"title" yaml:"title"`

	// Content is the extracted page text. It may be empty.
	Content string `json:"content" yaml:"content"`

	// URL is the address of the source page.
	URL string `json:"url" yaml:"url"`

	// Score is the search API's relevance score. Informational only; result
	// order is what the pipeline relies on.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// CuratedRecord is a news item the classifier judged valuable, enriched
// with the model's summary. Field order matches the export column order.
type CuratedRecord struct {
	// Date is the run date, formatted YYYY-MM-DD.
	Date string `json:"date" yaml:"date"`

	Title string `json:"title" yaml:"title"`

	// Summary is the model's summary text following the summary marker.
	Summary string `json:"summary" yaml:"summary"`

	URL string `json:"url" yaml:"url"`

	// Excerpt is the first 200 characters of the search content plus "...".
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}
