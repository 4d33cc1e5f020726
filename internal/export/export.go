// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes curated records to spreadsheet, Word, YAML and JSON
// files.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

// Format selects an export encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatDOCX Format = "docx"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatXLSX, FormatDOCX, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want xlsx, docx, yaml or json)", s)
	}
}

// Columns are the export headers, in record field order: date, title,
// summary, url, excerpt.
var Columns = []string{"日期", "新闻标题", "核心总结", "原始链接", "参考摘要"}

// SheetName is the name of the single worksheet in the xlsx export.
const SheetName = "AI新闻简报"

// FileName returns the dated export file name, e.g. AI_Research_20261018.xlsx.
func FileName(now time.Time, f Format) string {
	return fmt.Sprintf("AI_Research_%s.%s", now.Format("20060102"), f)
}

// row returns a record's cells in column order.
func row(r types.CuratedRecord) []string {
	return []string{r.Date, r.Title, r.Summary, r.URL, r.Excerpt}
}

// exportEntry is the YAML/JSON shape of a record. Keys follow the
// spreadsheet headers so every format reads the same.
type exportEntry struct {
	Date    string `json:"日期" yaml:"日期"`
	Title   string `json:"新闻标题" yaml:"新闻标题"`
	Summary string `json:"核心总结" yaml:"核心总结"`
	URL     string `json:"原始链接" yaml:"原始链接"`
	Excerpt string `json:"参考摘要" yaml:"参考摘要"`
}

func entries(records []types.CuratedRecord) []exportEntry {
	out := make([]exportEntry, len(records))
	for i, r := range records {
		out[i] = exportEntry{Date: r.Date, Title: r.Title, Summary: r.Summary, URL: r.URL, Excerpt: r.Excerpt}
	}
	return out
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(w io.Writer, records []types.CuratedRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries(records)); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []types.CuratedRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries(records)); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
