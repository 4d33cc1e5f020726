// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	_ "embed"

	"github.com/labstack/echo/v4"

	"github.com/pdiddy/ai-newsdesk/internal/export"
	"github.com/pdiddy/ai-newsdesk/internal/research"
	"github.com/pdiddy/ai-newsdesk/internal/secrets"
	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

const (
	mimeNDJSON     = "application/x-ndjson"
	msgMissingKeys = "请先在左侧填入两个 API Key！"
	msgInitFailed  = "初始化失败，请检查 Key 是否正确"
	msgSearchFail  = "检索失败"
)

//go:embed static/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Query      string
	MaxResults int
	TimeRange  string
}

func (s *Server) index(c echo.Context) error {
	cfg := s.Runner.Config.WithDefaults()
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, indexData{
		Query:      cfg.Search.Query,
		MaxResults: cfg.Search.MaxResults,
		TimeRange:  cfg.Search.TimeRange,
	}); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

type researchRequest struct {
	SearchKey string `json:"search_key"`
	ModelKey  string `json:"model_key"`
	Query     string `json:"query"`
}

// resultLine is the final stream line of a successful run.
type resultLine struct {
	Type    string                `json:"type"`
	RunID   string                `json:"run_id"`
	Query   string                `json:"query"`
	Date    string                `json:"date"`
	Records []types.CuratedRecord `json:"records"`
	Summary research.Summary      `json:"summary"`
	Message string                `json:"message,omitempty"`
}

// errorLine is the final stream line of a run that failed at init or search.
type errorLine struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// research runs one sweep and streams progress as newline-delimited JSON.
// The run is detached from the request context so a closed tab does not
// abort it midway.
func (s *Server) research(c echo.Context) error {
	var req researchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	creds := secrets.Credentials{
		Search: strings.TrimSpace(req.SearchKey),
		Model:  strings.TrimSpace(req.ModelKey),
	}
	if !creds.Complete() {
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingKeys)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, mimeNDJSON)
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set("X-Content-Type-Options", "nosniff")
	res.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(res)
	enc.SetEscapeHTML(false)
	write := func(v any) {
		if err := enc.Encode(v); err != nil {
			s.Log.WithError(err).Debug("progress stream write failed")
			return
		}
		res.Flush()
	}

	ctx := context.WithoutCancel(c.Request().Context())
	report, err := s.Runner.Run(ctx, req.Query, creds, func(e research.Event) { write(e) })
	if err != nil {
		write(runErrorLine(err))
		return nil
	}

	line := resultLine{
		Type:    "result",
		RunID:   report.RunID,
		Query:   report.Query,
		Date:    report.Date,
		Records: report.Records,
		Summary: report.Summary,
	}
	if report.Empty() {
		line.Message = research.NoResultsMessage
	}
	write(line)
	return nil
}

func runErrorLine(err error) errorLine {
	var ie *research.InitError
	if errors.As(err, &ie) {
		return errorLine{Type: "error", Kind: "init", Message: fmt.Sprintf("%s: %v", msgInitFailed, err)}
	}
	var se *research.SearchError
	if errors.As(err, &se) {
		return errorLine{Type: "error", Kind: "search", Message: fmt.Sprintf("%s: %v", msgSearchFail, err)}
	}
	return errorLine{Type: "error", Kind: "internal", Message: err.Error()}
}

type exportRequest struct {
	Records []types.CuratedRecord `json:"records"`
}

// export renders the posted records as an xlsx attachment. The records come
// from the client, so the server keeps nothing between requests.
func (s *Server) export(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, req.Records); err != nil {
		return fmt.Errorf("rendering workbook: %w", err)
	}

	name := export.FileName(s.Now(), export.FormatXLSX)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, export.MIMEXLSX, buf.Bytes())
}
