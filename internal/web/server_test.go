// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/ai-newsdesk/internal/classify"
	"github.com/pdiddy/ai-newsdesk/internal/export"
	"github.com/pdiddy/ai-newsdesk/internal/logging"
	"github.com/pdiddy/ai-newsdesk/internal/research"
	"github.com/pdiddy/ai-newsdesk/internal/search"
	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

type stubSearch struct {
	results []types.SearchResult
	err     error
}

func (s stubSearch) Search(context.Context, search.Request) ([]types.SearchResult, error) {
	return s.results, s.err
}

// titleModel keeps items whose title starts with "keep".
type titleModel struct{}

func (titleModel) Invoke(_ context.Context, msgs []classify.Message) (string, error) {
	user := msgs[len(msgs)-1].Content
	switch {
	case strings.Contains(user, "标题：keep"):
		return "价值判断：有\n深度总结：summary", nil
	case strings.Contains(user, "标题：fail"):
		return "", errors.New("model timeout")
	default:
		return "放弃（软文）", nil
	}
}

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, s search.Client) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	runner := research.New(types.Config{}, logging.Discard(), research.NewMetrics(reg))
	runner.NewSearch = func(string, types.HTTPConfig) (search.Client, error) { return s, nil }
	runner.NewModel = func(key string, cfg types.ModelConfig, httpCfg types.HTTPConfig) (classify.Model, error) {
		// Keep the real key check so init failures can be exercised.
		if _, err := classify.NewDeepSeek(key, cfg, httpCfg); err != nil {
			return nil, err
		}
		return titleModel{}, nil
	}
	runner.Now = func() time.Time { return testNow }

	srv := New(runner, logging.Discard(), reg)
	srv.Now = func() time.Time { return testNow }
	return srv, reg
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func streamLines(t *testing.T, body []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), "line %q", sc.Text())
		out = append(out, m)
	}
	return out
}

func TestIndex(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{})
	rec := do(t, srv, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "AI行业实时新闻深研工具")
	assert.Contains(t, body, `value="最新实时的AI新闻"`)
	assert.Contains(t, body, "24 小时")
	assert.Contains(t, body, "最多 15 条")
}

func TestResearchMissingKeys(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{})
	for _, body := range []string{
		`{}`,
		`{"search_key":"tvly-x"}`,
		`{"model_key":"sk-x","search_key":"   "}`,
	} {
		rec := do(t, srv, http.MethodPost, "/api/research", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "请先在左侧填入两个 API Key！", resp["error"])
	}
}

func TestResearchStreamsProgressAndResult(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{results: []types.SearchResult{
		{Title: "keep: model launch", Content: "body", URL: "https://a.example"},
		{Title: "ad: tool list", Content: "body", URL: "https://b.example"},
		{Title: "fail: flaky", Content: "body", URL: "https://c.example"},
		{Title: "keep: funding round", Content: "", URL: "https://d.example"},
	}})

	rec := do(t, srv, http.MethodPost, "/api/research", `{"search_key":"tvly-x","model_key":"sk-x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-ndjson", rec.Header().Get(echo.HeaderContentType))

	lines := streamLines(t, rec.Body.Bytes())
	require.NotEmpty(t, lines)

	var kinds []string
	for _, l := range lines {
		kinds = append(kinds, l["type"].(string))
	}
	assert.Equal(t, []string{
		"analyzing", "kept",
		"analyzing", "skipped",
		"analyzing", "warning",
		"analyzing", "kept",
		"done", "result",
	}, kinds)

	warning := lines[5]
	assert.Equal(t, "model timeout", warning["error"])

	result := lines[len(lines)-1]
	assert.Equal(t, "2026-10-18", result["date"])
	assert.NotContains(t, result, "message")
	records := result["records"].([]any)
	require.Len(t, records, 2)
	first := records[0].(map[string]any)
	assert.Equal(t, "keep: model launch", first["title"])
	assert.Equal(t, "summary", first["summary"])
	assert.Equal(t, "body...", first["excerpt"])
	assert.Equal(t, "https://d.example", records[1].(map[string]any)["url"])

	summary := result["summary"].(map[string]any)
	assert.Equal(t, float64(2), summary["kept"])
	assert.Equal(t, float64(1), summary["skipped"])
	assert.Equal(t, float64(1), summary["failed"])
}

func TestResearchNoValuableItems(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{results: []types.SearchResult{{Title: "ad", URL: "u"}}})

	rec := do(t, srv, http.MethodPost, "/api/research", `{"search_key":"tvly-x","model_key":"sk-x"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	lines := streamLines(t, rec.Body.Bytes())
	result := lines[len(lines)-1]
	assert.Equal(t, "result", result["type"])
	assert.Empty(t, result["records"])
	assert.Equal(t, research.NoResultsMessage, result["message"])
}

func TestResearchInitFailure(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{results: []types.SearchResult{{Title: "keep"}}})

	rec := do(t, srv, http.MethodPost, "/api/research", `{"search_key":"tvly-x","model_key":"sk bad key"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	lines := streamLines(t, rec.Body.Bytes())
	require.Len(t, lines, 1, "no progress before init succeeds")
	assert.Equal(t, "error", lines[0]["type"])
	assert.Equal(t, "init", lines[0]["kind"])
	assert.Contains(t, lines[0]["message"], "初始化失败")
}

func TestResearchSearchFailure(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{err: errors.New("HTTP 500")})

	rec := do(t, srv, http.MethodPost, "/api/research", `{"search_key":"tvly-x","model_key":"sk-x"}`)
	lines := streamLines(t, rec.Body.Bytes())
	require.Len(t, lines, 1)
	assert.Equal(t, "search", lines[0]["kind"])
	assert.Contains(t, lines[0]["message"], "HTTP 500")
}

func TestExport(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{})
	body := `{"records":[{"date":"2026-10-18","title":"T","summary":"S","url":"https://u.example","excerpt":"E..."}]}`

	rec := do(t, srv, http.MethodPost, "/api/export", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.MIMEXLSX, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="AI_Research_20261018.xlsx"`, rec.Header().Get(echo.HeaderContentDisposition))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-10-18", "T", "S", "https://u.example", "E..."}, rows[1])
}

func TestExportBadBody(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{})
	rec := do(t, srv, http.MethodPost, "/api/export", `{"records":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthzAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{})

	rec := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	do(t, srv, http.MethodPost, "/api/research", `{"search_key":"tvly-x","model_key":"sk-x"}`)

	rec = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `newsdesk_runs_total{outcome="ok"} 1`)
}

func TestUnknownRouteIsJSONError(t *testing.T) {
	srv, _ := newTestServer(t, stubSearch{})
	rec := do(t, srv, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}
