// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs one news sweep: search, classify each hit in order,
// and keep the ones the model judges valuable.
package research

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/ai-newsdesk/internal/classify"
	"github.com/pdiddy/ai-newsdesk/internal/logging"
	"github.com/pdiddy/ai-newsdesk/internal/search"
	"github.com/pdiddy/ai-newsdesk/internal/secrets"
	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

const (
	excerptLen     = 200
	excerptSuffix  = "..."
	dateLayout     = "2006-01-02"
	progressTitle  = 50
	skippedTitle   = 20
	msgDone        = "分析完成！"
	searchClientID = "search"
	modelClientID  = "model"
)

// NoResultsMessage is shown when a run keeps nothing.
const NoResultsMessage = "检索结束，但今天暂未发现符合“深度研究”标准的 AI 新闻。"

// SearchFactory builds a search client from an API key.
type SearchFactory func(apiKey string, cfg types.HTTPConfig) (search.Client, error)

// ModelFactory builds a chat model client from an API key.
type ModelFactory func(apiKey string, cfg types.ModelConfig, httpCfg types.HTTPConfig) (classify.Model, error)

// TavilyFactory is the default SearchFactory.
func TavilyFactory(apiKey string, cfg types.HTTPConfig) (search.Client, error) {
	c, err := search.NewTavily(apiKey, cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeepSeekFactory is the default ModelFactory.
func DeepSeekFactory(apiKey string, cfg types.ModelConfig, httpCfg types.HTTPConfig) (classify.Model, error) {
	c, err := classify.NewDeepSeek(apiKey, cfg, httpCfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Runner executes research runs. The zero value is not usable; call New.
type Runner struct {
	Config    types.Config
	NewSearch SearchFactory
	NewModel  ModelFactory
	Log       *logrus.Entry
	Metrics   *Metrics

	// Now returns the run date. Tests override it.
	Now func() time.Time
}

// New returns a Runner wired to Tavily and DeepSeek.
func New(cfg types.Config, log *logrus.Entry, m *Metrics) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{
		Config:    cfg.WithDefaults(),
		NewSearch: TavilyFactory,
		NewModel:  DeepSeekFactory,
		Log:       log.WithField("component", "research"),
		Metrics:   m,
		Now:       time.Now,
	}
}

// Report is the output of one run.
type Report struct {
	RunID   string                `json:"run_id"`
	Query   string                `json:"query"`
	Date    string                `json:"date"`
	Records []types.CuratedRecord `json:"records"`
	Summary Summary               `json:"summary"`
}

// Empty reports whether the run kept nothing.
func (r *Report) Empty() bool {
	return len(r.Records) == 0
}

// Run searches for query (the configured query when empty), classifies each
// hit sequentially, and returns the valuable ones in search order.
//
// It returns *InitError when either client cannot be built and *SearchError
// when the search call fails. A failed model call only skips that item.
func (r *Runner) Run(ctx context.Context, query string, creds secrets.Credentials, observe Observer) (*Report, error) {
	cfg := r.Config.WithDefaults()
	runID := uuid.NewString()
	log := r.Log.WithField("run_id", runID)
	emit := func(e Event) {
		if observe != nil {
			observe(e)
		}
	}

	model, err := r.NewModel(creds.Model, cfg.Model, cfg.HTTP)
	if err != nil {
		r.Metrics.run(outcomeInitError)
		log.WithError(err).Error("model client init failed")
		return nil, &InitError{Component: modelClientID, Err: err}
	}
	searcher, err := r.NewSearch(creds.Search, cfg.HTTP)
	if err != nil {
		r.Metrics.run(outcomeInitError)
		log.WithError(err).Error("search client init failed")
		return nil, &InitError{Component: searchClientID, Err: err}
	}

	req := search.NewRequest(query, cfg.Search)
	log.WithFields(logrus.Fields{
		"query":       req.Query,
		"depth":       req.Depth,
		"max_results": req.MaxResults,
		"time_range":  req.TimeRange,
	}).Info("searching")

	results, err := searcher.Search(ctx, req)
	if err != nil {
		r.Metrics.run(outcomeSearchError)
		log.WithError(err).Error("search failed")
		return nil, &SearchError{Query: req.Query, Err: err}
	}

	report := &Report{
		RunID:   runID,
		Query:   req.Query,
		Date:    r.now().Format(dateLayout),
		Records: []types.CuratedRecord{},
	}
	report.Summary.Searched = len(results)

	for i, res := range results {
		itemLog := log.WithFields(logrus.Fields{"index": i, "url": res.URL})
		rec, ok := r.classifyOne(ctx, model, cfg.Model.ContentLimit, i, len(results), res, report, itemLog, emit)
		if ok {
			report.Records = append(report.Records, rec)
		}
	}

	r.Metrics.run(outcomeOK)
	log.WithFields(logrus.Fields{
		"searched": report.Summary.Searched,
		"kept":     report.Summary.Kept,
		"skipped":  report.Summary.Skipped,
		"failed":   report.Summary.Failed,
	}).Info("run complete")

	done := report.Summary
	msg := msgDone
	if report.Empty() {
		msg = NoResultsMessage
	}
	emit(Event{Kind: EventDone, Index: len(results), Total: len(results), Message: msg, Summary: &done})
	return report, nil
}

// classifyOne asks the model about one search result. It returns the curated
// record and true when the item is kept. Model errors are reported and
// counted here and never escape.
func (r *Runner) classifyOne(ctx context.Context, model classify.Model, limit, i, total int, res types.SearchResult, report *Report, log *logrus.Entry, emit func(Event)) (types.CuratedRecord, bool) {
	title := res.Title
	emit(Event{
		Kind:    EventAnalyzing,
		Index:   i,
		Total:   total,
		Title:   title,
		URL:     res.URL,
		Message: fmt.Sprintf("正在分析: %s...", classify.Clip(title, progressTitle)),
	})

	msgs, err := classify.BuildMessages(title, res.Content, limit)
	if err != nil {
		return r.fail(i, total, res, err, report, log, emit)
	}

	start := time.Now()
	text, err := model.Invoke(ctx, msgs)
	r.Metrics.classifyTook(time.Since(start))
	if err != nil {
		return r.fail(i, total, res, err, report, log, emit)
	}

	v := classify.Parse(text)
	if !v.Valuable {
		if v.Ambiguous {
			log.WithField("response", classify.Clip(text, 200)).Warn("classifier reply has no decision marker; treating as discarded")
		}
		report.Summary.Skipped++
		r.Metrics.item(itemSkipped)
		log.WithField("reason", v.Reason).Debug("item skipped")
		emit(Event{
			Kind:    EventSkipped,
			Index:   i,
			Total:   total,
			Title:   title,
			URL:     res.URL,
			Reason:  v.Reason,
			Message: fmt.Sprintf("跳过无关项: %s... [原因: %s]", classify.Clip(title, skippedTitle), v.Reason),
		})
		return types.CuratedRecord{}, false
	}

	report.Summary.Kept++
	r.Metrics.item(itemKept)
	log.Debug("item kept")
	emit(Event{
		Kind:    EventKept,
		Index:   i,
		Total:   total,
		Title:   title,
		URL:     res.URL,
		Message: fmt.Sprintf("已收录: %s", title),
	})

	return types.CuratedRecord{
		Date:    report.Date,
		Title:   title,
		Summary: v.Summary,
		URL:     res.URL,
		Excerpt: Excerpt(res.Content),
	}, true
}

func (r *Runner) fail(i, total int, res types.SearchResult, err error, report *Report, log *logrus.Entry, emit func(Event)) (types.CuratedRecord, bool) {
	report.Summary.Failed++
	r.Metrics.item(itemFailed)
	log.WithError(err).Warn("item classification failed")
	emit(Event{
		Kind:    EventWarning,
		Index:   i,
		Total:   total,
		Title:   res.Title,
		URL:     res.URL,
		Error:   err.Error(),
		Message: fmt.Sprintf("单条新闻分析失败: %v", err),
	})
	return types.CuratedRecord{}, false
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Excerpt returns the first 200 characters of content followed by "...".
func Excerpt(content string) string {
	return classify.Clip(content, excerptLen) + excerptSuffix
}
