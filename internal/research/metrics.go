// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes.
const (
	outcomeOK          = "ok"
	outcomeInitError   = "init_error"
	outcomeSearchError = "search_error"
)

// Item outcomes.
const (
	itemKept    = "kept"
	itemSkipped = "skipped"
	itemFailed  = "failed"
)

// Metrics counts runs and classified items. A nil *Metrics records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	items    *prometheus.CounterVec
	classify prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg when reg is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdesk_runs_total",
			Help: "Research runs by outcome.",
		}, []string{"outcome"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdesk_items_total",
			Help: "Search results processed by classification outcome.",
		}, []string{"outcome"}),
		classify: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "newsdesk_classify_duration_seconds",
			Help:    "Latency of a single classification call.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.items, m.classify)
	}
	return m
}

func (m *Metrics) run(outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) item(outcome string) {
	if m == nil {
		return
	}
	m.items.WithLabelValues(outcome).Inc()
}

func (m *Metrics) classifyTook(d time.Duration) {
	if m == nil {
		return
	}
	m.classify.Observe(d.Seconds())
}
