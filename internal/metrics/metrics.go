// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "signalwise"

// Click log outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Redirect resolutions.
const (
	ResolutionKnown    = "known"
	ResolutionFallback = "fallback"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds all SignalWise Prometheus metrics.
// A nil *Metrics records nothing.
type Metrics struct {
	ClickLog         *prometheus.CounterVec
	ClickLogDuration prometheus.Histogram
	Redirects        *prometheus.CounterVec
	Recommendations  *prometheus.CounterVec
	DashboardCache   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the metrics on reg. Tests pass a fresh prometheus.NewRegistry
// so repeated construction does not collide.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ClickLog: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "click_log_total",
			Help:      "Click log attempts by outcome (ok, failed, skipped)",
		}, []string{"outcome"}),

		ClickLogDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "click_log_duration_seconds",
			Help:      "Time spent waiting on a click insert, bounded by the log timeout",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 0.8, 1.0, 2.5},
		}),

		Redirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_total",
			Help:      "Outbound redirects by carrier and resolution (known, fallback)",
		}, []string{"carrier", "resolution"}),

		Recommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Results served by best-match carrier and priority",
		}, []string{"carrier", "priority"}),

		DashboardCache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_cache_total",
			Help:      "Dashboard summary cache lookups by result (hit, miss, error)",
		}, []string{"result"}),

		gatherer: reg,
	}
}

// Handler returns the /metrics handler for the registry the metrics live in.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RecordClickLog counts one click log attempt.
func (m *Metrics) RecordClickLog(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ClickLog.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSkipped {
		m.ClickLogDuration.Observe(elapsed.Seconds())
	}
}

// RecordRedirect counts one outbound redirect. Unknown carriers are folded
// into a single label value to keep cardinality bounded.
func (m *Metrics) RecordRedirect(carrier string, known bool) {
	if m == nil {
		return
	}
	resolution := ResolutionKnown
	if !known {
		carrier = "unknown"
		resolution = ResolutionFallback
	}
	m.Redirects.WithLabelValues(carrier, resolution).Inc()
}

// RecordRecommendation counts one results response.
func (m *Metrics) RecordRecommendation(carrier, priority string) {
	if m == nil {
		return
	}
	m.Recommendations.WithLabelValues(carrier, priority).Inc()
}

// RecordCache counts one dashboard cache lookup.
func (m *Metrics) RecordCache(result string) {
	if m == nil {
		return
	}
	m.DashboardCache.WithLabelValues(result).Inc()
}
