package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exposes MarketLens counters and histograms to Prometheus.
type Recorder struct {
	registry     *prometheus.Registry
	fetches      *prometheus.CounterVec
	fetchLatency prometheus.Histogram
	cacheLookups *prometheus.CounterVec
	computations prometheus.Counter
	rangeDays    prometheus.Histogram
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_fetches_total",
				Help: "Market chart fetches by data source and result",
			},
			[]string{"source", "result"},
		),
		fetchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "marketlens_fetch_duration_seconds",
			Help:    "Duration of market chart fetches in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_cache_lookups_total",
				Help: "Raw chart cache lookups by result",
			},
			[]string{"result"},
		),
		computations: f.NewCounter(prometheus.CounterOpts{
			Name: "marketlens_computations_total",
			Help: "Statistics computations performed",
		}),
		rangeDays: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "marketlens_range_days",
			Help:    "Number of days in computed date ranges",
			Buckets: []float64{7, 30, 90, 365, 730, 1825, 3650},
		}),
	}
}

// RecordFetch records one fetch attempt and its latency. All Record methods
// are no-ops on a nil Recorder.
func (r *Recorder) RecordFetch(source string, d time.Duration, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.fetches.WithLabelValues(source, result).Inc()
	r.fetchLatency.Observe(d.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	r.cacheLookups.WithLabelValues("miss").Inc()
}

// RecordComputation records a finished statistics computation.
func (r *Recorder) RecordComputation(days int) {
	if r == nil {
		return
	}
	r.computations.Inc()
	r.rangeDays.Observe(float64(days))
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
