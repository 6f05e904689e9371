package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface on top of Prometheus
// collectors.
type PrometheusHooks struct {
	loads          *prometheus.CounterVec
	loadDuration   *prometheus.HistogramVec
	reticulations  prometheus.Histogram
	compares       *prometheus.CounterVec
	compareSeconds prometheus.Histogram
	gedExplored    *prometheus.HistogramVec
	gedInexact     *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	cacheBytes     prometheus.Counter
	requests       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
}

// NewPrometheusHooks registers the mulnet collectors with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mulnet_inputs_loaded_total",
			Help: "Inputs read and built, by kind and result",
		}, []string{"kind", "result"}),
		loadDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mulnet_input_load_duration_seconds",
			Help:    "Time to parse and fold or unfold one input",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"kind"}),
		reticulations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mulnet_input_reticulations",
			Help:    "Reticulations per built network",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		compares: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mulnet_comparisons_total",
			Help: "Pairwise comparisons by result",
		}, []string{"result"}),
		compareSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mulnet_comparison_duration_seconds",
			Help:    "Pairwise comparison duration",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		}),
		gedExplored: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mulnet_edit_distance_explored_states",
			Help:    "Search states explored per edit distance computation",
			Buckets: prometheus.ExponentialBuckets(1, 8, 10),
		}, []string{"variant"}),
		gedInexact: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mulnet_edit_distance_inexact_total",
			Help: "Edit distance searches stopped before proving optimality",
		}, []string{"variant"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mulnet_cache_events_total",
			Help: "Cache lookups and writes by key type and event",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "mulnet_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mulnet_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mulnet_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (h *PrometheusHooks) OnLoad(_ context.Context, _, kind string, reticulations int, d time.Duration, err error) {
	h.loads.WithLabelValues(kind, result(err)).Inc()
	h.loadDuration.WithLabelValues(kind).Observe(d.Seconds())
	if err == nil {
		h.reticulations.Observe(float64(reticulations))
	}
}

func (h *PrometheusHooks) OnCompareStart(context.Context, string, string) {}

func (h *PrometheusHooks) OnCompareComplete(_ context.Context, _, _ string, d time.Duration, err error) {
	h.compares.WithLabelValues(result(err)).Inc()
	h.compareSeconds.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnEditDistance(_ context.Context, variant string, explored int, exact bool) {
	h.gedExplored.WithLabelValues(variant).Observe(float64(explored))
	if !exact {
		h.gedInexact.WithLabelValues(variant).Inc()
	}
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.requestSeconds.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ CompareHooks = (*PrometheusHooks)(nil)
	_ CacheHooks   = (*PrometheusHooks)(nil)
	_ HTTPHooks    = (*PrometheusHooks)(nil)
)
