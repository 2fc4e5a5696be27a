package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/isofixture/pkg/observability"
)

// Metrics implements the observability hooks on top of Prometheus.
type Metrics struct {
	buildsTotal     *prometheus.CounterVec
	buildDuration   prometheus.Histogram
	tokenEdges      prometheus.Histogram
	patternsEmitted prometheus.Counter
	runsTotal       *prometheus.CounterVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  prometheus.Counter

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the fixture metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		buildsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "isofixture_token_builds_total",
			Help: "Total number of token graphs built, labelled by status.",
		}, []string{"status"}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "isofixture_token_build_duration_ms",
			Help:    "Token graph construction latency in milliseconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000},
		}),
		tokenEdges: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "isofixture_token_edges",
			Help:    "Edge count of built token graphs.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		patternsEmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "isofixture_patterns_emitted_total",
			Help: "Total number of isomorphic copies produced.",
		}),
		runsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "isofixture_runs_total",
			Help: "Total number of full pipeline runs, labelled by status.",
		}, []string{"status"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "isofixture_cache_events_total",
			Help: "Cache lookups and writes, labelled by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "isofixture_cache_written_bytes_total",
			Help: "Bytes written to the token cache.",
		}),
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "isofixture_http_requests_total",
			Help: "HTTP requests, labelled by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "isofixture_http_request_duration_ms",
			Help:    "HTTP request latency in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
	}
}

// Install registers m as the process-wide pipeline, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// OnBuildStart implements observability.PipelineHooks.
func (m *Metrics) OnBuildStart(context.Context, int, int) {}

// OnBuildComplete implements observability.PipelineHooks.
func (m *Metrics) OnBuildComplete(_ context.Context, _, _, edges int, d time.Duration, err error) {
	m.buildsTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		m.buildDuration.Observe(ms(d))
		m.tokenEdges.Observe(float64(edges))
	}
}

// OnPatternEmitted implements observability.PipelineHooks.
func (m *Metrics) OnPatternEmitted(context.Context, int) { m.patternsEmitted.Inc() }

// OnRunComplete implements observability.PipelineHooks.
func (m *Metrics) OnRunComplete(_ context.Context, _ int, _ time.Duration, err error) {
	m.runsTotal.WithLabelValues(status(err)).Inc()
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(context.Context, string, string) {}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(ms(d))
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
