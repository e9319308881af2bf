// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/observability"
)

const namespace = "gridraw"

// Metrics holds the collectors. A single value implements every hook
// interface of the observability package.
type Metrics struct {
	gatherer prometheus.Gatherer

	orderings    *prometheus.CounterVec
	orderSeconds prometheus.Histogram
	drawings     *prometheus.CounterVec
	drawSeconds  *prometheus.HistogramVec
	drawArea     *prometheus.HistogramVec
	renders      *prometheus.CounterVec
	cacheOps     *prometheus.CounterVec
	cacheBytes   *prometheus.CounterVec
	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpSeconds  *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. A nil reg uses a
// fresh registry, which is then what Handler serves.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		gatherer: reg,
		orderings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "orderings_total",
			Help: "Canonical orderings computed, by result code.",
		}, []string{"code"}),
		orderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "ordering_duration_seconds",
			Help:    "Time spent computing canonical orderings.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		drawings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "drawings_total",
			Help: "Drawings computed, by algorithm and result code.",
		}, []string{"algorithm", "code"}),
		drawSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "drawing_duration_seconds",
			Help:    "Time spent placing vertices.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		drawArea: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "drawing_area",
			Help:    "Grid area (width times height) of successful drawings.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"algorithm"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "renders_total",
			Help: "Render calls, by format and outcome.",
		}, []string{"format", "outcome"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_operations_total",
			Help: "Cache lookups and writes, by key type and operation.",
		}, []string{"key_type", "op"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cache_written_bytes_total",
			Help: "Bytes written to the cache.",
		}, []string{"key_type"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "http_requests_in_flight",
			Help: "HTTP requests being served.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		httpSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.orderings, m.orderSeconds,
		m.drawings, m.drawSeconds, m.drawArea,
		m.renders, m.cacheOps, m.cacheBytes,
		m.httpInFlight, m.httpRequests, m.httpSeconds,
	)
	return m
}

// Register installs m as the pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// code maps an error to a label value: "ok", its error code, or "error".
func code(err error) string {
	if err == nil {
		return "ok"
	}
	if c := gerr.GetCode(err); c != "" {
		return string(c)
	}
	return "error"
}

func (m *Metrics) OnOrderStart(context.Context, int) {}

func (m *Metrics) OnOrderComplete(_ context.Context, _ int, d time.Duration, err error) {
	m.orderings.WithLabelValues(code(err)).Inc()
	m.orderSeconds.Observe(d.Seconds())
}

func (m *Metrics) OnDrawStart(context.Context, string, int) {}

func (m *Metrics) OnDrawComplete(_ context.Context, alg string, width, height int, d time.Duration, err error) {
	m.drawings.WithLabelValues(alg, code(err)).Inc()
	m.drawSeconds.WithLabelValues(alg).Observe(d.Seconds())
	if err == nil {
		m.drawArea.WithLabelValues(alg).Observe(float64(width * height))
	}
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	for _, f := range formats {
		m.renders.WithLabelValues(f, outcome).Inc()
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.httpInFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpInFlight.Dec()
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
