package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "mondrian"
	outcomeOK        = "ok"
	outcomeError     = "error"
)

// Prometheus records pipeline, cache and HTTP events as Prometheus metrics.
type Prometheus struct {
	generations     *prometheus.CounterVec
	generateSeconds prometheus.Histogram
	rectangles      prometheus.Histogram
	renders         *prometheus.CounterVec
	renderSeconds   *prometheus.HistogramVec
	cacheEvents     *prometheus.CounterVec
	cacheBytes      *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestSeconds  *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "generations_total",
			Help:      "Number of compositions generated.",
		}, []string{"palette"}),
		generateSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "generate_duration_seconds",
			Help:      "Duration of composition generation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		rectangles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "colored_rectangles",
			Help:      "Colored rectangles per composition.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "renders_total",
			Help:      "Number of render calls by format set and outcome.",
		}, []string{"formats", "outcome"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "render_duration_seconds",
			Help:      "Duration of rendering by format set.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"formats"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache hits, misses and writes by key type.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Number of rejected HTTP requests by error code.",
		}, []string{"route", "method", "code"}),
	}

	for _, c := range []prometheus.Collector{
		p.generations, p.generateSeconds, p.rectangles,
		p.renders, p.renderSeconds,
		p.cacheEvents, p.cacheBytes,
		p.requests, p.requestSeconds, p.requestErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RegisterPrometheus creates a [Prometheus] on reg and installs it as the
// pipeline, cache and HTTP hooks.
func RegisterPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p, err := NewPrometheus(reg)
	if err != nil {
		return nil, err
	}
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetHTTPHooks(p)
	return p, nil
}

func (p *Prometheus) OnGenerateStart(context.Context, string, int64) {}

func (p *Prometheus) OnGenerateComplete(_ context.Context, palette string, rectCount int, d time.Duration) {
	p.generations.WithLabelValues(palette).Inc()
	p.generateSeconds.Observe(d.Seconds())
	p.rectangles.Observe(float64(rectCount))
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	key := strings.Join(formats, ",")
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	p.renders.WithLabelValues(key, outcome).Inc()
	p.renderSeconds.WithLabelValues(key).Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.requestSeconds.WithLabelValues(route, method).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, method, route, code string) {
	p.requestErrors.WithLabelValues(route, method, code).Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
