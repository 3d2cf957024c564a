package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "mvc"

// Collector records dispatch metrics on its own registry.
type Collector struct {
	registry   *prometheus.Registry
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	jobs       *prometheus.CounterVec
}

// Option configures a Collector.
type Option func(*config)

type config struct {
	namespace string
	buckets   []float64
	runtime   bool
}

// WithNamespace sets the metric namespace. Default: "mvc".
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithBuckets sets the dispatch duration histogram buckets in seconds.
func WithBuckets(b ...float64) Option {
	return func(c *config) { c.buckets = b }
}

// WithRuntimeMetrics adds the Go runtime and process collectors.
func WithRuntimeMetrics() Option {
	return func(c *config) { c.runtime = true }
}

// New creates a Collector.
func New(opts ...Option) *Collector {
	cfg := &config{namespace: DefaultNamespace, buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(cfg)
	}

	reg := prometheus.NewRegistry()
	if cfg.runtime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "dispatches_total",
			Help:      "Dispatched requests by controller, action and status code.",
		}, []string{"controller", "action", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Dispatch latency by controller and action.",
			Buckets:   cfg.buckets,
		}, []string{"controller", "action"}),
		jobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "jobs_total",
			Help:      "Background dispatch jobs by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveDispatch implements the dispatcher's observer hook.
func (c *Collector) ObserveDispatch(controller, action string, status int, elapsed time.Duration) {
	c.dispatches.WithLabelValues(controller, action, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(controller, action).Observe(elapsed.Seconds())
}

// ObserveJob counts a finished background job. outcome is "ok" or "error".
func (c *Collector) ObserveJob(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.jobs.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry for custom collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
