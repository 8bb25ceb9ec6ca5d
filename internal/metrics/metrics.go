// Package metrics holds the Prometheus collectors for cache, upstream and
// assembly activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "archery"

type Metrics struct {
	registry *prometheus.Registry

	cacheLookups   *prometheus.CounterVec
	upstreamCalls  *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	buildFailures  prometheus.Counter
	registryArcher prometheus.Gauge
}

// New registers all collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	return &Metrics{
		registry: reg,
		cacheLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by result (hit or miss).",
		}, []string{"result"}),
		upstreamCalls: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Upstream results API requests by outcome.",
		}, []string{"outcome"}),
		buildDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "assembly",
			Name:      "build_duration_seconds",
			Help:      "Time spent assembling the archer registry.",
			Buckets:   prometheus.DefBuckets,
		}),
		buildFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assembly",
			Name:      "build_failures_total",
			Help:      "Registry builds aborted by an error.",
		}),
		registryArcher: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "assembly",
			Name:      "registry_archers",
			Help:      "Archers in the most recently built registry.",
		}),
	}
}

func (m *Metrics) CacheHit() { m.cacheLookups.WithLabelValues("hit").Inc() }
func (m *Metrics) CacheMiss() { m.cacheLookups.WithLabelValues("miss").Inc() }

func (m *Metrics) UpstreamOK() { m.upstreamCalls.WithLabelValues("ok").Inc() }
func (m *Metrics) UpstreamError() { m.upstreamCalls.WithLabelValues("error").Inc() }

func (m *Metrics) BuildFinished(seconds float64, archers int) {
	m.buildDuration.Observe(seconds)
	m.registryArcher.Set(float64(archers))
}

func (m *Metrics) BuildFailed() { m.buildFailures.Inc() }

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
