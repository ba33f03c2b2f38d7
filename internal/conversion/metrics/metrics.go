package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the conversion module.
// All methods are safe on a nil receiver.
type Metrics struct {
	Conversions      *prometheus.CounterVec
	Rejected         *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	CacheBreakerOpen prometheus.Gauge
	ConvertDuration  prometheus.Histogram
}

// New registers the conversion metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Conversions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unitconv_conversions_total",
			Help: "Values converted, by dimension and operation",
		}, []string{"dimension", "operation"}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unitconv_rejected_inputs_total",
			Help: "Requests refused because an input did not parse or resolve",
		}, []string{"dimension"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unitconv_cache_lookups_total",
			Help: "Result cache lookups by outcome (hit, miss, error)",
		}, []string{"result"}),
		CacheBreakerOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "unitconv_cache_breaker_open",
			Help: "1 while the cache circuit breaker routes to the in-memory fallback",
		}),
		ConvertDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "unitconv_convert_duration_seconds",
			Help:    "Duration of Convert operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

// IncrementConversions records n converted values.
func (m *Metrics) IncrementConversions(dimension, operation string, n int) {
	if m == nil {
		return
	}
	m.Conversions.WithLabelValues(dimension, operation).Add(float64(n))
}

func (m *Metrics) IncrementRejected(dimension string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(dimension).Inc()
}

// IncrementCache records a cache lookup outcome: "hit", "miss" or "error".
func (m *Metrics) IncrementCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CacheBreakerOpen.Set(1)
		return
	}
	m.CacheBreakerOpen.Set(0)
}

// ObserveConvert records the duration of a Convert call started at start.
func (m *Metrics) ObserveConvert(start time.Time) {
	if m == nil {
		return
	}
	m.ConvertDuration.Observe(time.Since(start).Seconds())
}
