package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds process wide HTTP metrics. Module metrics live with their module.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers the HTTP metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "unitconv_http_requests_total",
			Help: "HTTP requests by route pattern and status code",
		}, []string{"route", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "unitconv_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, status).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(seconds)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
