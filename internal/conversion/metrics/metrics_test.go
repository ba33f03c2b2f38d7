package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementConversions("length", "convert", 3)
	m.IncrementRejected("speed")
	m.IncrementCache("hit")
	m.IncrementCache("hit")
	m.SetBreakerOpen(true)
	m.ObserveConvert(time.Now())

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Conversions.WithLabelValues("length", "convert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("speed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheBreakerOpen))

	m.SetBreakerOpen(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheBreakerOpen))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementConversions("length", "convert", 1)
		m.IncrementRejected("length")
		m.IncrementCache("miss")
		m.SetBreakerOpen(true)
		m.ObserveConvert(time.Now())
	})
}
