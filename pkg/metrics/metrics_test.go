package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestContactMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewContactMetrics(reg)

	m.ObserveSubmission("succeeded")
	m.ObserveSubmission("succeeded")
	m.ObserveSubmission("failed")
	m.ObserveValidationFailure("email")
	m.ObserveDispatch("function", true, 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationFailures.WithLabelValues("email")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.dispatchLatency))
}

func TestContactMetricsNilSafe(t *testing.T) {
	var m *ContactMetrics
	m.ObserveSubmission("idle")
	m.ObserveValidationFailure("email")
	m.ObserveDispatch("smtp", false, time.Second)
}

func TestHTTPMetricsObserve(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())

	m.ObserveRequest("POST", "/v1/contact", 200, 30*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/v1/contact", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "unmatched", "404")))

	var nilMetrics *HTTPMetrics
	nilMetrics.ObserveRequest("GET", "/", 200, time.Millisecond)
}
