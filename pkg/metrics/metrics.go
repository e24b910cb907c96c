package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ContactMetrics exposes counters/histograms for the contact form flow.
type ContactMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	dispatchLatency    *prometheus.HistogramVec
}

func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lunarai",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submit attempts by final state",
		}, []string{"state"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lunarai",
			Subsystem: "contact",
			Name:      "validation_failures_total",
			Help:      "Rejected contact form fields",
		}, []string{"field"}),
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lunarai",
			Subsystem: "contact",
			Name:      "dispatch_latency_seconds",
			Help:      "Latency of the mail-dispatch call",
			Buckets:   prometheus.DefBuckets,
		}, []string{"dispatcher", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.validationFailures, m.dispatchLatency)
	return m
}

func (m *ContactMetrics) ObserveSubmission(state string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(state).Inc()
}

func (m *ContactMetrics) ObserveValidationFailure(field string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

func (m *ContactMetrics) ObserveDispatch(dispatcher string, ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.dispatchLatency.WithLabelValues(dispatcher, outcome).Observe(elapsed.Seconds())
}
