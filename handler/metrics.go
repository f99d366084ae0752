package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/elliottskebab/ordering/consts"
)

// Metrics counts checkout attempts by terminal status.
type Metrics struct {
	attempts *prometheus.CounterVec
}

// NewMetrics registers the checkout counters on reg. A nil registerer
// builds unregistered (test-only) metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ordering",
				Subsystem: "checkout",
				Name:      "attempts_total",
				Help:      "Checkout attempts by terminal status.",
			},
			[]string{"status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.attempts)
	}
	return m
}

// Observe records the attempt outcome. Only terminal states are counted;
// nil metrics are a no-op so the handler works without instrumentation.
func (m *Metrics) Observe(status consts.AttemptStatus) {
	if m == nil || !status.Terminal() {
		return
	}
	m.attempts.WithLabelValues(string(status)).Inc()
}
