// Package metrics exposes Prometheus instrumentation for the engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds counters and histograms for traversal and evidence flows.
// A nil *Metrics is valid and disables instrumentation.
type Metrics struct {
	choicesTotal        *prometheus.CounterVec
	demonstrationsTotal *prometheus.CounterVec
	fallbacksTotal      prometheus.Counter
	persistenceFailures prometheus.Counter
	applyLatency        prometheus.Histogram
}

// New registers and returns the engine metrics. A nil registerer falls back
// to the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		choicesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathwise",
			Subsystem: "traversal",
			Name:      "choices_total",
			Help:      "Choices applied, by outcome status",
		}, []string{"status"}),
		demonstrationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathwise",
			Subsystem: "evidence",
			Name:      "demonstrations_total",
			Help:      "Skill demonstrations extracted, by resolution source",
		}, []string{"source"}),
		fallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathwise",
			Subsystem: "traversal",
			Name:      "fallbacks_total",
			Help:      "Contextual fallback activations (content defects)",
		}),
		persistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathwise",
			Subsystem: "evidence",
			Name:      "persistence_failures_total",
			Help:      "Evidence store saves that failed after cleanup and retry",
		}),
		applyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathwise",
			Subsystem: "traversal",
			Name:      "apply_latency_seconds",
			Help:      "Latency of applying a choice end to end",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.choicesTotal, m.demonstrationsTotal, m.fallbacksTotal, m.persistenceFailures, m.applyLatency)
	return m
}

// ObserveChoice records an applied (or rejected) choice.
func (m *Metrics) ObserveChoice(status string) {
	if m == nil {
		return
	}
	m.choicesTotal.WithLabelValues(status).Inc()
}

// ObserveDemonstrations records extracted demonstrations by source.
func (m *Metrics) ObserveDemonstrations(source string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.demonstrationsTotal.WithLabelValues(source).Add(float64(count))
}

// ObserveFallback records a contextual fallback activation.
func (m *Metrics) ObserveFallback() {
	if m == nil {
		return
	}
	m.fallbacksTotal.Inc()
}

// ObservePersistenceFailure records a failed evidence save.
func (m *Metrics) ObservePersistenceFailure() {
	if m == nil {
		return
	}
	m.persistenceFailures.Inc()
}

// ObserveApplyLatency records the latency of a full choice application.
func (m *Metrics) ObserveApplyLatency(seconds float64) {
	if m == nil {
		return
	}
	m.applyLatency.Observe(seconds)
}
