package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "nemo"

// Metric family names read back by Snapshot.
const (
	generationsFamily = namespace + "_templates_generated_total"
	latencyFamily     = namespace + "_templates_generation_seconds"
	validationsFamily = namespace + "_validation_checks_total"
	testCallsFamily   = namespace + "_outreach_test_calls_total"
	testEmailsFamily  = namespace + "_outreach_test_emails_total"
)

// EngineMetrics counts text generation and contact validation.
type EngineMetrics struct {
	generations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	validations *prometheus.CounterVec
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "templates",
			Name:      "generated_total",
			Help:      "Total generated reminder texts",
		}, []string{"generator", "variant"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "templates",
			Name:      "generation_seconds",
			Help:      "Latency of reminder text generation",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"generator"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "checks_total",
			Help:      "Total contact validation checks",
		}, []string{"field", "valid"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.generations, m.latency, m.validations)
	return m
}

// ObserveGeneration records one generator run. variant is the message type,
// channel/tone pair or policy style.
func (m *EngineMetrics) ObserveGeneration(generator, variant string, seconds float64) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(generator, variant).Inc()
	m.latency.WithLabelValues(generator).Observe(seconds)
}

func (m *EngineMetrics) ObserveValidation(field string, valid bool) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(field, boolLabel(valid)).Inc()
}

// OutreachMetrics counts test calls and test emails.
type OutreachMetrics struct {
	testCalls  *prometheus.CounterVec
	testEmails *prometheus.CounterVec
}

func NewOutreachMetrics(reg prometheus.Registerer) *OutreachMetrics {
	m := &OutreachMetrics{
		testCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outreach",
			Name:      "test_calls_total",
			Help:      "Total test calls requested",
		}, []string{"status"}),
		testEmails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outreach",
			Name:      "test_emails_total",
			Help:      "Total test emails sent",
		}, []string{"provider", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.testCalls, m.testEmails)
	return m
}

func (m *OutreachMetrics) ObserveTestCall(status string) {
	if m == nil {
		return
	}
	m.testCalls.WithLabelValues(status).Inc()
}

func (m *OutreachMetrics) ObserveTestEmail(provider, status string) {
	if m == nil {
		return
	}
	m.testEmails.WithLabelValues(provider, status).Inc()
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
