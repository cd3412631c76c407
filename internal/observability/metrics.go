// Package observability defines the Prometheus metrics of the completion
// pipeline.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "genesis_ai"

// Outcome labels for completed generations.
const (
	OutcomeAnswered       = "answered"
	OutcomePolicyBlocked  = "policy_blocked"
	OutcomeModelBlocked   = "model_blocked"
	OutcomeCancelled      = "cancelled"
	OutcomeUpstreamFailed = "upstream_failed"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	generations   *prometheus.CounterVec
	tokens        *prometheus.CounterVec
	firstToken    prometheus.Histogram
	activeStreams prometheus.Gauge
	topics        *prometheus.CounterVec
}

// NewMetrics registers the pipeline metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// Labels: outcome (answered, policy_blocked, model_blocked, cancelled, upstream_failed)
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "completions",
			Name:      "total",
			Help:      "Completed generations by outcome",
		}, []string{"outcome"}),
		// Labels: direction (prompt, completion)
		tokens: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "completions",
			Name:      "tokens_total",
			Help:      "Tokens accounted to completions",
		}, []string{"direction"}),
		firstToken: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "completions",
			Name:      "time_to_first_token_seconds",
			Help:      "Time from request start to the first streamed content",
			Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 8, 13, 20},
		}),
		activeStreams: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "completions",
			Name:      "active_streams",
			Help:      "Responses currently streaming",
		}),
		// Labels: topic (1..4, policy_violation)
		topics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "topics_total",
			Help:      "Classified prompt topics",
		}, []string{"topic"}),
	}
}

func (m *Metrics) ObserveGeneration(outcome string, promptTokens, completionTokens int) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
	m.tokens.WithLabelValues("prompt").Add(float64(promptTokens))
	m.tokens.WithLabelValues("completion").Add(float64(completionTokens))
}

func (m *Metrics) ObserveFirstToken(d time.Duration) {
	if m == nil {
		return
	}
	m.firstToken.Observe(d.Seconds())
}

// StreamStarted increments the active stream gauge and returns its decrement.
func (m *Metrics) StreamStarted() func() {
	if m == nil {
		return func() {}
	}
	m.activeStreams.Inc()
	return m.activeStreams.Dec
}

func (m *Metrics) ObserveTopic(topic string) {
	if m == nil {
		return
	}
	m.topics.WithLabelValues(topic).Inc()
}
