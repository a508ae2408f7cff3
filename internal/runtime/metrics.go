package runtime

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the validations counter.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeStuck    = "stuck" // stopped on a symbol with no transition
	OutcomeNoStart  = "no_initial_state"
)

// Metrics holds the Prometheus collectors updated by the Engine.
type Metrics struct {
	Validations *prometheus.CounterVec
	TraceSteps  prometheus.Histogram
}

// NewMetrics creates the engine collectors and registers them on reg.
// A nil reg leaves the collectors unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "automata_validations_total",
			Help: "Total number of validated strings by outcome",
		}, []string{"outcome"}),
		TraceSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "automata_trace_steps",
			Help:    "Number of steps recorded per validation trace",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Validations, m.TraceSteps} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) observe(outcome string, steps int) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(outcome).Inc()
	m.TraceSteps.Observe(float64(steps))
}

func outcomeOf(accepted bool, trace domain.Trace) string {
	switch {
	case accepted:
		return OutcomeAccepted
	case len(trace) == 0:
		return OutcomeNoStart
	case trace.Failed():
		return OutcomeStuck
	default:
		return OutcomeRejected
	}
}
