package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for store operations.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type metricsMiddleware struct {
	next     ports.AutomatonStore
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware times every store operation into
// automata_store_operation_duration_seconds, labelled by operation and
// outcome. The histogram is registered on reg.
func NewMetricsMiddleware(reg prometheus.Registerer) (Middleware, error) {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "automata_store_operation_duration_seconds",
		Help:    "Duration of automaton store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "outcome"})

	if reg != nil {
		if err := reg.Register(duration); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return func(next ports.AutomatonStore) ports.AutomatonStore {
		return &metricsMiddleware{next: next, duration: duration}
	}, nil
}

func (m *metricsMiddleware) Save(ctx context.Context, name string, a *domain.Automaton) error {
	start := time.Now()
	err := m.next.Save(ctx, name, a)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	start := time.Now()
	a, err := m.next.Load(ctx, name)
	m.observe("load", start, err)
	return a, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.observe("list", start, err)
	return names, err
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	outcome := OutcomeOK
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		outcome = OutcomeNotFound
	case err != nil:
		outcome = OutcomeError
	}
	m.duration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}
