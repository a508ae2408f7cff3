package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.AutomatonStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level and
// failures at warn. A missing automaton on Load is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.AutomatonStore) ports.AutomatonStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, a *domain.Automaton) error {
	start := time.Now()
	err := m.next.Save(ctx, name, a)
	m.log(ctx, "save", name, start, err, "states", a.Len())
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	start := time.Now()
	a, err := m.next.Load(ctx, name)
	m.log(ctx, "load", name, start, err)
	return a, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log(ctx, "delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err, "count", len(names))
	return names, err
}

func (m *loggingMiddleware) log(ctx context.Context, op, name string, start time.Time, err error, extra ...any) {
	attrs := append([]any{"op", op, "duration", time.Since(start)}, extra...)
	if name != "" {
		attrs = append(attrs, "name", name)
	}
	if err != nil && !errors.Is(err, domain.ErrAutomatonNotFound) {
		m.logger.WarnContext(ctx, "Store operation failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "Store operation", attrs...)
}
