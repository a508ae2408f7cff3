package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// Sanitizer checks raw input before it reaches the automaton. It can only
// reject input; the automaton always sees the caller's string.
type Sanitizer func(string) error

// Engine wraps Validate with logging, lifecycle hooks and metrics.
// It holds no per-run state, so one Engine can serve many automata.
type Engine struct {
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	metrics   *Metrics
	sanitizer Sanitizer
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithSanitizer installs an input check applied before every run.
func WithSanitizer(s Sanitizer) EngineOption {
	return func(e *Engine) {
		e.sanitizer = s
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate runs input through a and returns the verdict with its full trace.
// The only errors are a canceled context and input rejected by the sanitizer;
// rejection by the automaton is a normal result.
func (e *Engine) Validate(ctx context.Context, a *domain.Automaton, input string) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.sanitizer != nil {
		if err := e.sanitizer(input); err != nil {
			e.logger.Warn("input rejected", "err", err, "size", len(input))
			return nil, err
		}
	}

	if e.hooks.OnValidationStart != nil {
		e.hooks.OnValidationStart(ctx, &domain.ValidationEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventValidationStart},
			Input:     input,
		})
	}

	accepted, trace := Validate(a, input)

	if e.hooks.OnStep != nil {
		for i, step := range trace {
			e.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
				Index:     i,
				Step:      step,
			})
		}
	}

	outcome := outcomeOf(accepted, trace)
	e.metrics.observe(outcome, len(trace))
	e.logger.Debug("validated", "input", input, "outcome", outcome, "steps", len(trace))

	if e.hooks.OnValidationEnd != nil {
		e.hooks.OnValidationEnd(ctx, &domain.ValidationEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventValidationEnd},
			Input:     input,
			Accepted:  accepted,
			Steps:     len(trace),
		})
	}

	return &domain.Result{Input: input, Accepted: accepted, Trace: trace}, nil
}
