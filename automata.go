package automata

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/input"
	"github.com/aretw0/automata/pkg/ports"
)

// Engine is the high-level entry point for the automata library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	store   ports.AutomatonStore
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	maxSize int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStore attaches a store for ValidateStored.
func WithStore(store ports.AutomatonStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithMaxInputSize limits input length in bytes. The default is
// input.DefaultMaxInputSize.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxSize = n
	}
}

// New creates an Engine. Inputs pass through an input.Sanitizer before
// reaching an automaton.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	sanitizer := input.Sanitizer{MaxSize: e.maxSize}
	e.runtime = runtime.NewEngine(
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithSanitizer(sanitizer.Check),
	)
	return e
}

// Validate runs input through a.
func (e *Engine) Validate(ctx context.Context, a *domain.Automaton, input string) (*domain.Result, error) {
	return e.runtime.Validate(ctx, a, input)
}

// ValidateStored loads name from the attached store and runs input through it.
// Without a store it returns domain.ErrAutomatonNotFound.
func (e *Engine) ValidateStored(ctx context.Context, name, input string) (*domain.Result, error) {
	if e.store == nil {
		return nil, domain.ErrAutomatonNotFound
	}
	a, err := e.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.Validate(ctx, a, input)
}

// LoadFile reads an automaton, choosing the format by extension:
// .afd/.json native, .yaml/.yml native YAML, .jff/.xml JFLAP.
func LoadFile(path string) (*domain.Automaton, error) {
	return codec.ReadFile(path)
}

// SaveFile writes a, choosing the format by extension as LoadFile does.
func SaveFile(path string, a *domain.Automaton) error {
	return codec.WriteFile(path, a)
}
