package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/input"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Backend bundles the store and locker selected by configuration.
type Backend struct {
	Store  ports.AutomatonStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases connections held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend builds the automaton store and locker for cfg.Store.Backend.
// The store is wrapped with mws, the first being the outermost.
func OpenBackend(ctx context.Context, cfg *config.Config, mws ...middleware.Middleware) (*Backend, error) {
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.Store = middleware.Chain(b.Store, mws...)
	return b, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return &Backend{Store: memory.NewStore(), Locker: memory.NewLocker()}, nil

	case config.BackendFile:
		// Single process: an in-memory locker is enough for one file directory.
		return &Backend{Store: file.New(cfg.Store.Dir), Locker: memory.NewLocker()}, nil

	case config.BackendRedis:
		rc := cfg.Store.Redis
		opts := []redis.Option{redis.WithPrefix(rc.Prefix)}
		if rc.TTL > 0 {
			opts = append(opts, redis.WithTTL(rc.TTL))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis store at %s: %w", rc.Addr, err)
		}
		return &Backend{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), rc.Prefix),
			close:  store.Close,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown store backend %q", config.ErrInvalidConfig, cfg.Store.Backend)
}

// NewLogger creates the application logger on stderr.
// Stdout stays reserved for command output.
func NewLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, cfg.LogFormat == "json"), nil
}

// NewEngine creates a validation engine wired with logging, the input
// sanitizer and, when reg is not nil, Prometheus metrics.
func NewEngine(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*runtime.Engine, error) {
	sanitizer := input.Sanitizer{MaxSize: cfg.MaxInputSize}

	opts := []runtime.EngineOption{
		runtime.WithLogger(logger),
		runtime.WithSanitizer(sanitizer.Check),
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, runtime.WithLifecycleHooks(DebugHooks(logger)))
	}
	if reg != nil {
		metrics, err := runtime.NewMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, runtime.WithMetrics(metrics))
	}
	return runtime.NewEngine(opts...), nil
}

// DebugHooks logs every lifecycle event at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnValidationStart: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.Debug("Validation Start", "input", e.Input)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			if e.Step.Failed() {
				logger.Debug("Step (Error)", "index", e.Index, "position", e.Step.Position)
				return
			}
			logger.Debug("Step", "index", e.Index, "state", e.Step.StateName(), "position", e.Step.Position)
		},
		OnValidationEnd: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.Debug("Validation End", "accepted", e.Accepted, "steps", e.Steps)
		},
	}
}

// IsNotFound reports whether err means a stored automaton does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrAutomatonNotFound)
}
