package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sample() *domain.Automaton {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "1", q1)
	return a
}

func TestChain_Order(t *testing.T) {
	var calls []string
	tag := func(label string) middleware.Middleware {
		return func(next ports.AutomatonStore) ports.AutomatonStore {
			return &recording{AutomatonStore: next, label: label, calls: &calls}
		}
	}

	store := middleware.Chain(memory.NewStore(), tag("outer"), nil, tag("inner"))
	_, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

type recording struct {
	ports.AutomatonStore
	label string
	calls *[]string
}

func (r *recording) List(ctx context.Context) ([]string, error) {
	*r.calls = append(*r.calls, r.label)
	return r.AutomatonStore.List(ctx)
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	ctx := context.Background()
	a := sample()
	failure := errors.New("disk full")

	next := new(MockStore)
	next.On("Save", mock.Anything, "good", a).Return(nil)
	next.On("Save", mock.Anything, "bad", a).Return(failure)
	next.On("Load", mock.Anything, "good").Return(a, nil)
	next.On("Load", mock.Anything, "missing").Return(nil, domain.ErrAutomatonNotFound)
	next.On("Delete", mock.Anything, "good").Return(nil)
	next.On("List", mock.Anything).Return([]string{"good"}, nil)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := middleware.NewLoggingMiddleware(logger)(next)

	require.NoError(t, store.Save(ctx, "good", a))
	assert.ErrorIs(t, store.Save(ctx, "bad", a), failure)

	loaded, err := store.Load(ctx, "good")
	require.NoError(t, err)
	assert.Same(t, a, loaded)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	require.NoError(t, store.Delete(ctx, "good"))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, names)

	next.AssertExpectations(t)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "level=WARN"), "only the failed save is a warning")
	assert.Contains(t, out, "err=\"disk full\"")
	assert.Contains(t, out, "op=list")
	assert.Contains(t, out, "count=1")
}

func TestMetricsMiddleware_Outcomes(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	mw, err := middleware.NewMetricsMiddleware(reg)
	require.NoError(t, err)

	store := mw(memory.NewStore())
	require.NoError(t, store.Save(ctx, "ends-in-one", sample()))
	_, err = store.Load(ctx, "ends-in-one")
	require.NoError(t, err)
	_, err = store.Load(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	count, err := testutil.GatherAndCount(reg, "automata_store_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	seen := map[string]uint64{}
	for _, m := range families[0].GetMetric() {
		var op, outcome string
		for _, l := range m.GetLabel() {
			switch l.GetName() {
			case "operation":
				op = l.GetValue()
			case "outcome":
				outcome = l.GetValue()
			}
		}
		seen[op+"/"+outcome] = m.GetHistogram().GetSampleCount()
	}
	assert.Equal(t, map[string]uint64{
		"save/ok":        1,
		"load/ok":        1,
		"load/not_found": 1,
	}, seen)
}

func TestMetricsMiddleware_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := middleware.NewMetricsMiddleware(reg)
	require.NoError(t, err)
	_, err = middleware.NewMetricsMiddleware(reg)
	assert.Error(t, err)
}

func TestMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewMetricsMiddleware(nil)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ports.RunAutomatonStoreContract(t, middleware.Chain(memory.NewStore(), middleware.NewLoggingMiddleware(logger), mw))
}
