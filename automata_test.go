package automata_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endsInOne() *domain.Automaton {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "0", q0)
	a.AddTransition(q0, "1", q1)
	a.AddTransition(q1, "0", q0)
	a.AddTransition(q1, "1", q1)
	return a
}

func TestEngine_MaxInputSize(t *testing.T) {
	eng := automata.New(automata.WithMaxInputSize(3))

	_, err := eng.Validate(context.Background(), endsInOne(), "1010")
	assert.ErrorIs(t, err, input.ErrInputTooLarge)

	res, err := eng.Validate(context.Background(), endsInOne(), "101")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
}

func TestEngine_RejectsControlCharacters(t *testing.T) {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "1", q1)

	res, err := automata.New().Validate(context.Background(), a, "1\x00")
	assert.ErrorIs(t, err, input.ErrControlCharacter)
	assert.Nil(t, res)

	res, err = automata.New().Validate(context.Background(), a, "1")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "1", res.Input)
}

func TestEngine_DefaultInputLimit(t *testing.T) {
	eng := automata.New()
	_, err := eng.Validate(context.Background(), endsInOne(), strings.Repeat("1", input.DefaultMaxInputSize+1))
	assert.ErrorIs(t, err, input.ErrInputTooLarge)
}

func TestEngine_Hooks(t *testing.T) {
	var steps int
	eng := automata.New(automata.WithLifecycleHooks(domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { steps++ },
	}))

	_, err := eng.Validate(context.Background(), endsInOne(), "11")
	require.NoError(t, err)
	assert.Equal(t, 3, steps)
}

func TestEngine_ValidateStoredWithoutStore(t *testing.T) {
	_, err := automata.New().ValidateStored(context.Background(), "x", "1")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestLoadSaveFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.afd", "a.yaml", "a.jff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, automata.SaveFile(path, endsInOne()))

			loaded, err := automata.LoadFile(path)
			require.NoError(t, err)

			res, err := automata.New().Validate(context.Background(), loaded, "0101")
			require.NoError(t, err)
			assert.True(t, res.Accepted)
		})
	}
}
