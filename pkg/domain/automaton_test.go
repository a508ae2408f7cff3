package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomaton_AddState(t *testing.T) {
	a := New()

	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	q2 := a.AddState("q2", false, false)

	assert.Equal(t, []*State{q0, q1, q2}, a.States())
	assert.Equal(t, 3, a.Len())

	initial, ok := a.InitialState()
	require.True(t, ok)
	assert.Same(t, q0, initial)

	assert.Equal(t, []*State{q1}, a.FinalStates())
	assert.True(t, a.IsFinal(q1))
	assert.False(t, a.IsFinal(q0))
}

func TestAutomaton_InitialLastWriteWins(t *testing.T) {
	a := New()
	a.AddState("first", true, false)
	second := a.AddState("second", true, false)

	initial, ok := a.InitialState()
	require.True(t, ok)
	assert.Same(t, second, initial)
}

func TestAutomaton_DuplicateNamesAccepted(t *testing.T) {
	a := New()
	first := a.AddState("q", false, false)
	a.AddState("q", false, true)

	assert.Equal(t, 2, a.Len())

	got, ok := a.StateByName("q")
	require.True(t, ok)
	assert.Same(t, first, got, "lookup must return the first match in insertion order")
}

func TestAutomaton_StateByNameMissing(t *testing.T) {
	a := New()
	a.AddState("q0", true, false)

	_, ok := a.StateByName("nope")
	assert.False(t, ok)
}

func TestAutomaton_AddTransition(t *testing.T) {
	a := New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)

	a.AddTransition(q0, "b", q1)
	a.AddTransition(q0, "a", q0)
	a.AddTransition(q1, "a", q0)

	assert.Equal(t, []string{"b", "a"}, a.Alphabet())
	assert.Equal(t, []string{"a", "b"}, a.SortedAlphabet())

	to, ok := a.Next(q0, "b")
	require.True(t, ok)
	assert.Same(t, q1, to)

	_, ok = a.Next(q1, "b")
	assert.False(t, ok)
}

func TestAutomaton_EmptySymbolNotInAlphabet(t *testing.T) {
	a := New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, false)

	a.AddTransition(q0, "", q1)

	assert.Empty(t, a.Alphabet())
	assert.False(t, a.InAlphabet(""))
	assert.True(t, a.HasTransition(q0, ""))
	assert.Len(t, a.Transitions(), 1)
}

func TestAutomaton_TransitionOverwrite(t *testing.T) {
	a := New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, false)
	q2 := a.AddState("q2", false, false)

	a.AddTransition(q0, "x", q1)
	a.AddTransition(q1, "x", q2)
	a.AddTransition(q0, "x", q2)

	to, ok := a.Next(q0, "x")
	require.True(t, ok)
	assert.Same(t, q2, to, "second add for the same pair overwrites the first")

	transitions := a.Transitions()
	require.Len(t, transitions, 2)
	assert.Same(t, q0, transitions[0].From, "overwrite keeps the original slot")
	assert.Same(t, q2, transitions[0].To)
	assert.Equal(t, []string{"x"}, a.Alphabet())
}

func TestAutomaton_AccessorsReturnCopies(t *testing.T) {
	a := New()
	a.AddState("q0", true, true)

	states := a.States()
	states[0] = nil
	finals := a.FinalStates()
	finals[0] = nil

	assert.NotNil(t, a.States()[0])
	assert.NotNil(t, a.FinalStates()[0])
}

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"binary", "ends-in-1", "v1.2_final", "A"} {
		assert.NoError(t, ValidateName(ok), ok)
	}
	for _, bad := range []string{"", ".hidden", "a/b", "../x", "sp ace", "ñ", strings.Repeat("x", 129)} {
		assert.ErrorIs(t, ValidateName(bad), ErrInvalidName, bad)
	}
}
