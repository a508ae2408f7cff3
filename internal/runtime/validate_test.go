package runtime_test

import (
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endsInOne accepts binary strings ending in '1'.
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

func stateNames(trace domain.Trace) []string {
	names := make([]string, len(trace))
	for i, s := range trace {
		names[i] = s.StateName()
	}
	return names
}

func TestValidate_Examples(t *testing.T) {
	a := endsInOne()

	tests := []struct {
		name     string
		input    string
		accepted bool
		states   []string
	}{
		{"accepts trailing one", "101", true, []string{"q0", "q1", "q0", "q1"}},
		{"rejects trailing zero", "100", false, []string{"q0", "q1", "q0", "q0"}},
		{"stops on unknown symbol", "12", false, []string{"q0", "q1", ""}},
		{"stops on first symbol", "x01", false, []string{"q0", ""}},
		{"empty input on non-final initial", "", false, []string{"q0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, trace := runtime.Validate(a, tt.input)
			assert.Equal(t, tt.accepted, accepted)
			assert.Equal(t, tt.states, stateNames(trace))
		})
	}
}

func TestValidate_ErrorStep(t *testing.T) {
	accepted, trace := runtime.Validate(endsInOne(), "12")

	assert.False(t, accepted)
	require.Len(t, trace, 3)
	last := trace[len(trace)-1]
	assert.True(t, last.Failed())
	assert.Nil(t, last.State)
	assert.Equal(t, 2, last.Position)
	assert.Equal(t, "", last.Remaining)
}

func TestValidate_StepPositions(t *testing.T) {
	_, trace := runtime.Validate(endsInOne(), "101")

	require.Len(t, trace, 4)
	for i, step := range trace {
		assert.Equal(t, i, step.Position)
	}
	assert.Equal(t, "101", trace[0].Remaining)
	assert.Equal(t, "01", trace[1].Remaining)
	assert.Equal(t, "1", trace[2].Remaining)
	assert.Equal(t, "", trace[3].Remaining)
}

func TestValidate_EmptyInputOnFinalInitial(t *testing.T) {
	a := domain.New()
	a.AddState("only", true, true)

	accepted, trace := runtime.Validate(a, "")
	assert.True(t, accepted)
	assert.Len(t, trace, 1)
}

func TestValidate_NoInitialState(t *testing.T) {
	empty := domain.New()

	noInitial := domain.New()
	s := noInitial.AddState("s", false, true)
	noInitial.AddTransition(s, "a", s)

	for _, a := range []*domain.Automaton{empty, noInitial} {
		for _, input := range []string{"", "a", "aaa"} {
			accepted, trace := runtime.Validate(a, input)
			assert.False(t, accepted)
			assert.Empty(t, trace)
		}
	}
}

func TestValidate_EmptySymbolTransitionIsNeverTaken(t *testing.T) {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "", q1)

	accepted, trace := runtime.Validate(a, "")
	assert.False(t, accepted, "the empty-symbol edge to a final state must not be followed")
	assert.Len(t, trace, 1)
}

func TestValidate_MultiByteSymbols(t *testing.T) {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "λ", q1)
	a.AddTransition(q1, "é", q1)

	accepted, trace := runtime.Validate(a, "λéé")
	assert.True(t, accepted)
	require.Len(t, trace, 4)
	assert.Equal(t, "éé", trace[1].Remaining)
	assert.Equal(t, 3, trace[3].Position)
}

func TestValidate_BoundedTrace(t *testing.T) {
	a := endsInOne()
	inputs := []string{"", "0", "1", "01", "0110", "2", "1x1", "111111111", "0000x"}

	for _, input := range inputs {
		_, trace := runtime.Validate(a, input)
		assert.LessOrEqual(t, len(trace), len([]rune(input))+1, "input %q", input)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	a := endsInOne()

	for _, input := range []string{"", "101", "100", "12"} {
		acc1, tr1 := runtime.Validate(a, input)
		acc2, tr2 := runtime.Validate(a, input)
		assert.Equal(t, acc1, acc2)
		assert.Equal(t, tr1, tr2)
	}
}

func TestValidate_InvalidUTF8(t *testing.T) {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "1", q0)
	a.AddTransition(q0, "�", q1)

	input := "1\xff\xfe"
	accepted, trace := runtime.Validate(a, input)

	assert.False(t, accepted)
	require.Len(t, trace, 4)
	assert.Equal(t, []string{"q0", "q0", "q1", ""}, stateNames(trace))
	assert.Equal(t, input, trace[0].Remaining)
	assert.Equal(t, "\xff\xfe", trace[1].Remaining)
	assert.Equal(t, "\xfe", trace[2].Remaining, "remaining keeps raw bytes")
	assert.Equal(t, 3, trace[3].Position)
}
