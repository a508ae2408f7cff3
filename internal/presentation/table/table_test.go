package table_test

import (
	"testing"

	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func endsInOne() *domain.Automaton {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "1", q1)
	a.AddTransition(q0, "0", q0)
	a.AddTransition(q1, "1", q1)
	return a
}

func TestTransitions(t *testing.T) {
	want := "| State | 0 | 1 |\n" +
		"|---|---|---|\n" +
		"| q0 (I) | q0 | q1 |\n" +
		"| q1 (F) | - | q1 |\n"

	assert.Equal(t, want, table.Transitions(endsInOne()))
}

func TestTransitions_EmptyAlphabetAndEscaping(t *testing.T) {
	a := domain.New()
	s := a.AddState("a|b", true, true)
	a.AddTransition(s, "", s)

	assert.Equal(t, "| State |\n|---|\n| a\\|b (I) (F) |\n", table.Transitions(a))
}

func TestRowLabel_ReplacedInitialKeepsFlag(t *testing.T) {
	a := domain.New()
	first := a.AddState("first", true, false)
	a.AddState("second", true, false)

	assert.Equal(t, "first (I)", table.RowLabel(a, first))
}

func TestTrace(t *testing.T) {
	_, trace := runtime.Validate(endsInOne(), "12")

	assert.Equal(t, "Step 0: State: q0\nStep 1: → State: q1\n", table.Trace(trace, 1))
	assert.Equal(t, "Step 0: State: q0\nStep 1: State: q1\nStep 2: → State: Error\n", table.Trace(trace, 2))
	assert.Equal(t, "", table.Trace(nil, 0))
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, `The string "101" is ACCEPTED by the automaton`, table.Verdict("101", true))
	assert.Equal(t, `The string "" is REJECTED by the automaton`, table.Verdict("", false))
}

func TestWords(t *testing.T) {
	assert.Equal(t, "Kleene star (3):\nε, a, b\n", table.Words("Kleene star", []string{"", "a", "b"}))
}
