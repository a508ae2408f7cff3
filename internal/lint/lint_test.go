package lint_test

import (
	"testing"

	"github.com/aretw0/automata/internal/lint"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(r lint.Report) []lint.Code {
	out := make([]lint.Code, len(r.Findings))
	for i, f := range r.Findings {
		out[i] = f.Code
	}
	return out
}

func TestCheck_CompleteAutomaton(t *testing.T) {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "0", q0)
	a.AddTransition(q0, "1", q1)
	a.AddTransition(q1, "0", q0)
	a.AddTransition(q1, "1", q1)

	r := lint.Check(a)
	assert.True(t, r.OK(), "unexpected findings: %v", r.Findings)
	assert.NoError(t, r.Err())
}

func TestCheck_Empty(t *testing.T) {
	r := lint.Check(domain.New())

	assert.Equal(t, []lint.Code{lint.CodeNoInitial, lint.CodeNoFinal}, codes(r))
	assert.ErrorIs(t, r.Err(), lint.ErrInvalid)
}

func TestCheck_Findings(t *testing.T) {
	a := domain.New()
	start := a.AddState("start", true, false)
	done := a.AddState("done", false, true)
	island := a.AddState("island", false, false)
	a.AddState("done", false, false)
	a.AddTransition(start, "a", done)
	a.AddTransition(start, "", island)
	a.AddTransition(island, "a", island)
	a.AddTransition(island, "b", island)

	r := lint.Check(a)

	assert.Equal(t, []lint.Code{
		lint.CodeDuplicateName,
		lint.CodeEmptySymbol, // start
		lint.CodeIncomplete,  // start lacks b
		lint.CodeIncomplete,  // done
		lint.CodeUnreachable, // island, only via the empty symbol
		lint.CodeUnreachable, // second "done"
		lint.CodeIncomplete,
	}, codes(r))

	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "done", errs[0].State)

	err := r.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 1 errors")

	assert.Contains(t, r.Findings[2].Message, `"b"`)
	assert.Contains(t, r.Findings[3].Message, `"a", "b"`)
}

func TestCheck_WarningsOnlyIsNotAnError(t *testing.T) {
	a := domain.New()
	a.AddState("only", true, false)

	r := lint.Check(a)
	assert.False(t, r.OK())
	assert.NoError(t, r.Err())
}

func TestCheck_MultiRuneSymbolIsNotAnEdge(t *testing.T) {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "a", q0)
	a.AddTransition(q0, "ab", q1)

	r := lint.Check(a)
	assert.Equal(t, []lint.Code{lint.CodeMultiRune, lint.CodeUnreachable, lint.CodeIncomplete}, codes(r))

	require.Len(t, r.Findings, 3)
	assert.Equal(t, "q0", r.Findings[0].State)
	assert.Contains(t, r.Findings[0].Message, `"ab"`)
	assert.Equal(t, "q1", r.Findings[1].State)
	assert.NoError(t, r.Err(), "multi-rune transitions are warnings")
}

func TestCheck_MultiByteSingleRuneIsAnEdge(t *testing.T) {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	a.AddTransition(q0, "λ", q1)
	a.AddTransition(q1, "λ", q1)

	r := lint.Check(a)
	assert.True(t, r.OK(), "unexpected findings: %v", r.Findings)
}
