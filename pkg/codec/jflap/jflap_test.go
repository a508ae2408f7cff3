package jflap_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/codec/jflap"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoStates = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<structure>
	<type>fa</type>
	<automaton>
		<state id="0" name="q0"><x>60.0</x><y>80.0</y><initial/></state>
		<state id="1" name="q1"><x>200.0</x><y>80.0</y><final/></state>
		<transition><from>0</from><to>1</to><read>2</read></transition>
	</automaton>
</structure>`

func edges(a *domain.Automaton) map[string]string {
	out := make(map[string]string)
	for _, t := range a.Transitions() {
		out[t.From.Name+"|"+t.Symbol] = t.To.Name
	}
	return out
}

func stateNames(states []*domain.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Name
	}
	return out
}

func TestDecode_TwoStates(t *testing.T) {
	got, err := jflap.Decode([]byte(twoStates))
	require.NoError(t, err)

	want := domain.New()
	q0 := want.AddState("q0", true, false)
	q1 := want.AddState("q1", false, true)
	want.AddTransition(q0, "2", q1)

	assert.Equal(t, stateNames(want.States()), stateNames(got.States()))
	assert.Equal(t, stateNames(want.FinalStates()), stateNames(got.FinalStates()))
	assert.Equal(t, edges(want), edges(got))
	assert.Equal(t, []string{"2"}, got.Alphabet())

	initial, ok := got.InitialState()
	require.True(t, ok)
	assert.Equal(t, "q0", initial.Name)
}

func TestDecode_NameDefaultsToID(t *testing.T) {
	doc := `<structure><automaton>
		<state id="7"><initial/><final/></state>
		<state id="8" name=""/>
	</automaton></structure>`

	a, err := jflap.Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"7", ""}, stateNames(a.States()))
	initial, ok := a.InitialState()
	require.True(t, ok)
	assert.Equal(t, "7", initial.Name)
	assert.True(t, a.IsFinal(initial))
}

func TestDecode_MarkerContentIsIgnored(t *testing.T) {
	doc := `<structure><automaton>
		<state id="0" name="a"><initial>false</initial></state>
	</automaton></structure>`

	a, err := jflap.Decode([]byte(doc))
	require.NoError(t, err)

	_, ok := a.InitialState()
	assert.True(t, ok)
}

func TestDecode_EmptySymbol(t *testing.T) {
	doc := `<structure><automaton>
		<state id="0" name="a"/>
		<state id="1" name="b"/>
		<transition><from>0</from><to>1</to></transition>
		<transition><from>1</from><to>0</to><read/></transition>
	</automaton></structure>`

	a, err := jflap.Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"a|": "b", "b|": "a"}, edges(a))
	assert.Empty(t, a.Alphabet())
}

func TestDecode_AnyDepth(t *testing.T) {
	doc := `<structure><wrapper><block>
		<state id="0" name="deep"><initial/></state>
	</block></wrapper>
	<transition><from>0</from><to>0</to><read>a</read></transition>
	<note>ignored</note>
	</structure>`

	a, err := jflap.Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"deep|a": "deep"}, edges(a))
}

func TestDecode_LayoutIsIgnored(t *testing.T) {
	for _, coords := range []string{"<x>left</x><y></y>", "<x></x>", "<x>1e999x</x><y>top</y>"} {
		t.Run(coords, func(t *testing.T) {
			doc := `<structure><state id="0" name="q0">` + coords + `<initial/><final/></state></structure>`

			a, err := jflap.Decode([]byte(doc))
			require.NoError(t, err)
			initial, ok := a.InitialState()
			require.True(t, ok)
			assert.Equal(t, "q0", initial.Name)
			assert.True(t, a.IsFinal(initial))
		})
	}
}

func TestDecode_SingleRootWithComments(t *testing.T) {
	doc := "<?xml version=\"1.0\"?>\n<!--made by hand-->\n<state id=\"0\" name=\"solo\"><initial/></state>\n<!--trailing-->\n"

	a, err := jflap.Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, a.Len())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "", jflap.ErrMalformedDocument},
		{"truncated", "<structure><automaton><state id=\"0\">", jflap.ErrMalformedDocument},
		{"mismatched tags", "<structure><automaton></structure>", jflap.ErrMalformedDocument},
		{
			"unknown from",
			`<structure><state id="0"/><transition><from>9</from><to>0</to></transition></structure>`,
			jflap.ErrUnknownStateID,
		},
		{
			"unknown to",
			`<structure><state id="0"/><transition><from>0</from><to>9</to></transition></structure>`,
			jflap.ErrUnknownStateID,
		},
		{
			"second root",
			`<structure><state id="0"><initial/></state></structure><structure/>`,
			jflap.ErrMalformedDocument,
		},
		{
			"text after root",
			`<structure><state id="0"/></structure>junk`,
			jflap.ErrMalformedDocument,
		},
		{
			"missing to",
			`<structure><state id="0"/><transition><from>0</from></transition></structure>`,
			jflap.ErrMissingEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := jflap.Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, a)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	a := domain.New()
	q0 := a.AddState("q0", true, false)
	q1 := a.AddState("q1", false, true)
	q2 := a.AddState("q2", false, true)
	a.AddTransition(q0, "a", q1)
	a.AddTransition(q1, "b", q2)
	a.AddTransition(q2, "", q0)

	data, err := jflap.Encode(a)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	assert.Contains(t, string(data), "<type>fa</type>")
	assert.Contains(t, string(data), "<x>100.0</x>")

	back, err := jflap.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, stateNames(a.States()), stateNames(back.States()))
	assert.Equal(t, stateNames(a.FinalStates()), stateNames(back.FinalStates()))
	assert.Equal(t, edges(a), edges(back))
	initial, ok := back.InitialState()
	require.True(t, ok)
	assert.Equal(t, "q0", initial.Name)
}
