package runtime

import (
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// Validate runs input through the automaton and reports whether it is accepted.
//
// Each rune of input is one symbol. The walk stops at the first symbol with no
// transition, appending a terminal step whose State is nil. Transitions on the
// empty symbol are never taken. An automaton without an initial state rejects
// every input, including "", with an empty trace.
//
// Input is not required to be valid UTF-8: each invalid byte is one symbol
// that reads as utf8.RuneError, so it follows a "�" transition if one
// exists. Remaining always slices the raw input, invalid bytes included.
// The engine's sanitizer rejects invalid UTF-8 before it gets here.
func Validate(a *domain.Automaton, input string) (bool, domain.Trace) {
	current, ok := a.InitialState()
	if !ok {
		return false, nil
	}

	trace := make(domain.Trace, 0, utf8.RuneCountInString(input)+1)
	trace = append(trace, domain.Step{State: current, Position: 0, Remaining: input})

	for offset, position := 0, 1; offset < len(input); position++ {
		r, size := utf8.DecodeRuneInString(input[offset:])
		offset += size
		remaining := input[offset:]

		next, ok := a.Next(current, string(r))
		if !ok {
			trace = append(trace, domain.Step{State: nil, Position: position, Remaining: remaining})
			return false, trace
		}

		current = next
		trace = append(trace, domain.Step{State: current, Position: position, Remaining: remaining})
	}

	return a.IsFinal(current), trace
}
