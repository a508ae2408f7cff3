// Package table renders automata and validation traces as text.
package table

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Missing fills a cell with no transition.
const Missing = "-"

// Cursor prefixes the current step in a trace listing.
const Cursor = "→ "

// Transitions renders the transition table as a Markdown table.
//
// There is one row per state in insertion order and one column per alphabet
// symbol in sorted order. Row labels carry " (I)" for a state flagged
// initial and " (F)" for a final state. Empty-symbol transitions have no
// column, like any symbol outside the alphabet.
func Transitions(a *domain.Automaton) string {
	alphabet := a.SortedAlphabet()

	var sb strings.Builder
	sb.WriteString("| State |")
	for _, sym := range alphabet {
		fmt.Fprintf(&sb, " %s |", escape(sym))
	}
	sb.WriteString("\n|---|")
	for range alphabet {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for _, s := range a.States() {
		fmt.Fprintf(&sb, "| %s |", escape(RowLabel(a, s)))
		for _, sym := range alphabet {
			cell := Missing
			if to, ok := a.Next(s, sym); ok {
				cell = to.Name
			}
			fmt.Fprintf(&sb, " %s |", escape(cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RowLabel returns the state name with its (I)/(F) markers.
func RowLabel(a *domain.Automaton, s *domain.State) string {
	label := s.Name
	if s.Initial {
		label += " (I)"
	}
	if a.IsFinal(s) {
		label += " (F)"
	}
	return label
}

// Trace lists the steps of trace up to and including current, one per line:
//
//	Step 0: State: q0
//	Step 1: → State: q1
//
// A step that found no transition prints "Error" as its state.
func Trace(trace domain.Trace, current int) string {
	var sb strings.Builder
	for i, step := range trace {
		if i > current {
			break
		}
		marker := ""
		if i == current {
			marker = Cursor
		}
		name := "Error"
		if !step.Failed() {
			name = step.State.Name
		}
		fmt.Fprintf(&sb, "Step %d: %sState: %s\n", i, marker, name)
	}
	return sb.String()
}

// Verdict describes the outcome of a validation in one sentence.
func Verdict(input string, accepted bool) string {
	if accepted {
		return fmt.Sprintf("The string %q is ACCEPTED by the automaton", input)
	}
	return fmt.Sprintf("The string %q is REJECTED by the automaton", input)
}

// Words renders an enumeration result the way the tools panel lists it:
// a heading with the count, then the words separated by commas.
// The empty word is shown as ε.
func Words(title string, words []string) string {
	shown := make([]string, len(words))
	for i, w := range words {
		if w == "" {
			w = "ε"
		}
		shown[i] = w
	}
	return fmt.Sprintf("%s (%d):\n%s\n", title, len(words), strings.Join(shown, ", "))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
