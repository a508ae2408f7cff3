// Package lint inspects an automaton for structural problems that the model
// itself tolerates.
package lint

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the kind of finding.
type Code string

const (
	CodeNoInitial     Code = "no_initial_state"
	CodeDuplicateName Code = "duplicate_state_name"
	CodeUnreachable   Code = "unreachable_state"
	CodeEmptySymbol   Code = "empty_symbol_transition"
	CodeMultiRune     Code = "multi_rune_transition"
	CodeIncomplete    Code = "incomplete_state"
	CodeNoFinal       Code = "no_final_state"
)

// Finding is one reported problem.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	State    string   `json:"state,omitempty"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %s", f.Severity, f.Code, f.Message)
}

// Report lists findings in a stable order: automaton-wide problems first,
// then per-state problems in state order.
type Report struct {
	Findings []Finding `json:"findings"`
}

// OK reports whether there are no findings at all.
func (r Report) OK() bool {
	return len(r.Findings) == 0
}

// Errors returns only the error-level findings.
func (r Report) Errors() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Err aggregates error-level findings. Warnings never produce an error.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, f := range errs {
		lines[i] = f.Message
	}
	return fmt.Errorf("%w: found %d errors:\n- %s", ErrInvalid, len(errs), strings.Join(lines, "\n- "))
}

// ErrInvalid is wrapped by Report.Err.
var ErrInvalid = errors.New("automaton has structural errors")

// Check inspects a.
//
// Reachability is computed by a breadth-first crawl from the initial state
// over single-rune symbols only: the validator reads one rune at a time, so
// it never follows the empty symbol or a symbol of several runes.
func Check(a *domain.Automaton) Report {
	var r Report
	add := func(sev Severity, code Code, state, format string, args ...any) {
		r.Findings = append(r.Findings, Finding{
			Severity: sev,
			Code:     code,
			State:    state,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	initial, hasInitial := a.InitialState()
	if !hasInitial {
		add(SeverityError, CodeNoInitial, "", "no initial state: every input is rejected")
	}
	if len(a.FinalStates()) == 0 {
		add(SeverityWarning, CodeNoFinal, "", "no final state: no input can be accepted")
	}

	states := a.States()
	seen := make(map[string]int, len(states))
	for _, s := range states {
		seen[s.Name]++
		if seen[s.Name] == 2 {
			add(SeverityError, CodeDuplicateName, s.Name, "state name %q is used more than once", s.Name)
		}
	}

	visited := make(map[*domain.State]bool, len(states))
	if hasInitial {
		crawl(a, initial, visited)
	}

	long := make(map[*domain.State][]string)
	for _, t := range a.Transitions() {
		if !takeable(t.Symbol) && t.Symbol != "" {
			long[t.From] = append(long[t.From], t.Symbol)
		}
	}

	alphabet := a.SortedAlphabet()
	for _, s := range states {
		if hasInitial && !visited[s] {
			add(SeverityWarning, CodeUnreachable, s.Name, "state %q is unreachable from %q", s.Name, initial.Name)
		}
		if a.HasTransition(s, "") {
			add(SeverityWarning, CodeEmptySymbol, s.Name, "state %q has an empty-symbol transition that validation never follows", s.Name)
		}
		if symbols := long[s]; len(symbols) > 0 {
			add(SeverityWarning, CodeMultiRune, s.Name, "state %q has transitions on %s that validation never follows: input is read one character at a time", s.Name, strings.Join(quoteAll(symbols), ", "))
		}

		var missing []string
		for _, sym := range alphabet {
			if !a.HasTransition(s, sym) {
				missing = append(missing, sym)
			}
		}
		if len(missing) > 0 {
			add(SeverityWarning, CodeIncomplete, s.Name, "state %q has no transition on %s", s.Name, strings.Join(quoteAll(missing), ", "))
		}
	}

	return r
}

func crawl(a *domain.Automaton, start *domain.State, visited map[*domain.State]bool) {
	adjacent := make(map[*domain.State][]*domain.State)
	for _, t := range a.Transitions() {
		if !takeable(t.Symbol) {
			continue
		}
		adjacent[t.From] = append(adjacent[t.From], t.To)
	}

	queue := []*domain.State{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range adjacent[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
}

// takeable reports whether Validate can ever follow a transition on symbol.
func takeable(symbol string) bool {
	return utf8.RuneCountInString(symbol) == 1
}

func quoteAll(symbols []string) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
