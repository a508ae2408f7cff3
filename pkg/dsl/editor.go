package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Editor applies checked edits to an existing automaton.
//
// State names and symbols are trimmed of surrounding whitespace. The empty
// symbol is allowed; it is stored but never followed during validation.
type Editor struct {
	a *domain.Automaton
}

// NewEditor wraps a. Edits mutate a in place.
func NewEditor(a *domain.Automaton) *Editor {
	return &Editor{a: a}
}

// Automaton returns the edited automaton.
func (e *Editor) Automaton() *domain.Automaton {
	return e.a
}

// AddState adds a uniquely named state.
func (e *Editor) AddState(name string, initial, final bool) (*domain.State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyStateName
	}
	if _, exists := e.a.StateByName(name); exists {
		return nil, fmt.Errorf("state %q: %w", name, domain.ErrDuplicateState)
	}
	return e.a.AddState(name, initial, final), nil
}

// AddTransition adds from --symbol--> to between existing states.
// It refuses to replace a transition already defined for (from, symbol).
func (e *Editor) AddTransition(fromName, symbol, toName string) error {
	fromName = strings.TrimSpace(fromName)
	toName = strings.TrimSpace(toName)
	symbol = strings.TrimSpace(symbol)

	from, ok := e.a.StateByName(fromName)
	if !ok {
		return fmt.Errorf("from state %q: %w", fromName, domain.ErrUnknownState)
	}
	to, ok := e.a.StateByName(toName)
	if !ok {
		return fmt.Errorf("to state %q: %w", toName, domain.ErrUnknownState)
	}
	if e.a.HasTransition(from, symbol) {
		return fmt.Errorf("transition from %q on %q: %w", fromName, symbol, domain.ErrTransitionExists)
	}

	e.a.AddTransition(from, symbol, to)
	return nil
}
