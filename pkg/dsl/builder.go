package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// ErrMultipleInitial is returned by Build when more than one state is marked initial.
var ErrMultipleInitial = errors.New("more than one initial state")

// Builder manages the automaton construction.
type Builder struct {
	states []*StateBuilder
	byName map[string]*StateBuilder
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		byName: make(map[string]*StateBuilder),
	}
}

// Add declares a state. Declaring the same name again returns the
// existing builder, so states can be configured in several places.
func (b *Builder) Add(name string) *StateBuilder {
	if sb, ok := b.byName[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name}
	b.states = append(b.states, sb)
	b.byName[name] = sb
	return sb
}

// Build checks every declaration and returns the automaton.
// All problems are reported together.
func (b *Builder) Build() (*domain.Automaton, error) {
	var errs []error
	var initials []string

	ed := NewEditor(domain.New())
	for _, sb := range b.states {
		if sb.initial {
			initials = append(initials, sb.name)
		}
		if _, err := ed.AddState(sb.name, sb.initial, sb.final); err != nil {
			errs = append(errs, err)
		}
	}
	if len(initials) > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrMultipleInitial, initials))
	}

	for _, sb := range b.states {
		for _, e := range sb.edges {
			if err := ed.AddTransition(sb.name, e.symbol, e.target); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to build automaton: %w", errors.Join(errs...))
	}
	return ed.Automaton(), nil
}
