/*
Package dsl provides the strict way to build and edit automata.

The domain model accepts anything: duplicate names, a second initial state,
an overwritten transition. This package is the layer that refuses those
edits and reports why, so interactive tools and file authors get an error
instead of a silently changed automaton.

Building from scratch with the fluent Builder:

	b := dsl.New()

	b.Add("q0").
		Initial().
		On("0", "q0").
		On("1", "q1")

	b.Add("q1").
		Final().
		On("0", "q0").
		On("1", "q1")

	a, err := b.Build()

Editing an automaton loaded from a file with the Editor:

	ed := dsl.NewEditor(a)
	if err := ed.AddTransition("q1", "2", "q0"); err != nil {
		// errors.Is(err, domain.ErrTransitionExists), ...
	}
*/
package dsl
