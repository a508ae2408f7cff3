/*
Package automata is a deterministic finite automaton (DFA) engine: build an
automaton, run strings through it and inspect the step-by-step trace.

# Concept

An automaton is a set of named states, one optional initial state, any number
of final states and a transition table keyed by (state, symbol). Symbols are
single characters; the alphabet is whatever the transitions use. Validation
consumes the input one character at a time and records every state visited,
so a run can be replayed forwards and backwards without re-running it.

The model is permissive: duplicate state names, a missing initial state and
incomplete tables are all allowed. Use the strict editor in pkg/dsl to reject
those while building, and internal/lint (the "automata lint" command) to
report them on existing automata.

# Usage

	b := dsl.New()
	b.Add("q0").Initial().On("0", "q0").On("1", "q1")
	b.Add("q1").Final().On("0", "q0").On("1", "q1")
	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	eng := automata.New()
	res, err := eng.Validate(ctx, a, "101")
	fmt.Println(res.Accepted) // true

Automata are stored as a JSON document (see pkg/codec/native) and can be
imported from JFLAP files (pkg/codec/jflap). Stores for memory, the
filesystem and Redis live under pkg/adapters.
*/
package automata
