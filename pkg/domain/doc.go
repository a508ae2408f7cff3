/*
Package domain contains the core model of the automata engine.

It defines the deterministic finite automaton itself (States, the derived
alphabet, the transition table) and the execution trace produced when a string
is validated. This package is kept pure and free of I/O, persistence and
presentation concerns, following Hexagonal Architecture principles.

# Key Entities

  - State: a named node with initial/final flags.
  - Automaton: ordered states, derived alphabet, optional initial state,
    final states and the (state, symbol) -> state table.
  - Step / Trace: snapshots of (state, position, remaining input) taken while
    validating a string.
  - Cursor: a stateless navigator over a precomputed Trace.

# Policy

The model is permissive: duplicate state names, a second initial
state and a second transition for the same (state, symbol) pair are accepted
with last-write-wins semantics. Stricter editing rules live in package dsl.
*/
package domain
