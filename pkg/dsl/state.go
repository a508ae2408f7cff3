package dsl

type edge struct {
	symbol string
	target string
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name    string
	initial bool
	final   bool
	edges   []edge
}

// Initial marks the state as the start state.
func (s *StateBuilder) Initial() *StateBuilder {
	s.initial = true
	return s
}

// Final marks the state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.final = true
	return s
}

// On adds a transition on symbol to the named target state.
// The target may be declared later.
func (s *StateBuilder) On(symbol, target string) *StateBuilder {
	s.edges = append(s.edges, edge{symbol: symbol, target: target})
	return s
}

// Name returns the declared state name.
func (s *StateBuilder) Name() string {
	return s.name
}
