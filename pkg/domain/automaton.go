package domain

import "sort"

// TransitionKey identifies one row/column cell of the transition table.
type TransitionKey struct {
	From   *State
	Symbol string
}

// Transition is a resolved entry of the transition table.
type Transition struct {
	From   *State
	Symbol string
	To     *State
}

// Automaton is a deterministic finite automaton.
// The zero value is not usable; create one with New.
type Automaton struct {
	states   []*State
	alphabet map[string]struct{}
	symbols  []string // alphabet in first-use order
	initial  *State
	finals   []*State
	table    map[TransitionKey]*State
	order    []TransitionKey // table keys in first-insert order
}

// New creates an empty Automaton.
func New() *Automaton {
	return &Automaton{
		alphabet: make(map[string]struct{}),
		table:    make(map[TransitionKey]*State),
	}
}

// AddState creates a state and appends it to the automaton.
// It never fails: duplicate names are the caller's responsibility.
// If initial is set the state replaces any previous initial state.
func (a *Automaton) AddState(name string, initial, final bool) *State {
	s := &State{Name: name, Initial: initial, Final: final}
	a.states = append(a.states, s)
	if initial {
		a.initial = s
	}
	if final {
		a.finals = append(a.finals, s)
	}
	return s
}

// AddTransition sets table[(from, symbol)] = to, overwriting any previous target.
// A non-empty symbol joins the alphabet; the empty symbol never does.
// Both states must belong to this automaton.
func (a *Automaton) AddTransition(from *State, symbol string, to *State) {
	if symbol != "" {
		if _, ok := a.alphabet[symbol]; !ok {
			a.alphabet[symbol] = struct{}{}
			a.symbols = append(a.symbols, symbol)
		}
	}

	key := TransitionKey{From: from, Symbol: symbol}
	if _, exists := a.table[key]; !exists {
		a.order = append(a.order, key)
	}
	a.table[key] = to
}

// StateByName returns the first state with the given name, in insertion order.
func (a *Automaton) StateByName(name string) (*State, bool) {
	for _, s := range a.states {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// States returns the states in insertion order.
func (a *Automaton) States() []*State {
	out := make([]*State, len(a.states))
	copy(out, a.states)
	return out
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.states)
}

// Alphabet returns the alphabet in the order symbols were first used.
func (a *Automaton) Alphabet() []string {
	out := make([]string, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// SortedAlphabet returns the alphabet sorted lexicographically.
func (a *Automaton) SortedAlphabet() []string {
	out := a.Alphabet()
	sort.Strings(out)
	return out
}

// InAlphabet reports whether symbol labels at least one transition.
func (a *Automaton) InAlphabet(symbol string) bool {
	_, ok := a.alphabet[symbol]
	return ok
}

// InitialState returns the current initial state, if any.
func (a *Automaton) InitialState() (*State, bool) {
	return a.initial, a.initial != nil
}

// FinalStates returns the final states in the order they were marked final.
func (a *Automaton) FinalStates() []*State {
	out := make([]*State, len(a.finals))
	copy(out, a.finals)
	return out
}

// IsFinal reports whether s is one of the final states.
func (a *Automaton) IsFinal(s *State) bool {
	for _, f := range a.finals {
		if f == s {
			return true
		}
	}
	return false
}

// Next returns the target of (from, symbol).
func (a *Automaton) Next(from *State, symbol string) (*State, bool) {
	to, ok := a.table[TransitionKey{From: from, Symbol: symbol}]
	return to, ok
}

// HasTransition reports whether (from, symbol) already has a target.
func (a *Automaton) HasTransition(from *State, symbol string) bool {
	_, ok := a.table[TransitionKey{From: from, Symbol: symbol}]
	return ok
}

// Transitions returns every table entry in first-insert order.
// An overwritten entry keeps its original position with its latest target.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, Transition{From: k.From, Symbol: k.Symbol, To: a.table[k]})
	}
	return out
}
