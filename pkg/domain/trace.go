package domain

import (
	"encoding/json"
	"strings"
)

// Step is one snapshot of a validation run.
// State is nil for the terminal error step emitted when no transition matches.
type Step struct {
	State     *State `json:"-"`
	Position  int    `json:"position"`
	Remaining string `json:"remaining"`
}

// Failed reports whether this is the terminal error step.
func (s Step) Failed() bool {
	return s.State == nil
}

// StateName returns the name of the step state, or "" for the error step.
func (s Step) StateName() string {
	return s.State.String()
}

// MarshalJSON encodes the state by name, or null for the error step.
func (s Step) MarshalJSON() ([]byte, error) {
	var name *string
	if s.State != nil {
		name = &s.State.Name
	}
	return json.Marshal(struct {
		State     *string `json:"state"`
		Position  int     `json:"position"`
		Remaining string  `json:"remaining"`
	}{name, s.Position, s.Remaining})
}

// Trace is the ordered list of steps produced by a validation run.
type Trace []Step

// Failed reports whether the run stopped on an unmatched symbol.
func (t Trace) Failed() bool {
	return len(t) > 0 && t[len(t)-1].Failed()
}

// Result bundles the verdict of a validation run with its trace.
type Result struct {
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	Trace    Trace  `json:"trace"`
}

// Cursor navigates a precomputed Trace.
// Moving the cursor never re-runs the automaton.
type Cursor struct {
	trace Trace
	index int
}

// NewCursor creates a cursor positioned on the first step.
func NewCursor(trace Trace) *Cursor {
	return &Cursor{trace: trace}
}

// Len returns the number of steps in the trace.
func (c *Cursor) Len() int {
	return len(c.trace)
}

// Index returns the position of the cursor.
func (c *Cursor) Index() int {
	return c.index
}

// Current returns the step under the cursor. ok is false for an empty trace.
func (c *Cursor) Current() (Step, bool) {
	if len(c.trace) == 0 {
		return Step{}, false
	}
	return c.trace[c.index], true
}

// Next moves forward one step. It reports false when already on the last step.
func (c *Cursor) Next() bool {
	if len(c.trace) == 0 || c.index >= len(c.trace)-1 {
		return false
	}
	c.index++
	return true
}

// Prev moves back one step. It reports false when already on the first step.
func (c *Cursor) Prev() bool {
	if len(c.trace) == 0 || c.index == 0 {
		return false
	}
	c.index--
	return true
}

// Reset moves the cursor back to the first step.
func (c *Cursor) Reset() {
	c.index = 0
}

// AtEnd reports whether the cursor is on the last step.
func (c *Cursor) AtEnd() bool {
	return len(c.trace) == 0 || c.index == len(c.trace)-1
}

// Visited returns the steps up to and including the cursor.
func (c *Cursor) Visited() Trace {
	if len(c.trace) == 0 {
		return nil
	}
	return c.trace[:c.index+1]
}

// Highlight renders input with the symbol about to be consumed wrapped in brackets.
// Nothing is highlighted on the last step, since no symbol is pending there.
func (c *Cursor) Highlight(input string) string {
	step, ok := c.Current()
	if !ok {
		return input
	}

	var sb strings.Builder
	for i, r := range []rune(input) {
		if i == step.Position && !c.AtEnd() {
			sb.WriteByte('[')
			sb.WriteRune(r)
			sb.WriteByte(']')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
