// Package native reads and writes the automaton's own file format: a JSON
// (or YAML) object with the alphabet, state names, the initial state, the
// final states and a transition map keyed by "from,symbol".
package native

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"gopkg.in/yaml.v3"
)

// ErrMalformedKey is returned when a transition key has no comma.
var ErrMalformedKey = errors.New("malformed transition key")

// ErrInvalidDocument is returned when a document does not match the record layout.
var ErrInvalidDocument = errors.New("invalid automaton document")

// Record is the serialized form of an Automaton.
type Record struct {
	Alphabet     []string          `json:"alphabet" yaml:"alphabet"`
	States       []string          `json:"states" yaml:"states"`
	InitialState string            `json:"initial_state" yaml:"initial_state"`
	FinalStates  []string          `json:"final_states" yaml:"final_states"`
	Transitions  map[string]string `json:"transitions" yaml:"transitions"`
}

// recordSchema is checked against the raw document before decoding.
// The alphabet is optional because Decode derives it from the transitions.
var recordSchema = schema.Schema{
	"alphabet":      schema.Optional(schema.Slice(schema.String())),
	"states":        schema.Slice(schema.String()),
	"initial_state": schema.String(),
	"final_states":  schema.Slice(schema.String()),
	"transitions":   schema.Map(schema.String()),
}

// Encode converts a into a Record.
// The alphabet is sorted; states and finals keep the automaton's order.
func Encode(a *domain.Automaton) Record {
	r := Record{
		Alphabet:    a.SortedAlphabet(),
		States:      make([]string, 0, a.Len()),
		FinalStates: []string{},
		Transitions: make(map[string]string),
	}

	for _, s := range a.States() {
		r.States = append(r.States, s.Name)
	}
	if initial, ok := a.InitialState(); ok {
		r.InitialState = initial.Name
	}
	for _, s := range a.FinalStates() {
		r.FinalStates = append(r.FinalStates, s.Name)
	}
	for _, t := range a.Transitions() {
		r.Transitions[t.From.Name+","+t.Symbol] = t.To.Name
	}
	return r
}

// Decode builds an Automaton from r.
//
// A state is initial when its name equals InitialState and final when it is
// listed in FinalStates. Transition keys are split on the first comma, so
// symbols may contain commas but state names may not. Keys naming unknown
// states are skipped. A key without any comma fails the whole decode.
func Decode(r Record) (*domain.Automaton, error) {
	finals := make(map[string]struct{}, len(r.FinalStates))
	for _, name := range r.FinalStates {
		finals[name] = struct{}{}
	}

	a := domain.New()
	for _, name := range r.States {
		_, final := finals[name]
		a.AddState(name, name == r.InitialState, final)
	}

	keys := make([]string, 0, len(r.Transitions))
	for k := range r.Transitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fromName, symbol, ok := strings.Cut(key, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedKey, key)
		}
		from, okFrom := a.StateByName(fromName)
		to, okTo := a.StateByName(r.Transitions[key])
		if !okFrom || !okTo {
			continue
		}
		a.AddTransition(from, symbol, to)
	}

	return a, nil
}

// Marshal encodes a as indented JSON.
func Marshal(a *domain.Automaton) ([]byte, error) {
	return json.MarshalIndent(Encode(a), "", "  ")
}

// Unmarshal decodes a JSON document into an Automaton.
func Unmarshal(data []byte) (*domain.Automaton, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := schema.Validate(recordSchema, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return Decode(r)
}

// MarshalYAML encodes a as a YAML document.
func MarshalYAML(a *domain.Automaton) ([]byte, error) {
	return yaml.Marshal(Encode(a))
}

// UnmarshalYAML decodes a YAML document into an Automaton.
func UnmarshalYAML(data []byte) (*domain.Automaton, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := schema.Validate(recordSchema, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return Decode(r)
}
