// Package jflap imports and exports finite automata in the JFLAP .jff XML
// interchange format.
//
// Only <state> and <transition> elements are inspected on import; they may
// appear at any depth below the root. Everything else is ignored.
package jflap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
)

var (
	// ErrMalformedDocument is returned when the input is not well-formed XML.
	ErrMalformedDocument = errors.New("malformed jflap document")
	// ErrUnknownStateID is returned when a transition references an id no state declared.
	ErrUnknownStateID = errors.New("unknown state id")
	// ErrMissingEndpoint is returned when a transition lacks a <from> or <to> element.
	ErrMissingEndpoint = errors.New("transition endpoint missing")
)

// Document is the <structure> root of a .jff file.
type Document struct {
	XMLName   xml.Name      `xml:"structure"`
	Type      string        `xml:"type"`
	Automaton AutomatonElem `xml:"automaton"`
}

// AutomatonElem holds the states and transitions of a document.
type AutomatonElem struct {
	States      []StateElem      `xml:"state"`
	Transitions []TransitionElem `xml:"transition"`
}

// StateElem is a <state> element. Initial and Final are set when the
// corresponding empty child element is present. X and Y are layout hints
// kept as text; import never interprets them.
type StateElem struct {
	ID      string    `xml:"id,attr"`
	Name    *string   `xml:"name,attr"`
	X       *string   `xml:"x,omitempty"`
	Y       *string   `xml:"y,omitempty"`
	Initial *struct{} `xml:"initial"`
	Final   *struct{} `xml:"final"`
}

// DisplayName returns the name attribute, or the id when it is absent.
func (s StateElem) DisplayName() string {
	if s.Name != nil {
		return *s.Name
	}
	return s.ID
}

// TransitionElem is a <transition> element. A nil or empty Read is the empty symbol.
type TransitionElem struct {
	From *string `xml:"from"`
	To   *string `xml:"to"`
	Read *string `xml:"read"`
}

// Symbol returns the transition label.
func (t TransitionElem) Symbol() string {
	if t.Read == nil {
		return ""
	}
	return *t.Read
}

// Decode parses a .jff document into an Automaton.
//
// States are added first, in document order, building an id index. Each
// transition is then resolved against that index. Malformed XML, a missing
// endpoint or an id no state declared fail the whole import.
func Decode(data []byte) (*domain.Automaton, error) {
	states, transitions, err := scan(data)
	if err != nil {
		return nil, err
	}

	a := domain.New()
	byID := make(map[string]*domain.State, len(states))
	for _, se := range states {
		byID[se.ID] = a.AddState(se.DisplayName(), se.Initial != nil, se.Final != nil)
	}

	for i, te := range transitions {
		if te.From == nil || te.To == nil {
			return nil, fmt.Errorf("transition %d: %w", i, ErrMissingEndpoint)
		}
		from, ok := byID[*te.From]
		if !ok {
			return nil, fmt.Errorf("transition %d: from %q: %w", i, *te.From, ErrUnknownStateID)
		}
		to, ok := byID[*te.To]
		if !ok {
			return nil, fmt.Errorf("transition %d: to %q: %w", i, *te.To, ErrUnknownStateID)
		}
		a.AddTransition(from, te.Symbol(), to)
	}

	return a, nil
}

// scan collects every <state> and <transition> element regardless of nesting.
// The document must have exactly one root element and no text outside it.
func scan(data []byte) ([]StateElem, []TransitionElem, error) {
	var (
		states      []StateElem
		transitions []TransitionElem
		sawRoot     bool
		rootClosed  bool
		depth       int
	)

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		var start xml.StartElement
		switch t := tok.(type) {
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, nil, fmt.Errorf("%w: text outside the root element", ErrMalformedDocument)
			}
			continue
		case xml.EndElement:
			depth--
			if depth == 0 {
				rootClosed = true
			}
			continue
		case xml.StartElement:
			start = t
		default:
			continue
		}

		if rootClosed {
			return nil, nil, fmt.Errorf("%w: junk after document element <%s>", ErrMalformedDocument, start.Name.Local)
		}
		sawRoot = true

		switch start.Name.Local {
		case "state":
			var se StateElem
			if err := dec.DecodeElement(&se, &start); err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}
			states = append(states, se)
		case "transition":
			var te TransitionElem
			if err := dec.DecodeElement(&te, &start); err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}
			transitions = append(transitions, te)
		default:
			depth++
			continue
		}
		// DecodeElement consumed the whole element, end tag included.
		if depth == 0 {
			rootClosed = true
		}
	}

	if !sawRoot {
		return nil, nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	return states, transitions, nil
}

// Encode writes a as a JFLAP finite automaton document.
// State ids are assigned 0..n-1 in insertion order and states are laid out
// on a grid so the file opens cleanly in JFLAP.
func Encode(a *domain.Automaton) ([]byte, error) {
	doc := Document{Type: "fa"}

	ids := make(map[*domain.State]string, a.Len())
	initial, _ := a.InitialState()
	for i, s := range a.States() {
		id := strconv.Itoa(i)
		ids[s] = id

		name := s.Name
		x := strconv.FormatFloat(float64(100+150*(i%5)), 'f', 1, 64)
		y := strconv.FormatFloat(float64(100+150*(i/5)), 'f', 1, 64)
		se := StateElem{ID: id, Name: &name, X: &x, Y: &y}
		if s == initial {
			se.Initial = &struct{}{}
		}
		if a.IsFinal(s) {
			se.Final = &struct{}{}
		}
		doc.Automaton.States = append(doc.Automaton.States, se)
	}

	for _, t := range a.Transitions() {
		from, to, read := ids[t.From], ids[t.To], t.Symbol
		doc.Automaton.Transitions = append(doc.Automaton.Transitions, TransitionElem{
			From: &from,
			To:   &to,
			Read: &read,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode jflap document: %w", err)
	}
	out := []byte(xml.Header + "<!--Created with automata-->\n")
	return append(append(out, body...), '\n'), nil
}
