package dsl

import (
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
)

func TestBuilder_BinaryEndsInOne(t *testing.T) {
	b := New()

	b.Add("q0").
		Initial().
		On("0", "q0").
		On("1", "q1")

	b.Add("q1").
		Final().
		On("0", "q0").
		On("1", "q1")

	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if a.Len() != 2 {
		t.Fatalf("Expected 2 states, got %d", a.Len())
	}
	initial, ok := a.InitialState()
	if !ok || initial.Name != "q0" {
		t.Errorf("Expected initial state q0, got %v", initial)
	}
	if finals := a.FinalStates(); len(finals) != 1 || finals[0].Name != "q1" {
		t.Errorf("Expected final states [q1], got %v", finals)
	}

	q1, _ := a.StateByName("q1")
	next, ok := a.Next(initial, "1")
	if !ok || next != q1 {
		t.Errorf("Expected q0 --1--> q1, got %v", next)
	}
}

func TestBuilder_ForwardReference(t *testing.T) {
	b := New()
	b.Add("a").Initial().On("x", "b")
	b.Add("b").Final()

	if _, err := b.Build(); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
}

func TestBuilder_AddReturnsSameState(t *testing.T) {
	b := New()
	first := b.Add("s")
	second := b.Add("s").Final()

	if first != second {
		t.Fatal("Expected Add to return the existing builder")
	}
	if !first.final {
		t.Error("Expected the shared builder to be final")
	}
}

func TestBuilder_ReportsAllProblems(t *testing.T) {
	b := New()
	b.Add("a").Initial().On("x", "ghost").On("y", "b").On("y", "a")
	b.Add("b").Initial()
	b.Add("  ")

	a, err := b.Build()
	if err == nil {
		t.Fatal("Expected Build() to fail")
	}
	if a != nil {
		t.Error("Expected no automaton on failure")
	}

	for _, want := range []error{
		domain.ErrEmptyStateName,
		domain.ErrUnknownState,
		domain.ErrTransitionExists,
		ErrMultipleInitial,
	} {
		if !errors.Is(err, want) {
			t.Errorf("Expected error to wrap %v, got %v", want, err)
		}
	}
}
