package schema

import (
	"fmt"
	"reflect"
	"sort"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "[string]").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

type stringType struct{}

func (stringType) Name() string { return "string" }

func (stringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

type sliceType struct {
	elem Type
}

func (t sliceType) Name() string { return "[" + t.elem.Name() + "]" }

func (t sliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

type mapType struct {
	elem Type
}

func (t mapType) Name() string { return "{string:" + t.elem.Name() + "}" }

func (t mapType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("expected object, got %T", value)
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		if err := t.elem.Validate(v.Interface()); err != nil {
			return fmt.Errorf("entry %q: %w", k, err)
		}
	}
	return nil
}

type optionalType struct {
	Type
}

func (t optionalType) Name() string { return t.Type.Name() + "?" }

// String creates a string type validator.
func String() Type { return stringType{} }

// Slice creates a validator for slices whose elements are all of elem.
func Slice(elem Type) Type { return sliceType{elem: elem} }

// Map creates a validator for string-keyed objects whose values are all of elem.
func Map(elem Type) Type { return mapType{elem: elem} }

// Optional marks a field that may be absent. A present value must still
// satisfy t.
func Optional(t Type) Type { return optionalType{Type: t} }

func isOptional(t Type) bool {
	_, ok := t.(optionalType)
	return ok
}
