// Package input checks strings received from users before they are run
// through an automaton.
package input

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "AUTOMATA_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge    = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8      = errors.New("input contains invalid UTF-8 sequences")
	ErrControlCharacter = errors.New("input contains a control character")
)

// Sanitizer checks input before it reaches an automaton: a size limit,
// valid UTF-8 and no control characters other than newline, tab and
// carriage return. Input is never rewritten; it is returned unchanged or
// rejected.
type Sanitizer struct {
	// MaxSize is the limit in bytes. Zero or negative means the default.
	MaxSize int
}

// FromEnv returns a Sanitizer whose limit comes from AUTOMATA_MAX_INPUT_SIZE,
// falling back to DefaultMaxInputSize.
func FromEnv() Sanitizer {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return Sanitizer{MaxSize: size}
		}
	}
	return Sanitizer{MaxSize: DefaultMaxInputSize}
}

func (s Sanitizer) limit() int {
	if s.MaxSize > 0 {
		return s.MaxSize
	}
	return DefaultMaxInputSize
}

// Sanitize returns input unchanged when it passes every check.
// Oversized input is rejected, never truncated.
func (s Sanitizer) Sanitize(input string) (string, error) {
	if limit := s.limit(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	for i, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			return "", fmt.Errorf("%w: %U at byte %d", ErrControlCharacter, r, i)
		}
	}
	return input, nil
}

// Check is Sanitize without the result, for callers that keep their own
// copy of input.
func (s Sanitizer) Check(input string) error {
	_, err := s.Sanitize(input)
	return err
}

// SanitizeInput checks input with the limit from the environment.
func SanitizeInput(input string) (string, error) {
	return FromEnv().Sanitize(input)
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
