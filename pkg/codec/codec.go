// Package codec picks the right automaton format for a file name.
//
// Supported formats:
//
//	.afd, .json  native JSON document
//	.yaml, .yml  native document in YAML
//	.jff, .xml   JFLAP interchange XML
package codec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/codec/jflap"
	"github.com/aretw0/automata/pkg/codec/native"
	"github.com/aretw0/automata/pkg/domain"
)

// Format names a serialization format.
type Format string

const (
	FormatNative Format = "native"
	FormatYAML   Format = "yaml"
	FormatJFLAP  Format = "jflap"
)

// ErrUnknownFormat is returned for unrecognized file extensions or format names.
var ErrUnknownFormat = errors.New("unknown automaton format")

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatNative, FormatYAML, FormatJFLAP}
}

// ParseFormat accepts a format name as given on a command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native", "json", "afd":
		return FormatNative, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "jflap", "jff", "xml":
		return FormatJFLAP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatOf infers the format from the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Decode parses data in format f.
func Decode(f Format, data []byte) (*domain.Automaton, error) {
	switch f {
	case FormatNative:
		return native.Unmarshal(data)
	case FormatYAML:
		return native.UnmarshalYAML(data)
	case FormatJFLAP:
		return jflap.Decode(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Encode serializes a in format f.
func Encode(f Format, a *domain.Automaton) ([]byte, error) {
	switch f {
	case FormatNative:
		return native.Marshal(a)
	case FormatYAML:
		return native.MarshalYAML(a)
	case FormatJFLAP:
		return jflap.Encode(a)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ReadFile loads an automaton from path, choosing the format by extension.
func ReadFile(path string) (*domain.Automaton, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	a, err := Decode(f, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// WriteFile saves a to path atomically, choosing the format by extension.
func WriteFile(path string, a *domain.Automaton) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(f, a)
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
