// Package file stores automata as native JSON documents on the local filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/codec/native"
	"github.com/aretw0/automata/pkg/domain"
)

// Ext is the file extension of stored automata.
const Ext = ".afd"

// Store implements ports.AutomatonStore using the local filesystem.
// Each automaton is the file <BasePath>/<name>.afd.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".automata".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = ".automata"
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.BasePath, name+Ext)
}

// Save writes the automaton atomically through a dot-prefixed temp file in
// the same directory.
func (s *Store) Save(ctx context.Context, name string, a *domain.Automaton) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure store directory: %w", err)
	}

	data, err := native.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode automaton: %w", err)
	}

	if err := codec.WriteFileAtomic(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to save automaton %q: %w", name, err)
	}
	return nil
}

// Load reads and decodes <name>.afd.
func (s *Store) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrAutomatonNotFound
		}
		return nil, fmt.Errorf("failed to read automaton file: %w", err)
	}

	a, err := native.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("automaton %q: %w", name, err)
	}
	return a, nil
}

// Delete removes <name>.afd.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}

	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete automaton file: %w", err)
	}
	return nil
}

// List returns the names of all .afd files. Dot files, which include
// leftover temp files, are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list automata: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || filepath.Ext(fileName) != Ext || strings.HasPrefix(fileName, codec.TempPrefix) {
			continue
		}
		names = append(names, strings.TrimSuffix(fileName, Ext))
	}
	sort.Strings(names)
	return names, nil
}
