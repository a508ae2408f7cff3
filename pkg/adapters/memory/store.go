// Package memory provides in-process implementations of the ports.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/codec/native"
	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]native.Record
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]native.Record),
	}
}

// Save keeps the encoded record, so later edits to a are not visible.
func (s *Store) Save(ctx context.Context, name string, a *domain.Automaton) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	rec := native.Encode(a)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = rec
	return nil
}

// Load decodes a fresh automaton on every call.
func (s *Store) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	s.mu.RLock()
	rec, ok := s.data[name]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	return native.Decode(rec)
}

// Delete removes the automaton.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
