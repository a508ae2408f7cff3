package middleware_test

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/mock"
)

// MockStore records calls so tests can assert what reached the wrapped store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, name string, a *domain.Automaton) error {
	args := m.Called(ctx, name, a)
	return args.Error(0)
}

func (m *MockStore) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	args := m.Called(ctx, name)
	a, _ := args.Get(0).(*domain.Automaton)
	return a, args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

var _ ports.AutomatonStore = (*MockStore)(nil)
