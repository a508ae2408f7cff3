package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/go-chi/chi/v5"
)

// AddStateRequest is the body of POST /automata/{name}/states.
type AddStateRequest struct {
	Name    string `json:"name"`
	Initial bool   `json:"initial"`
	Final   bool   `json:"final"`
}

// AddTransitionRequest is the body of POST /automata/{name}/transitions.
type AddTransitionRequest struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}

// AddState handles POST /automata/{name}/states. A missing automaton is
// created empty first, so an automaton can be built one state at a time.
func (s *Server) AddState(w http.ResponseWriter, r *http.Request) {
	var body AddStateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		s.fail(w, "add state", err)
		return
	}

	err := s.edit(r, true, func(e *dsl.Editor) error {
		_, err := e.AddState(body.Name, body.Initial, body.Final)
		return err
	})
	if err != nil {
		s.fail(w, "add state", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// AddTransition handles POST /automata/{name}/transitions.
func (s *Server) AddTransition(w http.ResponseWriter, r *http.Request) {
	var body AddTransitionRequest
	if err := decodeJSON(w, r, &body); err != nil {
		s.fail(w, "add transition", err)
		return
	}

	err := s.edit(r, false, func(e *dsl.Editor) error {
		return e.AddTransition(body.From, body.Symbol, body.To)
	})
	if err != nil {
		s.fail(w, "add transition", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// edit loads, changes and saves the automaton named in the URL under its lock.
func (s *Server) edit(r *http.Request, create bool, change func(*dsl.Editor) error) error {
	name := chi.URLParam(r, "name")
	if err := domain.ValidateName(name); err != nil {
		return err
	}

	return s.withLock(r, name, func() error {
		a, err := s.store.Load(r.Context(), name)
		if errors.Is(err, domain.ErrAutomatonNotFound) && create {
			a, err = domain.New(), nil
		}
		if err != nil {
			return err
		}

		if err := change(dsl.NewEditor(a)); err != nil {
			return err
		}
		return s.save(r, name, a)
	})
}

func (s *Server) withLock(r *http.Request, name string, fn func() error) error {
	if s.locker == nil {
		return fn()
	}
	unlock, err := s.locker.Lock(r.Context(), name, s.lockTTL)
	if err != nil {
		return fmt.Errorf("lock %s: %w", name, err)
	}
	defer func() {
		if err := unlock(r.Context()); err != nil {
			s.logger.Warn("unlock failed", "name", name, "err", err)
		}
	}()
	return fn()
}
