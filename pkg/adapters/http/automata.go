package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/automata/internal/lint"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/codec/jflap"
	"github.com/aretw0/automata/pkg/codec/native"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/input"
	"github.com/go-chi/chi/v5"
)

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Automaton json.RawMessage `json:"automaton"`
	Input     string          `json:"input"`
}

// InputRequest is the body of POST /automata/{name}/validate.
type InputRequest struct {
	Input string `json:"input"`
}

// ListResponse is the body of GET /automata.
type ListResponse struct {
	Names []string `json:"names"`
}

func isClientError(err error) bool {
	for _, target := range []error{
		errBadRequest,
		input.ErrInvalidUTF8,
		input.ErrControlCharacter,
		domain.ErrInvalidName,
		domain.ErrEmptyStateName,
		domain.ErrUnknownState,
		native.ErrInvalidDocument,
		native.ErrMalformedKey,
		jflap.ErrMalformedDocument,
		jflap.ErrUnknownStateID,
		jflap.ErrMissingEndpoint,
		codec.ErrUnknownFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidateInline handles POST /validate with the automaton in the body.
func (s *Server) ValidateInline(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		s.fail(w, "validate", err)
		return
	}
	if len(body.Automaton) == 0 {
		s.fail(w, "validate", errors.Join(errBadRequest, errors.New("automaton is required")))
		return
	}

	a, err := native.Unmarshal(body.Automaton)
	if err != nil {
		s.fail(w, "validate", err)
		return
	}
	s.validate(w, r, a, body.Input)
}

// ValidateStored handles POST /automata/{name}/validate.
func (s *Server) ValidateStored(w http.ResponseWriter, r *http.Request) {
	var body InputRequest
	if err := decodeJSON(w, r, &body); err != nil {
		s.fail(w, "validate", err)
		return
	}

	a, err := s.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "validate", err)
		return
	}
	s.validate(w, r, a, body.Input)
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request, a *domain.Automaton, in string) {
	res, err := s.validator.Validate(r.Context(), a, in)
	if err != nil {
		s.fail(w, "validate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// ImportJFLAP handles POST /import/jflap. The XML body is converted to the
// native record. With ?name= the result is also stored.
func (s *Server) ImportJFLAP(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.fail(w, "import", err)
		return
	}
	a, err := jflap.Decode(data)
	if err != nil {
		s.fail(w, "import", err)
		return
	}

	status := http.StatusOK
	if name := r.URL.Query().Get("name"); name != "" {
		if err := s.save(r, name, a); err != nil {
			s.fail(w, "import", err)
			return
		}
		status = http.StatusCreated
	}
	s.writeJSON(w, status, native.Encode(a))
}

// ListAutomata handles GET /automata.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, "list", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, ListResponse{Names: names})
}

// GetAutomaton handles GET /automata/{name}. ?format= selects native
// (default), yaml or jflap.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "get", err)
		return
	}

	format := codec.FormatNative
	if q := r.URL.Query().Get("format"); q != "" {
		if format, err = codec.ParseFormat(q); err != nil {
			s.fail(w, "get", err)
			return
		}
	}

	data, err := codec.Encode(format, a)
	if err != nil {
		s.fail(w, "get", err)
		return
	}
	s.writeText(w, contentTypes[format], string(data))
}

var contentTypes = map[codec.Format]string{
	codec.FormatNative: "application/json",
	codec.FormatYAML:   "application/yaml",
	codec.FormatJFLAP:  "application/xml",
}

// PutAutomaton handles PUT /automata/{name} with a native JSON body.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.fail(w, "put", err)
		return
	}
	a, err := native.Unmarshal(data)
	if err != nil {
		s.fail(w, "put", err)
		return
	}

	name := chi.URLParam(r, "name")
	if err := s.withLock(r, name, func() error { return s.save(r, name, a) }); err != nil {
		s.fail(w, "put", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAutomaton handles DELETE /automata/{name}.
func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.withLock(r, name, func() error {
		if err := s.store.Delete(r.Context(), name); err != nil {
			return err
		}
		s.Streams.Publish(Event{Type: EventDeleted, Name: name})
		return nil
	})
	if err != nil {
		s.fail(w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles GET /automata/{name}/graph. With ?input= the final step
// of that run is overlaid on the diagram.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "graph", err)
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Has("input") {
		res, err := s.validator.Validate(r.Context(), a, r.URL.Query().Get("input"))
		if err != nil {
			s.fail(w, "graph", err)
			return
		}
		overlay = graph.OverlayFromTrace(res.Trace, len(res.Trace)-1)
	}
	s.writeText(w, "text/plain; charset=utf-8", graph.GenerateMermaid(a, overlay))
}

// GetTable handles GET /automata/{name}/table.
func (s *Server) GetTable(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "table", err)
		return
	}
	s.writeText(w, "text/markdown; charset=utf-8", table.Transitions(a))
}

// GetLint handles GET /automata/{name}/lint.
func (s *Server) GetLint(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "lint", err)
		return
	}
	report := lint.Check(a)
	if report.Findings == nil {
		report.Findings = []lint.Finding{}
	}
	s.writeJSON(w, http.StatusOK, report)
}

// save stores a and notifies subscribers.
func (s *Server) save(r *http.Request, name string, a *domain.Automaton) error {
	if err := s.store.Save(r.Context(), name, a); err != nil {
		return err
	}
	s.Streams.Publish(Event{Type: EventSaved, Name: name})
	return nil
}
