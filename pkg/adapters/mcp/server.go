package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/pkg/codec/jflap"
	"github.com/aretw0/automata/pkg/codec/native"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	StoredListURI     = "automata://stored"
	StoredTemplateURI = "automata://stored/{name}"
	storedPrefix      = "automata://stored/"
)

// ErrNoAutomaton is returned when a tool call names neither an inline nor a stored automaton.
var ErrNoAutomaton = errors.New("either automaton or name is required")

// Validator runs input through an automaton.
type Validator interface {
	Validate(ctx context.Context, a *domain.Automaton, input string) (*domain.Result, error)
}

// AutomatonArgs selects the automaton a tool works on: inline native JSON
// or the name of a stored automaton.
type AutomatonArgs struct {
	Automaton string `json:"automaton,omitempty"`
	Name      string `json:"name,omitempty"`
}

// ValidateArgs are the arguments of validate_string.
type ValidateArgs struct {
	AutomatonArgs
	Input string `json:"input"`
}

// ValidateResponse is the structured result of validate_string.
type ValidateResponse struct {
	Accepted bool         `json:"accepted" jsonschema_description:"Whether the automaton accepts the input"`
	Verdict  string       `json:"verdict" jsonschema_description:"One-line human readable verdict"`
	Trace    domain.Trace `json:"trace" jsonschema_description:"States visited; a null state marks the step where no transition matched"`
}

// ImportArgs are the arguments of import_jflap.
type ImportArgs struct {
	XML  string `json:"xml"`
	Name string `json:"name,omitempty"`
}

// Server exposes automata as MCP tools and resources.
type Server struct {
	validator Validator
	store     ports.AutomatonStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(v Validator, store ports.AutomatonStore, opts ...Option) *Server {
	s := &Server{
		validator: v,
		store:     store,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: validate_string
	validateTool := mcp.NewTool("validate_string",
		mcp.WithDescription("Run a string through a DFA and return the verdict with the visited states."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The string to validate; every character is one symbol")),
		mcp.WithString("automaton", mcp.Description("Automaton as native JSON (states, initial_state, final_states, transitions)")),
		mcp.WithString("name", mcp.Description("Name of a stored automaton, used when automaton is omitted")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: transition_table
	tableTool := mcp.NewTool("transition_table",
		mcp.WithDescription("Render the transition table of a DFA as Markdown."),
		mcp.WithString("automaton", mcp.Description("Automaton as native JSON")),
		mcp.WithString("name", mcp.Description("Name of a stored automaton")),
	)
	s.mcpServer.AddTool(tableTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AutomatonArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		a, err := s.resolve(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(table.Transitions(a)), nil
	})

	// TOOL: import_jflap
	importTool := mcp.NewTool("import_jflap",
		mcp.WithDescription("Convert a JFLAP .jff document to native JSON, optionally storing it under a name."),
		mcp.WithString("xml", mcp.Required(), mcp.Description("The JFLAP XML document")),
		mcp.WithString("name", mcp.Description("Store the result under this name")),
		mcp.WithOutputSchema[native.Record](),
	)
	s.mcpServer.AddTool(importTool, mcp.NewStructuredToolHandler(s.handleImport))

	// TOOL: list_automata
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of stored automata."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (ValidateResponse, error) {
	a, err := s.resolve(ctx, args.AutomatonArgs)
	if err != nil {
		return ValidateResponse{}, err
	}

	res, err := s.validator.Validate(ctx, a, args.Input)
	if err != nil {
		s.logger.Warn("MCP validate: input rejected", "err", err, "size", len(args.Input))
		return ValidateResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	trace := res.Trace
	if trace == nil {
		trace = domain.Trace{}
	}
	return ValidateResponse{
		Accepted: res.Accepted,
		Verdict:  table.Verdict(res.Input, res.Accepted),
		Trace:    trace,
	}, nil
}

func (s *Server) handleImport(ctx context.Context, request mcp.CallToolRequest, args ImportArgs) (native.Record, error) {
	a, err := jflap.Decode([]byte(args.XML))
	if err != nil {
		return native.Record{}, err
	}
	if args.Name != "" {
		if err := s.store.Save(ctx, args.Name, a); err != nil {
			return native.Record{}, fmt.Errorf("save %s: %w", args.Name, err)
		}
	}
	return native.Encode(a), nil
}

// resolve picks the inline automaton, or loads the named one.
func (s *Server) resolve(ctx context.Context, args AutomatonArgs) (*domain.Automaton, error) {
	switch {
	case args.Automaton != "":
		return native.Unmarshal([]byte(args.Automaton))
	case args.Name != "":
		return s.store.Load(ctx, args.Name)
	}
	return nil, ErrNoAutomaton
}

func (s *Server) registerResources() {
	// EXPOSE: automata://stored
	s.mcpServer.AddResource(mcp.NewResource(StoredListURI, "Stored Automata",
		mcp.WithResourceDescription("Names of the automata in the configured store"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}
		if names == nil {
			names = []string{}
		}
		jsonBytes, _ := json.Marshal(names)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StoredListURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: automata://stored/{name}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(StoredTemplateURI, "Stored Automaton",
		mcp.WithTemplateDescription("One stored automaton as native JSON"),
		mcp.WithTemplateMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := request.Params.URI
		name := strings.TrimPrefix(uri, storedPrefix)
		a, err := s.store.Load(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		data, err := native.Marshal(a)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
