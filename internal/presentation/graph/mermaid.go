package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// EpsilonLabel labels transitions on the empty symbol.
const EpsilonLabel = "ε"

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	Visited []*domain.State
	Current *domain.State
	// Stuck marks Current as the state where validation found no transition.
	Stuck bool
}

// OverlayFromTrace builds the overlay for the step at index of trace.
// When that step is the terminal error step, the last real state is shown
// as stuck.
func OverlayFromTrace(trace domain.Trace, index int) *GraphOverlay {
	if len(trace) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index >= len(trace) {
		index = len(trace) - 1
	}

	o := &GraphOverlay{}
	for _, step := range trace[:index+1] {
		if !step.Failed() {
			o.Visited = append(o.Visited, step.State)
			o.Current = step.State
		}
	}
	o.Stuck = trace[index].Failed()
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// It applies semantic styling:
// - State: ((Circle))
// - Final state: (((Double circle)))
// - Initial state: entered by an arrow from a small start dot
// Transitions between the same pair of states share one edge labelled with
// all their symbols. It also applies overlay styles (Visited/Current/Stuck)
// if provided.
func GenerateMermaid(a *domain.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := make(map[*domain.State]string, a.Len())
	for i, s := range a.States() {
		id := fmt.Sprintf("s%d", i)
		ids[s] = id

		opener, closer := "((", "))"
		if a.IsFinal(s) {
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(s.Name), closer)
	}

	if initial, ok := a.InitialState(); ok {
		sb.WriteString("    start_((\" \")) --> " + ids[initial] + "\n")
		sb.WriteString("    style start_ fill:#000,stroke:#000,color:#000\n")
	}

	type pair struct{ from, to *domain.State }
	var order []pair
	labels := make(map[pair][]string)
	for _, t := range a.Transitions() {
		p := pair{t.From, t.To}
		if _, seen := labels[p]; !seen {
			order = append(order, p)
		}
		sym := t.Symbol
		if sym == "" {
			sym = EpsilonLabel
		}
		labels[p] = append(labels[p], escapeLabel(sym))
	}
	for _, p := range order {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ids[p.from], strings.Join(labels[p], ", "), ids[p.to])
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// color:#000 keeps labels readable on the light fills in both themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef stuck fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		styled := make(map[*domain.State]bool)
		for _, s := range overlay.Visited {
			id, ok := ids[s]
			if ok && !styled[s] && s != overlay.Current {
				styled[s] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}

		if id, ok := ids[overlay.Current]; ok {
			class := "current"
			if overlay.Stuck {
				class = "stuck"
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", id, class)
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
