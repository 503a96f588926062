package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	curri "github.com/kirigirihitomi/curri-fsm"
)

// DefaultVisualizer renders machine graphs as Graphviz DOT or JSON.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for g. The current state is filled,
// states referenced by edges but never registered are drawn dashed, and
// wildcard edges start from a dedicated "*" node.
func (v *DefaultVisualizer) ExportDOT(g curri.Graph) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Machine {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	registered := make(map[string]bool, len(g.States))
	for _, s := range g.States {
		registered[s] = true
		renderState(&buf, s, s == g.Current, false)
	}

	edges := collectEdges(g)
	var dangling []string
	wildcard := false
	for _, e := range edges {
		for _, s := range []string{e.From, e.To} {
			if s == curri.Wildcard {
				wildcard = true
				continue
			}
			if !registered[s] && !slices.Contains(dangling, s) {
				dangling = append(dangling, s)
			}
		}
	}
	if g.Current != "" && !registered[g.Current] && !slices.Contains(dangling, g.Current) {
		dangling = append(dangling, g.Current)
	}
	slices.Sort(dangling)
	for _, s := range dangling {
		renderState(&buf, s, s == g.Current, true)
	}
	if wildcard {
		buf.WriteString(fmt.Sprintf("  %q [label=\"any\" shape=point];\n", curri.Wildcard))
	}

	for _, e := range edges {
		buf.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n", e.From, e.To, e.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes g to indented JSON.
func (v *DefaultVisualizer) ExportJSON(g curri.Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Edge represents one labelled transition edge.
type Edge struct {
	From  string
	To    string
	Label string
}

// collectEdges flattens g.Edges ordered by event label, keeping registration
// order within a label.
func collectEdges(g curri.Graph) []Edge {
	events := make([]string, 0, len(g.Edges))
	for on := range g.Edges {
		events = append(events, on)
	}
	slices.Sort(events)

	var edges []Edge
	for _, on := range events {
		for _, e := range g.Edges[on] {
			edges = append(edges, Edge{From: e.From, To: e.To, Label: on})
		}
	}
	return edges
}

func renderState(buf *bytes.Buffer, name string, active, dangling bool) {
	style := ""
	switch {
	case active && dangling:
		style = ` style="filled,dashed" fillcolor=lightgreen`
	case active:
		style = ` style=filled fillcolor=lightgreen`
	case dangling:
		style = ` style=dashed color=red`
	}
	buf.WriteString(fmt.Sprintf("  %q [label=%q%s];\n", name, name, style))
}
