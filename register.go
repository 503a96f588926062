package curri

import (
	"maps"
	"slices"

	"github.com/kirigirihitomi/curri-fsm/fn"
)

// State returns a transform that registers name with the given enter and exit
// functions, replacing any pair previously registered under the same name.
// Context and current state are left alone. Nil functions act as identity.
func State[C any](name string, enter, exit fn.Func[C]) Transform[C] {
	if enter == nil {
		enter = fn.Identity[C]
	}
	if exit == nil {
		exit = fn.Identity[C]
	}
	h := Handlers[C]{Enter: enter, Exit: exit}

	return func(m Machine[C]) Machine[C] {
		// copy-on-write keeps earlier snapshots intact
		states := make(map[string]Handlers[C], len(m.states)+1)
		maps.Copy(states, m.states)
		states[name] = h
		m.states = states
		return m
	}
}

// Transitions returns a transform that appends the edge from -> to under the
// event label on. Edges sharing a label accumulate in registration order.
// Use Wildcard as from to match any current state.
func Transitions[C any](on, from, to string) Transform[C] {
	e := Edge{From: from, To: to}

	return func(m Machine[C]) Machine[C] {
		transitions := make(map[string][]Edge, len(m.transitions)+1)
		maps.Copy(transitions, m.transitions)
		prev := m.transitions[on]
		edges := make([]Edge, 0, len(prev)+1)
		edges = append(edges, prev...)
		transitions[on] = append(edges, e)
		m.transitions = transitions
		return m
	}
}

// Graph is a serializable view of a machine's structure.
type Graph struct {
	Current string            `json:"current" yaml:"current"`
	States  []string          `json:"states" yaml:"states"`
	Edges   map[string][]Edge `json:"edges" yaml:"edges"`
}

// Graph returns the structure of m. Handler functions are not included.
func (m Machine[C]) Graph() Graph {
	edges := make(map[string][]Edge, len(m.transitions))
	for on, es := range m.transitions {
		edges[on] = slices.Clone(es)
	}
	return Graph{
		Current: m.current,
		States:  m.States(),
		Edges:   edges,
	}
}
