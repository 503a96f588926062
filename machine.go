package curri

import (
	"maps"
	"slices"

	"github.com/kirigirihitomi/curri-fsm/fn"
)

// Wildcard as an edge source matches any current state.
const Wildcard = "*"

// Transform maps one machine value to the next.
type Transform[C any] = fn.Func[Machine[C]]

// Handlers is the enter/exit pair registered for a state.
type Handlers[C any] struct {
	Enter fn.Func[C]
	Exit  fn.Func[C]
}

// Edge is a transition from one state label to another.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Machine is an immutable FSM snapshot.
//
// The zero value is a machine with a zero context, an empty current state and
// no registrations; use New to pick an initial state.
type Machine[C any] struct {
	context     C
	current     string
	states      map[string]Handlers[C]
	transitions map[string][]Edge
}

// New creates a machine holding context in state initial. The initial state
// does not have to be registered yet.
func New[C any](context C, initial string) Machine[C] {
	return Machine[C]{
		context:     context,
		current:     initial,
		states:      map[string]Handlers[C]{},
		transitions: map[string][]Edge{},
	}
}

// Context returns the payload held by the machine.
func (m Machine[C]) Context() C {
	return m.context
}

// Current returns the current state label.
func (m Machine[C]) Current() string {
	return m.current
}

// HasState reports whether name has been registered.
func (m Machine[C]) HasState(name string) bool {
	_, ok := m.states[name]
	return ok
}

// States returns the registered state names in lexical order.
func (m Machine[C]) States() []string {
	return slices.Sorted(maps.Keys(m.states))
}

// Events returns the registered event labels in lexical order.
func (m Machine[C]) Events() []string {
	return slices.Sorted(maps.Keys(m.transitions))
}

// Edges returns a copy of the edges registered under on, in registration order.
func (m Machine[C]) Edges(on string) []Edge {
	return slices.Clone(m.transitions[on])
}

// Handlers returns the enter/exit pair of a registered state.
func (m Machine[C]) Handlers(name string) (Handlers[C], bool) {
	h, ok := m.states[name]
	return h, ok
}

// CanFire reports whether firing on would select an edge from the current state.
func (m Machine[C]) CanFire(on string) bool {
	_, ok := m.match(on)
	return ok
}

// match returns the first edge under on whose source is the current state or
// the wildcard.
func (m Machine[C]) match(on string) (Edge, bool) {
	for _, e := range m.transitions[on] {
		if e.From == Wildcard || e.From == m.current {
			return e, true
		}
	}
	return Edge{}, false
}

// Compose chains transforms left to right into one. Nil entries are skipped
// and an empty list yields the identity transform.
func Compose[C any](ts ...Transform[C]) Transform[C] {
	return fn.ComposeAll(ts...)
}

// Apply runs ts against m in order and returns the resulting machine.
func Apply[C any](m Machine[C], ts ...Transform[C]) Machine[C] {
	return fn.Apply(m, ts...)
}
