package curri

import (
	"github.com/kirigirihitomi/curri-fsm/fn"
)

// Builder accumulates registration transforms fluently.
//
//	setup := curri.NewBuilder[int]().
//	    State("idle", nil, add3).
//	    State("running", double, nil).
//	    Transition("start", "idle", "running").
//	    Build()
type Builder[C any] struct {
	steps []Transform[C]
}

// NewBuilder creates an empty builder.
func NewBuilder[C any]() *Builder[C] {
	return &Builder[C]{}
}

// State queues the registration of a state.
func (b *Builder[C]) State(name string, enter, exit fn.Func[C]) *Builder[C] {
	b.steps = append(b.steps, State(name, enter, exit))
	return b
}

// Transition queues the registration of an edge under on.
func (b *Builder[C]) Transition(on, from, to string) *Builder[C] {
	b.steps = append(b.steps, Transitions[C](on, from, to))
	return b
}

// Any queues an edge under on that fires from every state.
func (b *Builder[C]) Any(on, to string) *Builder[C] {
	return b.Transition(on, Wildcard, to)
}

// Then queues arbitrary transforms.
func (b *Builder[C]) Then(ts ...Transform[C]) *Builder[C] {
	b.steps = append(b.steps, ts...)
	return b
}

// Len returns the number of queued transforms.
func (b *Builder[C]) Len() int {
	return len(b.steps)
}

// Build composes the queued transforms in the order they were added. Later
// calls on the builder do not affect a transform already built.
func (b *Builder[C]) Build() Transform[C] {
	steps := make([]Transform[C], len(b.steps))
	copy(steps, b.steps)
	return Compose(steps...)
}

// Machine builds the queued transforms and applies them to New(context, initial).
func (b *Builder[C]) Machine(context C, initial string) Machine[C] {
	return b.Build()(New(context, initial))
}
