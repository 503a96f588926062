package curri

import (
	"github.com/kirigirihitomi/curri-fsm/fn"
)

// Trigger returns a transform that fires the event on.
//
// When no edge under on matches the current state the machine is returned
// unchanged. When the selected edge refers to a state that was never
// registered, the transform panics with a *DanglingStateError; use Fire to
// receive the failure as an error instead.
func Trigger[C any](on string) Transform[C] {
	canFire := func(m Machine[C]) bool { return m.CanFire(on) }
	fire := func(m Machine[C]) Machine[C] {
		next, err := Fire(m, on)
		if err != nil {
			panic(err)
		}
		return next
	}
	return fn.IfElse(canFire, fire, fn.Identity[Machine[C]])
}

// Fire dispatches the event on against m.
//
// The current state's exit function runs first and the target's enter
// function runs on its result; the returned machine carries the new context
// and the target as its current state. An unregistered event or a missing
// matching edge yields m unchanged and a nil error. If either end of the
// selected edge is not registered, m is returned untouched together with a
// *DanglingStateError.
func Fire[C any](m Machine[C], on string) (Machine[C], error) {
	edge, ok := m.match(on)
	if !ok {
		return m, nil
	}

	from, ok := m.states[m.current]
	if !ok {
		return m, newDanglingStateError(on, m.current, RoleSource)
	}
	to, ok := m.states[edge.To]
	if !ok {
		return m, newDanglingStateError(on, edge.To, RoleTarget)
	}

	m.context = to.Enter(from.Exit(m.context))
	m.current = edge.To
	return m, nil
}
