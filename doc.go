// Package curri is a functional finite-state-machine engine.
//
// A Machine holds an opaque context value, the label of its current state,
// a set of named states and a set of transition edges grouped by event label.
// Nothing mutates a machine in place: registration and dispatch are both
// Transform values, functions from one Machine to the next.
//
// # Assembly
//
// States and transitions are registered by composing transforms and applying
// the result once to a fresh machine:
//
//	setup := curri.Compose(
//	    curri.State[int]("idle", fn.Identity[int], func(i int) int { return i + 3 }),
//	    curri.State[int]("running", func(i int) int { return i * 2 }, fn.Identity[int]),
//	    curri.Transitions[int]("start", "idle", "running"),
//	)
//	m := setup(curri.New(0, "idle"))
//
// # Dispatch
//
// Trigger returns a transform that fires one event. The first edge registered
// under the event whose source is the current state (or Wildcard) wins; the
// current state's exit runs, then the target's enter, threading the context
// through both. Firing an unknown event, or one with no matching edge, returns
// the machine unchanged.
//
//	m = curri.Trigger[int]("start")(m) // context 6, state "running"
//
// # Lazy validation
//
// Edges may name states that are not registered yet. A missing state is only
// detected when an edge referencing it is selected, and is reported as a
// *DanglingStateError: Fire returns it, Trigger panics with it.
//
// # Concurrency
//
// Machine values are not synchronized. Thread a machine linearly through the
// transforms or guard it externally (see package runner).
package curri
