// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	curri "github.com/kirigirihitomi/curri-fsm"
	"github.com/kirigirihitomi/curri-fsm/fn"
)

func inc(x int) int { return x + 1 }

// GenRing creates n states s0..s(n-1) cycling via "tick" events.
func GenRing(n int) curri.Transform[int] {
	if n < 1 {
		n = 1
	}
	b := curri.NewBuilder[int]()
	for i := 0; i < n; i++ {
		b.State(fmt.Sprintf("s%d", i), inc, fn.Identity[int])
	}
	for i := 0; i < n; i++ {
		b.Transition("tick", fmt.Sprintf("s%d", i), fmt.Sprintf("s%d", (i+1)%n))
	}
	return b.Build()
}

// GenWide creates one state "main" with n edges under "tick" where only the
// last one matches, so dispatch scans the whole list.
func GenWide(n int) curri.Transform[int] {
	if n < 1 {
		n = 1
	}
	b := curri.NewBuilder[int]().State("main", inc, nil)
	for i := 0; i < n-1; i++ {
		b.Transition("tick", fmt.Sprintf("other%d", i), "main")
	}
	b.Transition("tick", "main", "main")
	return b.Build()
}

// GenWildcard creates n states all reachable via a single wildcard "reset" edge.
func GenWildcard(n int) curri.Transform[int] {
	b := curri.NewBuilder[int]()
	for i := 0; i < n; i++ {
		b.State(fmt.Sprintf("s%d", i), nil, nil)
	}
	b.Any("reset", "s0")
	return b.Build()
}
