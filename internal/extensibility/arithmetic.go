package extensibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kirigirihitomi/curri-fsm/definition"
	"github.com/kirigirihitomi/curri-fsm/fn"
)

var intOps = map[byte]func(int, int) int{
	'+': func(n, x int) int { return x + n },
	'-': func(n, x int) int { return x - n },
	'*': func(n, x int) int { return x * n },
}

// IntResolver resolves "identity" and arithmetic expressions such as "+3",
// "-1" or "*2" into transformations over int contexts.
func IntResolver() definition.Resolver[int] {
	return definition.ResolverFunc[int](func(name string) (fn.Func[int], error) {
		expr := strings.TrimSpace(name)
		if expr == "identity" {
			return fn.Identity[int], nil
		}
		if len(expr) < 2 {
			return nil, fmt.Errorf("%w: %q", definition.ErrUnknownFunc, name)
		}
		op, ok := intOps[expr[0]]
		if !ok {
			return nil, fmt.Errorf("%w: %q", definition.ErrUnknownFunc, name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(expr[1:]))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: bad operand: %v", definition.ErrUnknownFunc, name, err)
		}
		return fn.Curry(op)(n), nil
	})
}
