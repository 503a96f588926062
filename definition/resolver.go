package definition

import (
	"errors"
	"fmt"

	"github.com/kirigirihitomi/curri-fsm/fn"
)

var (
	ErrUnknownFunc       = errors.New("function not registered")
	ErrInvalidDefinition = errors.New("invalid definition")
)

// Resolver maps function names used in a definition to context transformations.
type Resolver[C any] interface {
	Resolve(name string) (fn.Func[C], error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc[C any] func(name string) (fn.Func[C], error)

func (f ResolverFunc[C]) Resolve(name string) (fn.Func[C], error) {
	return f(name)
}

// Funcs is a Resolver backed by a fixed table of named functions.
type Funcs[C any] map[string]fn.Func[C]

func (f Funcs[C]) Resolve(name string) (fn.Func[C], error) {
	if g, ok := f[name]; ok && g != nil {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFunc, name)
}

// Chain tries each resolver in order and returns the first match.
func Chain[C any](rs ...Resolver[C]) Resolver[C] {
	return ResolverFunc[C](func(name string) (fn.Func[C], error) {
		for _, r := range rs {
			g, err := r.Resolve(name)
			if err == nil {
				return g, nil
			}
			if !errors.Is(err, ErrUnknownFunc) {
				return nil, err
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunc, name)
	})
}

// resolve treats the empty name as identity.
func resolve[C any](r Resolver[C], name string) (fn.Func[C], error) {
	if name == "" {
		return fn.Identity[C], nil
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunc, name)
	}
	return r.Resolve(name)
}
