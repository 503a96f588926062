// Package fn provides generic combinators over unary functions.
//
// Every helper returns a plain Go function value, so results can be stored,
// passed around and composed again without wrapper types:
//
//	inc := fn.Curry(func(a, b int) int { return a + b })(1)
//	double := func(x int) int { return x * 2 }
//	f := fn.Compose(inc, double) // x -> (x+1)*2
//
// The machine package builds its whole registration and dispatch model on
// these primitives.
package fn

// Func is a unary transformation from T to T.
type Func[T any] func(T) T

// Identity returns its argument unchanged.
func Identity[T any](x T) T {
	return x
}

// Curry turns a two-argument function into a chain of unary functions.
func Curry[A, B, R any](f func(A, B) R) func(A) func(B) R {
	return func(a A) func(B) R {
		return func(b B) R {
			return f(a, b)
		}
	}
}

// Uncurry is the inverse of Curry.
func Uncurry[A, B, R any](f func(A) func(B) R) func(A, B) R {
	return func(a A, b B) R {
		return f(a)(b)
	}
}

// IfElse returns a transformation that applies then when pred holds for the
// input and otherwise applies otherwise. Only the chosen branch runs.
func IfElse[T, R any](pred func(T) bool, then, otherwise func(T) R) func(T) R {
	return func(x T) R {
		if pred(x) {
			return then(x)
		}
		return otherwise(x)
	}
}

// Compose returns x -> g(f(x)).
func Compose[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(x A) C {
		return g(f(x))
	}
}

// ComposeAll chains fs left to right: the first element runs first.
// Nil elements are skipped and an empty list yields Identity.
func ComposeAll[T any](fs ...Func[T]) Func[T] {
	chain := make([]Func[T], 0, len(fs))
	for _, f := range fs {
		if f != nil {
			chain = append(chain, f)
		}
	}
	if len(chain) == 0 {
		return Identity[T]
	}
	return func(x T) T {
		for _, f := range chain {
			x = f(x)
		}
		return x
	}
}

// Apply runs fs against x in order and returns the result.
func Apply[T any](x T, fs ...Func[T]) T {
	return ComposeAll(fs...)(x)
}
