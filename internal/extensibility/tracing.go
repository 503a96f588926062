package extensibility

import (
	"log/slog"

	"github.com/kirigirihitomi/curri-fsm/definition"
	"github.com/kirigirihitomi/curri-fsm/fn"
)

// TracingResolver wraps inner so that every resolved function logs its input
// and output at debug level.
type TracingResolver[C any] struct {
	inner  definition.Resolver[C]
	logger *slog.Logger
}

// NewTracingResolver creates a TracingResolver around inner. A nil logger
// discards the traces.
func NewTracingResolver[C any](inner definition.Resolver[C], logger *slog.Logger) *TracingResolver[C] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TracingResolver[C]{inner: inner, logger: logger}
}

// Resolve delegates to the inner resolver and wraps the result.
func (r *TracingResolver[C]) Resolve(name string) (fn.Func[C], error) {
	f, err := r.inner.Resolve(name)
	if err != nil {
		return nil, err
	}
	return Traced(name, f, r.logger), nil
}

// Traced wraps f with debug logging of its input and output. A nil logger
// returns f unchanged.
func Traced[C any](name string, f fn.Func[C], logger *slog.Logger) fn.Func[C] {
	if logger == nil {
		return f
	}
	return func(in C) C {
		out := f(in)
		logger.Debug("apply", slog.String("func", name), slog.Any("in", in), slog.Any("out", out))
		return out
	}
}
