package runner

import (
	"log/slog"

	"github.com/google/uuid"
)

// Option configures a Runner.
type Option func(*options)

type options struct {
	id         string
	logger     *slog.Logger
	publisher  Publisher
	visualizer Visualizer
}

func defaultOptions() *options {
	return &options{
		id:     uuid.NewString(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithID sets the machine ID. Empty IDs are ignored and a random UUID is kept.
func WithID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.id = id
		}
	}
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPublisher configures where completed transitions are published.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithVisualizer configures the renderer used by Visualize.
func WithVisualizer(v Visualizer) Option {
	return func(o *options) {
		o.visualizer = v
	}
}
