// Package runner holds a single curri.Machine behind a mutex so that several
// goroutines can fire events at it. Every fired event is logged, successful
// transitions are handed to an optional Publisher, and the machine's graph
// can be rendered through an optional Visualizer.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	curri "github.com/kirigirihitomi/curri-fsm"
	"github.com/kirigirihitomi/curri-fsm/internal/logger"
)

// ErrClosed is returned by operations on a closed runner.
var ErrClosed = errors.New("runner closed")

// Metadata describes one completed transition.
type Metadata struct {
	MachineID string    `json:"machineID" yaml:"machineID"`
	Event     string    `json:"event" yaml:"event"`
	From      string    `json:"from" yaml:"from"`
	To        string    `json:"to" yaml:"to"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Publisher receives completed transitions.
type Publisher interface {
	Publish(ctx context.Context, md Metadata) error
	Close() error
}

// Visualizer renders a machine graph.
type Visualizer interface {
	ExportDOT(g curri.Graph) string
	ExportJSON(g curri.Graph) ([]byte, error)
}

// Result reports the outcome of one Fire call. Transitioned is false when the
// event was absorbed as a no-op.
type Result struct {
	Event        string
	From         string
	To           string
	Transitioned bool
}

// Runner serializes access to one machine value.
type Runner[C any] struct {
	mu      sync.Mutex
	machine curri.Machine[C]
	closed  bool

	id         string
	logger     *slog.Logger
	publisher  Publisher
	visualizer Visualizer
}

// New wraps m.
func New[C any](m curri.Machine[C], opts ...Option) *Runner[C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Runner[C]{
		machine:    m,
		id:         o.id,
		logger:     o.logger.With(slog.String("machine_id", o.id)),
		publisher:  o.publisher,
		visualizer: o.visualizer,
	}
}

// ID returns the machine ID used in logs and published metadata.
func (r *Runner[C]) ID() string {
	return r.id
}

// Fire dispatches event against the held machine.
//
// A no-op dispatch returns a Result with Transitioned false and a nil error.
// A dangling state reference leaves the held machine unchanged and returns an
// error wrapping curri.ErrDanglingState.
func (r *Runner[C]) Fire(ctx context.Context, event string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Result{}, ErrClosed
	}

	m := r.machine
	res := Result{Event: event, From: m.Current(), To: m.Current()}
	if !m.CanFire(event) {
		r.logger.DebugContext(ctx, "event ignored",
			slog.String("event", event),
			slog.String("state", res.From),
		)
		return res, nil
	}

	next, err := curri.Fire(m, event)
	if err != nil {
		r.logger.ErrorContext(ctx, "dispatch failed",
			slog.String("event", event),
			slog.String("state", res.From),
			logger.Error(err),
		)
		return res, fmt.Errorf("fire %q: %w", event, err)
	}

	r.machine = next
	res.To = next.Current()
	res.Transitioned = true
	r.logger.InfoContext(ctx, "transition",
		slog.String("event", event),
		slog.String("from", res.From),
		slog.String("to", res.To),
	)

	if r.publisher != nil {
		md := Metadata{
			MachineID: r.id,
			Event:     event,
			From:      res.From,
			To:        res.To,
			Timestamp: time.Now(),
		}
		if err := r.publisher.Publish(ctx, md); err != nil {
			r.logger.WarnContext(ctx, "publish failed",
				slog.String("event", event),
				logger.Error(err),
			)
		}
	}
	return res, nil
}

// FireAll fires events in order and stops at the first error.
func (r *Runner[C]) FireAll(ctx context.Context, events ...string) ([]Result, error) {
	results := make([]Result, 0, len(events))
	for _, e := range events {
		res, err := r.Fire(ctx, e)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Apply runs ts against the held machine as one step. If a transform panics
// with a dangling state reference the held machine is left unchanged and the
// failure is returned.
func (r *Runner[C]) Apply(ts ...curri.Transform[C]) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	defer func() {
		if p := recover(); p != nil {
			perr, ok := p.(error)
			if !ok || !curri.IsDanglingStateError(perr) {
				panic(p)
			}
			r.logger.Error("apply failed", logger.Error(perr))
			err = fmt.Errorf("apply: %w", perr)
		}
	}()

	r.machine = curri.Apply(r.machine, ts...)
	return nil
}

// Machine returns the current machine value.
func (r *Runner[C]) Machine() curri.Machine[C] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine
}

// Current returns the current state label.
func (r *Runner[C]) Current() string {
	return r.Machine().Current()
}

// Context returns the current context value.
func (r *Runner[C]) Context() C {
	return r.Machine().Context()
}

// Visualize returns the Graphviz DOT rendering of the held machine.
func (r *Runner[C]) Visualize() string {
	if r.visualizer == nil {
		return ""
	}
	return r.visualizer.ExportDOT(r.Machine().Graph())
}

// Close marks the runner closed and closes the publisher. Safe to call more
// than once.
func (r *Runner[C]) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.publisher != nil {
		if err := r.publisher.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}
