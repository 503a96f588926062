// Package extensibility provides pluggable pieces for the command line tools:
// event sources feeding a runner and resolvers turning definition function
// names into context transformations.
package extensibility

import (
	"context"
	"sync"
	"time"

	"github.com/kirigirihitomi/curri-fsm/runner"
)

// EventSource supplies event labels to fire.
type EventSource interface {
	Events() <-chan string
}

// ChannelEventSource is an EventSource backed by a Go channel.
type ChannelEventSource struct {
	ch chan string
}

// NewChannelEventSource creates a ChannelEventSource with the given channel.
func NewChannelEventSource(ch chan string) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan string {
	return s.ch
}

// SliceEventSource returns a source that yields events in order and then
// closes.
func SliceEventSource(events ...string) *ChannelEventSource {
	ch := make(chan string, len(events))
	for _, e := range events {
		ch <- e
	}
	close(ch)
	return NewChannelEventSource(ch)
}

// TimerEventSource fires one event label per tick. It closes its channel
// once limit events were delivered, ctx ends or Stop is called. A limit of
// zero means no limit.
type TimerEventSource struct {
	ch   chan string
	done chan struct{}
	once sync.Once
}

// NewTimerEventSource starts a source delivering event every interval.
// interval must be positive.
func NewTimerEventSource(ctx context.Context, event string, interval time.Duration, limit int) *TimerEventSource {
	s := &TimerEventSource{
		ch:   make(chan string),
		done: make(chan struct{}),
	}
	go s.tick(ctx, event, interval, limit)
	return s
}

func (s *TimerEventSource) tick(ctx context.Context, event string, interval time.Duration, limit int) {
	defer close(s.ch)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for delivered := 0; limit == 0 || delivered < limit; delivered++ {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
		}
		// ticks that arrive while the consumer is busy are coalesced by the ticker
		select {
		case s.ch <- event:
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

// Events returns the event channel.
func (s *TimerEventSource) Events() <-chan string {
	return s.ch
}

// Stop ends the source. Safe to call more than once.
func (s *TimerEventSource) Stop() {
	s.once.Do(func() { close(s.done) })
}

// Pump fires every event from src at r until src closes, ctx is done or a
// dispatch fails. It returns the number of events fired.
func Pump[C any](ctx context.Context, r *runner.Runner[C], src EventSource) (int, error) {
	events := src.Events()
	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case e, ok := <-events:
			if !ok {
				return n, nil
			}
			if _, err := r.Fire(ctx, e); err != nil {
				return n, err
			}
			n++
		}
	}
}
