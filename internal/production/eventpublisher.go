// Package production provides the runner integrations used by the command
// line tools: transition publishing and graph visualization.
package production

import (
	"context"

	"github.com/kirigirihitomi/curri-fsm/runner"
)

// ChannelPublisher forwards transition metadata to a Go channel.
// Publishing never blocks: when the channel is full the record is dropped.
type ChannelPublisher struct {
	ch chan<- runner.Metadata
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- runner.Metadata) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, md runner.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.ch <- md:
		return nil
	default:
		return nil // drop on backpressure
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
