// Command curri loads a YAML machine definition over an int context, fires
// the configured events and prints the resulting state.
//
// Configuration comes from the environment (or a .env file):
//
//	CURRI_DEFINITION=examples/definitions/walkthrough.yaml \
//	CURRI_EVENTS=start,pause,resume \
//	CURRI_DOT=true \
//	curri
//
// With CURRI_TICK_EVENT set, that event is then fired every
// CURRI_TICK_INTERVAL, CURRI_TICK_COUNT times or until interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirigirihitomi/curri-fsm/definition"
	"github.com/kirigirihitomi/curri-fsm/internal/config"
	"github.com/kirigirihitomi/curri-fsm/internal/extensibility"
	"github.com/kirigirihitomi/curri-fsm/internal/logger"
	"github.com/kirigirihitomi/curri-fsm/internal/production"
	"github.com/kirigirihitomi/curri-fsm/runner"
)

// publishBuffer bounds published transitions kept for an unlimited tick run.
const publishBuffer = 256

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "curri:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	var cfg config.CLI
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if cfg.TickEvent != "" && cfg.TickInterval <= 0 {
		return fmt.Errorf("CURRI_TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	log := logger.New(logger.WithLevel(level), logger.WithFormat(format))

	def, err := definition.Load(cfg.Definition)
	if err != nil {
		return err
	}
	resolver := extensibility.NewTracingResolver(extensibility.IntResolver(), log)
	m, err := definition.Machine[int](def, resolver)
	if err != nil {
		return err
	}

	capacity := len(cfg.Events) + cfg.TickCount
	if cfg.TickEvent != "" && cfg.TickCount == 0 {
		capacity += publishBuffer
	}
	published := make(chan runner.Metadata, capacity)
	r := runner.New(m,
		runner.WithID(cfg.MachineID),
		runner.WithLogger(log),
		runner.WithPublisher(production.NewChannelPublisher(published)),
		runner.WithVisualizer(&production.DefaultVisualizer{}),
	)

	pumpErr := pump(ctx, r, cfg)
	if err := r.Close(); err != nil {
		return err
	}
	for md := range published {
		fmt.Fprintf(out, "%s: %s -> %s\n", md.Event, md.From, md.To)
	}
	if pumpErr != nil {
		return pumpErr
	}

	fmt.Fprintf(out, "state=%s context=%d\n", r.Current(), r.Context())
	if cfg.DOT {
		fmt.Fprint(out, r.Visualize())
	}
	return nil
}

// pump fires the configured events and then the ticks. An interrupt during
// the tick run ends it without error.
func pump(ctx context.Context, r *runner.Runner[int], cfg config.CLI) error {
	if _, err := extensibility.Pump(ctx, r, extensibility.SliceEventSource(cfg.Events...)); err != nil {
		return err
	}
	if cfg.TickEvent == "" {
		return nil
	}

	ticks := extensibility.NewTimerEventSource(ctx, cfg.TickEvent, cfg.TickInterval, cfg.TickCount)
	defer ticks.Stop()
	_, err := extensibility.Pump(ctx, r, ticks)
	if err != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}
