package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	curri "github.com/kirigirihitomi/curri-fsm"
)

const walkthroughDefinition = "../../examples/definitions/walkthrough.yaml"

func setenv(t *testing.T, vars map[string]string) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestRun_Events(t *testing.T) {
	setenv(t, map[string]string{
		"CURRI_DEFINITION": walkthroughDefinition,
		"CURRI_EVENTS":     "start,pause,resume,bogus",
	})

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out))
	assert.Equal(t,
		"start: idle -> running\n"+
			"pause: running -> paused\n"+
			"resume: paused -> running\n"+
			"state=running context=12\n",
		out.String())
}

func TestRun_Ticks(t *testing.T) {
	setenv(t, map[string]string{
		"CURRI_DEFINITION":    walkthroughDefinition,
		"CURRI_EVENTS":        "start",
		"CURRI_TICK_EVENT":    "halt",
		"CURRI_TICK_INTERVAL": "1ms",
		"CURRI_TICK_COUNT":    "2",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out := &bytes.Buffer{}
	require.NoError(t, run(ctx, out))
	assert.Equal(t,
		"start: idle -> running\n"+
			"halt: running -> idle\n"+
			"halt: idle -> idle\n"+
			"state=idle context=15\n",
		out.String())
}

func TestRun_TicksUntilInterrupted(t *testing.T) {
	setenv(t, map[string]string{
		"CURRI_DEFINITION":    walkthroughDefinition,
		"CURRI_TICK_EVENT":    "halt",
		"CURRI_TICK_INTERVAL": "1ms",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	out := &bytes.Buffer{}
	require.NoError(t, run(ctx, out))
	assert.Contains(t, out.String(), "halt: idle -> idle\n")
	assert.Contains(t, out.String(), "state=idle")
}

func TestRun_DOT(t *testing.T) {
	setenv(t, map[string]string{
		"CURRI_DEFINITION": walkthroughDefinition,
		"CURRI_EVENTS":     "start",
		"CURRI_DOT":        "true",
	})

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out))
	assert.Contains(t, out.String(), "state=running context=6\n")
	assert.Contains(t, out.String(), "digraph Machine {")
}

func TestRun_DanglingState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dangling.yaml")
	doc := "initial: a\nstates: [{name: a}]\ntransitions: [{on: go, from: a, to: ghost}]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	setenv(t, map[string]string{
		"CURRI_DEFINITION": path,
		"CURRI_EVENTS":     "go",
	})

	out := &bytes.Buffer{}
	err := run(context.Background(), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, curri.ErrDanglingState)
	assert.NotContains(t, out.String(), "state=")
}

func TestRun_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "missing definition", vars: map[string]string{"CURRI_DEFINITION": ""}},
		{name: "unreadable definition", vars: map[string]string{"CURRI_DEFINITION": "does-not-exist.yaml"}},
		{name: "bad log format", vars: map[string]string{"CURRI_DEFINITION": walkthroughDefinition, "LOG_FORMAT": "xml"}},
		{name: "zero tick interval", vars: map[string]string{
			"CURRI_DEFINITION":    walkthroughDefinition,
			"CURRI_TICK_EVENT":    "halt",
			"CURRI_TICK_INTERVAL": "0s",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setenv(t, tt.vars)
			assert.Error(t, run(context.Background(), &bytes.Buffer{}))
		})
	}
}
