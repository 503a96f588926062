package definition_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	curri "github.com/kirigirihitomi/curri-fsm"
	"github.com/kirigirihitomi/curri-fsm/definition"
	"github.com/kirigirihitomi/curri-fsm/fn"
)

const walkthroughYAML = `
initial: idle
context: 0
states:
  - name: idle
    exit: add3
  - name: running
    enter: double
  - name: paused
transitions:
  - on: start
    from: idle
    to: running
  - on: pause
    from: running
    to: paused
  - on: resume
    from: paused
    to: running
`

func arithmetic() definition.Funcs[int] {
	return definition.Funcs[int]{
		"add3":   func(x int) int { return x + 3 },
		"double": func(x int) int { return x * 2 },
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	d, err := definition.Parse([]byte(walkthroughYAML))
	require.NoError(t, err)

	want := &definition.Definition{
		Initial: "idle",
		States: []definition.StateDef{
			{Name: "idle", Exit: "add3"},
			{Name: "running", Enter: "double"},
			{Name: "paused"},
		},
		Transitions: []definition.TransitionDef{
			{On: "start", From: "idle", To: "running"},
			{On: "pause", From: "running", To: "paused"},
			{On: "resume", From: "paused", To: "running"},
		},
	}
	if diff := cmp.Diff(want, d, cmpopts.IgnoreFields(definition.Definition{}, "Context")); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing initial", doc: "states: [{name: a}]"},
		{name: "unnamed state", doc: "initial: a\nstates: [{enter: x}]"},
		{name: "transition without event", doc: "initial: a\ntransitions: [{from: a, to: b}]"},
		{name: "transition without target", doc: "initial: a\ntransitions: [{on: go, from: a}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definition.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, definition.ErrInvalidDefinition)
		})
	}

	_, err := definition.Parse([]byte("initial: [unterminated"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, definition.ErrInvalidDefinition))
}

func TestParse_DanglingReferencesAllowed(t *testing.T) {
	t.Parallel()
	d, err := definition.Parse([]byte("initial: a\ntransitions: [{on: go, from: a, to: ghost}]"))
	require.NoError(t, err)

	m, err := definition.Machine[int](d, nil)
	require.NoError(t, err)
	_, err = curri.Fire(m, "go")
	assert.True(t, curri.IsDanglingStateError(err))
}

func TestMachine_Walkthrough(t *testing.T) {
	t.Parallel()
	d, err := definition.Parse([]byte(walkthroughYAML))
	require.NoError(t, err)

	m, err := definition.Machine[int](d, arithmetic())
	require.NoError(t, err)
	assert.Equal(t, "idle", m.Current())
	assert.Equal(t, []string{"idle", "paused", "running"}, m.States())

	m = curri.Apply(m,
		curri.Trigger[int]("start"),
		curri.Trigger[int]("pause"),
		curri.Trigger[int]("resume"),
	)
	assert.Equal(t, "running", m.Current())
	assert.Equal(t, 12, m.Context())
}

func TestMachine_StructContext(t *testing.T) {
	t.Parallel()
	type counter struct {
		Count int    `yaml:"count"`
		Label string `yaml:"label"`
	}
	doc := `
initial: off
context:
  count: 5
  label: lamp
states:
  - name: "off"
  - name: "on"
    enter: bump
transitions:
  - on: toggle
    from: "off"
    to: "on"
  - on: toggle
    from: "on"
    to: "off"
`
	d, err := definition.Parse([]byte(doc))
	require.NoError(t, err)

	r := definition.Funcs[counter]{"bump": func(c counter) counter { c.Count++; return c }}
	m, err := definition.Machine[counter](d, r)
	require.NoError(t, err)
	assert.Equal(t, counter{Count: 5, Label: "lamp"}, m.Context())

	toggle := curri.Trigger[counter]("toggle")
	m = curri.Apply(m, toggle, toggle, toggle)
	assert.Equal(t, "on", m.Current())
	assert.Equal(t, 7, m.Context().Count)
}

func TestMachine_BadContext(t *testing.T) {
	t.Parallel()
	d, err := definition.Parse([]byte("initial: a\ncontext: not-a-number\nstates: [{name: a}]"))
	require.NoError(t, err)
	_, err = definition.Machine[int](d, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode context")
}

func TestCompile_UnknownFunc(t *testing.T) {
	t.Parallel()
	d, err := definition.Parse([]byte("initial: a\nstates: [{name: a, enter: nope}]"))
	require.NoError(t, err)

	_, err = definition.Compile[int](d, arithmetic())
	require.ErrorIs(t, err, definition.ErrUnknownFunc)
	assert.Contains(t, err.Error(), `state "a" enter`)

	_, err = definition.Compile[int](d, nil)
	require.ErrorIs(t, err, definition.ErrUnknownFunc)
}

func TestChain(t *testing.T) {
	t.Parallel()
	prefix := definition.ResolverFunc[int](func(name string) (fn.Func[int], error) {
		if name == "zero" {
			return func(int) int { return 0 }, nil
		}
		return nil, definition.ErrUnknownFunc
	})
	r := definition.Chain[int](prefix, arithmetic())

	g, err := r.Resolve("zero")
	require.NoError(t, err)
	assert.Equal(t, 0, g(9))

	g, err = r.Resolve("double")
	require.NoError(t, err)
	assert.Equal(t, 18, g(9))

	_, err = r.Resolve("missing")
	assert.ErrorIs(t, err, definition.ErrUnknownFunc)

	failing := definition.ResolverFunc[int](func(string) (fn.Func[int], error) {
		return nil, errors.New("backend down")
	})
	_, err = definition.Chain[int](failing, arithmetic()).Resolve("double")
	assert.EqualError(t, err, "backend down")
}

func TestLoadAndMarshal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(walkthroughYAML), 0o644))

	d, err := definition.Load(path)
	require.NoError(t, err)

	data, err := d.Marshal()
	require.NoError(t, err)

	again, err := definition.Parse(data)
	require.NoError(t, err)
	if diff := cmp.Diff(d, again, cmpopts.IgnoreFields(definition.Definition{}, "Context")); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	var ctx int
	require.NoError(t, again.DecodeContext(&ctx))
	assert.Equal(t, 0, ctx)

	_, err = definition.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
