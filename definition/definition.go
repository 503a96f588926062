// Package definition loads machine definitions from YAML documents.
//
// A definition lists states with named enter/exit functions and transition
// edges. Names are resolved through a Resolver when the definition is
// compiled into a curri.Transform, so the same document can drive machines
// over any context type:
//
//	initial: idle
//	context: 0
//	states:
//	  - name: idle
//	    exit: "+3"
//	  - name: running
//	    enter: "*2"
//	transitions:
//	  - on: start
//	    from: idle
//	    to: running
//
// Only structure is checked on load. Edges may reference states the document
// never declares; such references fail when they are fired.
package definition

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	curri "github.com/kirigirihitomi/curri-fsm"
)

// StateDef declares one state. Empty Enter or Exit means identity.
type StateDef struct {
	Name  string `json:"name" yaml:"name"`
	Enter string `json:"enter,omitempty" yaml:"enter,omitempty"`
	Exit  string `json:"exit,omitempty" yaml:"exit,omitempty"`
}

// TransitionDef declares one edge under an event label.
type TransitionDef struct {
	On   string `json:"on" yaml:"on"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Definition is a complete machine description.
type Definition struct {
	Initial     string          `json:"initial" yaml:"initial"`
	Context     yaml.Node       `json:"-" yaml:"context,omitempty"`
	States      []StateDef      `json:"states" yaml:"states"`
	Transitions []TransitionDef `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Parse decodes and validates a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads and parses the definition stored at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Marshal encodes the definition as YAML.
func (d *Definition) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// Validate checks the definition's structure:
// - non-empty initial state
// - every state has a name
// - every transition has an event label, a source and a target
func (d *Definition) Validate() error {
	var errs []error
	if d.Initial == "" {
		errs = append(errs, errors.New("initial state is required"))
	}
	for i, s := range d.States {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("state %d: name is required", i))
		}
	}
	for i, t := range d.Transitions {
		if t.On == "" || t.From == "" || t.To == "" {
			errs = append(errs, fmt.Errorf("transition %d: on, from and to are required (got %q, %q, %q)", i, t.On, t.From, t.To))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidDefinition}, errs...)...)
	}
	return nil
}

// DecodeContext decodes the context node into v. A missing context leaves v
// untouched.
func (d *Definition) DecodeContext(v any) error {
	if d.Context.Kind == 0 {
		return nil
	}
	if err := d.Context.Decode(v); err != nil {
		return fmt.Errorf("decode context: %w", err)
	}
	return nil
}

// Compile resolves every named function and returns a transform registering
// the states in document order followed by the transitions in document order.
func Compile[C any](d *Definition, r Resolver[C]) (curri.Transform[C], error) {
	steps := make([]curri.Transform[C], 0, len(d.States)+len(d.Transitions))
	for _, s := range d.States {
		enter, err := resolve(r, s.Enter)
		if err != nil {
			return nil, fmt.Errorf("state %q enter: %w", s.Name, err)
		}
		exit, err := resolve(r, s.Exit)
		if err != nil {
			return nil, fmt.Errorf("state %q exit: %w", s.Name, err)
		}
		steps = append(steps, curri.State(s.Name, enter, exit))
	}
	for _, t := range d.Transitions {
		steps = append(steps, curri.Transitions[C](t.On, t.From, t.To))
	}
	return curri.Compose(steps...), nil
}

// Machine decodes the context, constructs a machine in the initial state and
// applies the compiled definition to it.
func Machine[C any](d *Definition, r Resolver[C]) (curri.Machine[C], error) {
	var ctx C
	if err := d.DecodeContext(&ctx); err != nil {
		return curri.Machine[C]{}, err
	}
	setup, err := Compile(d, r)
	if err != nil {
		return curri.Machine[C]{}, err
	}
	return setup(curri.New(ctx, d.Initial)), nil
}
