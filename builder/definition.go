package builder

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	sm "github.com/comalice/statemachine"
)

// Definition is a serializable description of a table machine. States and
// events are numbered by their position in the lists.
//
//	id: counter
//	states: [STATE_0, STATE_1]
//	events: [EVENT_INC]
//	initial: STATE_0
//	undefined: log_undefined
//	transitions:
//	  - {from: STATE_0, event: EVENT_INC, to: STATE_1, enter: log_enter}
//	  - {from: STATE_1, event: EVENT_INC, undefined: stuck}
type Definition struct {
	ID          string          `json:"id,omitempty" yaml:"id,omitempty"`
	States      []string        `json:"states" yaml:"states"`
	Events      []string        `json:"events" yaml:"events"`
	Initial     string          `json:"initial" yaml:"initial"`
	Undefined   string          `json:"undefined,omitempty" yaml:"undefined,omitempty"`
	Transitions []TransitionDef `json:"transitions" yaml:"transitions"`
}

// TransitionDef is one cell. An empty To makes the cell undefined.
type TransitionDef struct {
	From      string `json:"from" yaml:"from"`
	Event     string `json:"event" yaml:"event"`
	To        string `json:"to,omitempty" yaml:"to,omitempty"`
	Enter     string `json:"enter,omitempty" yaml:"enter,omitempty"`
	Undefined string `json:"undefined,omitempty" yaml:"undefined,omitempty"`
}

// Callbacks binds the callback names used in a Definition to functions.
type Callbacks[C any] struct {
	Enter     map[string]sm.OnEnterFunc[C]
	Undefined map[string]sm.OnUndefinedFunc[C]
}

// Parse decodes and validates a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("definition %q: %w", def.ID, err)
	}
	return &def, nil
}

// LoadFile reads and parses the YAML definition at path.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Marshal encodes d as YAML.
func (d *Definition) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// Validate checks names and references. Callback names are checked by Compile.
func (d *Definition) Validate() error {
	if len(d.States) == 0 {
		return errors.New("at least one state is required")
	}
	if len(d.Events) == 0 {
		return errors.New("at least one event is required")
	}
	if err := unique("state", d.States); err != nil {
		return err
	}
	if err := unique("event", d.Events); err != nil {
		return err
	}
	if d.Initial == "" {
		return errors.New("initial state is required")
	}
	if _, err := d.State(d.Initial); err != nil {
		return fmt.Errorf("initial: %w", err)
	}

	seen := make(map[[2]string]int, len(d.Transitions))
	for i, t := range d.Transitions {
		if _, err := d.State(t.From); err != nil {
			return fmt.Errorf("transition %d: %w", i, err)
		}
		if _, err := d.Event(t.Event); err != nil {
			return fmt.Errorf("transition %d: %w", i, err)
		}
		if t.To != "" {
			if _, err := d.State(t.To); err != nil {
				return fmt.Errorf("transition %d: %w", i, err)
			}
			if t.Undefined != "" {
				return fmt.Errorf("transition %d: %q sets both to and undefined", i, t.From+"/"+t.Event)
			}
		} else if t.Enter != "" {
			return fmt.Errorf("transition %d: enter %q without a target state", i, t.Enter)
		}
		key := [2]string{t.From, t.Event}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("transition %d: %w: %s/%s (first at %d)", i, ErrDuplicate, t.From, t.Event, prev)
		}
		seen[key] = i
	}
	return nil
}

func unique(kind string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return fmt.Errorf("empty %s name", kind)
		}
		if seen[n] {
			return fmt.Errorf("duplicate %s %q", kind, n)
		}
		seen[n] = true
	}
	return nil
}

// State returns the index of the named state.
func (d *Definition) State(name string) (sm.State, error) {
	i := slices.Index(d.States, name)
	if i < 0 {
		return 0, fmt.Errorf("unknown state %q", name)
	}
	return sm.State(i), nil
}

// Event returns the index of the named event.
func (d *Definition) Event(name string) (sm.Event, error) {
	i := slices.Index(d.Events, name)
	if i < 0 {
		return 0, fmt.Errorf("unknown event %q", name)
	}
	return sm.Event(i), nil
}

// Bounds returns maxState and maxEvent.
func (d *Definition) Bounds() (sm.State, sm.Event) {
	return sm.State(len(d.States)), sm.Event(len(d.Events))
}

// Names returns the index-to-name mapping of d.
func (d *Definition) Names() Names {
	return Names{States: d.States, Events: d.Events}
}

// Compile turns d into a transition table, resolving callback names in cb.
// An empty callback name means no callback.
func Compile[C any](d *Definition, cb Callbacks[C]) ([]sm.Transition[C], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	maxState, maxEvent := d.Bounds()
	b := New[C](maxState, maxEvent)

	otherwise, err := lookupCallback(cb.Undefined, d.Undefined, "undefined")
	if err != nil {
		return nil, err
	}
	b.Otherwise(otherwise)

	for i, t := range d.Transitions {
		from, _ := d.State(t.From)
		event, _ := d.Event(t.Event)
		if t.To == "" {
			name := t.Undefined
			if name == "" {
				name = d.Undefined
			}
			fn, err := lookupCallback(cb.Undefined, name, "undefined")
			if err != nil {
				return nil, fmt.Errorf("transition %d: %w", i, err)
			}
			b.Undefined(from, event, fn)
			continue
		}
		to, _ := d.State(t.To)
		fn, err := lookupCallback(cb.Enter, t.Enter, "enter")
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		b.On(from, event, to, fn)
	}
	return b.Build()
}

// NewMachine compiles d and constructs a Machine in d's initial state.
func NewMachine[C any](d *Definition, cb Callbacks[C], lock sm.Locker, ctx C) (*sm.Machine[C], error) {
	cells, err := Compile(d, cb)
	if err != nil {
		return nil, err
	}
	initial, _ := d.State(d.Initial)
	maxState, maxEvent := d.Bounds()
	return sm.NewTable(maxState, maxEvent, initial, lock, cells, ctx), nil
}

func lookupCallback[F any](fns map[string]F, name, kind string) (F, error) {
	var zero F
	if name == "" {
		return zero, nil
	}
	fn, ok := fns[name]
	if !ok {
		return zero, fmt.Errorf("unknown %s callback %q", kind, name)
	}
	return fn, nil
}
