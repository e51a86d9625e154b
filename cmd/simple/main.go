// Command simple drives a three state INC/DEC machine: every event is sent
// as many times as there are states, printing the state around each dispatch.
package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	sm "github.com/comalice/statemachine"
	"github.com/comalice/statemachine/builder"
	"github.com/comalice/statemachine/internal/production"
	"github.com/comalice/statemachine/locks"
	"github.com/comalice/statemachine/trace"
)

//go:embed simple.yaml
var defaultTable []byte

// app is the opaque context of the machine.
type app struct {
	out   io.Writer
	names builder.Names
}

func onEnter(cause sm.Event, current, previous sm.State, _ any, a *app) {
	fmt.Fprintf(a.out, "on_enter(cause=%s, current_state=%s, previous_state=%s);\n",
		a.names.EventName(cause), a.names.StateName(current), a.names.StateName(previous))
}

func onUndefined(cause sm.Event, current sm.State, _ any, a *app) {
	fmt.Fprintf(a.out, "on_undefined(cause=%s, current_state=%s);\n",
		a.names.EventName(cause), a.names.StateName(current))
}

var callbacks = builder.Callbacks[*app]{
	Enter:     map[string]sm.OnEnterFunc[*app]{"on_enter": onEnter},
	Undefined: map[string]sm.OnUndefinedFunc[*app]{"on_undefined": onUndefined},
}

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, os.Stdout, log); err != nil {
		log.Error("state machine failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadDefinition(path string) (*builder.Definition, error) {
	if path == "" {
		return builder.Parse(defaultTable)
	}
	return builder.LoadFile(path)
}

func newLock(kind string) sm.Locker {
	switch kind {
	case "mutex":
		return &locks.Mutex{}
	case "semaphore":
		return locks.NewSemaphore()
	case "chan":
		return locks.NewChan()
	default:
		return nil
	}
}

func run(cfg Config, out io.Writer, log *zap.Logger) error {
	def, err := loadDefinition(cfg.Table)
	if err != nil {
		return fmt.Errorf("load table: %w", err)
	}
	cells, err := builder.Compile(def, callbacks)
	if err != nil {
		return fmt.Errorf("compile table: %w", err)
	}
	names := def.Names()
	cells = trace.New[*app](log, names).Table(cells)

	lock := locks.NewCounting(newLock(cfg.Lock))
	var flags sm.Flags
	if cfg.NonBlock {
		flags |= sm.NonBlock
	}

	initial, _ := def.State(def.Initial)
	maxState, maxEvent := def.Bounds()
	m := sm.NewTable(maxState, maxEvent, initial, lock, cells, &app{out: out, names: names})

	for event := sm.Event(0); event < maxEvent; event++ {
		for i := sm.State(0); i < maxState; i++ {
			state, err := m.State(flags)
			if err != nil {
				return fmt.Errorf("query state: %w", err)
			}
			fmt.Fprintf(out, "State machine is in %s and we send it %s\n",
				names.StateName(state), names.EventName(event))

			if err := m.Dispatch(event, nil, flags); err != nil {
				return fmt.Errorf("dispatch %s: %w", names.EventName(event), err)
			}

			if state, err = m.State(flags); err != nil {
				return fmt.Errorf("query state: %w", err)
			}
			fmt.Fprintf(out, "Now state machine is in %s\n\n", names.StateName(state))
		}
	}

	if cfg.DOT {
		state, err := m.State(flags)
		if err != nil {
			return fmt.Errorf("query state: %w", err)
		}
		if _, err := io.WriteString(out, production.ExportDOT(def, state)); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
	}
	if cfg.Stats {
		st := lock.Stats()
		log.Info("lock usage",
			zap.String("lock", cfg.Lock),
			zap.Uint64("acquires", st.Acquires),
			zap.Uint64("tries", st.Tries),
			zap.Uint64("failed", st.Failed),
			zap.Uint64("releases", st.Releases),
		)
	}
	return nil
}
