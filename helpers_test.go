package statemachine_test

import (
	"sync"

	sm "github.com/comalice/statemachine"
)

const (
	S0 sm.State = iota
	S1
	S2
	maxState
)

const (
	INC sm.Event = iota
	DEC
	maxEvent
)

type call struct {
	kind     string
	event    sm.Event
	current  sm.State
	previous sm.State
	data     any
}

// recorder is the opaque context of the test machines.
type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) add(c call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func onEnter(event sm.Event, current, previous sm.State, data any, r *recorder) {
	r.add(call{kind: "enter", event: event, current: current, previous: previous, data: data})
}

func onUndefined(event sm.Event, current sm.State, data any, r *recorder) {
	r.add(call{kind: "undefined", event: event, current: current, data: data})
}

func enter(event sm.Event, current, previous sm.State) call {
	return call{kind: "enter", event: event, current: current, previous: previous}
}

func undefined(event sm.Event, current sm.State) call {
	return call{kind: "undefined", event: event, current: current}
}

type transition = sm.Transition[*recorder]

var (
	def   = sm.Defined[*recorder]
	undef = sm.Undefined[*recorder]
)

// incDecTable is the three state counter: INC moves up, DEC moves down,
// nothing moves past S0 or S2.
func incDecTable() []transition {
	return []transition{
		// S0
		def(S1, onEnter), undef(onUndefined),
		// S1
		def(S2, onEnter), def(S0, onEnter),
		// S2
		undef(onUndefined), def(S1, onEnter),
	}
}

// incDecResolve computes the same transitions as incDecTable on the fly.
func incDecResolve(current sm.State, event sm.Event, _ *recorder) (*transition, error) {
	t := new(transition)
	switch {
	case event == INC && current < S2:
		*t = def(current+1, onEnter)
	case event == DEC && current > S0:
		*t = def(current-1, onEnter)
	default:
		*t = undef(onUndefined)
	}
	return t, nil
}

type strategy struct {
	name string
	new  func(lock sm.Locker, r *recorder) *sm.Machine[*recorder]
}

func strategies() []strategy {
	return []strategy{
		{"table", func(lock sm.Locker, r *recorder) *sm.Machine[*recorder] {
			return sm.NewTable(maxState, maxEvent, S0, lock, incDecTable(), r)
		}},
		{"function", func(lock sm.Locker, r *recorder) *sm.Machine[*recorder] {
			return sm.NewFunc(maxState, maxEvent, S0, lock, incDecResolve, nil, r)
		}},
	}
}
