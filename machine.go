package statemachine

import "fmt"

// Machine is a finite state machine instance. The zero value is not usable;
// create one with NewTable or NewFunc.
//
// Safe for concurrent State and Dispatch calls when a Locker is supplied.
// Without one, the caller must serialize access.
type Machine[C any] struct {
	maxState State
	maxEvent Event
	current  State
	lock     Locker
	res      resolver[C]
	ctx      C
}

// NewTable creates a Machine that resolves transitions from cells, indexed
// row-major as cells[state*maxEvent+event]. cells must hold at least
// maxState*maxEvent fully populated entries; it is borrowed, not copied.
//
// NewTable panics on invalid bounds, an initial state out of range, a
// partially defined LockFuncs, a short table or a defined cell whose next
// state is out of range.
func NewTable[C any](maxState State, maxEvent Event, initial State, lock Locker, cells []Transition[C], ctx C) *Machine[C] {
	lock = validate(maxState, maxEvent, initial, lock)
	if need := int(maxState) * int(maxEvent); len(cells) < need {
		panic(fmt.Sprintf("statemachine: transition table has %d cells, need %d", len(cells), need))
	}
	for i := range cells[:int(maxState)*int(maxEvent)] {
		if cells[i].Defined && cells[i].Next >= maxState {
			panic(fmt.Sprintf("statemachine: cell [%d][%d] targets state %d, max is %d",
				i/int(maxEvent), i%int(maxEvent), cells[i].Next, maxState))
		}
	}
	return &Machine[C]{
		maxState: maxState,
		maxEvent: maxEvent,
		current:  initial,
		lock:     lock,
		res:      &tableResolver[C]{cells: cells, maxEvent: maxEvent},
		ctx:      ctx,
	}
}

// NewFunc creates a Machine that resolves transitions by calling resolve.
// cleanup may be nil when resolve acquires nothing.
//
// NewFunc panics on invalid bounds, an initial state out of range, a
// partially defined LockFuncs or a nil resolve.
func NewFunc[C any](maxState State, maxEvent Event, initial State, lock Locker, resolve ResolveFunc[C], cleanup CleanupFunc[C], ctx C) *Machine[C] {
	lock = validate(maxState, maxEvent, initial, lock)
	if resolve == nil {
		panic("statemachine: nil transition function")
	}
	return &Machine[C]{
		maxState: maxState,
		maxEvent: maxEvent,
		current:  initial,
		lock:     lock,
		res:      &funcResolver[C]{fn: resolve, cleanup: cleanup},
		ctx:      ctx,
	}
}

func validate(maxState State, maxEvent Event, initial State, lock Locker) Locker {
	if maxState == 0 {
		panic("statemachine: max state must be greater than zero")
	}
	if maxEvent == 0 {
		panic("statemachine: max event must be greater than zero")
	}
	if initial >= maxState {
		panic(fmt.Sprintf("statemachine: initial state %d out of range [0, %d)", initial, maxState))
	}
	return normalizeLock(lock)
}

// Bounds returns the exclusive upper bounds of states and events. They never
// change, so no lock is taken.
func (m *Machine[C]) Bounds() (State, Event) {
	return m.maxState, m.maxEvent
}

// Context returns the opaque context passed to the constructor.
func (m *Machine[C]) Context() C {
	return m.ctx
}

// State returns the current state, read inside the critical section.
// With NonBlock it returns ErrWouldBlock instead of waiting for the lock.
func (m *Machine[C]) State(flags Flags) (State, error) {
	if err := m.acquire(flags); err != nil {
		return 0, err
	}
	defer m.release()
	return m.current, nil
}

// outcome is what the critical section hands to the callback phase.
type outcome[C any] struct {
	t        *Transition[C]
	current  State
	previous State
	ctx      C
}

// Dispatch sends event to the machine.
//
// The transition is resolved and committed while the lock is held; the
// on-enter or on-undefined callback and, for NewFunc machines, the cleanup run
// after it is released. Dispatch returns ErrWouldBlock if NonBlock is set and
// the lock is busy, the resolver error unchanged if resolution failed, or the
// cleanup result when a cleanup function is configured. A cleanup error is
// reported even though the state already changed and the callback already ran.
//
// Dispatch panics if event is out of range.
func (m *Machine[C]) Dispatch(event Event, data any, flags Flags) error {
	if event >= m.maxEvent {
		panic(fmt.Sprintf("statemachine: event %d out of range [0, %d)", event, m.maxEvent))
	}

	o, err := m.step(event, flags)
	if err != nil {
		return err
	}

	// The lock is released here. o is the only authoritative view of this
	// transition; m.current may already belong to another dispatcher.
	if o.t.Defined {
		if o.t.OnEnter != nil {
			o.t.OnEnter(event, o.current, o.previous, data, o.ctx)
		}
	} else if o.t.OnUndefined != nil {
		o.t.OnUndefined(event, o.current, data, o.ctx)
	}

	return normalize(m.res.finish(o.ctx, o.t))
}

// step is the critical section: one acquire, exactly one release on every
// return path, resolver errors surfaced only after the release.
func (m *Machine[C]) step(event Event, flags Flags) (o outcome[C], err error) {
	if err = m.acquire(flags); err != nil {
		return o, err
	}
	defer m.release()

	maxState := m.maxState
	o.ctx = m.ctx
	o.current = m.current
	o.previous = maxState // invalid until a transition happens

	o.t, err = m.res.resolve(o.current, event, o.ctx)
	if err = normalize(err); err != nil {
		return o, err
	}
	if o.t == nil {
		panic(fmt.Sprintf("statemachine: resolver returned no transition for state %d, event %d", o.current, event))
	}
	if o.t.Defined {
		if o.t.Next >= maxState {
			panic(fmt.Sprintf("statemachine: transition from state %d under event %d targets state %d, max is %d",
				o.current, event, o.t.Next, maxState))
		}
		o.previous = o.current
		o.current = o.t.Next
		m.current = o.current
	}
	return o, nil
}
