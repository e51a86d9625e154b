// Package statemachine provides an allocation-free finite state machine engine
// for event-driven and real-time programs.
//
// A Machine is bound at construction to one of two transition resolvers:
//   - a caller-owned table of Transition cells indexed [state][event], row-major
//   - a resolver function plus an optional cleanup function
//
// Dispatch runs the read-resolve-mutate sequence inside a critical section
// guarded by an optional caller-supplied Locker, then invokes the on-enter or
// on-undefined callback outside of it. Callbacks therefore receive a snapshot
// of the transition; the live state may already have moved on.
//
// # Example Usage
//
//	cells := []statemachine.Transition[*App]{
//		statemachine.Defined[*App](Running, onEnter),  // Idle, Start
//		statemachine.Undefined[*App](onUndefined),     // Idle, Stop
//		statemachine.Undefined[*App](onUndefined),     // Running, Start
//		statemachine.Defined[*App](Idle, onEnter),     // Running, Stop
//	}
//	m := statemachine.NewTable(MaxState, MaxEvent, Idle, &locks.Mutex{}, cells, app)
//	if err := m.Dispatch(Start, nil, statemachine.NonBlock); errors.Is(err, statemachine.ErrWouldBlock) {
//		// retry later
//	}
//
// The engine never allocates on the dispatch path, never copies the table,
// and never owns the context, the lock or the table. They must outlive the
// Machine.
package statemachine
