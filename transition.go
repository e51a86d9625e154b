package statemachine

// OnEnterFunc is called after a defined transition has been committed.
// current is the state just entered, previous the state it was left from.
type OnEnterFunc[C any] func(event Event, current, previous State, data any, ctx C)

// OnUndefinedFunc is called when no transition is defined for the current
// state under event. The state is unchanged.
type OnUndefinedFunc[C any] func(event Event, current State, data any, ctx C)

// Transition is the resolved outcome of a (state, event) pair. When Defined is
// set, Next and OnEnter apply; otherwise only OnUndefined does.
type Transition[C any] struct {
	Defined bool

	Next    State
	OnEnter OnEnterFunc[C]

	OnUndefined OnUndefinedFunc[C]
}

// Defined returns a transition into next. onEnter may be nil.
func Defined[C any](next State, onEnter OnEnterFunc[C]) Transition[C] {
	return Transition[C]{Defined: true, Next: next, OnEnter: onEnter}
}

// Undefined returns a transition that keeps the current state. onUndefined
// may be nil.
func Undefined[C any](onUndefined OnUndefinedFunc[C]) Transition[C] {
	return Transition[C]{OnUndefined: onUndefined}
}
