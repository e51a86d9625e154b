// Package builder constructs transition tables for statemachine.NewTable,
// either fluently in code or from a YAML Definition.
package builder

import (
	"errors"
	"fmt"

	sm "github.com/comalice/statemachine"
)

// ErrDuplicate is returned by Build when a (state, event) cell is set twice.
var ErrDuplicate = errors.New("transition already defined")

// ErrOutOfRange is returned by Build when a state or event exceeds the bounds.
var ErrOutOfRange = errors.New("state or event out of range")

// Builder fills a row-major transition table cell by cell. Cells that are
// never set become undefined transitions using the Otherwise callback.
type Builder[C any] struct {
	maxState  sm.State
	maxEvent  sm.Event
	cells     []sm.Transition[C]
	set       []bool
	otherwise sm.OnUndefinedFunc[C]
	err       error
}

// New returns a Builder for a maxState x maxEvent table.
func New[C any](maxState sm.State, maxEvent sm.Event) *Builder[C] {
	n := int(maxState) * int(maxEvent)
	return &Builder[C]{
		maxState: maxState,
		maxEvent: maxEvent,
		cells:    make([]sm.Transition[C], n),
		set:      make([]bool, n),
	}
}

// Otherwise sets the callback used by every cell left unset at Build time.
func (b *Builder[C]) Otherwise(onUndefined sm.OnUndefinedFunc[C]) *Builder[C] {
	b.otherwise = onUndefined
	return b
}

// On defines from --event--> to, calling onEnter after the move.
func (b *Builder[C]) On(from sm.State, event sm.Event, to sm.State, onEnter sm.OnEnterFunc[C]) *Builder[C] {
	if to >= b.maxState {
		b.fail(fmt.Errorf("%w: target state %d of [%d][%d] (max %d)", ErrOutOfRange, to, from, event, b.maxState))
		return b
	}
	b.put(from, event, sm.Defined(to, onEnter))
	return b
}

// Undefined marks from/event explicitly undefined with its own callback.
func (b *Builder[C]) Undefined(from sm.State, event sm.Event, onUndefined sm.OnUndefinedFunc[C]) *Builder[C] {
	b.put(from, event, sm.Undefined(onUndefined))
	return b
}

func (b *Builder[C]) put(from sm.State, event sm.Event, t sm.Transition[C]) {
	if from >= b.maxState || event >= b.maxEvent {
		b.fail(fmt.Errorf("%w: cell [%d][%d] (bounds %d x %d)", ErrOutOfRange, from, event, b.maxState, b.maxEvent))
		return
	}
	i := int(from)*int(b.maxEvent) + int(event)
	if b.set[i] {
		b.fail(fmt.Errorf("%w: cell [%d][%d]", ErrDuplicate, from, event))
		return
	}
	b.cells[i] = t
	b.set[i] = true
}

// fail keeps the first error; later calls are still recorded as no-ops.
func (b *Builder[C]) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build returns the completed table or the first error recorded.
func (b *Builder[C]) Build() ([]sm.Transition[C], error) {
	if b.maxState == 0 || b.maxEvent == 0 {
		return nil, fmt.Errorf("%w: empty bounds %d x %d", ErrOutOfRange, b.maxState, b.maxEvent)
	}
	if b.err != nil {
		return nil, b.err
	}
	for i := range b.cells {
		if !b.set[i] {
			b.cells[i] = sm.Undefined(b.otherwise)
		}
	}
	return b.cells, nil
}

// Machine builds the table and constructs a Machine over it.
func (b *Builder[C]) Machine(initial sm.State, lock sm.Locker, ctx C) (*sm.Machine[C], error) {
	cells, err := b.Build()
	if err != nil {
		return nil, err
	}
	if initial >= b.maxState {
		return nil, fmt.Errorf("%w: initial state %d (max %d)", ErrOutOfRange, initial, b.maxState)
	}
	return sm.NewTable(b.maxState, b.maxEvent, initial, lock, cells, ctx), nil
}
