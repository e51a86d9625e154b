package statemachine

import (
	"fmt"
	"reflect"
)

// Locker is the locking capability a Machine orchestrates. The engine never
// implements locking itself; see package locks for ready-made adapters.
//
// A nil Locker disables locking: every acquire succeeds and release is a no-op.
// A typed nil pointer is not a nil Locker and makes the constructors panic.
type Locker interface {
	// TryAcquire takes the lock without suspending and reports success.
	TryAcquire() bool
	// Acquire takes the lock, suspending the caller until it is available.
	Acquire()
	// Release gives back a lock taken by TryAcquire or Acquire.
	Release()
}

// LockFuncs adapts three plain functions to Locker. Either all three are set
// or none is; a partially filled LockFuncs makes the constructors panic.
// An empty LockFuncs is the same as passing a nil Locker.
type LockFuncs struct {
	Try  func() bool
	Take func()
	Give func()
}

// TryAcquire calls Try.
func (l LockFuncs) TryAcquire() bool { return l.Try() }

// Acquire calls Take.
func (l LockFuncs) Acquire() { l.Take() }

// Release calls Give.
func (l LockFuncs) Release() { l.Give() }

func (l LockFuncs) empty() bool {
	return l.Try == nil && l.Take == nil && l.Give == nil
}

func (l LockFuncs) complete() bool {
	return l.Try != nil && l.Take != nil && l.Give != nil
}

// normalizeLock enforces the all-or-nothing rule and folds the empty forms
// into nil so the dispatch path only has to test one thing.
func normalizeLock(l Locker) Locker {
	var funcs LockFuncs
	switch v := l.(type) {
	case nil:
		return nil
	case LockFuncs:
		funcs = v
	case *LockFuncs:
		if v == nil {
			return nil
		}
		funcs = *v
	default:
		if v := reflect.ValueOf(l); v.Kind() == reflect.Pointer && v.IsNil() {
			panic(fmt.Sprintf("statemachine: nil %T Locker; pass a nil interface to disable locking", l))
		}
		return l
	}
	if funcs.empty() {
		return nil
	}
	if !funcs.complete() {
		panic("statemachine: LockFuncs must define Try, Take and Give, or none of them")
	}
	return l
}

// acquire enters the critical section according to flags.
func (m *Machine[C]) acquire(flags Flags) error {
	if m.lock == nil {
		return nil
	}
	if flags&NonBlock != 0 {
		if !m.lock.TryAcquire() {
			return ErrWouldBlock
		}
		return nil
	}
	m.lock.Acquire()
	return nil
}

func (m *Machine[C]) release() {
	if m.lock != nil {
		m.lock.Release()
	}
}
