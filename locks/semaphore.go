package locks

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Semaphore is a Locker backed by a weighted semaphore of size one. Unlike
// Mutex it can share a *semaphore.Weighted with code that acquires it with a
// context elsewhere in the host.
type Semaphore struct {
	sem *semaphore.Weighted
}

// NewSemaphore returns an unlocked Semaphore.
func NewSemaphore() *Semaphore {
	return &Semaphore{sem: semaphore.NewWeighted(1)}
}

// WrapSemaphore uses sem as the lock. sem must have been created with a size
// of one for the lock to be exclusive.
func WrapSemaphore(sem *semaphore.Weighted) *Semaphore {
	return &Semaphore{sem: sem}
}

// TryAcquire takes the single slot if it is free.
func (s *Semaphore) TryAcquire() bool { return s.sem.TryAcquire(1) }

// Acquire waits without a deadline; the engine has no cancellation concept.
func (s *Semaphore) Acquire() {
	// Acquire only fails when the context is done.
	_ = s.sem.Acquire(context.Background(), 1)
}

// Release returns the slot.
func (s *Semaphore) Release() { s.sem.Release(1) }
