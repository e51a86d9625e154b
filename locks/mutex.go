package locks

import "sync"

// Mutex is a Locker backed by sync.Mutex. The zero value is unlocked.
type Mutex struct {
	mu sync.Mutex
}

// TryAcquire locks m if it is free and reports whether it did.
func (m *Mutex) TryAcquire() bool { return m.mu.TryLock() }

// Acquire locks m, waiting until it is free.
func (m *Mutex) Acquire() { m.mu.Lock() }

// Release unlocks m.
func (m *Mutex) Release() { m.mu.Unlock() }
