package locks

import (
	"sync/atomic"

	"github.com/comalice/statemachine"
)

// Counting decorates a Locker and counts how it is used. A nil inner Locker
// counts calls without locking, which makes the no-lock path observable too.
type Counting struct {
	inner statemachine.Locker

	acquires atomic.Uint64
	tries    atomic.Uint64
	failed   atomic.Uint64
	releases atomic.Uint64
}

// Stats is a point-in-time copy of the counters.
type Stats struct {
	Acquires uint64 // blocking acquisitions
	Tries    uint64 // non-blocking attempts, successful or not
	Failed   uint64 // non-blocking attempts that found the lock busy
	Releases uint64
}

// Held is the number of acquisitions not yet released.
func (s Stats) Held() int64 {
	return int64(s.Acquires+s.Tries-s.Failed) - int64(s.Releases)
}

// NewCounting wraps inner.
func NewCounting(inner statemachine.Locker) *Counting {
	return &Counting{inner: inner}
}

// TryAcquire counts the attempt and its failure, then defers to inner.
func (c *Counting) TryAcquire() bool {
	c.tries.Add(1)
	if c.inner != nil && !c.inner.TryAcquire() {
		c.failed.Add(1)
		return false
	}
	return true
}

// Acquire counts the call, then defers to inner.
func (c *Counting) Acquire() {
	c.acquires.Add(1)
	if c.inner != nil {
		c.inner.Acquire()
	}
}

// Release counts the call, then defers to inner.
func (c *Counting) Release() {
	c.releases.Add(1)
	if c.inner != nil {
		c.inner.Release()
	}
}

// Stats returns the current counters.
func (c *Counting) Stats() Stats {
	return Stats{
		Acquires: c.acquires.Load(),
		Tries:    c.tries.Load(),
		Failed:   c.failed.Load(),
		Releases: c.releases.Load(),
	}
}
