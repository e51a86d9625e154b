package locks

// Chan is a Locker built on a one-slot channel. Holding the lock means owning
// the slot, so a select-driven loop can wait on C() alongside other channels.
type Chan struct {
	slot chan struct{}
}

// NewChan returns an unlocked Chan.
func NewChan() *Chan {
	return &Chan{slot: make(chan struct{}, 1)}
}

// TryAcquire fills the slot if it is empty.
func (c *Chan) TryAcquire() bool {
	select {
	case c.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Acquire fills the slot, waiting until it is empty.
func (c *Chan) Acquire() { c.slot <- struct{}{} }

// Release empties the slot. It panics if the slot is already empty.
func (c *Chan) Release() {
	select {
	case <-c.slot:
	default:
		panic("locks: release of unlocked Chan")
	}
}

// C returns the send side used by Acquire. A successful send in a select
// acquires the lock; Release must follow.
func (c *Chan) C() chan<- struct{} { return c.slot }
