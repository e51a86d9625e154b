package statemachine

// ResolveFunc produces the transition for current under event. It runs while
// the Machine lock is held, so it should behave like a fast, pure table lookup.
// A non-nil error aborts the dispatch before any mutation and is returned to
// the dispatcher unchanged; cleanup is not called in that case.
//
// The returned Transition may be freshly acquired (pooled, allocated) as long
// as it is visible only to this dispatch and the CleanupFunc releases it.
type ResolveFunc[C any] func(current State, event Event, ctx C) (*Transition[C], error)

// CleanupFunc releases whatever ResolveFunc acquired for t. It runs after the
// callback, outside the lock, and its result becomes the result of Dispatch.
type CleanupFunc[C any] func(ctx C, t *Transition[C]) error

// resolver is implemented by the table and function strategies only.
type resolver[C any] interface {
	resolve(current State, event Event, ctx C) (*Transition[C], error)
	finish(ctx C, t *Transition[C]) error
}

type tableResolver[C any] struct {
	cells    []Transition[C]
	maxEvent Event
}

func (r *tableResolver[C]) resolve(current State, event Event, _ C) (*Transition[C], error) {
	return &r.cells[int(current)*int(r.maxEvent)+int(event)], nil
}

func (r *tableResolver[C]) finish(C, *Transition[C]) error {
	return nil
}

type funcResolver[C any] struct {
	fn      ResolveFunc[C]
	cleanup CleanupFunc[C]
}

func (r *funcResolver[C]) resolve(current State, event Event, ctx C) (*Transition[C], error) {
	return r.fn(current, event, ctx)
}

// finish returns the cleanup result as-is. It replaces the dispatch result
// even when the transition and its callback already succeeded.
func (r *funcResolver[C]) finish(ctx C, t *Transition[C]) error {
	if r.cleanup == nil {
		return nil
	}
	return r.cleanup(ctx, t)
}
