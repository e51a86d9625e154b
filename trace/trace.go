// Package trace decorates statemachine callbacks and resolvers with zap
// logging. Nothing in the engine logs; hosts opt in by wrapping the functions
// they hand to the constructors.
package trace

import (
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	sm "github.com/comalice/statemachine"
)

// Namer turns indices into readable names. builder.Names implements it.
type Namer interface {
	StateName(sm.State) string
	EventName(sm.Event) string
}

type numbers struct{}

func (numbers) StateName(s sm.State) string { return strconv.FormatUint(uint64(s), 10) }
func (numbers) EventName(e sm.Event) string { return strconv.FormatUint(uint64(e), 10) }

// Tracer wraps functions of a Machine[C] so that every transition, undefined
// transition and resolver or cleanup failure is logged.
type Tracer[C any] struct {
	log   *zap.Logger
	names Namer
	level zapcore.Level
}

// New returns a Tracer logging transitions at debug level. A nil names logs
// raw indices.
func New[C any](log *zap.Logger, names Namer) *Tracer[C] {
	if names == nil {
		names = numbers{}
	}
	return &Tracer[C]{log: log, names: names, level: zapcore.DebugLevel}
}

// WithLevel changes the level of transition entries. Failures are always
// logged at warn level.
func (t *Tracer[C]) WithLevel(level zapcore.Level) *Tracer[C] {
	t.level = level
	return t
}

// OnEnter logs the transition, then calls next if it is set.
func (t *Tracer[C]) OnEnter(next sm.OnEnterFunc[C]) sm.OnEnterFunc[C] {
	return func(event sm.Event, current, previous sm.State, data any, ctx C) {
		if ce := t.log.Check(t.level, "state entered"); ce != nil {
			ce.Write(
				zap.String("event", t.names.EventName(event)),
				zap.String("state", t.names.StateName(current)),
				zap.String("previous", t.names.StateName(previous)),
			)
		}
		if next != nil {
			next(event, current, previous, data, ctx)
		}
	}
}

// OnUndefined logs the rejected event, then calls next if it is set.
func (t *Tracer[C]) OnUndefined(next sm.OnUndefinedFunc[C]) sm.OnUndefinedFunc[C] {
	return func(event sm.Event, current sm.State, data any, ctx C) {
		if ce := t.log.Check(t.level, "undefined transition"); ce != nil {
			ce.Write(
				zap.String("event", t.names.EventName(event)),
				zap.String("state", t.names.StateName(current)),
			)
		}
		if next != nil {
			next(event, current, data, ctx)
		}
	}
}

// Resolve logs resolver errors. Successful resolutions are not logged; the
// resolver runs under the Machine lock.
func (t *Tracer[C]) Resolve(next sm.ResolveFunc[C]) sm.ResolveFunc[C] {
	return func(current sm.State, event sm.Event, ctx C) (*sm.Transition[C], error) {
		tr, err := next(current, event, ctx)
		if err != nil {
			t.log.Warn("transition resolution failed",
				zap.String("event", t.names.EventName(event)),
				zap.String("state", t.names.StateName(current)),
				zap.Error(err),
			)
		}
		return tr, err
	}
}

// Cleanup logs cleanup errors. A nil next stays nil so the Machine keeps
// skipping cleanup.
func (t *Tracer[C]) Cleanup(next sm.CleanupFunc[C]) sm.CleanupFunc[C] {
	if next == nil {
		return nil
	}
	return func(ctx C, tr *sm.Transition[C]) error {
		err := next(ctx, tr)
		if err != nil {
			t.log.Warn("transition cleanup failed", zap.Bool("defined", tr.Defined), zap.Error(err))
		}
		return err
	}
}

// Table returns a copy of cells with every callback wrapped, including the
// nil ones, so that all transitions are logged.
func (t *Tracer[C]) Table(cells []sm.Transition[C]) []sm.Transition[C] {
	out := make([]sm.Transition[C], len(cells))
	for i, c := range cells {
		if c.Defined {
			out[i] = sm.Defined(c.Next, t.OnEnter(c.OnEnter))
		} else {
			out[i] = sm.Undefined(t.OnUndefined(c.OnUndefined))
		}
	}
	return out
}
