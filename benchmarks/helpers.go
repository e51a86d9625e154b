// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	sm "github.com/comalice/statemachine"
	"github.com/comalice/statemachine/builder"
)

// Tick is the only event of the generated machines.
const Tick sm.Event = 0

// GenCycleTable creates an n state table where Tick moves s(i) to s(i+1 mod n).
func GenCycleTable[C any](n int, onEnter sm.OnEnterFunc[C]) []sm.Transition[C] {
	if n < 1 {
		n = 1
	}
	b := builder.New[C](sm.State(n), 1)
	for i := 0; i < n; i++ {
		b.On(sm.State(i), Tick, sm.State((i+1)%n), onEnter)
	}
	cells, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cells
}

// GenWideTable creates one state with maxEvent events, of which only every
// other one is defined (a self loop). The rest are undefined.
func GenWideTable[C any](maxEvent int) []sm.Transition[C] {
	if maxEvent < 1 {
		maxEvent = 1
	}
	b := builder.New[C](1, sm.Event(maxEvent))
	for e := 0; e < maxEvent; e += 2 {
		b.On(0, sm.Event(e), 0, nil)
	}
	cells, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cells
}

// GenCycleDefinition creates the YAML form of GenCycleTable.
func GenCycleDefinition(n int) *builder.Definition {
	if n < 1 {
		n = 1
	}
	def := &builder.Definition{
		ID:          fmt.Sprintf("cycle_%d", n),
		Events:      []string{"tick"},
		Initial:     "s0",
		States:      make([]string, n),
		Transitions: make([]builder.TransitionDef, n),
	}
	for i := 0; i < n; i++ {
		def.States[i] = fmt.Sprintf("s%d", i)
		def.Transitions[i] = builder.TransitionDef{
			From:  fmt.Sprintf("s%d", i),
			Event: "tick",
			To:    fmt.Sprintf("s%d", (i+1)%n),
		}
	}
	return def
}
