package statemachine_test

import (
	"errors"
	"fmt"

	sm "github.com/comalice/statemachine"
)

func ExampleNewTable() {
	names := []string{"S0", "S1", "S2"}
	entered := func(e sm.Event, cur, prev sm.State, _ any, _ struct{}) {
		fmt.Printf("enter %s from %s\n", names[cur], names[prev])
	}
	ignored := func(e sm.Event, cur sm.State, _ any, _ struct{}) {
		fmt.Printf("event %d ignored in %s\n", e, names[cur])
	}

	const inc, dec = 0, 1
	cells := []sm.Transition[struct{}]{
		sm.Defined(1, entered), sm.Undefined(ignored),
		sm.Defined(2, entered), sm.Defined(0, entered),
		sm.Undefined(ignored), sm.Defined(1, entered),
	}
	m := sm.NewTable(3, 2, 0, nil, cells, struct{}{})

	for _, e := range []sm.Event{inc, inc, inc, dec, dec, dec} {
		if err := m.Dispatch(e, nil, 0); err != nil {
			fmt.Println(err)
		}
	}
	// Output:
	// enter S1 from S0
	// enter S2 from S1
	// event 0 ignored in S2
	// enter S1 from S2
	// enter S0 from S1
	// event 1 ignored in S0
}

func ExampleNewFunc() {
	errOverflow := errors.New("counter overflow")
	next := func(cur sm.State, _ sm.Event, limit sm.State) (*sm.Transition[sm.State], error) {
		if cur+1 >= limit {
			return nil, errOverflow
		}
		t := sm.Defined[sm.State](cur+1, nil)
		return &t, nil
	}
	m := sm.NewFunc(3, 1, 0, nil, next, nil, sm.State(3))

	for i := 0; i < 3; i++ {
		err := m.Dispatch(0, nil, 0)
		s, _ := m.State(0)
		fmt.Println(s, err)
	}
	// Output:
	// 1 <nil>
	// 2 <nil>
	// 2 counter overflow
}
