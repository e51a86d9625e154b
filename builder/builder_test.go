package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sm "github.com/comalice/statemachine"
	"github.com/comalice/statemachine/builder"
)

type log struct{ lines []string }

func (l *log) enter(e sm.Event, cur, prev sm.State, _ any, _ *log) {
	l.lines = append(l.lines, "enter")
}

func TestBuilder_FillsUnsetCells(t *testing.T) {
	var undefs int
	cells, err := builder.New[*log](3, 2).
		On(0, 0, 1, nil).
		On(1, 0, 2, nil).
		Otherwise(func(sm.Event, sm.State, any, *log) { undefs++ }).
		Build()
	require.NoError(t, err)
	require.Len(t, cells, 6)

	assert.True(t, cells[0].Defined)
	assert.Equal(t, sm.State(1), cells[0].Next)
	assert.True(t, cells[2].Defined)
	assert.Equal(t, sm.State(2), cells[2].Next)

	for _, i := range []int{1, 3, 4, 5} {
		assert.False(t, cells[i].Defined, "cell %d", i)
		require.NotNil(t, cells[i].OnUndefined, "cell %d", i)
	}
	cells[5].OnUndefined(1, 2, nil, nil)
	assert.Equal(t, 1, undefs)
}

func TestBuilder_ExplicitUndefinedKeepsOwnCallback(t *testing.T) {
	var own, fallback int
	cells, err := builder.New[struct{}](1, 2).
		Undefined(0, 1, func(sm.Event, sm.State, any, struct{}) { own++ }).
		Otherwise(func(sm.Event, sm.State, any, struct{}) { fallback++ }).
		Build()
	require.NoError(t, err)

	cells[1].OnUndefined(1, 0, nil, struct{}{})
	cells[0].OnUndefined(0, 0, nil, struct{}{})
	assert.Equal(t, 1, own)
	assert.Equal(t, 1, fallback)
}

func TestBuilder_Errors(t *testing.T) {
	cases := []struct {
		name  string
		build func() error
		want  error
	}{
		{"duplicate cell", func() error {
			_, err := builder.New[struct{}](2, 1).On(0, 0, 1, nil).On(0, 0, 0, nil).Build()
			return err
		}, builder.ErrDuplicate},
		{"state out of range", func() error {
			_, err := builder.New[struct{}](2, 1).On(2, 0, 1, nil).Build()
			return err
		}, builder.ErrOutOfRange},
		{"event out of range", func() error {
			_, err := builder.New[struct{}](2, 1).Undefined(0, 1, nil).Build()
			return err
		}, builder.ErrOutOfRange},
		{"target out of range", func() error {
			_, err := builder.New[struct{}](2, 1).On(0, 0, 5, nil).Build()
			return err
		}, builder.ErrOutOfRange},
		{"empty bounds", func() error {
			_, err := builder.New[struct{}](0, 1).Build()
			return err
		}, builder.ErrOutOfRange},
		{"initial out of range", func() error {
			_, err := builder.New[struct{}](2, 1).Machine(2, nil, struct{}{})
			return err
		}, builder.ErrOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.build(), tc.want)
		})
	}
}

func TestBuilder_Machine(t *testing.T) {
	l := &log{}
	m, err := builder.New[*log](2, 1).
		On(0, 0, 1, l.enter).
		On(1, 0, 0, l.enter).
		Machine(1, nil, l)
	require.NoError(t, err)

	require.NoError(t, m.Dispatch(0, nil, 0))
	s, _ := m.State(0)
	assert.Equal(t, sm.State(0), s)
	assert.Equal(t, []string{"enter"}, l.lines)
}

func TestNames(t *testing.T) {
	n := builder.Names{States: []string{"IDLE", "BUSY"}, Events: []string{"GO"}}
	assert.Equal(t, "BUSY", n.StateName(1))
	assert.Equal(t, builder.Unknown, n.StateName(2))
	assert.Equal(t, "GO", n.EventName(0))
	assert.Equal(t, builder.Unknown, n.EventName(7))
	assert.Equal(t, builder.Unknown, builder.Names{}.StateName(0))
}
