// SPDX-License-Identifier: MIT

package automaton_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jdec/automaton"
)

func TestLabels(t *testing.T) {
	for _, ok := range []string{"a", "A_1", "x'", "*", "<a,*,b>", "<sigma>"} {
		assert.NoError(t, automaton.ValidateLabel(ok), ok)
	}
	for _, bad := range []string{"", "a b", "a,b", "<a,<b>>", "<a", "a>", "é", "a-b"} {
		assert.ErrorIs(t, automaton.ValidateLabel(bad), automaton.ErrInvalidLabel, bad)
	}
	assert.ErrorIs(t, automaton.ValidateLabel(strings.Repeat("x", automaton.MaxLabelLength+1)), automaton.ErrLabelTooLong)
	assert.NoError(t, automaton.ValidateLabel(strings.Repeat("x", automaton.MaxLabelLength)))
}

func TestEvents(t *testing.T) {
	a := automaton.New(automaton.WithControllers(3))
	id, err := a.AddEvent("<a,*,b>", []bool{true, false, true}, []bool{false, false, true})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	e := a.Event(id)
	require.NotNil(t, e)
	assert.True(t, e.IsVector())
	assert.Equal(t, []string{"a", "*", "b"}, e.Vector())
	assert.Same(t, e, a.EventByLabel("<a,*,b>"))
	assert.Nil(t, a.Event(0))
	assert.Nil(t, a.Event(2))

	_, err = a.AddEvent("<a,*,b>", automaton.AllTrue(3), automaton.AllTrue(3))
	assert.ErrorIs(t, err, automaton.ErrDuplicateLabel)
	_, err = a.AddEvent("short", automaton.AllTrue(2), automaton.AllTrue(3))
	assert.ErrorIs(t, err, automaton.ErrControllerCount)
	assert.Equal(t, 3, a.NumberOfControllers())
	assert.Equal(t, 1, a.NumberOfEvents())
}

func TestStates(t *testing.T) {
	a := automaton.New()
	s1, err := a.AddState("s1", false, true)
	require.NoError(t, err)
	s2, err := a.AddState("s2", true, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, []int64{s1, s2})
	assert.Equal(t, s1, a.InitialStateID())
	assert.Equal(t, int64(2), a.NumberOfStates())

	_, err = a.AddState("s1", false, false)
	assert.ErrorIs(t, err, automaton.ErrDuplicateLabel)
	assert.ErrorIs(t, a.AddStateWithID(2, "other", false, false), automaton.ErrInvalidStateID)
	assert.ErrorIs(t, a.AddStateWithID(0, "zero", false, false), automaton.ErrInvalidStateID)
	assert.ErrorIs(t, a.AddStateWithID(-3, "neg", false, false), automaton.ErrInvalidStateID)

	assert.ErrorIs(t, a.SetInitialState(9), automaton.ErrStateNotFound)
	require.NoError(t, a.SetInitialState(s2))
	assert.Equal(t, s2, a.InitialStateID())
	require.NoError(t, a.SetInitialState(0))
	assert.Equal(t, int64(0), a.InitialStateID())

	require.NoError(t, a.SetStateFlags(s2, true, true))
	st := a.State(s2)
	assert.True(t, st.IsEnablementState())
	assert.True(t, st.IsDisablementState())
	assert.Equal(t, automaton.FlagExists|automaton.FlagMarked|automaton.FlagEnablement|automaton.FlagDisablement, st.Flags())
	assert.Equal(t, automaton.FlagExists, a.State(s1).Flags())
	assert.ErrorIs(t, a.SetStateFlags(7, true, false), automaton.ErrStateNotFound)
}

func TestSparseStatesAreDistinguishable(t *testing.T) {
	a := automaton.New()
	require.NoError(t, a.AddStateWithID(5, "five", false, true))
	require.NoError(t, a.AddStateWithID(2, "two", false, false))

	assert.Equal(t, int64(5), a.MaxStateID())
	for id := int64(0); id <= 6; id++ {
		assert.Equal(t, id == 2 || id == 5, a.StateExists(id), "state %d", id)
	}
	ids := []int64{}
	for _, s := range a.States() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{2, 5}, ids)

	id, err := a.AddState("six", false, false)
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestTransitions(t *testing.T) {
	a := automaton.New()
	e, err := a.AddEvent("e", automaton.AllTrue(1), automaton.AllTrue(1))
	require.NoError(t, err)
	x, _ := a.AddState("x", false, true)
	y, _ := a.AddState("y", false, false)

	require.NoError(t, a.AddTransition(x, e, y))
	require.NoError(t, a.AddTransition(x, e, x), "nondeterminism is allowed")
	assert.ErrorIs(t, a.AddTransition(x, e, y), automaton.ErrDuplicateTransition)
	assert.ErrorIs(t, a.AddTransition(x, 2, y), automaton.ErrEventNotFound)
	assert.ErrorIs(t, a.AddTransition(9, e, y), automaton.ErrStateNotFound)
	assert.ErrorIs(t, a.AddTransition(x, e, 9), automaton.ErrStateNotFound)

	assert.Equal(t, []automaton.TransitionData{
		{InitialStateID: x, EventID: e, TargetStateID: y},
		{InitialStateID: x, EventID: e, TargetStateID: x},
	}, a.Transitions())
	assert.True(t, a.TransitionExists(x, e, y))

	require.NoError(t, a.MarkTransitionAsBad(x, e, y))
	require.NoError(t, a.MarkTransitionAsBad(x, e, y))
	assert.Len(t, a.BadTransitions(), 1)
	assert.ErrorIs(t, a.MarkTransitionAsBad(y, e, x), automaton.ErrTransitionNotFound)

	require.NoError(t, a.RemoveTransition(x, e, y))
	assert.False(t, a.TransitionExists(x, e, y))
	assert.False(t, a.IsBadTransition(x, e, y), "removal drops the bad mark")
	assert.ErrorIs(t, a.RemoveTransition(x, e, y), automaton.ErrTransitionNotFound)

	tr := a.State(x).Transitions()
	tr[0].Target = 42
	assert.Equal(t, x, a.State(x).Transitions()[0].Target, "Transitions returns a copy")
}

func TestNewModel(t *testing.T) {
	for _, typ := range []automaton.Type{
		automaton.TypeAutomaton, automaton.TypeUStructure,
		automaton.TypePrunedUStructure, automaton.TypeSubsetConstruction,
	} {
		m, err := automaton.NewModel(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, m.Type())
		assert.Equal(t, typ, m.Base().Type())
	}
	_, err := automaton.NewModel(automaton.Type(4))
	assert.ErrorIs(t, err, automaton.ErrUnknownType)
	assert.False(t, automaton.Type(4).Valid())
	assert.Equal(t, "PRUNED_U_STRUCTURE", automaton.TypePrunedUStructure.String())
}

func TestRoles(t *testing.T) {
	for _, r := range []automaton.CommunicationRole{automaton.RoleNone, automaton.RoleSender, automaton.RoleReceiver} {
		back, ok := automaton.RoleFromByte(r.Byte())
		assert.True(t, ok)
		assert.Equal(t, r, back)
		back, ok = automaton.RoleFromRune(r.Rune())
		assert.True(t, ok)
		assert.Equal(t, r, back)
	}
	assert.Equal(t, byte(0xFF), automaton.RoleUnset.Byte())
	_, ok := automaton.RoleFromByte(7)
	assert.False(t, ok)
	_, ok = automaton.RoleFromRune('x')
	assert.False(t, ok)
}

func TestCommunicationData(t *testing.T) {
	c := automaton.CommunicationData{Roles: []automaton.CommunicationRole{
		automaton.RoleReceiver, automaton.RoleNone, automaton.RoleSender, automaton.RoleReceiver,
	}}
	assert.Equal(t, 2, c.Sender())
	assert.Equal(t, []int{0, 3}, c.Receivers())
	assert.Equal(t, -1, automaton.CommunicationData{}.Sender())
}
