// SPDX-License-Identifier: MIT

package automaton_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jdec/automaton"
)

var (
	sr = []automaton.CommunicationRole{automaton.RoleSender, automaton.RoleReceiver}
	rs = []automaton.CommunicationRole{automaton.RoleReceiver, automaton.RoleSender}
)

// pair builds a two-controller U-Structure x -e-> y -e-> x.
func pair(t *testing.T) (u *automaton.UStructure, x, y int64, e int) {
	t.Helper()
	u = automaton.NewUStructure(automaton.WithControllers(2))
	e, err := u.AddEvent("e", automaton.AllTrue(2), automaton.AllTrue(2))
	require.NoError(t, err)
	x, err = u.AddState("x", false, true)
	require.NoError(t, err)
	y, err = u.AddState("y", true, false)
	require.NoError(t, err)
	require.NoError(t, u.AddTransition(x, e, y))
	require.NoError(t, u.AddTransition(y, e, x))

	return u, x, y, e
}

func TestUStructure_ReferentialIntegrity(t *testing.T) {
	u, x, y, e := pair(t)
	missing := []func() error{
		func() error { return u.AddUnconditionalViolation(x, e, x) },
		func() error { return u.AddConditionalViolation(x, e, x) },
		func() error { return u.AddInvalidCommunication(x, e, x) },
		func() error { return u.AddPotentialCommunication(x, e, x, sr) },
		func() error { return u.AddNashCommunication(x, e, x, sr, 1, 0.5) },
		func() error { return u.AddDisablementDecision(x, e, x, []bool{true, true}) },
	}
	for i, add := range missing {
		assert.ErrorIs(t, add(), automaton.ErrTransitionNotFound, "case %d", i)
	}

	assert.ErrorIs(t, u.AddPotentialCommunication(x, e, y, sr[:1]), automaton.ErrControllerCount)
	assert.ErrorIs(t, u.AddDisablementDecision(x, e, y, []bool{true}), automaton.ErrControllerCount)
	assert.ErrorIs(t, u.AddPotentialCommunication(x, e, y,
		[]automaton.CommunicationRole{automaton.RoleUnset, automaton.RoleSender}), automaton.ErrInvalidRole)
	assert.ErrorIs(t, u.AddNashCommunication(x, e, y, sr, math.NaN(), 0.5), automaton.ErrInvalidValue)
	assert.ErrorIs(t, u.AddNashCommunication(x, e, y, sr, math.Inf(1), 0.5), automaton.ErrInvalidValue)
	assert.ErrorIs(t, u.AddNashCommunication(x, e, y, sr, 1, 1.5), automaton.ErrInvalidValue)
	assert.ErrorIs(t, u.MarkTransitionAsBad(x, e, y), automaton.ErrWrongType)

	assert.Empty(t, u.PotentialCommunications())
	assert.Empty(t, u.NashCommunications())
	assert.Empty(t, u.DisablementDecisions())
}

func TestUStructure_TablesAndCopies(t *testing.T) {
	u, x, y, e := pair(t)
	require.NoError(t, u.AddUnconditionalViolation(x, e, y))
	require.NoError(t, u.AddUnconditionalViolation(x, e, y))
	require.NoError(t, u.AddConditionalViolation(y, e, x))
	require.NoError(t, u.AddPotentialCommunication(x, e, y, sr))
	require.NoError(t, u.AddPotentialCommunication(x, e, y, sr))
	require.NoError(t, u.AddPotentialCommunication(x, e, y, rs))
	require.NoError(t, u.AddNashCommunication(y, e, x, rs, -2, 0.75))

	assert.Len(t, u.UnconditionalViolations(), 1, "identical records are stored once")
	assert.Len(t, u.PotentialCommunications(), 2)
	assert.Len(t, u.Communications(), 3)
	assert.Equal(t, []automaton.TransitionData{
		{InitialStateID: x, EventID: e, TargetStateID: y},
		{InitialStateID: y, EventID: e, TargetStateID: x},
	}, u.Violations())

	pc := u.PotentialCommunications()
	pc[0].Roles[0] = automaton.RoleNone
	assert.Equal(t, automaton.RoleSender, u.PotentialCommunications()[0].Roles[0])

	n := u.NashCommunications()
	require.Len(t, n, 1)
	assert.Equal(t, -2.0, n[0].Cost)
	assert.Equal(t, 0.75, n[0].Probability)
}

func TestUStructure_RemoveTransitionPurgesTables(t *testing.T) {
	u, x, y, e := pair(t)
	require.NoError(t, u.AddUnconditionalViolation(x, e, y))
	require.NoError(t, u.AddInvalidCommunication(x, e, y))
	require.NoError(t, u.AddPotentialCommunication(x, e, y, sr))
	require.NoError(t, u.AddNashCommunication(x, e, y, sr, 1, 1))
	require.NoError(t, u.AddDisablementDecision(x, e, y, []bool{true, false}))
	require.NoError(t, u.AddConditionalViolation(y, e, x))

	var m automaton.Model = u
	require.NoError(t, m.RemoveTransition(x, e, y))

	assert.Empty(t, u.UnconditionalViolations())
	assert.Empty(t, u.InvalidCommunications())
	assert.Empty(t, u.PotentialCommunications())
	assert.Empty(t, u.NashCommunications())
	assert.Empty(t, u.DisablementDecisions())
	assert.Len(t, u.ConditionalViolations(), 1, "other transitions keep their records")
	assert.NotContains(t, automaton.TransitionInput(u), "x,e,y")
}

func TestUStructure_EnablementAndDisablement(t *testing.T) {
	u, x, y, e := pair(t)
	require.NoError(t, u.AddDisablementDecision(x, e, y, []bool{false, true}))
	require.NoError(t, u.SetStateFlags(x, false, true))
	require.NoError(t, u.SetStateFlags(y, true, false))

	assert.True(t, u.IsDisablementStateOf(x, e))
	assert.False(t, u.IsDisablementStateOf(y, e))
	assert.False(t, u.IsEnablementStateOf(x, e), "disabled on e")
	assert.True(t, u.IsEnablementStateOf(y, e))
	assert.False(t, u.IsEnablementStateOf(y, 2), "no transition on the event")
}

func TestPrunedAndSubsetVariants(t *testing.T) {
	p := automaton.NewPrunedUStructure()
	assert.Equal(t, automaton.TypePrunedUStructure, p.Type())
	e, err := p.AddEvent("e", automaton.AllTrue(1), automaton.AllTrue(1))
	require.NoError(t, err)
	s, err := p.AddState("s", false, true)
	require.NoError(t, err)
	require.NoError(t, p.AddTransition(s, e, s))
	require.NoError(t, p.AddInvalidCommunication(s, e, s))
	assert.Equal(t, "e,T,T@s,Fs,e,s:INVALID_COMMUNICATION", automaton.Render(p))

	sc := automaton.NewSubsetConstruction()
	assert.Equal(t, automaton.TypeSubsetConstruction, sc.Type())
	_, err = automaton.ParseInput(automaton.TypeSubsetConstruction, "e", "@s", "s,e,s:BAD")
	assert.ErrorIs(t, err, automaton.ErrWrongType)
}
