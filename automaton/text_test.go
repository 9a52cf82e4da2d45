// SPDX-License-Identifier: MIT

package automaton_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jdec/automaton"
)

const (
	seedEvents      = "a1,TF,FF\na2,TF,FF\nb1,FT,FF\nb2,FT,FF\nsigma,FF,TT"
	seedStates      = "@0,F\n1,F\n2,F\n3,F\n4,F"
	seedTransitions = "0,a1,1\n0,a2,2\n1,b1,3\n1,b2,4\n2,b2,3\n2,b1,4\n3,sigma,3\n4,sigma,4:BAD"
)

func TestParseInput_SeedRendersIdentically(t *testing.T) {
	m, err := automaton.ParseInput(automaton.TypeAutomaton, seedEvents, seedStates, seedTransitions,
		automaton.WithControllers(2))
	require.NoError(t, err)

	a := m.Base()
	assert.Equal(t, seedEvents, a.EventInput())
	assert.Equal(t, seedStates, a.StateInput())
	assert.Equal(t, seedTransitions, automaton.TransitionInput(m))
	assert.Equal(t, seedEvents+seedStates+seedTransitions, automaton.Render(m))

	assert.Equal(t, 5, a.NumberOfEvents())
	assert.Equal(t, int64(5), a.NumberOfStates())
	assert.Equal(t, 8, a.NumberOfTransitions())
	assert.Len(t, a.BadTransitions(), 1)
}

func TestParseInput_UStructureSpecials(t *testing.T) {
	events := "a,TT,TF\n<b,*>,TF,FT"
	states := "@p,F\nq,T"
	transitions := "p,a,q:UNCONDITIONAL_VIOLATION,CONDITIONAL_VIOLATION,INVALID_COMMUNICATION," +
		"POTENTIAL_COMMUNICATION-SR,NASH_COMMUNICATION-RS--1.5-0.25,DISABLEMENT_DECISION-TF\n" +
		"q,<b,*>,p:NASH_COMMUNICATION-S*-1e-07-1\n" +
		"q,a,q"

	m, err := automaton.ParseInput(automaton.TypeUStructure, events, states, transitions,
		automaton.WithControllers(2))
	require.NoError(t, err)
	assert.Equal(t, events+states+transitions, automaton.Render(m))

	u := m.(*automaton.UStructure)
	n := u.NashCommunications()
	require.Len(t, n, 2)
	assert.Equal(t, -1.5, n[0].Cost)
	assert.Equal(t, 0.25, n[0].Probability)
	assert.Equal(t, 1e-07, n[1].Cost)
	assert.Equal(t, []automaton.CommunicationRole{automaton.RoleSender, automaton.RoleNone}, n[1].Roles)
}

func TestParseEvents_Defaults(t *testing.T) {
	a := automaton.New(automaton.WithControllers(2))
	require.Empty(t, automaton.ParseEvents(a, "  go  \n\n"))
	e := a.EventByLabel("go")
	require.NotNil(t, e)
	assert.Equal(t, []bool{true, true}, e.Observable)
	assert.Equal(t, []bool{true, true}, e.Controllable)
}

func TestParseInput_CollectsLineErrors(t *testing.T) {
	events := "a\nb,TX,T\na"
	states := "@s\n@t\ns\nu,maybe"
	transitions := "s,a,s\ns,a,s\ns,zz,s\nnope,a,s\ns,a\ns,a,s:POTENTIAL_COMMUNICATION-S"

	m, err := automaton.ParseInput(automaton.TypeAutomaton, events, states, transitions)
	require.Error(t, err)
	require.NotNil(t, m, "valid lines are still applied")
	assert.Equal(t, 1, m.Base().NumberOfEvents())
	assert.Equal(t, int64(1), m.Base().NumberOfStates())
	assert.Equal(t, 1, m.Base().NumberOfTransitions())

	var ie automaton.InputErrors
	require.True(t, errors.As(err, &ie))
	require.Len(t, ie, 10)

	want := []struct {
		section automaton.Section
		line    int
		err     error
	}{
		{automaton.SectionEvents, 2, automaton.ErrMalformedLine},
		{automaton.SectionEvents, 3, automaton.ErrDuplicateLabel},
		{automaton.SectionStates, 2, automaton.ErrMultipleInitialStates},
		{automaton.SectionStates, 3, automaton.ErrDuplicateLabel},
		{automaton.SectionStates, 4, automaton.ErrMalformedLine},
		{automaton.SectionTransitions, 2, automaton.ErrDuplicateTransition},
		{automaton.SectionTransitions, 3, automaton.ErrEventNotFound},
		{automaton.SectionTransitions, 4, automaton.ErrStateNotFound},
		{automaton.SectionTransitions, 5, automaton.ErrMalformedLine},
		{automaton.SectionTransitions, 6, automaton.ErrDuplicateTransition},
	}
	for i, w := range want {
		assert.Equal(t, w.section, ie[i].Section, "error %d", i)
		assert.Equal(t, w.line, ie[i].Line, "error %d", i)
		assert.ErrorIs(t, ie[i], w.err, "error %d", i)
	}
	assert.ErrorIs(t, err, automaton.ErrMultipleInitialStates)
}

func TestParseTransitions_SpecialErrors(t *testing.T) {
	cases := map[string]error{
		"p,a,q:BAD":                           automaton.ErrWrongType,
		"p,a,q:POTENTIAL_COMMUNICATION-SX":    automaton.ErrInvalidRole,
		"p,a,q:POTENTIAL_COMMUNICATION-S":     automaton.ErrControllerCount,
		"p,a,q:NASH_COMMUNICATION-SR-abc-0.5": automaton.ErrMalformedLine,
		"p,a,q:NASH_COMMUNICATION-SR-1-2":     automaton.ErrInvalidValue,
		"p,a,q:DISABLEMENT_DECISION-TTT":      automaton.ErrControllerCount,
		"p,a,q:UNCONDITIONAL_VIOLATION-x":     automaton.ErrMalformedLine,
		"p,a,q:SOMETHING_ELSE":                automaton.ErrMalformedLine,
		"p,a,q:":                              automaton.ErrMalformedLine,
	}
	for line, want := range cases {
		_, err := automaton.ParseInput(automaton.TypeUStructure, "a", "@p\nq", line, automaton.WithControllers(2))
		assert.ErrorIs(t, err, want, line)
	}
}
