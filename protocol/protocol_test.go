// SPDX-License-Identifier: MIT

package protocol_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/protocol"
)

var (
	sr = []automaton.CommunicationRole{automaton.RoleSender, automaton.RoleReceiver}
	rs = []automaton.CommunicationRole{automaton.RoleReceiver, automaton.RoleSender}
)

// line builds 1 -a-> 2 -b-> 3 -a-> 4 -b-> 4 for two controllers, with
// communications on (1,a,2) [S,R], (2,b,3) [R,S] and (4,b,4) [S,R] and an
// unconditional violation on (3,a,4).
func line(t *testing.T) *automaton.UStructure {
	t.Helper()
	u := automaton.NewUStructure(automaton.WithControllers(2))
	a, err := u.AddEvent("a", automaton.AllTrue(2), automaton.AllTrue(2))
	require.NoError(t, err)
	b, err := u.AddEvent("b", automaton.AllTrue(2), []bool{true, false})
	require.NoError(t, err)
	for i, l := range []string{"s1", "s2", "s3", "s4"} {
		_, err = u.AddState(l, false, i == 0)
		require.NoError(t, err)
	}
	require.NoError(t, u.AddTransition(1, a, 2))
	require.NoError(t, u.AddTransition(2, b, 3))
	require.NoError(t, u.AddTransition(3, a, 4))
	require.NoError(t, u.AddTransition(4, b, 4))

	require.NoError(t, u.AddPotentialCommunication(1, a, 2, sr))
	require.NoError(t, u.AddPotentialCommunication(2, b, 3, rs))
	require.NoError(t, u.AddPotentialCommunication(4, b, 4, sr))
	require.NoError(t, u.AddUnconditionalViolation(3, a, 4))

	return u
}

func triples(ps []protocol.Protocol) [][]automaton.TransitionData {
	out := make([][]automaton.TransitionData, len(ps))
	for i, p := range ps {
		out[i] = []automaton.TransitionData{}
		for _, c := range p {
			out[i] = append(out[i], c.TransitionData)
		}
	}

	return out
}

func TestFilterCommunications(t *testing.T) {
	u := line(t)
	perms := [][]bool{{false, true}, {false, false}}
	got := protocol.FilterCommunications(u.PotentialCommunications(), perms)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].InitialStateID)
	assert.Equal(t, int64(4), got[1].InitialStateID)

	assert.Empty(t, protocol.FilterCommunications(u.PotentialCommunications(), nil))
}

func TestFeasibleProtocols_All(t *testing.T) {
	u := line(t)
	c1 := automaton.TransitionData{InitialStateID: 1, EventID: 1, TargetStateID: 2}
	c2 := automaton.TransitionData{InitialStateID: 2, EventID: 2, TargetStateID: 3}
	c3 := automaton.TransitionData{InitialStateID: 4, EventID: 2, TargetStateID: 4}

	ps, err := protocol.FeasibleProtocols(u, u.PotentialCommunications(), false)
	require.NoError(t, err)
	assert.Equal(t, [][]automaton.TransitionData{
		{c1}, {c2},
		{c1, c2}, {c1, c3}, {c2, c3},
		{c1, c2, c3},
	}, triples(ps))

	ps, err = protocol.FeasibleProtocols(u, u.PotentialCommunications(), true)
	require.NoError(t, err)
	assert.Equal(t, [][]automaton.TransitionData{{c1}, {c2}}, triples(ps))
}

func TestFeasibleProtocols_SecondViolationNarrows(t *testing.T) {
	u := line(t)
	require.NoError(t, u.AddConditionalViolation(2, 2, 3))

	ps, err := protocol.FeasibleProtocols(u, u.PotentialCommunications(), true)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	require.Len(t, ps[0], 1)
	assert.Equal(t, int64(1), ps[0][0].InitialStateID)
}

func TestFeasibleProtocols_Edges(t *testing.T) {
	u := line(t)

	// only the unreachable candidate: no protocol can work
	ps, err := protocol.FeasibleProtocols(u, u.PotentialCommunications()[2:], false)
	require.NoError(t, err)
	assert.Empty(t, ps)

	// no violations: the empty protocol suffices
	clean := automaton.NewUStructure()
	ps, err = protocol.FeasibleProtocols(clean, nil, true)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Empty(t, ps[0])
}

func TestFeasibleProtocols_NoViolationsUntrimmed(t *testing.T) {
	u := automaton.NewUStructure(automaton.WithControllers(2))
	a, err := u.AddEvent("a", automaton.AllTrue(2), automaton.AllTrue(2))
	require.NoError(t, err)
	_, err = u.AddState("p", false, true)
	require.NoError(t, err)
	_, err = u.AddState("q", false, false)
	require.NoError(t, err)
	require.NoError(t, u.AddTransition(1, a, 2))
	require.NoError(t, u.AddPotentialCommunication(1, a, 2, sr))

	// every subset is feasible: {} and {(1,a,2)}
	ps, err := protocol.FeasibleProtocols(u, u.PotentialCommunications(), false)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Empty(t, ps[0])
	assert.Len(t, ps[1], 1)

	ps, err = protocol.FeasibleProtocols(u, u.PotentialCommunications(), true)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Empty(t, ps[0])
}

func TestFeasibleProtocols_Errors(t *testing.T) {
	_, err := protocol.FeasibleProtocols(nil, nil, false)
	require.ErrorIs(t, err, protocol.ErrNilStructure)

	u := line(t)
	_, err = protocol.FeasibleProtocols(u, u.PotentialCommunications(), false, protocol.WithMaxCandidates(2))
	require.ErrorIs(t, err, protocol.ErrTooManyCandidates)

	_, err = protocol.FeasibleProtocols(u, nil, false, protocol.WithMaxCandidates(64))
	require.ErrorIs(t, err, protocol.ErrOptionViolation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = protocol.FeasibleProtocols(u, u.PotentialCommunications(), false, protocol.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
