// SPDX-License-Identifier: MIT

package jsoncodec_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/codec"
	"github.com/katalvlaran/jdec/jsoncodec"
)

// sample builds a two-controller U-Structure carrying one record in every
// special table.
func sample(t *testing.T) *automaton.UStructure {
	t.Helper()
	u := automaton.NewUStructure(automaton.WithControllers(2))
	a, err := u.AddEvent("a", []bool{true, false}, []bool{true, true})
	require.NoError(t, err)
	v, err := u.AddEvent("<b,*>", []bool{true, true}, []bool{false, true})
	require.NoError(t, err)
	s0, err := u.AddState("s0", false, true)
	require.NoError(t, err)
	s1, err := u.AddState("s1", false, false)
	require.NoError(t, err)
	s2, err := u.AddState("s2", true, false)
	require.NoError(t, err)

	require.NoError(t, u.AddTransition(s0, a, s1))
	require.NoError(t, u.AddTransition(s1, v, s2))
	require.NoError(t, u.AddTransition(s0, v, s2))
	require.NoError(t, u.AddTransition(s2, a, s0))

	require.NoError(t, u.AddUnconditionalViolation(s1, v, s2))
	require.NoError(t, u.AddConditionalViolation(s0, v, s2))
	require.NoError(t, u.AddInvalidCommunication(s2, a, s0))
	require.NoError(t, u.AddPotentialCommunication(s0, a, s1,
		[]automaton.CommunicationRole{automaton.RoleSender, automaton.RoleReceiver}))
	require.NoError(t, u.AddNashCommunication(s1, v, s2,
		[]automaton.CommunicationRole{automaton.RoleReceiver, automaton.RoleSender}, 1.5, 0.25))
	require.NoError(t, u.AddDisablementDecision(s2, a, s0, []bool{true, false}))

	return u
}

func TestRoundTrip_File(t *testing.T) {
	u := sample(t)
	path := filepath.Join(t.TempDir(), "u.json")

	c, err := codec.ForPath(path)
	require.NoError(t, err)
	require.NoError(t, c.Save(u, path))

	m, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, automaton.TypeUStructure, m.Type())
	assert.Equal(t, automaton.Render(u), automaton.Render(m))
	assert.Equal(t, automaton.Export(u), automaton.Export(m))
}

func TestEncode_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jsoncodec.Encode(&buf, sample(t)))
	out := buf.String()

	assert.Contains(t, out, `"label": "<b,*>"`, "HTML escaping must be off")
	assert.Contains(t, out, "\n  \"nControllers\": 2,")
	assert.Contains(t, out, `"nashCommunications"`)
	assert.NotContains(t, out, `"badTransitions"`)
}

func TestEncode_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, jsoncodec.Encode(&a, sample(t)))
	require.NoError(t, jsoncodec.Encode(&b, sample(t)))
	assert.Equal(t, a.String(), b.String())
}

func TestAutomaton_BadTransitionsAndSparseIDs(t *testing.T) {
	a := automaton.New()
	e, err := a.AddEvent("go", automaton.AllTrue(1), automaton.AllTrue(1))
	require.NoError(t, err)
	require.NoError(t, a.AddStateWithID(3, "x", false, true))
	require.NoError(t, a.AddStateWithID(9, "y", true, false))
	require.NoError(t, a.AddTransition(3, e, 9))
	require.NoError(t, a.MarkTransitionAsBad(3, e, 9))

	var buf bytes.Buffer
	require.NoError(t, jsoncodec.Encode(&buf, a))
	m, err := jsoncodec.Decode(&buf)
	require.NoError(t, err)

	got := m.Base()
	assert.True(t, got.StateExists(9))
	assert.False(t, got.StateExists(4))
	assert.Equal(t, int64(3), got.InitialStateID())
	assert.True(t, got.IsBadTransition(3, e, 9))
}

func TestDecode_Errors(t *testing.T) {
	_, err := jsoncodec.Decode(strings.NewReader("{not json"))
	require.ErrorIs(t, err, jsoncodec.ErrMalformed)

	_, err = jsoncodec.Decode(strings.NewReader(`{"type":9,"nStates":0,"nControllers":1}`))
	require.ErrorIs(t, err, automaton.ErrUnknownType)

	_, err = jsoncodec.Decode(strings.NewReader(`{"type":0,"nStates":2,"nControllers":1,"states":[]}`))
	require.ErrorIs(t, err, automaton.ErrInvalidDocument)

	require.ErrorIs(t, jsoncodec.Encode(&bytes.Buffer{}, nil), codec.ErrNilModel)

	_, err = jsoncodec.Codec{}.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_UnknownRoleIsLogged(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jsoncodec.Encode(&buf, sample(t)))
	doc := strings.Replace(buf.String(), `"roles": [
        1,
        2
      ]`, `"roles": [
        7,
        2
      ]`, 1)
	require.NotEqual(t, buf.String(), doc)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	m, err := jsoncodec.Decode(strings.NewReader(doc), automaton.WithLogger(logger))
	require.NoError(t, err)

	u := m.(*automaton.UStructure)
	pc := u.PotentialCommunications()
	require.Len(t, pc, 1)
	assert.Equal(t, automaton.RoleUnset, pc[0].Roles[0])
	assert.Contains(t, logs.String(), "unknown communication role")
}

const (
	seedEvents      = "a1,TF,FF\na2,TF,FF\nb1,FT,FF\nb2,FT,FF\nsigma,FF,TT"
	seedStates      = "@0,F\n1,F\n2,F\n3,F\n4,F"
	seedTransitions = "0,a1,1\n0,a2,2\n1,b1,3\n1,b2,4\n2,b2,3\n2,b1,4\n3,sigma,3\n4,sigma,4:BAD"
)

func TestSeedScenario(t *testing.T) {
	seed, err := automaton.ParseInput(automaton.TypeAutomaton, seedEvents, seedStates, seedTransitions,
		automaton.WithControllers(2))
	require.NoError(t, err)

	cases := map[string]func(t *testing.T) automaton.Model{
		"file": func(t *testing.T) automaton.Model {
			path := filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, jsoncodec.Codec{}.Save(seed, path))
			m, err := jsoncodec.Codec{}.Load(path)
			require.NoError(t, err)

			return m
		},
		"stream": func(t *testing.T) automaton.Model {
			var buf bytes.Buffer
			require.NoError(t, jsoncodec.Encode(&buf, seed))
			m, err := jsoncodec.Decode(&buf)
			require.NoError(t, err)

			return m
		},
	}
	for name, load := range cases {
		t.Run(name, func(t *testing.T) {
			m := load(t)
			a := m.Base()
			assert.Equal(t, automaton.Render(seed), automaton.Render(m))
			assert.Equal(t, 2, a.NumberOfControllers())
			assert.Equal(t, int64(5), a.NumberOfStates())
			assert.Equal(t, 5, a.NumberOfEvents())

			want := automaton.TransitionData{
				InitialStateID: a.StateByLabel("4").ID,
				EventID:        a.EventByLabel("sigma").ID,
				TargetStateID:  a.StateByLabel("4").ID,
			}
			assert.Equal(t, []automaton.TransitionData{want}, a.BadTransitions())
		})
	}
}
