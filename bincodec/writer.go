// SPDX-License-Identifier: MIT

package bincodec

import (
	"fmt"
	"io"

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/bytemanip"
	"github.com/katalvlaran/jdec/codec"
)

// geometry is the body record layout shared by header and body.
type geometry struct {
	eventBytes         int
	stateBytes         int
	transitionCapacity int
	labelLength        int
	recordSize         int64
}

func newGeometry(stateCapacity int64, eventCapacity, transitionCapacity, labelLength int) geometry {
	g := geometry{
		eventBytes:         automaton.BytesPerID(uint64(eventCapacity)),
		stateBytes:         automaton.BytesPerID(uint64(stateCapacity)),
		transitionCapacity: transitionCapacity,
		labelLength:        labelLength,
	}
	g.recordSize = automaton.BytesPerState(g.eventBytes, g.stateBytes, transitionCapacity, labelLength)

	return g
}

// Write encodes m into a header and a body stream. Transition capacity and
// label length are recomputed from the model content.
func Write(m automaton.Model, header, body io.Writer) error {
	if m == nil {
		return codec.ErrNilModel
	}
	a := m.Base()
	doc := automaton.Export(m)
	g := newGeometry(doc.StateCapacity, doc.EventCapacity, a.TransitionCapacityNeeded(), a.LabelLengthNeeded())

	if _, err := header.Write(encodeHeader(doc, g)); err != nil {
		return fmt.Errorf("bincodec: write header: %w", err)
	}
	if err := writeBody(body, a, g); err != nil {
		return fmt.Errorf("bincodec: write body: %w", err)
	}

	return nil
}

func encodeHeader(doc *automaton.Document, g geometry) []byte {
	e := &encoder{buf: make([]byte, 0, HeaderSize)}
	e.put(uint64(doc.Type), u8)
	e.put(uint64(doc.NStates), u64)
	e.put(uint64(doc.EventCapacity), u32)
	e.put(uint64(doc.StateCapacity), u64)
	e.put(uint64(g.transitionCapacity), u32)
	e.put(uint64(g.labelLength), u32)
	e.put(uint64(doc.InitialState), u64)
	e.put(uint64(doc.NControllers), u32)
	e.put(uint64(len(doc.Events)), u32)

	for _, ev := range doc.Events {
		for i := 0; i < doc.NControllers; i++ {
			e.putBool(ev.Observable[i])
			e.putBool(ev.Controllable[i])
		}
		e.put(uint64(len(ev.Label)), u32)
		e.putBytes([]byte(ev.Label))
	}

	switch doc.Type {
	case automaton.TypeAutomaton:
		e.put(uint64(len(doc.BadTransitions)), u32)
		for _, td := range doc.BadTransitions {
			e.putTriple(td)
		}
	case automaton.TypeUStructure, automaton.TypePrunedUStructure:
		encodeTables(e, doc)
	}

	return e.buf
}

func encodeTables(e *encoder, doc *automaton.Document) {
	for _, n := range []int{
		len(doc.UnconditionalViolations),
		len(doc.ConditionalViolations),
		len(doc.PotentialCommunications),
		len(doc.InvalidCommunications),
		len(doc.NashCommunications),
		len(doc.DisablementDecisions),
		0, // reserved
	} {
		e.put(uint64(n), u32)
	}

	for _, td := range doc.UnconditionalViolations {
		e.putTriple(td)
	}
	for _, td := range doc.ConditionalViolations {
		e.putTriple(td)
	}
	for _, c := range doc.PotentialCommunications {
		e.putTriple(c.TransitionData)
		e.putRoles(c.Roles)
	}
	for _, td := range doc.InvalidCommunications {
		e.putTriple(td)
	}
	for _, n := range doc.NashCommunications {
		e.putTriple(n.TransitionData)
		e.putRoles(n.Roles)
		e.putFloat(n.Cost)
		e.putFloat(n.Probability)
	}
	for _, d := range doc.DisablementDecisions {
		e.putTriple(d.TransitionData)
		for _, c := range d.Controllers {
			e.putBool(c)
		}
	}
}

func (e *encoder) putTriple(td automaton.TransitionData) {
	e.put(uint64(td.InitialStateID), u64)
	e.put(uint64(td.EventID), u32)
	e.put(uint64(td.TargetStateID), u64)
}

func (e *encoder) putRoles(roles []automaton.CommunicationRole) {
	for _, r := range roles {
		e.put(uint64(r.Byte()), u8)
	}
}

// writeBody emits records for IDs 0..MaxStateID; absent IDs stay zero.
func writeBody(w io.Writer, a *automaton.Automaton, g geometry) error {
	rec := make([]byte, g.recordSize)
	for id := int64(0); id <= a.MaxStateID(); id++ {
		clear(rec)
		if s := a.State(id); s != nil {
			encodeRecord(rec, s, g)
		}
		if _, err := w.Write(rec); err != nil {
			return err
		}
	}

	return nil
}

func encodeRecord(rec []byte, s *automaton.State, g geometry) {
	rec[0] = byte(s.Flags())
	copy(rec[1:1+g.labelLength], s.Label)
	pos := 1 + g.labelLength
	for _, t := range s.Transitions() {
		bytemanip.WriteLongAsBytes(rec, pos, uint64(t.Event), g.eventBytes)
		bytemanip.WriteLongAsBytes(rec, pos+g.eventBytes, uint64(t.Target), g.stateBytes)
		pos += g.eventBytes + g.stateBytes
	}
}
