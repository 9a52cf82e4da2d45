// SPDX-License-Identifier: MIT

package bincodec

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/bytemanip"
)

// Read decodes a header stream and a body and builds the model they
// describe. opts configure the model; the controller count and capacities
// come from the header.
func Read(header io.Reader, body io.ReaderAt, opts ...automaton.Option) (automaton.Model, error) {
	raw, err := io.ReadAll(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHeader, err)
	}
	doc, g, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	if err := readBody(body, doc, g); err != nil {
		return nil, err
	}

	return automaton.Build(doc, opts...)
}

// ReadDocument is Read without the final Build.
func ReadDocument(header []byte, body io.ReaderAt) (*automaton.Document, error) {
	doc, g, err := decodeHeader(header)
	if err != nil {
		return nil, err
	}
	if err := readBody(body, doc, g); err != nil {
		return nil, err
	}

	return doc, nil
}

// decodeHeader parses a header file into a Document without states, plus
// the body geometry the header implies.
func decodeHeader(raw []byte) (*automaton.Document, geometry, error) {
	if len(raw) < HeaderSize {
		return nil, geometry{}, fmt.Errorf("%w: %d bytes, want at least %d", ErrCorruptHeader, len(raw), HeaderSize)
	}
	d := &decoder{buf: raw}
	t := automaton.Type(d.take(u8))
	if !t.Valid() {
		return nil, geometry{}, fmt.Errorf("%w: type byte %d", ErrUnknownType, uint8(t))
	}
	nStates := d.take(u64)
	eventCapacity := d.take(u32)
	stateCapacity := d.take(u64)
	transitionCapacity := d.take(u32)
	labelLength := d.take(u32)
	initial := d.take(u64)
	nControllers := d.take(u32)
	nEvents := d.take(u32)

	switch {
	case nStates > math.MaxInt64, stateCapacity > math.MaxInt64, initial > math.MaxInt64:
		return nil, geometry{}, fmt.Errorf("%w: state field exceeds signed 64-bit range", ErrCorruptHeader)
	case nStates > stateCapacity:
		return nil, geometry{}, fmt.Errorf("%w: %d states exceed capacity %d", ErrCorruptHeader, nStates, stateCapacity)
	case eventCapacity > uint64(automaton.MaxEventCapacity), nEvents > eventCapacity:
		return nil, geometry{}, fmt.Errorf("%w: %d events, capacity %d", ErrCorruptHeader, nEvents, eventCapacity)
	case nControllers < 1 || nControllers > automaton.MaxControllers:
		return nil, geometry{}, fmt.Errorf("%w: %d controllers", ErrCorruptHeader, nControllers)
	case labelLength < automaton.MinLabelLength || labelLength > automaton.MaxLabelLength:
		return nil, geometry{}, fmt.Errorf("%w: label length %d", ErrCorruptHeader, labelLength)
	case transitionCapacity < automaton.MinTransitionCapacity || !degreeFits(transitionCapacity, nEvents, nStates):
		return nil, geometry{}, fmt.Errorf("%w: transition capacity %d", ErrCorruptHeader, transitionCapacity)
	}

	doc := &automaton.Document{
		Type:          t,
		NStates:       int64(nStates),
		InitialState:  int64(initial),
		NControllers:  int(nControllers),
		StateCapacity: int64(stateCapacity),
		EventCapacity: int(eventCapacity),
	}
	// Event block: per-controller flag pairs, then a length-prefixed label.
	nc := doc.NControllers
	for id := 1; id <= int(nEvents) && d.fail == nil; id++ {
		ev := automaton.EventDoc{ID: id, Observable: make([]bool, nc), Controllable: make([]bool, nc)}
		for i := 0; i < nc; i++ {
			ev.Observable[i] = d.takeBool()
			ev.Controllable[i] = d.takeBool()
		}
		n := d.take(u32)
		if n > automaton.MaxLabelLength {
			return nil, geometry{}, fmt.Errorf("%w: event %d label length %d", ErrCorruptHeader, id, n)
		}
		ev.Label = string(d.takeBytes(int(n)))
		doc.Events = append(doc.Events, ev)
	}

	// Special payload depends on the type; subset constructions carry none.
	switch t {
	case automaton.TypeAutomaton:
		doc.BadTransitions = d.triples(d.count(TripleSize))
	case automaton.TypeUStructure, automaton.TypePrunedUStructure:
		decodeTables(d, doc)
	}
	if d.fail != nil {
		return nil, geometry{}, d.fail
	}
	if d.off != len(raw) {
		return nil, geometry{}, fmt.Errorf("%w: %d trailing bytes", ErrCorruptHeader, len(raw)-d.off)
	}

	g := newGeometry(doc.StateCapacity, doc.EventCapacity, int(transitionCapacity), int(labelLength))

	return doc, g, nil
}

// degreeFits bounds the transition capacity by the number of distinct
// (event, target) pairs so a forged header cannot force huge records.
func degreeFits(tc, nEvents, nStates uint64) bool {
	if tc == automaton.MinTransitionCapacity {
		return true
	}
	hi, lo := bits.Mul64(nEvents, nStates)

	return hi != 0 || tc <= lo
}

// decodeTables reads the 28-byte sub-header and the six tables in the
// order their counts appear.
func decodeTables(d *decoder, doc *automaton.Document) {
	nc := doc.NControllers
	// six table counts plus the reserved slot
	var counts [7]int
	for i := range counts {
		counts[i] = int(d.take(u32))
	}
	if counts[6] != 0 && d.fail == nil {
		d.fail = fmt.Errorf("%w: reserved table count is %d", ErrCorruptHeader, counts[6])
		return
	}
	// Each count is bounded by the bytes left before any allocation.
	doc.UnconditionalViolations = d.triples(d.bounded(counts[0], TripleSize))
	doc.ConditionalViolations = d.triples(d.bounded(counts[1], TripleSize))
	for i := d.bounded(counts[2], TripleSize+nc); i > 0; i-- {
		doc.PotentialCommunications = append(doc.PotentialCommunications, automaton.CommunicationData{
			TransitionData: d.triple(),
			Roles:          d.roles(nc),
		})
	}
	doc.InvalidCommunications = d.triples(d.bounded(counts[3], TripleSize))
	// Nash: triple, roles, then cost and probability as IEEE-754 bits
	for i := d.bounded(counts[4], TripleSize+nc+2*u64); i > 0; i-- {
		n := automaton.NashCommunicationData{}
		n.TransitionData = d.triple()
		n.Roles = d.roles(nc)
		n.Cost = d.takeFloat()
		n.Probability = d.takeFloat()
		doc.NashCommunications = append(doc.NashCommunications, n)
	}
	for i := d.bounded(counts[5], TripleSize+nc); i > 0; i-- {
		dd := automaton.DisablementData{TransitionData: d.triple(), Controllers: make([]bool, nc)}
		for c := range dd.Controllers {
			dd.Controllers[c] = d.takeBool()
		}
		doc.DisablementDecisions = append(doc.DisablementDecisions, dd)
	}
}

// count reads a u32 record count and bounds it by the remaining input.
func (d *decoder) count(recordSize int) int {
	return d.bounded(int(d.take(u32)), recordSize)
}

// bounded returns n, or 0 after recording a failure when n records of
// recordSize cannot fit in the remaining input.
func (d *decoder) bounded(n, recordSize int) int {
	if d.fail != nil {
		return 0
	}
	if n > (len(d.buf)-d.off)/recordSize {
		d.fail = fmt.Errorf("%w: %d records of %d bytes exceed remaining %d", ErrCorruptHeader, n, recordSize, len(d.buf)-d.off)
		return 0
	}

	return n
}

func (d *decoder) triple() automaton.TransitionData {
	return automaton.TransitionData{
		InitialStateID: int64(d.take(u64)),
		EventID:        int(d.take(u32)),
		TargetStateID:  int64(d.take(u64)),
	}
}

func (d *decoder) triples(n int) []automaton.TransitionData {
	var out []automaton.TransitionData
	for ; n > 0; n-- {
		out = append(out, d.triple())
	}

	return out
}

// roles maps each byte through int8, so the persisted unset value 0xFF
// becomes RoleUnset and other unknown bytes are left for Build to report.
func (d *decoder) roles(nc int) []automaton.CommunicationRole {
	out := make([]automaton.CommunicationRole, nc)
	for i := range out {
		out[i] = automaton.CommunicationRole(int8(d.take(u8)))
	}

	return out
}

// readBody scans records from ID 1 upward until every state announced by
// the header has been found. When body reports its Size, it must end
// exactly after the last state record.
func readBody(body io.ReaderAt, doc *automaton.Document, g geometry) error {
	if doc.NStates == 0 {
		return nil
	}
	if body == nil {
		return ErrCorruptBody
	}
	rec := make([]byte, g.recordSize)
	var last int64
	for id := int64(1); int64(len(doc.States)) < doc.NStates; id++ {
		// capacity bound, then offset overflow bound
		if id > doc.StateCapacity || id > math.MaxInt64/g.recordSize-1 {
			return fmt.Errorf("%w: found %d of %d states", ErrCorruptBody, len(doc.States), doc.NStates)
		}
		n, err := body.ReadAt(rec, id*g.recordSize)
		if n < len(rec) {
			return fmt.Errorf("%w: found %d of %d states: %v", ErrCorruptBody, len(doc.States), doc.NStates, err)
		}
		flags := automaton.StateFlags(rec[0])
		if flags&automaton.ReservedStateFlags != 0 {
			return fmt.Errorf("%w: state %d has reserved flag bits 0x%02x", ErrCorruptBody, id, byte(flags))
		}
		// gap in a sparse ID space
		if !flags.Has(automaton.FlagExists) {
			continue
		}
		doc.States = append(doc.States, decodeRecord(id, rec, flags, g))
		last = id
	}

	// A body left over from another save rarely ends on this boundary.
	if sized, ok := body.(interface{ Size() int64 }); ok {
		if want := (last + 1) * g.recordSize; sized.Size() != want {
			return fmt.Errorf("%w: body is %d bytes, header implies %d", ErrCorruptBody, sized.Size(), want)
		}
	}

	return nil
}

func decodeRecord(id int64, rec []byte, flags automaton.StateFlags, g geometry) automaton.StateDoc {
	sd := automaton.StateDoc{
		ID:          id,
		Label:       string(bytes.TrimRight(rec[1:1+g.labelLength], "\x00")),
		Marked:      flags.Has(automaton.FlagMarked),
		Enablement:  flags.Has(automaton.FlagEnablement),
		Disablement: flags.Has(automaton.FlagDisablement),
	}
	pos := 1 + g.labelLength
	for i := 0; i < g.transitionCapacity; i++ {
		ev := bytemanip.ReadBytesAsLong(rec, pos, g.eventBytes)
		if ev == 0 {
			break
		}
		target := bytemanip.ReadBytesAsLong(rec, pos+g.eventBytes, g.stateBytes)
		sd.Transitions = append(sd.Transitions, automaton.Transition{Event: int(ev), Target: int64(target)})
		pos += g.eventBytes + g.stateBytes
	}

	return sd
}
