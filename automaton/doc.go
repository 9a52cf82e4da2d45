// SPDX-License-Identifier: MIT
// Package automaton is the in-memory model of a finite-state automaton used
// in decentralized discrete-event-system control, together with the
// U-Structure variants and their special-transition side-tables.
//
// What:
//
//   - Event: transition type with per-controller observable/controllable flags.
//   - State: labelled node, marked flag, ordered outgoing transitions.
//   - Transition: (event ID, target state ID) owned by its source state.
//   - Special-transition records keyed by the triple
//     (initialStateID, eventID, targetStateID): TransitionData,
//     CommunicationData, NashCommunicationData, DisablementData.
//   - Variants (closed set): *Automaton, *UStructure, *PrunedUStructure,
//     *SubsetConstruction, all behind the sealed Model interface.
//
// Identity:
//
//   - Event IDs are dense and 1-based. State IDs are 1-based and may be
//     sparse; ID 0 means "no state" (e.g. no initial state).
//   - Declared capacities are rounded up to a power-of-256 boundary so the
//     legacy binary layout only changes width when an ID crosses a boundary.
//
// Integrity:
//
//   - Every special-transition record references a transition that exists.
//     Side-tables are indexes over the graph and are only mutated through
//     model methods, which validate the triple first.
//   - RemoveTransition drops every side-table record that references it.
//
// Text grammar (one entry per line):
//
//	events:      LABEL[,OBSERVABLE-BITS,CONTROLLABLE-BITS]   e.g. a1,TF,FF
//	states:      [@]LABEL[,MARKED]                           e.g. @0,F
//	transitions: SOURCE,EVENT,TARGET[:SPECIAL,...]           e.g. 4,sigma,4:BAD
//
// ParseInput collects every malformed line into InputErrors instead of
// stopping at the first one; EventInput/StateInput/TransitionInput render the
// same grammar back deterministically.
//
// Document is the JSON-shaped intermediate representation. Export and Build
// convert between a Model and a Document; both the JSON and the binary codecs
// go through it.
//
// Concurrency: a model is not safe for concurrent mutation. Read-only use
// from several goroutines is fine once construction has finished.
package automaton
