// SPDX-License-Identifier: MIT
// File: document.go
// Role: the JSON-shaped intermediate representation shared by every codec.
// Determinism:
//   - Events and states are emitted in ID order, transitions and side-table
//     records in insertion order. Empty lists are nil so that documents built
//     by different codecs compare equal.

package automaton

import "fmt"

// Document is the serializable form of a Model.
type Document struct {
	Type          Type       `json:"type"`
	NStates       int64      `json:"nStates"`
	InitialState  int64      `json:"initialState"`
	NControllers  int        `json:"nControllers"`
	StateCapacity int64      `json:"stateCapacity"`
	EventCapacity int        `json:"eventCapacity"`
	Events        []EventDoc `json:"events"`
	States        []StateDoc `json:"states"`

	BadTransitions []TransitionData `json:"badTransitions,omitempty"`

	UnconditionalViolations []TransitionData        `json:"unconditionalViolations,omitempty"`
	ConditionalViolations   []TransitionData        `json:"conditionalViolations,omitempty"`
	PotentialCommunications []CommunicationData     `json:"potentialCommunications,omitempty"`
	InvalidCommunications   []TransitionData        `json:"invalidCommunications,omitempty"`
	NashCommunications      []NashCommunicationData `json:"nashCommunications,omitempty"`
	DisablementDecisions    []DisablementData       `json:"disablementDecisions,omitempty"`
}

// EventDoc is one event of a Document.
type EventDoc struct {
	ID           int    `json:"id"`
	Label        string `json:"label"`
	Observable   []bool `json:"observable"`
	Controllable []bool `json:"controllable"`
}

// StateDoc is one state of a Document with its transitions inline.
type StateDoc struct {
	ID          int64        `json:"id"`
	Label       string       `json:"label"`
	Marked      bool         `json:"marked"`
	Enablement  bool         `json:"enablement,omitempty"`
	Disablement bool         `json:"disablement,omitempty"`
	Transitions []Transition `json:"transitions,omitempty"`
}

// Export converts m into a Document.
// Complexity: O(V log V + E + S) where S is the number of special records.
func Export(m Model) *Document {
	a := m.Base()
	doc := &Document{
		Type:          m.Type(),
		NStates:       a.NumberOfStates(),
		InitialState:  a.initialStateID,
		NControllers:  a.nControllers,
		StateCapacity: a.stateCapacity,
		EventCapacity: a.eventCapacity,
	}
	for _, e := range a.events {
		doc.Events = append(doc.Events, EventDoc{
			ID:           e.ID,
			Label:        e.Label,
			Observable:   append([]bool(nil), e.Observable...),
			Controllable: append([]bool(nil), e.Controllable...),
		})
	}
	for _, s := range a.States() {
		sd := StateDoc{ID: s.ID, Label: s.Label, Marked: s.Marked, Enablement: s.Enablement, Disablement: s.Disablement}
		if len(s.transitions) > 0 {
			sd.Transitions = s.Transitions()
		}
		doc.States = append(doc.States, sd)
	}
	m.exportSpecials(doc)

	return doc
}

// Build constructs a Model from a Document. Options apply to the new model;
// the controller count and capacities always come from the document.
//
// Errors: ErrUnknownType, ErrInvalidDocument, or any mutator error wrapped
// with the offending element.
func Build(doc *Document, opts ...Option) (Model, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidDocument)
	}
	if doc.NControllers < 1 || doc.NControllers > MaxControllers {
		return nil, fmt.Errorf("%w: %d controllers", ErrInvalidDocument, doc.NControllers)
	}
	if doc.NStates != int64(len(doc.States)) {
		return nil, fmt.Errorf("%w: nStates=%d but %d states listed", ErrInvalidDocument, doc.NStates, len(doc.States))
	}
	if doc.StateCapacity < 0 || doc.EventCapacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity", ErrInvalidDocument)
	}

	all := append(append([]Option(nil), opts...),
		WithControllers(doc.NControllers),
		WithStateCapacity(doc.StateCapacity),
		WithEventCapacity(doc.EventCapacity),
	)
	m, err := NewModel(doc.Type, all...)
	if err != nil {
		return nil, fmt.Errorf("type %d: %w", uint8(doc.Type), err)
	}
	a := m.Base()

	// Events must be dense and listed in ID order.
	for i, e := range doc.Events {
		if e.ID != i+1 {
			return nil, fmt.Errorf("%w: event %q has id %d, want %d", ErrInvalidDocument, e.Label, e.ID, i+1)
		}
		if _, err := a.AddEvent(e.Label, e.Observable, e.Controllable); err != nil {
			return nil, fmt.Errorf("event %d: %w", e.ID, err)
		}
	}
	// All states first so transitions may point forward.
	for _, s := range doc.States {
		st := &State{ID: s.ID, Label: s.Label, Marked: s.Marked, Enablement: s.Enablement, Disablement: s.Disablement}
		if err := a.addState(st, false); err != nil {
			return nil, fmt.Errorf("state %d: %w", s.ID, err)
		}
	}
	for _, s := range doc.States {
		for _, t := range s.Transitions {
			if err := a.AddTransition(s.ID, t.Event, t.Target); err != nil {
				return nil, fmt.Errorf("state %d: %w", s.ID, err)
			}
		}
	}
	if err := a.SetInitialState(doc.InitialState); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	// Special records last: each must name a transition added above.
	if err := m.importSpecials(doc); err != nil {
		return nil, err
	}

	return m, nil
}

// hasUStructureTables reports whether any of the six U-Structure tables is non-empty.
func (d *Document) hasUStructureTables() bool {
	return len(d.UnconditionalViolations)+len(d.ConditionalViolations)+
		len(d.PotentialCommunications)+len(d.InvalidCommunications)+
		len(d.NashCommunications)+len(d.DisablementDecisions) > 0
}
