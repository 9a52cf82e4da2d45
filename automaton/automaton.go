// SPDX-License-Identifier: MIT
// File: automaton.go
// Role: the Automaton core type, the sealed Model interface and read-only
//       accessors. Mutators live in methods_*.go.

package automaton

import (
	"log/slog"
	"sort"
)

// Model is the closed set of automaton variants: *Automaton, *UStructure,
// *PrunedUStructure and *SubsetConstruction. The unexported methods keep the
// set closed; each variant supplies its own special-transition behaviour.
type Model interface {
	// Base returns the shared automaton core.
	Base() *Automaton
	// Type returns the variant tag.
	Type() Type
	// RemoveTransition removes a transition and every special-transition
	// record that references it.
	RemoveTransition(src int64, event int, dst int64) error

	specialTokens(td TransitionData) []string
	applySpecial(name string, args []string, td TransitionData) error
	exportSpecials(doc *Document)
	importSpecials(doc *Document) error
}

// Automaton owns the states, events and transitions of a model.
//
// States are indexed by ID (sparse IDs allowed) and by label; events are
// dense, 1-based and also indexed by label. Declared capacities are kept
// rounded to power-of-256 boundaries and grow on demand.
type Automaton struct {
	kind           Type
	nControllers   int
	stateCapacity  int64
	eventCapacity  int
	initialStateID int64
	maxStateID     int64

	states        map[int64]*State
	statesByLabel map[string]*State
	events        []*Event // events[id-1]
	eventsByLabel map[string]*Event

	badTransitions []TransitionData

	logger *slog.Logger
}

var _ Model = (*Automaton)(nil)

// New returns an empty automaton of TypeAutomaton.
// Complexity: O(1).
func New(opts ...Option) *Automaton {
	return newAutomaton(TypeAutomaton, newConfig(opts))
}

func newAutomaton(kind Type, c config) *Automaton {
	return &Automaton{
		kind:          kind,
		nControllers:  c.nControllers,
		stateCapacity: RoundStateCapacity(c.stateCapacity),
		eventCapacity: RoundEventCapacity(c.eventCapacity),
		states:        make(map[int64]*State),
		statesByLabel: make(map[string]*State),
		eventsByLabel: make(map[string]*Event),
		logger:        c.logger,
	}
}

// NewModel constructs an empty model of the given variant.
func NewModel(t Type, opts ...Option) (Model, error) {
	c := newConfig(opts)
	switch t {
	case TypeAutomaton:
		return newAutomaton(t, c), nil
	case TypeUStructure:
		return &UStructure{Automaton: newAutomaton(t, c)}, nil
	case TypePrunedUStructure:
		return &PrunedUStructure{UStructure: &UStructure{Automaton: newAutomaton(t, c)}}, nil
	case TypeSubsetConstruction:
		return &SubsetConstruction{Automaton: newAutomaton(t, c)}, nil
	default:
		return nil, ErrUnknownType
	}
}

// Base returns a itself; embedding variants inherit it.
func (a *Automaton) Base() *Automaton { return a }

// Type returns the variant tag.
func (a *Automaton) Type() Type { return a.kind }

// NumberOfControllers returns the controller count fixed at construction.
func (a *Automaton) NumberOfControllers() int { return a.nControllers }

// NumberOfStates returns the number of existing states.
func (a *Automaton) NumberOfStates() int64 { return int64(len(a.states)) }

// NumberOfEvents returns the number of events.
func (a *Automaton) NumberOfEvents() int { return len(a.events) }

// InitialStateID returns the initial state, or 0 if none is set.
func (a *Automaton) InitialStateID() int64 { return a.initialStateID }

// MaxStateID returns the highest state ID in use, or 0.
func (a *Automaton) MaxStateID() int64 { return a.maxStateID }

// StateCapacity returns the rounded declared state capacity.
func (a *Automaton) StateCapacity() int64 { return a.stateCapacity }

// EventCapacity returns the rounded declared event capacity.
func (a *Automaton) EventCapacity() int { return a.eventCapacity }

// BytesPerStateID returns the body-file width of a state ID.
func (a *Automaton) BytesPerStateID() int { return BytesPerID(uint64(a.stateCapacity)) }

// BytesPerEventID returns the body-file width of an event ID.
func (a *Automaton) BytesPerEventID() int { return BytesPerID(uint64(a.eventCapacity)) }

// LabelLengthNeeded returns the longest state label in bytes, at least
// MinLabelLength.
// Complexity: O(V).
func (a *Automaton) LabelLengthNeeded() int {
	n := MinLabelLength
	for _, s := range a.states {
		if len(s.Label) > n {
			n = len(s.Label)
		}
	}

	return n
}

// TransitionCapacityNeeded returns the largest out-degree, at least
// MinTransitionCapacity.
// Complexity: O(V).
func (a *Automaton) TransitionCapacityNeeded() int {
	n := MinTransitionCapacity
	for _, s := range a.states {
		if len(s.transitions) > n {
			n = len(s.transitions)
		}
	}

	return n
}

// State returns the state with the given ID, or nil. The returned value is
// live; treat it as read-only.
func (a *Automaton) State(id int64) *State { return a.states[id] }

// StateByLabel returns the state with the given label, or nil.
func (a *Automaton) StateByLabel(label string) *State { return a.statesByLabel[label] }

// StateExists reports whether id names an existing state.
func (a *Automaton) StateExists(id int64) bool {
	_, ok := a.states[id]

	return ok
}

// States returns all states ordered by ID.
// Complexity: O(V log V).
func (a *Automaton) States() []*State {
	out := make([]*State, 0, len(a.states))
	for _, s := range a.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Event returns the event with the given ID, or nil.
func (a *Automaton) Event(id int) *Event {
	if id < 1 || id > len(a.events) {
		return nil
	}

	return a.events[id-1]
}

// EventByLabel returns the event with the given label, or nil.
func (a *Automaton) EventByLabel(label string) *Event { return a.eventsByLabel[label] }

// Events returns all events ordered by ID.
func (a *Automaton) Events() []*Event {
	out := make([]*Event, len(a.events))
	copy(out, a.events)

	return out
}

// Transitions returns every transition as a triple, ordered by source state
// ID and then insertion order.
// Complexity: O(V log V + E).
func (a *Automaton) Transitions() []TransitionData {
	var out []TransitionData
	for _, s := range a.States() {
		for _, t := range s.transitions {
			out = append(out, TransitionData{InitialStateID: s.ID, EventID: t.Event, TargetStateID: t.Target})
		}
	}

	return out
}

// NumberOfTransitions returns the total number of transitions.
func (a *Automaton) NumberOfTransitions() int {
	n := 0
	for _, s := range a.states {
		n += len(s.transitions)
	}

	return n
}

// TransitionExists reports whether src --event--> dst is in the graph.
// Complexity: O(deg(src)).
func (a *Automaton) TransitionExists(src int64, event int, dst int64) bool {
	s, ok := a.states[src]

	return ok && s.indexOf(event, dst) >= 0
}

// BadTransitions returns a copy of the bad-transition list in insertion order.
func (a *Automaton) BadTransitions() []TransitionData {
	return cloneTriples(a.badTransitions)
}

// IsBadTransition reports whether the triple is marked bad.
func (a *Automaton) IsBadTransition(src int64, event int, dst int64) bool {
	return indexOfTriple(a.badTransitions, TransitionData{src, event, dst}) >= 0
}

// Logger returns the logger configured for this model.
func (a *Automaton) Logger() *slog.Logger { return a.logger }

func cloneTriples(in []TransitionData) []TransitionData {
	if len(in) == 0 {
		return nil
	}
	out := make([]TransitionData, len(in))
	copy(out, in)

	return out
}

func indexOfTriple(list []TransitionData, td TransitionData) int {
	for i, t := range list {
		if t == td {
			return i
		}
	}

	return -1
}
