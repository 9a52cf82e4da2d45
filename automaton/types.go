// SPDX-License-Identifier: MIT

package automaton

import "fmt"

// Type is the closed set of model variants. Its numeric value is the first
// byte of a .hdr file and the "type" field of a JSON document.
type Type uint8

const (
	// TypeAutomaton is a plain automaton; it may carry bad transitions.
	TypeAutomaton Type = iota
	// TypeUStructure is a U-Structure with the six special-transition tables.
	TypeUStructure
	// TypePrunedUStructure is a U-Structure pruned by a chosen protocol.
	TypePrunedUStructure
	// TypeSubsetConstruction is the result of a subset construction; it has
	// no special-transition payload.
	TypeSubsetConstruction
)

var typeNames = [...]string{
	TypeAutomaton:          "AUTOMATON",
	TypeUStructure:         "U_STRUCTURE",
	TypePrunedUStructure:   "PRUNED_U_STRUCTURE",
	TypeSubsetConstruction: "SUBSET_CONSTRUCTION",
}

// Valid reports whether t is one of the four known variants.
func (t Type) Valid() bool { return int(t) < len(typeNames) }

// String returns the upper-case variant name.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}

	return typeNames[t]
}

// CommunicationRole is the part a controller plays in a communication.
// The numeric value is the byte written to .hdr files and JSON documents.
type CommunicationRole int8

const (
	// RoleUnset marks a slot whose stored value was not recognized on load.
	RoleUnset CommunicationRole = -1
	// RoleNone means the controller takes no part ('*').
	RoleNone CommunicationRole = 0
	// RoleSender means the controller sends ('S').
	RoleSender CommunicationRole = 1
	// RoleReceiver means the controller receives ('R').
	RoleReceiver CommunicationRole = 2
)

// roleUnsetByte is how RoleUnset is persisted in binary files.
const roleUnsetByte byte = 0xFF

// RoleFromByte decodes a persisted role. ok is false for unknown values.
func RoleFromByte(b byte) (CommunicationRole, bool) {
	switch b {
	case byte(RoleNone), byte(RoleSender), byte(RoleReceiver):
		return CommunicationRole(b), true
	default:
		return RoleUnset, false
	}
}

// RoleFromRune decodes one character of the text grammar ('S', 'R', '*').
func RoleFromRune(r rune) (CommunicationRole, bool) {
	switch r {
	case 'S':
		return RoleSender, true
	case 'R':
		return RoleReceiver, true
	case '*':
		return RoleNone, true
	default:
		return RoleUnset, false
	}
}

// Valid reports whether r is None, Sender or Receiver.
func (r CommunicationRole) Valid() bool {
	return r == RoleNone || r == RoleSender || r == RoleReceiver
}

// Byte returns the persisted form of r.
func (r CommunicationRole) Byte() byte {
	if !r.Valid() {
		return roleUnsetByte
	}

	return byte(r)
}

// Rune returns the text-grammar character for r; '?' for RoleUnset.
func (r CommunicationRole) Rune() rune {
	switch r {
	case RoleSender:
		return 'S'
	case RoleReceiver:
		return 'R'
	case RoleNone:
		return '*'
	default:
		return '?'
	}
}

// String returns the role name.
func (r CommunicationRole) String() string {
	switch r {
	case RoleSender:
		return "SENDER"
	case RoleReceiver:
		return "RECEIVER"
	case RoleNone:
		return "NONE"
	default:
		return "UNSET"
	}
}

// StateFlags is the leading flag byte of a body-file state record.
type StateFlags uint8

const (
	// FlagMarked is set for marked (accepting) states.
	FlagMarked StateFlags = 1 << iota
	// FlagExists distinguishes a real state from an empty slot.
	FlagExists
	// FlagEnablement is set for enablement states.
	FlagEnablement
	// FlagDisablement is set for disablement states.
	FlagDisablement
)

// ReservedStateFlags are the four high bits, always written as zero.
const ReservedStateFlags StateFlags = 0xF0

// Has reports whether every bit of f is set.
func (s StateFlags) Has(f StateFlags) bool { return s&f == f }

// Transition is an outgoing edge of a State.
type Transition struct {
	Event  int   `json:"event"`
	Target int64 `json:"target"`
}

// TransitionData identifies a transition by its triple. It is the record
// type of bad transitions, violations and invalid communications.
type TransitionData struct {
	InitialStateID int64 `json:"initialStateID"`
	EventID        int   `json:"eventID"`
	TargetStateID  int64 `json:"targetStateID"`
}

// Triple returns the identifying triple itself; embedding types inherit it.
func (t TransitionData) Triple() TransitionData { return t }

// String renders the triple as "(src,event,dst)".
func (t TransitionData) String() string {
	return fmt.Sprintf("(%d,%d,%d)", t.InitialStateID, t.EventID, t.TargetStateID)
}

// CommunicationData is a potential communication: one role per controller.
type CommunicationData struct {
	TransitionData
	Roles []CommunicationRole `json:"roles"`
}

// Sender returns the index of the sending controller, or -1.
func (c CommunicationData) Sender() int {
	for i, r := range c.Roles {
		if r == RoleSender {
			return i
		}
	}

	return -1
}

// Receivers returns the indexes of all receiving controllers in order.
func (c CommunicationData) Receivers() []int {
	var out []int
	for i, r := range c.Roles {
		if r == RoleReceiver {
			out = append(out, i)
		}
	}

	return out
}

// NashCommunicationData is a communication annotated with a cost and the
// probability it is used.
type NashCommunicationData struct {
	CommunicationData
	Cost        float64 `json:"cost"`
	Probability float64 `json:"probability"`
}

// DisablementData records which controllers disable a transition.
type DisablementData struct {
	TransitionData
	Controllers []bool `json:"controllers"`
}

// Event is a transition type with per-controller observability and
// controllability.
type Event struct {
	ID           int
	Label        string
	Observable   []bool
	Controllable []bool
}

// IsVector reports whether the label is a vector label such as "<a,*,b>".
func (e *Event) IsVector() bool { return isVectorLabel(e.Label) }

// Vector returns the components of a vector label, or the label alone.
// Absent observations are returned as "*".
func (e *Event) Vector() []string { return vectorComponents(e.Label) }

// State is a node of the automaton.
type State struct {
	ID          int64
	Label       string
	Marked      bool
	Enablement  bool
	Disablement bool

	transitions []Transition
}

// Transitions returns a copy of the outgoing transitions in insertion order.
func (s *State) Transitions() []Transition {
	out := make([]Transition, len(s.transitions))
	copy(out, s.transitions)

	return out
}

// NumberOfTransitions returns the out-degree of s.
func (s *State) NumberOfTransitions() int { return len(s.transitions) }

// IsEnablementState reports the enablement flag.
func (s *State) IsEnablementState() bool { return s.Enablement }

// IsDisablementState reports the disablement flag.
func (s *State) IsDisablementState() bool { return s.Disablement }

// Flags packs the state properties into a body-file flag byte.
func (s *State) Flags() StateFlags {
	f := FlagExists
	if s.Marked {
		f |= FlagMarked
	}
	if s.Enablement {
		f |= FlagEnablement
	}
	if s.Disablement {
		f |= FlagDisablement
	}

	return f
}

func (s *State) indexOf(event int, target int64) int {
	for i, t := range s.transitions {
		if t.Event == event && t.Target == target {
			return i
		}
	}

	return -1
}
