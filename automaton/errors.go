// SPDX-License-Identifier: MIT

package automaton

import "errors"

// Sentinel errors returned by model mutators, Build and the text parser.
// Callers branch with errors.Is; context is attached with %w at call sites.
var (
	// ErrInvalidLabel indicates an empty label or one outside the label grammar.
	ErrInvalidLabel = errors.New("automaton: invalid label")

	// ErrLabelTooLong indicates a label longer than MaxLabelLength bytes.
	ErrLabelTooLong = errors.New("automaton: label too long")

	// ErrDuplicateLabel indicates a state or event label already in use.
	ErrDuplicateLabel = errors.New("automaton: duplicate label")

	// ErrStateCapacity indicates the state ID space is exhausted.
	ErrStateCapacity = errors.New("automaton: state capacity exceeded")

	// ErrEventCapacity indicates the event ID space is exhausted.
	ErrEventCapacity = errors.New("automaton: event capacity exceeded")

	// ErrInvalidStateID indicates a non-positive or already used state ID.
	ErrInvalidStateID = errors.New("automaton: invalid state id")

	// ErrStateNotFound indicates a reference to a missing state.
	ErrStateNotFound = errors.New("automaton: state not found")

	// ErrEventNotFound indicates a reference to a missing event.
	ErrEventNotFound = errors.New("automaton: event not found")

	// ErrDuplicateTransition indicates the same (source, event, target) twice.
	ErrDuplicateTransition = errors.New("automaton: duplicate transition")

	// ErrTransitionNotFound indicates a special-transition record or removal
	// referencing a transition that does not exist.
	ErrTransitionNotFound = errors.New("automaton: transition not found")

	// ErrControllerCount indicates a per-controller array whose length is not
	// the number of controllers.
	ErrControllerCount = errors.New("automaton: wrong number of controllers")

	// ErrWrongType indicates an operation not supported by the model variant,
	// e.g. a bad transition on a U-Structure.
	ErrWrongType = errors.New("automaton: operation not supported by automaton type")

	// ErrUnknownType indicates a Type value outside the closed variant set.
	ErrUnknownType = errors.New("automaton: unknown automaton type")

	// ErrInvalidRole indicates a communication role outside the role alphabet.
	ErrInvalidRole = errors.New("automaton: invalid communication role")

	// ErrInvalidValue indicates a non-finite cost or a probability outside [0,1].
	ErrInvalidValue = errors.New("automaton: invalid numeric value")

	// ErrMalformedLine indicates a text input line that does not match the grammar.
	ErrMalformedLine = errors.New("automaton: malformed input line")

	// ErrMultipleInitialStates indicates more than one '@' state in the input.
	ErrMultipleInitialStates = errors.New("automaton: multiple initial states")

	// ErrInvalidDocument indicates a Document whose counts or references are
	// inconsistent.
	ErrInvalidDocument = errors.New("automaton: invalid document")
)
