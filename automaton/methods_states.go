// SPDX-License-Identifier: MIT
// File: methods_states.go
// Role: state lifecycle.
// Policy:
//   - AddState assigns maxStateID+1; AddStateWithID keeps caller IDs so sparse
//     ID spaces survive a load.
//   - Capacity grows to the next power-of-256 boundary; ErrStateCapacity only
//     when MaxStateCapacity itself is exhausted.

package automaton

import "fmt"

// AddState adds a state and returns its ID. If initial is true the state
// becomes the initial state.
//
// Errors: ErrInvalidLabel, ErrLabelTooLong, ErrDuplicateLabel, ErrStateCapacity.
// Complexity: O(len(label)).
func (a *Automaton) AddState(label string, marked, initial bool) (int64, error) {
	if a.maxStateID == MaxStateCapacity {
		return 0, ErrStateCapacity
	}
	id := a.maxStateID + 1
	if err := a.addState(&State{ID: id, Label: label, Marked: marked}, initial); err != nil {
		return 0, err
	}

	return id, nil
}

// AddStateWithID adds a state under an explicit ID. Gaps below id stay
// empty and are reported as non-existent.
//
// Errors: ErrInvalidStateID plus the AddState errors.
func (a *Automaton) AddStateWithID(id int64, label string, marked, initial bool) error {
	return a.addState(&State{ID: id, Label: label, Marked: marked}, initial)
}

func (a *Automaton) addState(s *State, initial bool) error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidStateID, s.ID)
	}
	if _, taken := a.states[s.ID]; taken {
		return fmt.Errorf("%w: %d already in use", ErrInvalidStateID, s.ID)
	}
	if err := ValidateLabel(s.Label); err != nil {
		return err
	}
	if _, dup := a.statesByLabel[s.Label]; dup {
		return fmt.Errorf("%w: state %q", ErrDuplicateLabel, s.Label)
	}
	if err := a.ensureStateCapacity(s.ID); err != nil {
		return err
	}

	a.states[s.ID] = s
	a.statesByLabel[s.Label] = s
	if s.ID > a.maxStateID {
		a.maxStateID = s.ID
	}
	if initial {
		a.initialStateID = s.ID
	}

	return nil
}

func (a *Automaton) ensureStateCapacity(id int64) error {
	if id <= a.stateCapacity {
		return nil
	}
	grown := RoundStateCapacity(id)
	if grown < id {
		return ErrStateCapacity
	}
	a.stateCapacity = grown

	return nil
}

// SetInitialState makes id the initial state; 0 clears it.
func (a *Automaton) SetInitialState(id int64) error {
	if id != 0 && !a.StateExists(id) {
		return fmt.Errorf("%w: %d", ErrStateNotFound, id)
	}
	a.initialStateID = id

	return nil
}

// SetStateFlags sets the enablement and disablement flags of a state.
func (a *Automaton) SetStateFlags(id int64, enablement, disablement bool) error {
	s, ok := a.states[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrStateNotFound, id)
	}
	s.Enablement, s.Disablement = enablement, disablement

	return nil
}
