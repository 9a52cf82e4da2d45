// SPDX-License-Identifier: MIT

package automaton

import "fmt"

// AddEvent adds an event and returns its ID. observable and controllable
// must have one entry per controller; both are copied.
//
// Errors: ErrControllerCount, ErrInvalidLabel, ErrLabelTooLong,
// ErrDuplicateLabel, ErrEventCapacity.
func (a *Automaton) AddEvent(label string, observable, controllable []bool) (int, error) {
	if len(observable) != a.nControllers || len(controllable) != a.nControllers {
		return 0, fmt.Errorf("%w: got %d/%d flags, want %d",
			ErrControllerCount, len(observable), len(controllable), a.nControllers)
	}
	if err := ValidateLabel(label); err != nil {
		return 0, err
	}
	if _, dup := a.eventsByLabel[label]; dup {
		return 0, fmt.Errorf("%w: event %q", ErrDuplicateLabel, label)
	}
	id := len(a.events) + 1
	if id > a.eventCapacity {
		grown := RoundEventCapacity(id)
		if grown < id {
			return 0, ErrEventCapacity
		}
		a.eventCapacity = grown
	}

	e := &Event{
		ID:           id,
		Label:        label,
		Observable:   append([]bool(nil), observable...),
		Controllable: append([]bool(nil), controllable...),
	}
	a.events = append(a.events, e)
	a.eventsByLabel[label] = e

	return id, nil
}

// AllTrue returns a slice of n true values, handy for events that every
// controller observes or controls.
func AllTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}

	return out
}
