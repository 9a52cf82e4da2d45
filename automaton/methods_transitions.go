// SPDX-License-Identifier: MIT
// File: methods_transitions.go
// Role: transition lifecycle and bad-transition bookkeeping.

package automaton

import "fmt"

// AddTransition adds src --event--> dst. Nondeterminism (same event, other
// target) is allowed; an identical triple is rejected.
//
// Errors: ErrStateNotFound, ErrEventNotFound, ErrDuplicateTransition.
// Complexity: O(deg(src)).
func (a *Automaton) AddTransition(src int64, event int, dst int64) error {
	s, ok := a.states[src]
	if !ok {
		return fmt.Errorf("%w: source %d", ErrStateNotFound, src)
	}
	if !a.StateExists(dst) {
		return fmt.Errorf("%w: target %d", ErrStateNotFound, dst)
	}
	if a.Event(event) == nil {
		return fmt.Errorf("%w: %d", ErrEventNotFound, event)
	}
	if s.indexOf(event, dst) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateTransition, TransitionData{src, event, dst})
	}
	s.transitions = append(s.transitions, Transition{Event: event, Target: dst})

	return nil
}

// RemoveTransition removes src --event--> dst and its bad-transition mark.
//
// Errors: ErrTransitionNotFound.
func (a *Automaton) RemoveTransition(src int64, event int, dst int64) error {
	s, ok := a.states[src]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTransitionNotFound, TransitionData{src, event, dst})
	}
	i := s.indexOf(event, dst)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTransitionNotFound, TransitionData{src, event, dst})
	}
	s.transitions = append(s.transitions[:i], s.transitions[i+1:]...)
	a.badTransitions = removeTriple(a.badTransitions, TransitionData{src, event, dst})

	return nil
}

// MarkTransitionAsBad records an existing transition as bad. Only plain
// automata carry bad transitions. Marking twice is a no-op.
//
// Errors: ErrWrongType, ErrTransitionNotFound.
func (a *Automaton) MarkTransitionAsBad(src int64, event int, dst int64) error {
	if a.kind != TypeAutomaton {
		return fmt.Errorf("%w: bad transitions on %s", ErrWrongType, a.kind)
	}
	td := TransitionData{src, event, dst}
	if err := a.requireTransition(td); err != nil {
		return err
	}
	if indexOfTriple(a.badTransitions, td) < 0 {
		a.badTransitions = append(a.badTransitions, td)
	}

	return nil
}

func (a *Automaton) requireTransition(td TransitionData) error {
	if !a.TransitionExists(td.InitialStateID, td.EventID, td.TargetStateID) {
		return fmt.Errorf("%w: %s", ErrTransitionNotFound, td)
	}

	return nil
}

func removeTriple(list []TransitionData, td TransitionData) []TransitionData {
	out := list[:0]
	for _, t := range list {
		if t != td {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// Special-transition hooks of the plain automaton: only BAD exists.

const tokenBad = "BAD"

func (a *Automaton) specialTokens(td TransitionData) []string {
	if indexOfTriple(a.badTransitions, td) >= 0 {
		return []string{tokenBad}
	}

	return nil
}

func (a *Automaton) applySpecial(name string, args []string, td TransitionData) error {
	if name != tokenBad {
		return fmt.Errorf("%w: %s on %s", ErrWrongType, name, a.kind)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: BAD takes no arguments", ErrMalformedLine)
	}

	return a.MarkTransitionAsBad(td.InitialStateID, td.EventID, td.TargetStateID)
}

func (a *Automaton) exportSpecials(doc *Document) {
	doc.BadTransitions = cloneTriples(a.badTransitions)
}

func (a *Automaton) importSpecials(doc *Document) error {
	if a.kind != TypeAutomaton {
		if len(doc.BadTransitions) > 0 {
			return fmt.Errorf("%w: bad transitions on %s", ErrWrongType, a.kind)
		}

		return nil
	}
	if doc.hasUStructureTables() {
		return fmt.Errorf("%w: U-Structure tables on %s", ErrWrongType, a.kind)
	}
	for _, td := range doc.BadTransitions {
		if err := a.MarkTransitionAsBad(td.InitialStateID, td.EventID, td.TargetStateID); err != nil {
			return err
		}
	}

	return nil
}
