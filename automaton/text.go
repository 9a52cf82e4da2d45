// SPDX-License-Identifier: MIT
// File: text.go
// Role: the line-oriented text grammar used by editors: rendering and
//       batch parsing with per-line error collection.
// Determinism:
//   - Rendering is byte-stable: events and states by ID, transitions by
//     source ID then insertion order, special tokens in a fixed order.

package automaton

import (
	"fmt"
	"strings"
)

const (
	initialPrefix  = "@"
	fieldSep       = ','
	specialSep     = ":"
	lineSep        = "\n"
	bitTrue        = "T"
	bitFalse       = "F"
	eventFields    = 3
	stateMaxFields = 2
)

// Section names the text input a line belongs to.
type Section string

const (
	// SectionEvents is the event input.
	SectionEvents Section = "events"
	// SectionStates is the state input.
	SectionStates Section = "states"
	// SectionTransitions is the transition input.
	SectionTransitions Section = "transitions"
)

// LineError reports one rejected input line.
type LineError struct {
	Section Section
	Line    int // 1-based
	Text    string
	Err     error
}

// Error implements error.
func (e *LineError) Error() string {
	return fmt.Sprintf("%s line %d %q: %v", e.Section, e.Line, e.Text, e.Err)
}

// Unwrap exposes the underlying sentinel.
func (e *LineError) Unwrap() error { return e.Err }

// InputErrors collects every rejected line of a batch.
type InputErrors []*LineError

// Error implements error.
func (e InputErrors) Error() string {
	msgs := make([]string, len(e))
	for i, le := range e {
		msgs[i] = le.Error()
	}

	return fmt.Sprintf("automaton: %d input error(s): %s", len(e), strings.Join(msgs, "; "))
}

// Unwrap lets errors.Is match any line's sentinel.
func (e InputErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, le := range e {
		out[i] = le
	}

	return out
}

// EventInput renders the events as "LABEL,OBS,CTRL" lines.
func (a *Automaton) EventInput() string {
	lines := make([]string, 0, len(a.events))
	for _, e := range a.events {
		lines = append(lines, e.Label+string(fieldSep)+formatBits(e.Observable)+string(fieldSep)+formatBits(e.Controllable))
	}

	return strings.Join(lines, lineSep)
}

// StateInput renders the states as "[@]LABEL,MARKED" lines.
func (a *Automaton) StateInput() string {
	states := a.States()
	lines := make([]string, 0, len(states))
	for _, s := range states {
		var b strings.Builder
		if s.ID == a.initialStateID {
			b.WriteString(initialPrefix)
		}
		b.WriteString(s.Label)
		b.WriteByte(fieldSep)
		if s.Marked {
			b.WriteString(bitTrue)
		} else {
			b.WriteString(bitFalse)
		}
		lines = append(lines, b.String())
	}

	return strings.Join(lines, lineSep)
}

// TransitionInput renders m's transitions as "SRC,EVENT,DST[:SPECIAL,...]"
// lines using labels.
func TransitionInput(m Model) string {
	a := m.Base()
	var lines []string
	for _, s := range a.States() {
		for _, t := range s.transitions {
			line := s.Label + string(fieldSep) + a.events[t.Event-1].Label + string(fieldSep) + a.states[t.Target].Label
			td := TransitionData{s.ID, t.Event, t.Target}
			if tokens := m.specialTokens(td); len(tokens) > 0 {
				line += specialSep + strings.Join(tokens, string(fieldSep))
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, lineSep)
}

// Render returns EventInput + StateInput + TransitionInput, the canonical
// text form used for round-trip comparison.
func Render(m Model) string {
	a := m.Base()

	return a.EventInput() + a.StateInput() + TransitionInput(m)
}

// ParseInput builds a model of type t from the three text inputs. Valid
// lines are applied even when others fail; the returned error is then an
// InputErrors listing every rejected line.
func ParseInput(t Type, events, states, transitions string, opts ...Option) (Model, error) {
	m, err := NewModel(t, opts...)
	if err != nil {
		return nil, err
	}
	var errs InputErrors
	errs = append(errs, ParseEvents(m, events)...)
	errs = append(errs, ParseStates(m, states)...)
	errs = append(errs, ParseTransitions(m, transitions)...)
	if len(errs) > 0 {
		return m, errs
	}

	return m, nil
}

// ParseEvents adds one event per non-blank line. With only a label, the
// event is observable and controllable by every controller.
func ParseEvents(m Model, input string) InputErrors {
	a := m.Base()

	return eachLine(SectionEvents, input, func(line string) error {
		parts := splitTopLevel(line, fieldSep)
		obs, ctrl := AllTrue(a.nControllers), AllTrue(a.nControllers)
		switch len(parts) {
		case 1:
		case eventFields:
			var err error
			if obs, err = parseBits(parts[1]); err != nil {
				return err
			}
			if ctrl, err = parseBits(parts[2]); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: want LABEL[,OBSERVABLE,CONTROLLABLE]", ErrMalformedLine)
		}
		_, err := a.AddEvent(parts[0], obs, ctrl)

		return err
	})
}

// ParseStates adds one state per non-blank line; '@' marks the initial state.
func ParseStates(m Model, input string) InputErrors {
	a := m.Base()
	seenInitial := false

	return eachLine(SectionStates, input, func(line string) error {
		initial := strings.HasPrefix(line, initialPrefix)
		if initial {
			if seenInitial {
				return ErrMultipleInitialStates
			}
			line = strings.TrimPrefix(line, initialPrefix)
		}
		parts := splitTopLevel(line, fieldSep)
		marked := false
		switch len(parts) {
		case 1:
		case stateMaxFields:
			bits, err := parseBits(parts[1])
			if err != nil {
				return err
			}
			if len(bits) != 1 {
				return fmt.Errorf("%w: marked flag %q", ErrMalformedLine, parts[1])
			}
			marked = bits[0]
		default:
			return fmt.Errorf("%w: want [@]LABEL[,MARKED]", ErrMalformedLine)
		}
		if _, err := a.AddState(parts[0], marked, initial); err != nil {
			return err
		}
		if initial {
			seenInitial = true
		}

		return nil
	})
}

// ParseTransitions adds one transition per non-blank line, then applies any
// special-transition tokens after ':'. A line whose transition was added but
// whose special token fails is still reported.
func ParseTransitions(m Model, input string) InputErrors {
	a := m.Base()

	return eachLine(SectionTransitions, input, func(line string) error {
		head, specials, hasSpecials := strings.Cut(line, specialSep)
		parts := splitTopLevel(head, fieldSep)
		if len(parts) != 3 {
			return fmt.Errorf("%w: want SOURCE,EVENT,TARGET[:SPECIAL,...]", ErrMalformedLine)
		}
		// resolve labels to IDs
		src := a.StateByLabel(parts[0])
		if src == nil {
			return fmt.Errorf("%w: %q", ErrStateNotFound, parts[0])
		}
		ev := a.EventByLabel(parts[1])
		if ev == nil {
			return fmt.Errorf("%w: %q", ErrEventNotFound, parts[1])
		}
		dst := a.StateByLabel(parts[2])
		if dst == nil {
			return fmt.Errorf("%w: %q", ErrStateNotFound, parts[2])
		}
		if err := a.AddTransition(src.ID, ev.ID, dst.ID); err != nil {
			return err
		}
		if !hasSpecials {
			return nil
		}
		td := TransitionData{InitialStateID: src.ID, EventID: ev.ID, TargetStateID: dst.ID}
		// tokens apply in order; the first failure reports the line
		for _, tok := range strings.Split(specials, string(fieldSep)) {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				return fmt.Errorf("%w: empty special transition", ErrMalformedLine)
			}
			name, args := splitSpecial(tok)
			if err := m.applySpecial(name, args, td); err != nil {
				return err
			}
		}

		return nil
	})
}

func eachLine(section Section, input string, apply func(line string) error) InputErrors {
	var errs InputErrors
	for i, raw := range strings.Split(input, lineSep) {
		line := strings.TrimSpace(raw)
		// blank lines are skipped but still counted
		if line == "" {
			continue
		}
		if err := apply(line); err != nil {
			errs = append(errs, &LineError{Section: section, Line: i + 1, Text: line, Err: err})
		}
	}

	return errs
}
