// SPDX-License-Identifier: MIT
// File: specials.go
// Role: U-Structure special-transition hooks: text tokens, Document export
//       and lenient Document import.

package automaton

import (
	"fmt"
	"strconv"
	"strings"
)

// Special-transition token names of the text grammar.
const (
	tokenUnconditionalViolation = "UNCONDITIONAL_VIOLATION"
	tokenConditionalViolation   = "CONDITIONAL_VIOLATION"
	tokenInvalidCommunication   = "INVALID_COMMUNICATION"
	tokenPotentialCommunication = "POTENTIAL_COMMUNICATION"
	tokenNashCommunication      = "NASH_COMMUNICATION"
	tokenDisablementDecision    = "DISABLEMENT_DECISION"

	tokenArgSep = "-"
)

func (u *UStructure) specialTokens(td TransitionData) []string {
	var out []string
	if indexOfTriple(u.unconditionalViolations, td) >= 0 {
		out = append(out, tokenUnconditionalViolation)
	}
	if indexOfTriple(u.conditionalViolations, td) >= 0 {
		out = append(out, tokenConditionalViolation)
	}
	if indexOfTriple(u.invalidCommunications, td) >= 0 {
		out = append(out, tokenInvalidCommunication)
	}
	for _, c := range u.potentialCommunications {
		if c.TransitionData == td {
			out = append(out, tokenPotentialCommunication+tokenArgSep+formatRoles(c.Roles))
		}
	}
	for _, n := range u.nashCommunications {
		if n.TransitionData == td {
			out = append(out, strings.Join([]string{
				tokenNashCommunication,
				formatRoles(n.Roles),
				formatFloat(n.Cost),
				formatFloat(n.Probability),
			}, tokenArgSep))
		}
	}
	for _, d := range u.disablementDecisions {
		if d.TransitionData == td {
			out = append(out, tokenDisablementDecision+tokenArgSep+formatBits(d.Controllers))
		}
	}

	return out
}

func (u *UStructure) applySpecial(name string, args []string, td TransitionData) error {
	src, ev, dst := td.InitialStateID, td.EventID, td.TargetStateID
	switch name {
	case tokenUnconditionalViolation, tokenConditionalViolation, tokenInvalidCommunication:
		if len(args) != 0 {
			return fmt.Errorf("%w: %s takes no arguments", ErrMalformedLine, name)
		}
		switch name {
		case tokenUnconditionalViolation:
			return u.AddUnconditionalViolation(src, ev, dst)
		case tokenConditionalViolation:
			return u.AddConditionalViolation(src, ev, dst)
		default:
			return u.AddInvalidCommunication(src, ev, dst)
		}
	case tokenPotentialCommunication:
		if len(args) != 1 {
			return fmt.Errorf("%w: %s needs roles", ErrMalformedLine, name)
		}
		roles, err := parseRoles(args[0])
		if err != nil {
			return err
		}

		return u.AddPotentialCommunication(src, ev, dst, roles)
	case tokenNashCommunication:
		if len(args) != 3 {
			return fmt.Errorf("%w: %s needs roles, cost and probability", ErrMalformedLine, name)
		}
		roles, err := parseRoles(args[0])
		if err != nil {
			return err
		}
		cost, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%w: cost %q", ErrMalformedLine, args[1])
		}
		p, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("%w: probability %q", ErrMalformedLine, args[2])
		}

		return u.AddNashCommunication(src, ev, dst, roles, cost, p)
	case tokenDisablementDecision:
		if len(args) != 1 {
			return fmt.Errorf("%w: %s needs controller bits", ErrMalformedLine, name)
		}
		bits, err := parseBits(args[0])
		if err != nil {
			return err
		}

		return u.AddDisablementDecision(src, ev, dst, bits)
	case tokenBad:
		return fmt.Errorf("%w: %s on %s", ErrWrongType, name, u.kind)
	default:
		return fmt.Errorf("%w: unknown special transition %q", ErrMalformedLine, name)
	}
}

func (u *UStructure) exportSpecials(doc *Document) {
	doc.UnconditionalViolations = u.UnconditionalViolations()
	doc.ConditionalViolations = u.ConditionalViolations()
	doc.PotentialCommunications = u.PotentialCommunications()
	doc.InvalidCommunications = u.InvalidCommunications()
	doc.NashCommunications = u.NashCommunications()
	doc.DisablementDecisions = u.DisablementDecisions()
}

// importSpecials is lenient about role values: an unrecognized role is
// logged and stored as RoleUnset, matching the binary reader.
func (u *UStructure) importSpecials(doc *Document) error {
	if len(doc.BadTransitions) > 0 {
		return fmt.Errorf("%w: bad transitions on %s", ErrWrongType, u.kind)
	}
	for _, td := range doc.UnconditionalViolations {
		if err := u.AddUnconditionalViolation(td.InitialStateID, td.EventID, td.TargetStateID); err != nil {
			return fmt.Errorf("unconditional violation: %w", err)
		}
	}
	for _, td := range doc.ConditionalViolations {
		if err := u.AddConditionalViolation(td.InitialStateID, td.EventID, td.TargetStateID); err != nil {
			return fmt.Errorf("conditional violation: %w", err)
		}
	}
	for _, c := range doc.PotentialCommunications {
		c = CommunicationData{TransitionData: c.TransitionData, Roles: u.lenientRoles(c.TransitionData, c.Roles)}
		if err := u.checkLenientCommunication(c); err != nil {
			return fmt.Errorf("potential communication: %w", err)
		}
		u.appendCommunication(c)
	}
	for _, td := range doc.InvalidCommunications {
		if err := u.AddInvalidCommunication(td.InitialStateID, td.EventID, td.TargetStateID); err != nil {
			return fmt.Errorf("invalid communication: %w", err)
		}
	}
	for _, n := range doc.NashCommunications {
		n.Roles = u.lenientRoles(n.TransitionData, n.Roles)
		if err := u.checkLenientCommunication(n.CommunicationData); err != nil {
			return fmt.Errorf("nash communication: %w", err)
		}
		u.appendNash(n)
	}
	for _, d := range doc.DisablementDecisions {
		if err := u.AddDisablementDecision(d.InitialStateID, d.EventID, d.TargetStateID, d.Controllers); err != nil {
			return fmt.Errorf("disablement decision: %w", err)
		}
	}

	return nil
}

func (u *UStructure) lenientRoles(td TransitionData, roles []CommunicationRole) []CommunicationRole {
	out := cloneRoles(roles)
	for i, r := range out {
		if r.Valid() || r == RoleUnset {
			continue
		}
		u.logger.Warn("unknown communication role, slot left unset",
			"transition", td.String(), "controller", i+1, "value", int(r))
		out[i] = RoleUnset
	}

	return out
}

func (u *UStructure) checkLenientCommunication(c CommunicationData) error {
	if err := u.requireTransition(c.TransitionData); err != nil {
		return err
	}
	if len(c.Roles) != u.nControllers {
		return fmt.Errorf("%w: got %d roles, want %d", ErrControllerCount, len(c.Roles), u.nControllers)
	}

	return nil
}

// SubsetConstruction rejects every special token.

func (s *SubsetConstruction) specialTokens(TransitionData) []string { return nil }

func (s *SubsetConstruction) applySpecial(name string, _ []string, _ TransitionData) error {
	return fmt.Errorf("%w: %s on %s", ErrWrongType, name, s.kind)
}

func (s *SubsetConstruction) exportSpecials(*Document) {}

func (s *SubsetConstruction) importSpecials(doc *Document) error {
	if len(doc.BadTransitions) > 0 || doc.hasUStructureTables() {
		return fmt.Errorf("%w: special transitions on %s", ErrWrongType, s.kind)
	}

	return nil
}

func formatRoles(roles []CommunicationRole) string {
	var b strings.Builder
	for _, r := range roles {
		b.WriteRune(r.Rune())
	}

	return b.String()
}

func parseRoles(s string) ([]CommunicationRole, error) {
	out := make([]CommunicationRole, 0, len(s))
	for _, ch := range s {
		r, ok := RoleFromRune(ch)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, ch)
		}
		out = append(out, r)
	}

	return out, nil
}

func formatBits(bits []bool) string {
	var b strings.Builder
	for _, v := range bits {
		if v {
			b.WriteByte('T')
		} else {
			b.WriteByte('F')
		}
	}

	return b.String()
}

func parseBits(s string) ([]bool, error) {
	out := make([]bool, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'T', 't':
			out = append(out, true)
		case 'F', 'f':
			out = append(out, false)
		default:
			return nil, fmt.Errorf("%w: bit %q in %q", ErrMalformedLine, s[i], s)
		}
	}

	return out, nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// splitSpecial splits "NAME-arg-arg" into its name and arguments. Nash
// arguments are split so that a negative cost and exponents survive.
func splitSpecial(tok string) (string, []string) {
	name, rest, found := strings.Cut(tok, tokenArgSep)
	if !found {
		return tok, nil
	}
	if name != tokenNashCommunication {
		return name, []string{rest}
	}
	roles, values, found := strings.Cut(rest, tokenArgSep)
	if !found {
		return name, []string{roles}
	}
	for i := len(values) - 1; i > 0; i-- {
		if values[i] == '-' && values[i-1] != 'e' && values[i-1] != 'E' {
			return name, []string{roles, values[:i], values[i+1:]}
		}
	}

	return name, []string{roles, values}
}
