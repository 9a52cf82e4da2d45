// SPDX-License-Identifier: MIT
// File: ustructure.go
// Role: U-Structure variants and their six special-transition side-tables.
// Policy:
//   - Every add validates that the referenced transition exists and that
//     per-controller arrays have one entry per controller.
//   - Tables are append-only; an identical record added twice is stored once.
//   - Getters return deep copies in insertion order.

package automaton

import (
	"fmt"
	"math"
)

// UStructure is an automaton annotated with violations, communications and
// disablement decisions.
type UStructure struct {
	*Automaton

	unconditionalViolations []TransitionData
	conditionalViolations   []TransitionData
	potentialCommunications []CommunicationData
	invalidCommunications   []TransitionData
	nashCommunications      []NashCommunicationData
	disablementDecisions    []DisablementData
}

// PrunedUStructure is a U-Structure after pruning by a protocol. It keeps
// the same side-tables.
type PrunedUStructure struct {
	*UStructure
}

// SubsetConstruction is an automaton produced by subset construction. It
// carries no special-transition payload.
type SubsetConstruction struct {
	*Automaton
}

var (
	_ Model = (*UStructure)(nil)
	_ Model = (*PrunedUStructure)(nil)
	_ Model = (*SubsetConstruction)(nil)
)

// NewUStructure returns an empty U-Structure.
func NewUStructure(opts ...Option) *UStructure {
	return &UStructure{Automaton: newAutomaton(TypeUStructure, newConfig(opts))}
}

// NewPrunedUStructure returns an empty pruned U-Structure.
func NewPrunedUStructure(opts ...Option) *PrunedUStructure {
	return &PrunedUStructure{UStructure: &UStructure{Automaton: newAutomaton(TypePrunedUStructure, newConfig(opts))}}
}

// NewSubsetConstruction returns an empty subset construction.
func NewSubsetConstruction(opts ...Option) *SubsetConstruction {
	return &SubsetConstruction{Automaton: newAutomaton(TypeSubsetConstruction, newConfig(opts))}
}

// AddUnconditionalViolation records an unconditional violation on an
// existing transition.
func (u *UStructure) AddUnconditionalViolation(src int64, event int, dst int64) error {
	return u.appendTriple(&u.unconditionalViolations, TransitionData{src, event, dst})
}

// AddConditionalViolation records a conditional violation on an existing
// transition.
func (u *UStructure) AddConditionalViolation(src int64, event int, dst int64) error {
	return u.appendTriple(&u.conditionalViolations, TransitionData{src, event, dst})
}

// AddInvalidCommunication records an invalid communication on an existing
// transition.
func (u *UStructure) AddInvalidCommunication(src int64, event int, dst int64) error {
	return u.appendTriple(&u.invalidCommunications, TransitionData{src, event, dst})
}

// AddPotentialCommunication records a potential communication with one role
// per controller.
//
// Errors: ErrTransitionNotFound, ErrControllerCount, ErrInvalidRole.
func (u *UStructure) AddPotentialCommunication(src int64, event int, dst int64, roles []CommunicationRole) error {
	c := CommunicationData{TransitionData: TransitionData{src, event, dst}, Roles: cloneRoles(roles)}
	if err := u.checkCommunication(c); err != nil {
		return err
	}
	u.appendCommunication(c)

	return nil
}

// AddNashCommunication records a communication with a finite cost and a
// probability in [0,1].
//
// Errors: ErrTransitionNotFound, ErrControllerCount, ErrInvalidRole,
// ErrInvalidValue.
func (u *UStructure) AddNashCommunication(src int64, event int, dst int64, roles []CommunicationRole, cost, probability float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return fmt.Errorf("%w: cost %v", ErrInvalidValue, cost)
	}
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return fmt.Errorf("%w: probability %v", ErrInvalidValue, probability)
	}
	n := NashCommunicationData{
		CommunicationData: CommunicationData{TransitionData: TransitionData{src, event, dst}, Roles: cloneRoles(roles)},
		Cost:              cost,
		Probability:       probability,
	}
	if err := u.checkCommunication(n.CommunicationData); err != nil {
		return err
	}
	u.appendNash(n)

	return nil
}

// AddDisablementDecision records which controllers disable a transition.
//
// Errors: ErrTransitionNotFound, ErrControllerCount.
func (u *UStructure) AddDisablementDecision(src int64, event int, dst int64, controllers []bool) error {
	td := TransitionData{src, event, dst}
	if err := u.requireTransition(td); err != nil {
		return err
	}
	if len(controllers) != u.nControllers {
		return fmt.Errorf("%w: got %d, want %d", ErrControllerCount, len(controllers), u.nControllers)
	}
	d := DisablementData{TransitionData: td, Controllers: append([]bool(nil), controllers...)}
	for _, existing := range u.disablementDecisions {
		if existing.TransitionData == td && equalBools(existing.Controllers, d.Controllers) {
			return nil
		}
	}
	u.disablementDecisions = append(u.disablementDecisions, d)

	return nil
}

// UnconditionalViolations returns the unconditional violations.
func (u *UStructure) UnconditionalViolations() []TransitionData {
	return cloneTriples(u.unconditionalViolations)
}

// ConditionalViolations returns the conditional violations.
func (u *UStructure) ConditionalViolations() []TransitionData {
	return cloneTriples(u.conditionalViolations)
}

// InvalidCommunications returns the invalid communications.
func (u *UStructure) InvalidCommunications() []TransitionData {
	return cloneTriples(u.invalidCommunications)
}

// PotentialCommunications returns the potential communications.
func (u *UStructure) PotentialCommunications() []CommunicationData {
	return cloneCommunications(u.potentialCommunications)
}

// NashCommunications returns the Nash communications.
func (u *UStructure) NashCommunications() []NashCommunicationData {
	if len(u.nashCommunications) == 0 {
		return nil
	}
	out := make([]NashCommunicationData, len(u.nashCommunications))
	for i, n := range u.nashCommunications {
		out[i] = n
		out[i].Roles = cloneRoles(n.Roles)
	}

	return out
}

// DisablementDecisions returns the disablement decisions.
func (u *UStructure) DisablementDecisions() []DisablementData {
	if len(u.disablementDecisions) == 0 {
		return nil
	}
	out := make([]DisablementData, len(u.disablementDecisions))
	for i, d := range u.disablementDecisions {
		out[i] = DisablementData{TransitionData: d.TransitionData, Controllers: append([]bool(nil), d.Controllers...)}
	}

	return out
}

// Communications returns potential and Nash communications together, the
// candidate pool for protocol generation.
func (u *UStructure) Communications() []CommunicationData {
	out := u.PotentialCommunications()
	for _, n := range u.nashCommunications {
		out = append(out, CommunicationData{TransitionData: n.TransitionData, Roles: cloneRoles(n.Roles)})
	}

	return out
}

// Violations returns unconditional then conditional violations.
func (u *UStructure) Violations() []TransitionData {
	out := u.UnconditionalViolations()

	return append(out, u.conditionalViolations...)
}

// IsDisablementStateOf reports whether some disablement decision leaves
// state id on the given event.
func (u *UStructure) IsDisablementStateOf(id int64, event int) bool {
	for _, d := range u.disablementDecisions {
		if d.InitialStateID == id && d.EventID == event {
			return true
		}
	}

	return false
}

// IsEnablementStateOf reports whether state id is an enablement state with
// an outgoing, non-disabled transition on event.
func (u *UStructure) IsEnablementStateOf(id int64, event int) bool {
	s := u.State(id)
	if s == nil || !s.Enablement || u.IsDisablementStateOf(id, event) {
		return false
	}
	for _, t := range s.transitions {
		if t.Event == event {
			return true
		}
	}

	return false
}

// RemoveTransition removes the transition and every record that references it.
func (u *UStructure) RemoveTransition(src int64, event int, dst int64) error {
	if err := u.Automaton.RemoveTransition(src, event, dst); err != nil {
		return err
	}
	td := TransitionData{src, event, dst}
	u.unconditionalViolations = removeTriple(u.unconditionalViolations, td)
	u.conditionalViolations = removeTriple(u.conditionalViolations, td)
	u.invalidCommunications = removeTriple(u.invalidCommunications, td)
	u.potentialCommunications = filterCommunications(u.potentialCommunications, td)
	u.nashCommunications = filterNash(u.nashCommunications, td)
	u.disablementDecisions = filterDisablements(u.disablementDecisions, td)

	return nil
}

func (u *UStructure) appendTriple(list *[]TransitionData, td TransitionData) error {
	if err := u.requireTransition(td); err != nil {
		return err
	}
	if indexOfTriple(*list, td) < 0 {
		*list = append(*list, td)
	}

	return nil
}

func (u *UStructure) checkCommunication(c CommunicationData) error {
	if err := u.requireTransition(c.TransitionData); err != nil {
		return err
	}
	if len(c.Roles) != u.nControllers {
		return fmt.Errorf("%w: got %d roles, want %d", ErrControllerCount, len(c.Roles), u.nControllers)
	}
	for i, r := range c.Roles {
		if !r.Valid() {
			return fmt.Errorf("%w: controller %d has %d", ErrInvalidRole, i+1, r)
		}
	}

	return nil
}

func (u *UStructure) appendCommunication(c CommunicationData) {
	for _, existing := range u.potentialCommunications {
		if existing.TransitionData == c.TransitionData && equalRoles(existing.Roles, c.Roles) {
			return
		}
	}
	u.potentialCommunications = append(u.potentialCommunications, c)
}

func (u *UStructure) appendNash(n NashCommunicationData) {
	for _, existing := range u.nashCommunications {
		if existing.TransitionData == n.TransitionData && equalRoles(existing.Roles, n.Roles) &&
			existing.Cost == n.Cost && existing.Probability == n.Probability {
			return
		}
	}
	u.nashCommunications = append(u.nashCommunications, n)
}

func cloneRoles(in []CommunicationRole) []CommunicationRole {
	return append([]CommunicationRole(nil), in...)
}

func cloneCommunications(in []CommunicationData) []CommunicationData {
	if len(in) == 0 {
		return nil
	}
	out := make([]CommunicationData, len(in))
	for i, c := range in {
		out[i] = CommunicationData{TransitionData: c.TransitionData, Roles: cloneRoles(c.Roles)}
	}

	return out
}

func equalRoles(a, b []CommunicationRole) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func filterCommunications(list []CommunicationData, td TransitionData) []CommunicationData {
	var out []CommunicationData
	for _, c := range list {
		if c.TransitionData != td {
			out = append(out, c)
		}
	}

	return out
}

func filterNash(list []NashCommunicationData, td TransitionData) []NashCommunicationData {
	var out []NashCommunicationData
	for _, n := range list {
		if n.TransitionData != td {
			out = append(out, n)
		}
	}

	return out
}

func filterDisablements(list []DisablementData, td TransitionData) []DisablementData {
	var out []DisablementData
	for _, d := range list {
		if d.TransitionData != td {
			out = append(out, d)
		}
	}

	return out
}
