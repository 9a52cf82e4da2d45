// SPDX-License-Identifier: MIT
// Package protocol selects communication protocols for a U-Structure.
//
// A protocol is a set of potential communications that controllers agree to
// carry out. It is feasible when, for every violation recorded in the
// U-Structure, it contains at least one communication that can happen
// before that violation: the communication's source state is reachable from
// the initial state and the violation's source state is reachable from the
// communication's target.
//
// FilterCommunications narrows candidates by a sender×receiver permission
// matrix. FeasibleProtocols enumerates feasible subsets of the candidates
// by increasing size, optionally dropping any protocol that contains a
// smaller feasible one.
//
// Enumeration walks a powerset, so candidate lists are bounded by
// WithMaxCandidates (default DefaultMaxCandidates, hard limit
// MaxCandidatesLimit).
package protocol
