// SPDX-License-Identifier: MIT

package protocol

import (
	"fmt"
	"math/bits"

	"github.com/katalvlaran/jdec/automaton"
	"github.com/katalvlaran/jdec/reach"
)

// checkEvery is the number of subsets examined between context checks.
const checkEvery = 1 << 10

// FilterCommunications keeps the communications whose sender may talk to
// every receiver. permissions[s][r] grants controller s the right to send to
// controller r (0-based). Communications without a sender, or naming a
// controller outside the matrix, are dropped.
func FilterCommunications(comms []automaton.CommunicationData, permissions [][]bool) []automaton.CommunicationData {
	var out []automaton.CommunicationData
	for _, c := range comms {
		if allowed(c, permissions) {
			out = append(out, c)
		}
	}

	return out
}

func allowed(c automaton.CommunicationData, permissions [][]bool) bool {
	s := c.Sender()
	if s < 0 || s >= len(permissions) {
		return false
	}
	for _, r := range c.Receivers() {
		if r >= len(permissions[s]) || !permissions[s][r] {
			return false
		}
	}

	return true
}

// FeasibleProtocols returns every feasible protocol drawn from candidates,
// ordered by size and then by candidate position. With trimDominated, a
// protocol is omitted when a smaller feasible protocol is a subset of it.
//
// A U-Structure without violations makes every subset feasible, so the
// result is the whole powerset of candidates, or only the empty protocol
// with trimDominated. A violation that no candidate can precede yields no
// protocols at all.
//
// Errors: ErrNilStructure, ErrTooManyCandidates, ErrOptionViolation,
// context errors, reach errors.
// Complexity: O(2^n · v) for n candidates and v violations.
func FeasibleProtocols(u *automaton.UStructure, candidates []automaton.CommunicationData, trimDominated bool, opts ...Option) ([]Protocol, error) {
	if u == nil {
		return nil, ErrNilStructure
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(candidates) > o.maxCandidates {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCandidates, len(candidates), o.maxCandidates)
	}

	reqs, err := requirements(u, candidates)
	if err != nil {
		return nil, err
	}
	for _, r := range reqs {
		if r == 0 {
			u.Logger().Debug("violation cannot be preceded by any candidate", "candidates", len(candidates))
			return nil, nil
		}
	}

	n := len(candidates)
	var found []uint64
	var out []Protocol
	steps := 0
	// Walk subsets by size so smaller protocols are found before their supersets.
	for k := 0; k <= n; k++ {
		for mask := firstOfSize(k); mask < 1<<uint(n); mask = nextOfSize(mask) {
			// cancellation check, amortized over checkEvery masks
			if steps++; steps%checkEvery == 0 {
				if err := o.ctx.Err(); err != nil {
					return nil, err
				}
			}
			// every violation needs at least one of its preceding candidates
			if !hitsAll(mask, reqs) {
				continue
			}
			// found only holds smaller or equal-size masks at this point
			if trimDominated && dominated(mask, found) {
				continue
			}
			found = append(found, mask)
			out = append(out, pick(candidates, mask))
		}
		if err := o.ctx.Err(); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// requirements returns, per violation, the bitmask of candidates that can
// occur before it.
func requirements(u *automaton.UStructure, candidates []automaton.CommunicationData) ([]uint64, error) {
	a := u.Base()
	ids, err := reach.Accessible(a)
	if err != nil {
		return nil, err
	}
	accessible := make(map[int64]bool, len(ids))
	for _, id := range ids {
		accessible[id] = true
	}

	// Forward searches are cached per candidate target state.
	forward := map[int64]*reach.Result{}
	violations := u.Violations()
	reqs := make([]uint64, len(violations))
	for i, c := range candidates {
		if !accessible[c.InitialStateID] {
			continue
		}
		res, ok := forward[c.TargetStateID]
		if !ok {
			if res, err = reach.BFS(a, []int64{c.TargetStateID}); err != nil {
				return nil, err
			}
			forward[c.TargetStateID] = res
		}
		for j, v := range violations {
			if res.Visited(v.InitialStateID) {
				reqs[j] |= 1 << uint(i)
			}
		}
	}

	return reqs, nil
}

func hitsAll(mask uint64, reqs []uint64) bool {
	for _, r := range reqs {
		if mask&r == 0 {
			return false
		}
	}

	return true
}

func dominated(mask uint64, found []uint64) bool {
	for _, f := range found {
		if mask&f == f {
			return true
		}
	}

	return false
}

func pick(candidates []automaton.CommunicationData, mask uint64) Protocol {
	p := make(Protocol, 0, bits.OnesCount64(mask))
	for i := range candidates {
		if mask&(1<<uint(i)) != 0 {
			p = append(p, candidates[i])
		}
	}

	return p
}

func firstOfSize(k int) uint64 { return 1<<uint(k) - 1 }

// nextOfSize returns the next larger integer with the same popcount
// (Gosper's hack). Zero has no successor and maps past any bound.
func nextOfSize(x uint64) uint64 {
	if x == 0 {
		return ^uint64(0)
	}
	c := x & -x
	r := x + c

	return (((r ^ x) >> 2) / c) | r
}
