// SPDX-License-Identifier: MIT
// Package reach provides breadth-first reachability over an automaton's
// transition graph.
//
// What:
//
//   - BFS: forward or backward search from one or more start states,
//     with hooks, depth limiting, transition filtering and cancellation.
//   - Accessible: states reachable from the initial state.
//   - CoAccessible: states from which a marked state is reachable.
//   - Reaches: single-pair reachability.
//
// Determinism: successors are expanded in transition insertion order and
// start states in the order given, so Order and Parent are reproducible.
//
// Complexity: O(V + E) time and O(V) memory per search. Backward searches
// build a predecessor index first, O(V + E).
//
// Errors:
//
//   - ErrAutomatonNil         nil automaton
//   - ErrStartStateNotFound   a start state does not exist
//   - ErrOptionViolation      invalid option value
//   - context errors          search cancelled through WithContext
//   - hook errors             returned by OnVisit, wrapped
package reach
