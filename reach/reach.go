// SPDX-License-Identifier: MIT

package reach

import (
	"fmt"

	"github.com/katalvlaran/jdec/automaton"
)

type queueItem struct {
	id    int64
	depth int
}

type edge struct {
	event int
	next  int64
}

// walker encapsulates mutable search state.
type walker struct {
	a     *automaton.Automaton
	opts  Options
	preds map[int64][]automaton.TransitionData
	queue []queueItem
	res   *Result
}

// BFS searches from every start state at once (multi-source) and returns the
// visited set with depths and parents.
func BFS(a *automaton.Automaton, starts []int64, opts ...Option) (*Result, error) {
	if a == nil {
		return nil, ErrAutomatonNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	for _, id := range starts {
		if !a.StateExists(id) {
			return nil, fmt.Errorf("%w: %d", ErrStartStateNotFound, id)
		}
	}

	n := int(a.NumberOfStates())
	w := &walker{
		a:     a,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order:  make([]int64, 0, n),
			Depth:  make(map[int64]int, n),
			Parent: make(map[int64]int64, n),
		},
	}
	if o.Backward {
		w.preds = predecessors(a)
	}
	// Seed queue with every start at depth 0; duplicates collapse.
	for _, id := range starts {
		if !w.res.Visited(id) {
			w.enqueue(id, 0, 0)
		}
	}

	return w.res, w.loop()
}

func (w *walker) enqueue(id int64, d int, parent int64) {
	w.res.Depth[id] = d
	if parent != 0 {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		// dequeue and record visit order
		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("reach: OnVisit error at %d: %w", item.id, err)
		}
		// depth limit stops expansion, not the visit itself
		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, e := range w.edges(item.id) {
			if w.res.Visited(e.next) {
				continue
			}
			w.enqueue(e.next, next, item.id)
		}
	}

	return nil
}

// edges returns the filtered neighbours of id in the search direction.
func (w *walker) edges(id int64) []edge {
	var out []edge
	if w.opts.Backward {
		for _, td := range w.preds[id] {
			if w.opts.FilterTransition(td.InitialStateID, td.EventID, td.TargetStateID) {
				out = append(out, edge{event: td.EventID, next: td.InitialStateID})
			}
		}

		return out
	}
	for _, t := range w.a.State(id).Transitions() {
		if w.opts.FilterTransition(id, t.Event, t.Target) {
			out = append(out, edge{event: t.Event, next: t.Target})
		}
	}

	return out
}

func predecessors(a *automaton.Automaton) map[int64][]automaton.TransitionData {
	preds := make(map[int64][]automaton.TransitionData)
	for _, td := range a.Transitions() {
		preds[td.TargetStateID] = append(preds[td.TargetStateID], td)
	}

	return preds
}

// Accessible returns the states reachable from the initial state in visit
// order. An automaton without an initial state has no accessible states.
func Accessible(a *automaton.Automaton, opts ...Option) ([]int64, error) {
	if a == nil {
		return nil, ErrAutomatonNil
	}
	if a.InitialStateID() == 0 {
		return nil, nil
	}
	res, err := BFS(a, []int64{a.InitialStateID()}, opts...)
	if err != nil {
		return nil, err
	}

	return res.Order, nil
}

// CoAccessible returns the states that can reach a marked state.
func CoAccessible(a *automaton.Automaton, opts ...Option) ([]int64, error) {
	if a == nil {
		return nil, ErrAutomatonNil
	}
	var marked []int64
	for _, s := range a.States() {
		if s.Marked {
			marked = append(marked, s.ID)
		}
	}
	res, err := BFS(a, marked, append(opts, WithBackward())...)
	if err != nil {
		return nil, err
	}

	return res.Order, nil
}

// Reaches reports whether dst is reachable from src (every state reaches
// itself).
func Reaches(a *automaton.Automaton, src, dst int64, opts ...Option) (bool, error) {
	res, err := BFS(a, []int64{src}, opts...)
	if err != nil {
		return false, err
	}

	return res.Visited(dst), nil
}
