// SPDX-License-Identifier: MIT

package reach

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for reachability searches.
var (
	// ErrAutomatonNil is returned when a nil automaton is passed.
	ErrAutomatonNil = errors.New("reach: automaton is nil")

	// ErrStartStateNotFound is returned when a start state is absent.
	ErrStartStateNotFound = errors.New("reach: start state not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reach: invalid option supplied")
)

// Option configures a search via functional arguments. Invalid options are
// recorded and surfaced as ErrOptionViolation when the search starts.
type Option func(*Options)

// Options holds the parameters of a search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Backward follows transitions from target to source.
	Backward bool

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// OnVisit is called for each visited state; an error aborts the search.
	OnVisit func(id int64, depth int) error

	// FilterTransition skips a transition when it returns false. It always
	// receives the transition in its forward orientation.
	FilterTransition func(src int64, event int, dst int64) bool

	err error
}

// DefaultOptions returns background context, forward direction, no depth
// limit, no filtering and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Ctx:              context.Background(),
		OnVisit:          func(int64, int) error { return nil },
		FilterTransition: func(int64, int, int64) bool { return true },
	}
}

// WithContext sets a context for cancellation. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithBackward searches against the direction of transitions.
func WithBackward() Option {
	return func(o *Options) { o.Backward = true }
}

// WithMaxDepth limits the search depth; 0 means no limit and negative
// values are rejected with ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnVisit registers a visit hook.
func WithOnVisit(fn func(id int64, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithFilterTransition registers a transition filter.
func WithFilterTransition(fn func(src int64, event int, dst int64) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterTransition = fn
		}
	}
}

// Result holds the outcome of a search.
type Result struct {
	// Order lists visited states in visit sequence.
	Order []int64
	// Depth maps a visited state to its distance from the nearest start.
	Depth map[int64]int
	// Parent maps a visited state to its predecessor in the search tree.
	Parent map[int64]int64
}

// Visited reports whether id was reached.
func (r *Result) Visited(id int64) bool {
	_, ok := r.Depth[id]

	return ok
}

// PathTo reconstructs the state path from a start state to dest.
func (r *Result) PathTo(dest int64) ([]int64, error) {
	if !r.Visited(dest) {
		return nil, fmt.Errorf("reach: no path to %d", dest)
	}
	path := []int64{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
