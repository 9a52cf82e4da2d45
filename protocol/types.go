// SPDX-License-Identifier: MIT

package protocol

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/jdec/automaton"
)

const (
	// DefaultMaxCandidates bounds the candidate list unless overridden.
	DefaultMaxCandidates = 20
	// MaxCandidatesLimit is the largest candidate list a bitmask can index.
	MaxCandidatesLimit = 63
)

var (
	// ErrNilStructure is returned when a nil U-Structure is passed.
	ErrNilStructure = errors.New("protocol: U-Structure is nil")

	// ErrTooManyCandidates is returned when the candidate list exceeds the
	// configured maximum.
	ErrTooManyCandidates = errors.New("protocol: too many candidate communications")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("protocol: invalid option supplied")
)

// Protocol is a set of communications, kept in candidate order.
type Protocol []automaton.CommunicationData

// Option configures FeasibleProtocols.
type Option func(*options)

type options struct {
	ctx           context.Context
	maxCandidates int
	err           error
}

func defaultOptions() options {
	return options{ctx: context.Background(), maxCandidates: DefaultMaxCandidates}
}

// WithContext sets a context checked between enumeration steps. nil is
// ignored.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithMaxCandidates sets the candidate bound, 1..MaxCandidatesLimit.
func WithMaxCandidates(n int) Option {
	return func(o *options) {
		if n < 1 || n > MaxCandidatesLimit {
			o.err = fmt.Errorf("%w: max candidates %d outside [1,%d]", ErrOptionViolation, n, MaxCandidatesLimit)
			return
		}
		o.maxCandidates = n
	}
}
