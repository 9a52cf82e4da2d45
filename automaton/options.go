// SPDX-License-Identifier: MIT
// File: options.go
// Role: functional options for model constructors and Build.
// Policy:
//   - Option constructors validate and panic on meaningless inputs.
//   - Mutators and Build never panic on user data; they return sentinels.

package automaton

import (
	"fmt"
	"log/slog"
)

// Option configures a model before it is populated.
type Option func(*config)

type config struct {
	nControllers  int
	stateCapacity int64
	eventCapacity int
	logger        *slog.Logger
}

func newConfig(opts []Option) config {
	c := config{
		nControllers:  DefaultControllers,
		stateCapacity: DefaultStateCapacity,
		eventCapacity: DefaultEventCapacity,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithControllers sets the number of controllers. Panics outside
// [1, MaxControllers].
func WithControllers(n int) Option {
	if n < 1 || n > MaxControllers {
		panic(fmt.Sprintf("automaton: WithControllers(%d) outside [1,%d]", n, MaxControllers))
	}
	return func(c *config) { c.nControllers = n }
}

// WithStateCapacity declares the expected state ID space; it is rounded up
// to a power-of-256 boundary. Panics on negative values.
func WithStateCapacity(capacity int64) Option {
	if capacity < 0 {
		panic("automaton: WithStateCapacity(<0)")
	}
	return func(c *config) { c.stateCapacity = capacity }
}

// WithEventCapacity declares the expected event ID space; it is rounded up
// to a power-of-256 boundary. Panics on negative values.
func WithEventCapacity(capacity int) Option {
	if capacity < 0 {
		panic("automaton: WithEventCapacity(<0)")
	}
	return func(c *config) { c.eventCapacity = capacity }
}

// WithLogger sets the logger used for lenient-load warnings. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("automaton: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}
