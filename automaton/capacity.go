// SPDX-License-Identifier: MIT
// File: capacity.go
// Role: ID-width and record-size arithmetic shared by the model and the
//       legacy binary codec. Both sides must compute identical values or a
//       file written by one cannot be read by the other.

package automaton

import "math"

const (
	// MaxLabelLength is the longest accepted label, in bytes.
	MaxLabelLength = 100
	// MaxControllers is the largest supported number of controllers.
	MaxControllers = 10
	// DefaultControllers is used when WithControllers is not given.
	DefaultControllers = 1

	// MaxStateCapacity bounds state IDs (signed 64-bit).
	MaxStateCapacity int64 = math.MaxInt64
	// MaxEventCapacity bounds event IDs (signed 32-bit).
	MaxEventCapacity int = math.MaxInt32

	// DefaultStateCapacity is the smallest rounded capacity (one byte per ID).
	DefaultStateCapacity int64 = 255
	// DefaultEventCapacity is the smallest rounded capacity (one byte per ID).
	DefaultEventCapacity int = 255

	// MinTransitionCapacity and MinLabelLength keep body records non-empty.
	MinTransitionCapacity = 1
	MinLabelLength        = 1
)

// BytesPerID returns how many bytes are needed to store IDs up to capacity.
// Capacities below 1 need one byte.
func BytesPerID(capacity uint64) int {
	if capacity < 1 {
		return 1
	}
	n := 0
	for temp := capacity; temp > 0; temp >>= 8 {
		n++
	}

	return n
}

// MaxIDRepresentable returns 256^nBytes - 1, saturating at math.MaxUint64.
func MaxIDRepresentable(nBytes int) uint64 {
	if nBytes <= 0 {
		return 0
	}
	if nBytes >= 8 {
		return math.MaxUint64
	}

	return (uint64(1) << (8 * uint(nBytes))) - 1
}

// BytesPerState returns the size of one body-file state record: a flag byte,
// the zero-padded label and transitionCapacity (event, target) slots.
func BytesPerState(nBytesPerEventID, nBytesPerStateID, transitionCapacity, labelLength int) int64 {
	return 1 + int64(labelLength) + int64(transitionCapacity)*int64(nBytesPerEventID+nBytesPerStateID)
}

// RoundStateCapacity rounds c up to the next power-of-256 boundary, clamped
// to MaxStateCapacity.
func RoundStateCapacity(c int64) int64 {
	if c < 0 {
		c = 0
	}
	m := MaxIDRepresentable(BytesPerID(uint64(c)))
	if m > uint64(MaxStateCapacity) {
		return MaxStateCapacity
	}

	return int64(m)
}

// RoundEventCapacity rounds c up to the next power-of-256 boundary, clamped
// to MaxEventCapacity.
func RoundEventCapacity(c int) int {
	if c < 0 {
		c = 0
	}
	m := MaxIDRepresentable(BytesPerID(uint64(c)))
	if m > uint64(MaxEventCapacity) {
		return MaxEventCapacity
	}

	return int(m)
}
