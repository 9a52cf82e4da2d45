// SPDX-License-Identifier: MIT

package bincodec

import (
	"errors"

	"github.com/katalvlaran/jdec/automaton"
)

var (
	// ErrCorruptHeader is returned when the header file is truncated or holds
	// out-of-range values.
	ErrCorruptHeader = errors.New("bincodec: corrupt header file")

	// ErrCorruptBody is returned when the body file is absent, truncated or
	// inconsistent with its header.
	ErrCorruptBody = errors.New("bincodec: missing or corrupt body file")

	// ErrUnknownType is returned for an unrecognized type byte. It is the
	// automaton sentinel so callers can match either.
	ErrUnknownType = automaton.ErrUnknownType
)
