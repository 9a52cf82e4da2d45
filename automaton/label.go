// SPDX-License-Identifier: MIT

package automaton

import (
	"fmt"
	"strings"
)

const (
	vectorOpen  = '<'
	vectorClose = '>'
	absentLabel = "*"
)

// ValidateLabel checks a state or event label against the label grammar:
// letters, digits, '_', '*', '\'' and vector labels "<a,b,...>" whose commas
// only appear inside the brackets. Brackets may not nest.
func ValidateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLabel)
	}
	if len(label) > MaxLabelLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrLabelTooLong, len(label), MaxLabelLength)
	}
	depth := 0
	for _, r := range label {
		switch {
		case r == vectorOpen:
			if depth > 0 {
				return fmt.Errorf("%w: nested vector in %q", ErrInvalidLabel, label)
			}
			depth++
		case r == vectorClose:
			if depth == 0 {
				return fmt.Errorf("%w: unbalanced '>' in %q", ErrInvalidLabel, label)
			}
			depth--
		case r == ',':
			if depth == 0 {
				return fmt.Errorf("%w: ',' outside vector in %q", ErrInvalidLabel, label)
			}
		case isLabelRune(r):
		default:
			return fmt.Errorf("%w: character %q in %q", ErrInvalidLabel, r, label)
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: unbalanced '<' in %q", ErrInvalidLabel, label)
	}

	return nil
}

func isLabelRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		r == '_' || r == '*' || r == '\''
}

func isVectorLabel(label string) bool {
	return len(label) >= 2 && label[0] == vectorOpen && label[len(label)-1] == vectorClose
}

func vectorComponents(label string) []string {
	if !isVectorLabel(label) {
		return []string{label}
	}

	return strings.Split(label[1:len(label)-1], ",")
}

// splitTopLevel splits s on sep, ignoring separators inside vector brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case vectorOpen:
			depth++
		case vectorClose:
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}
