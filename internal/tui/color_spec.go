// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidColorSpec is the sentinel error wrapped by InvalidColorSpecError.
var ErrInvalidColorSpec = errors.New("invalid color spec")

type (
	// ColorSpec names a color for styled output: a CSS hex code, an ANSI
	// color number, or a color name, whatever lipgloss accepts. The CLI
	// palette in cmd/folio is built from these. The zero value ("")
	// means "no color", leaving the terminal default in place.
	ColorSpec string

	// InvalidColorSpecError is returned when a ColorSpec value is
	// whitespace-only. It wraps ErrInvalidColorSpec for errors.Is()
	// compatibility.
	InvalidColorSpecError struct {
		Value ColorSpec
	}
)

// String returns the spec as a plain string.
func (c ColorSpec) String() string { return string(c) }

// IsValid reports whether the spec is usable. Empty is fine (no color);
// anything else must contain at least one non-whitespace character.
func (c ColorSpec) IsValid() (bool, []error) {
	if c != "" && strings.TrimSpace(string(c)) == "" {
		return false, []error{&InvalidColorSpecError{Value: c}}
	}
	return true, nil
}

// Error implements the error interface for InvalidColorSpecError.
func (e *InvalidColorSpecError) Error() string {
	return fmt.Sprintf("invalid color spec %q: must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidColorSpec for errors.Is() compatibility.
func (e *InvalidColorSpecError) Unwrap() error { return ErrInvalidColorSpec }
