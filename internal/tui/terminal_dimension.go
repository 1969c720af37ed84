// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidTerminalDimension is the sentinel error wrapped by InvalidTerminalDimensionError.
var ErrInvalidTerminalDimension = errors.New("invalid terminal dimension")

type (
	// TerminalDimension is a size in terminal cells (columns or lines),
	// used for things like the word-wrap width of glamour output. The
	// zero value means "auto", letting the terminal decide. Negative
	// values are invalid.
	TerminalDimension int

	// InvalidTerminalDimensionError is returned when a TerminalDimension
	// is negative. It wraps ErrInvalidTerminalDimension for errors.Is()
	// compatibility.
	InvalidTerminalDimensionError struct {
		Value TerminalDimension
	}
)

// String returns the dimension in decimal.
func (d TerminalDimension) String() string { return strconv.Itoa(int(d)) }

// IsValid reports whether the dimension is usable: zero (auto) or any
// positive cell count.
func (d TerminalDimension) IsValid() (bool, []error) {
	if d < 0 {
		return false, []error{&InvalidTerminalDimensionError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTerminalDimensionError.
func (e *InvalidTerminalDimensionError) Error() string {
	return fmt.Sprintf("invalid terminal dimension %d: must be >= 0 (0 means auto)", e.Value)
}

// Unwrap returns ErrInvalidTerminalDimension for errors.Is() compatibility.
func (e *InvalidTerminalDimensionError) Unwrap() error { return ErrInvalidTerminalDimension }
