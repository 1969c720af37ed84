// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidListenPort is the sentinel error wrapped by InvalidListenPortError.
var ErrInvalidListenPort = errors.New("invalid listen port")

type (
	// ListenPort is the TCP port the preview server binds to. The zero
	// value asks the operating system to pick a free port, which is what
	// tests and "folio serve" with no --port flag rely on. Explicit
	// values must fall in 1-65535.
	ListenPort int

	// InvalidListenPortError is returned when a ListenPort value falls
	// outside 0-65535. It wraps ErrInvalidListenPort for errors.Is()
	// compatibility.
	InvalidListenPortError struct {
		Value ListenPort
	}
)

// String returns the decimal representation of the port.
func (p ListenPort) String() string { return strconv.Itoa(int(p)) }

// Validate returns an error for ports outside 0-65535. Zero is valid
// and means auto-select.
func (p ListenPort) Validate() error {
	if p < 0 || p > 65535 {
		return &InvalidListenPortError{Value: p}
	}
	return nil
}

// Error implements the error interface for InvalidListenPortError.
func (e *InvalidListenPortError) Error() string {
	return fmt.Sprintf("invalid listen port %d: must be 0 (auto-select) or 1-65535", e.Value)
}

// Unwrap returns ErrInvalidListenPort for errors.Is() compatibility.
func (e *InvalidListenPortError) Unwrap() error { return ErrInvalidListenPort }
