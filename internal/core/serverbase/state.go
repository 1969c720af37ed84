// SPDX-License-Identifier: MPL-2.0

package serverbase

import (
	"errors"
	"fmt"
)

const (
	// StateCreated: the server exists but Start has not been called.
	StateCreated State = iota
	// StateStarting: Start is underway, the listener not yet ready.
	StateStarting
	// StateRunning: the server is serving requests.
	StateRunning
	// StateStopping: Stop was called, graceful shutdown in progress.
	StateStopping
	// StateStopped is terminal: shutdown completed.
	StateStopped
	// StateFailed is terminal: startup failed or a fatal error occurred.
	StateFailed
)

// ErrInvalidState is the sentinel error wrapped by InvalidStateError.
var ErrInvalidState = errors.New("invalid state")

type (
	// State is the lifecycle position of a server. It is stored in an
	// atomic int32, so reads never block transitions.
	State int32

	// InvalidStateError is returned when a State value is not one of the
	// defined lifecycle states. It wraps ErrInvalidState for errors.Is()
	// compatibility.
	InvalidStateError struct {
		Value State
	}
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Error implements the error interface for InvalidStateError.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %d (valid: 0=created, 1=starting, 2=running, 3=stopping, 4=stopped, 5=failed)", e.Value)
}

// Unwrap returns ErrInvalidState for errors.Is() compatibility.
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// Validate returns an error for values outside the defined lifecycle
// states.
func (s State) Validate() error {
	switch s {
	case StateCreated, StateStarting, StateRunning, StateStopping, StateStopped, StateFailed:
		return nil
	default:
		return &InvalidStateError{Value: s}
	}
}

// IsTerminal reports whether the server can never leave this state.
func (s State) IsTerminal() bool {
	return s == StateStopped || s == StateFailed
}
