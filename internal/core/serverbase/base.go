// SPDX-License-Identifier: MPL-2.0

package serverbase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Base is the lifecycle core a concrete server embeds. It owns the state
// machine, the readiness and error channels, and the WaitGroup that tracks
// the server's goroutines.
//
// Instances are single-use. A Base that has reached Stopped or Failed
// cannot be restarted.
type Base struct {
	state   atomic.Int32
	stateMu sync.Mutex
	lastErr error

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	startedCh chan struct{}
	errCh     chan error
}

// NewBase creates a Base in the Created state. The error channel buffer
// defaults to 1; use WithErrorChannel to widen it.
func NewBase(opts ...Option) *Base {
	b := &Base{
		startedCh: make(chan struct{}),
		errCh:     make(chan error, 1),
	}
	b.state.Store(int32(StateCreated))

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// State reports the current lifecycle state without taking a lock.
func (b *Base) State() State {
	return State(b.state.Load())
}

// IsRunning reports whether the server has reached Running and not yet
// begun shutting down.
func (b *Base) IsRunning() bool {
	return b.State() == StateRunning
}

// Err exposes the asynchronous error channel. Errors reported while the
// server runs (a failed accept loop, a rebuild failure) arrive here.
func (b *Base) Err() <-chan error {
	return b.errCh
}

// LastError returns the error recorded by TransitionToFailed, or nil.
func (b *Base) LastError() error {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return b.lastErr
}

// TransitionToStarting moves Created to Starting and installs the internal
// lifecycle context. It is the first call inside a server's Start method.
//
// A context cancelled before this call fails the server immediately. The
// check happens before any state change so a goroutine started later can
// never observe Running on a dead context.
func (b *Base) TransitionToStarting(ctx context.Context) error {
	select {
	case <-ctx.Done():
		b.TransitionToFailed(fmt.Errorf("context cancelled before start: %w", ctx.Err()))
		return b.lastErr
	default:
	}

	if !b.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		return fmt.Errorf("cannot start server in state %s", State(b.state.Load()))
	}

	b.ctx, b.cancel = context.WithCancel(context.Background())

	return nil
}

// TransitionToRunning moves Starting to Running and closes the started
// channel, releasing every waiter. The server calls this once it is ready
// to accept requests.
func (b *Base) TransitionToRunning() {
	if b.state.CompareAndSwap(int32(StateStarting), int32(StateRunning)) {
		close(b.startedCh)
	}
}

// TransitionToFailed records err, moves to Failed, cancels the lifecycle
// context, and publishes the error on the error channel without blocking.
func (b *Base) TransitionToFailed(err error) {
	b.stateMu.Lock()
	b.lastErr = err
	b.stateMu.Unlock()

	b.state.Store(int32(StateFailed))

	if b.cancel != nil {
		b.cancel()
	}

	b.SendError(err)
}

// TransitionToStopping begins shutdown. It returns true when the caller
// owns the shutdown (the server was Starting or Running) and false when
// there is nothing to do: the server already stopped, already failed, is
// mid-shutdown, or never started. A Created server is moved straight to
// Stopped.
func (b *Base) TransitionToStopping() bool {
	for {
		current := State(b.state.Load())
		switch current {
		case StateStopped, StateFailed, StateStopping:
			return false
		case StateCreated:
			if b.state.CompareAndSwap(int32(StateCreated), int32(StateStopped)) {
				return false
			}
		case StateStarting, StateRunning:
			if !b.state.CompareAndSwap(int32(current), int32(StateStopping)) {
				continue
			}
			if b.cancel != nil {
				b.cancel()
			}
			return true
		default:
			return false
		}
	}
}

// TransitionToStopped marks shutdown complete. Call it only after
// WaitForShutdown has returned.
func (b *Base) TransitionToStopped() {
	b.state.Store(int32(StateStopped))
}

// WaitForReady blocks until the server reaches Running or ctx is done.
func (b *Base) WaitForReady(ctx context.Context) error {
	select {
	case <-b.startedCh:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for server ready: %w", ctx.Err())
	}
}

// WaitForShutdown blocks until every tracked goroutine has exited.
func (b *Base) WaitForShutdown() {
	b.wg.Wait()
}

// Context returns the lifecycle context created by TransitionToStarting.
// It is nil before the server starts.
func (b *Base) Context() context.Context {
	return b.ctx
}

// AddGoroutine registers a goroutine with the shutdown WaitGroup. Call it
// before the goroutine starts.
func (b *Base) AddGoroutine() {
	b.wg.Add(1)
}

// DoneGoroutine is the deferred counterpart of AddGoroutine.
func (b *Base) DoneGoroutine() {
	b.wg.Done()
}

// SendError publishes err on the error channel. When no consumer is
// draining the channel and its buffer is full, the error is dropped.
func (b *Base) SendError(err error) {
	select {
	case b.errCh <- err:
	default:
	}
}

// CloseErrChannel closes the error channel so range consumers terminate.
// Call it once, after the server is fully stopped.
func (b *Base) CloseErrChannel() {
	close(b.errCh)
}

// StartedChannel exposes the readiness channel for callers that want to
// select on it together with other events.
func (b *Base) StartedChannel() <-chan struct{} {
	return b.startedCh
}
