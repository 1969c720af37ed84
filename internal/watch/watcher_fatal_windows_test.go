// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestIsFatalFsnotifyError(t *testing.T) {
	t.Parallel()

	// Handle and memory exhaustion kill the watcher, even when wrapped.
	for _, errno := range []syscall.Errno{errnoTooManyOpenFiles, errnoInvalidHandle, errnoNotEnoughMemory} {
		if !isFatalFsnotifyError(errno) {
			t.Errorf("isFatalFsnotifyError(%v) = false, want true", errno)
		}
		wrapped := fmt.Errorf("fsnotify: %w", errno)
		if !isFatalFsnotifyError(wrapped) {
			t.Errorf("isFatalFsnotifyError(%v) = false for wrapped errno", wrapped)
		}
	}

	// Per-path problems are survivable; the watcher logs and moves on.
	for _, err := range []error{
		syscall.Errno(5), // ERROR_ACCESS_DENIED
		syscall.Errno(2), // ERROR_FILE_NOT_FOUND
		errors.New("docs\\drafts vanished mid-walk"),
	} {
		if isFatalFsnotifyError(err) {
			t.Errorf("isFatalFsnotifyError(%v) = true, want false", err)
		}
	}
}
