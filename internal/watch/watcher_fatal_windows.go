// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// Win32 error codes that leave the watcher unable to continue.
const (
	// ERROR_TOO_MANY_OPEN_FILES (4): the process handle limit is
	// exhausted, the Windows analogue of EMFILE.
	errnoTooManyOpenFiles = syscall.Errno(4)
	// ERROR_INVALID_HANDLE (6): the directory handle went stale, usually
	// because the watched directory was deleted or its volume unmounted.
	errnoInvalidHandle = syscall.Errno(6)
	// ERROR_NOT_ENOUGH_MEMORY (8): ReadDirectoryChangesW could not
	// allocate its notification buffer.
	errnoNotEnoughMemory = syscall.Errno(8)
)

// isFatalFsnotifyError reports whether an error from the fsnotify error
// channel means the watcher cannot keep going. ReadDirectoryChangesW has
// no inotify-style watch limit, but handle exhaustion, stale handles, and
// buffer allocation failures all leave the watcher dead. Anything else is
// logged and watching continues.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, errnoTooManyOpenFiles) ||
		errors.Is(err, errnoInvalidHandle) ||
		errors.Is(err, errnoNotEnoughMemory)
}
