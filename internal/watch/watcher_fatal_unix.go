// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatalFsnotifyError reports whether an error from the fsnotify error
// channel means the watcher cannot keep going. On Unix that is resource
// exhaustion: ENOSPC when the inotify watch limit is hit
// (fs.inotify.max_user_watches), EMFILE when the process is out of file
// descriptors, ENFILE when the whole system is. Anything else is logged
// and watching continues.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
