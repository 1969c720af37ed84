// SPDX-License-Identifier: MPL-2.0

package platform

// Named runtime.GOOS values. Config directory resolution and path
// handling branch on these; naming them keeps the literals in one place.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
