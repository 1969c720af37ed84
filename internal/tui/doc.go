// SPDX-License-Identifier: MPL-2.0

// Package tui provides terminal presentation helpers built on Charm
// libraries: lipgloss styling for CLI output and glamour rendering for
// the terminal output format.
package tui
