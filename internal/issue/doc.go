// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into guidance. It has two halves: the
// ActionableError type, which attaches operation context and remediation
// suggestions to an error as it crosses the CLI boundary, and a catalog
// of known failure modes whose Markdown troubleshooting entries are
// rendered to the terminal with glamour.
package issue
