// SPDX-License-Identifier: MPL-2.0

// Package vpath provides typed virtual paths for documents inside a site
// tree. Virtual paths are always absolute, slash-separated, and independent
// of the host filesystem; renderers translate them to real output locations.
package vpath

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidDocPath is the sentinel error wrapped by InvalidDocPathError.
var ErrInvalidDocPath = errors.New("invalid document path")

type (
	// DocPath is the absolute, slash-separated location of a document or
	// directory within the site tree, e.g. "/guide/install.md".
	// The root of the tree is "/".
	DocPath string

	// InvalidDocPathError is returned when a DocPath is empty, relative,
	// or contains "." / ".." segments.
	InvalidDocPathError struct {
		Value  DocPath
		Reason string
	}
)

// Root is the top of the site tree.
const Root DocPath = "/"

// String returns the path as a plain string.
func (p DocPath) String() string { return string(p) }

// Validate returns an error if the path is not absolute, not clean, or
// contains relative segments.
func (p DocPath) Validate() error {
	s := string(p)
	if s == "" {
		return &InvalidDocPathError{Value: p, Reason: "empty"}
	}
	if !strings.HasPrefix(s, "/") {
		return &InvalidDocPathError{Value: p, Reason: "not absolute"}
	}
	if path.Clean(s) != s {
		return &InvalidDocPathError{Value: p, Reason: "not clean"}
	}
	for _, seg := range strings.Split(strings.Trim(s, "/"), "/") {
		if seg == "." || seg == ".." {
			return &InvalidDocPathError{Value: p, Reason: "relative segment"}
		}
	}
	return nil
}

// Name returns the last segment of the path ("" for the root).
func (p DocPath) Name() string {
	if p == Root {
		return ""
	}
	return path.Base(string(p))
}

// BaseName returns the last segment with any suffix removed.
func (p DocPath) BaseName() string {
	name := p.Name()
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// Suffix returns the suffix of the last segment without the leading dot,
// or "" when the segment has none.
func (p DocPath) Suffix() string {
	name := p.Name()
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i+1:]
	}
	return ""
}

// WithSuffix returns the path with the last segment's suffix replaced.
// A path without a suffix gains one.
func (p DocPath) WithSuffix(suffix string) DocPath {
	if p == Root || suffix == "" {
		return p
	}
	parent := p.Parent()
	return parent.Join(p.BaseName() + "." + suffix)
}

// Parent returns the enclosing directory path; the root is its own parent.
func (p DocPath) Parent() DocPath {
	if p == Root {
		return Root
	}
	return DocPath(path.Dir(string(p)))
}

// Join appends slash-separated segments to the path.
func (p DocPath) Join(segments ...string) DocPath {
	parts := make([]string, 0, 1+len(segments))
	parts = append(parts, string(p))
	parts = append(parts, segments...)
	return DocPath(path.Join(parts...))
}

// IsUnder reports whether p is located inside dir (or equals it).
func (p DocPath) IsUnder(dir DocPath) bool {
	if dir == Root {
		return true
	}
	return p == dir || strings.HasPrefix(string(p), string(dir)+"/")
}

// Depth returns the number of segments below the root.
func (p DocPath) Depth() int {
	if p == Root {
		return 0
	}
	return strings.Count(string(p), "/")
}

// RelativeTo expresses p relative to the document at ref: the result is the
// path a link inside ref must use to reach p. Both paths are document paths,
// so the walk starts from ref's parent directory:
//
//	("/a/c").RelativeTo("/a/b")   == "c"
//	("/a/b/d").RelativeTo("/a/c") == "b/d"
//	("/x").RelativeTo("/a/b")     == "../x"
func (p DocPath) RelativeTo(ref DocPath) string {
	from := segments(ref.Parent())
	to := segments(p)

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	var b strings.Builder
	for range len(from) - common {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(to[common:], "/"))
	if b.Len() == 0 {
		return "."
	}
	return strings.TrimSuffix(b.String(), "/")
}

func segments(p DocPath) []string {
	trimmed := strings.Trim(string(p), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Error implements the error interface for InvalidDocPathError.
func (e *InvalidDocPathError) Error() string {
	return fmt.Sprintf("invalid document path %q: %s", string(e.Value), e.Reason)
}

// Unwrap returns ErrInvalidDocPath for errors.Is() compatibility.
func (e *InvalidDocPathError) Unwrap() error { return ErrInvalidDocPath }
