// SPDX-License-Identifier: MPL-2.0

// Package format identifies renderer backends. A Context is the value pair
// (file suffix, format selector) content-filtering logic consults to decide
// whether format-restricted content applies to the active backend.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Context identifies the active output format.
	Context struct {
		// FileSuffix is the suffix of files the backend produces,
		// without the leading dot.
		FileSuffix string
		// Selector is the name format-restricted content is matched
		// against (e.g. the format list of a raw block).
		Selector string
	}

	// InvalidFormatError is returned when a format selector is unknown.
	InvalidFormatError struct {
		Selector string
	}
)

// Predefined backend contexts.
var (
	// HTML is the standalone HTML backend.
	HTML = Context{FileSuffix: "html", Selector: "html"}
	// EPUB is the EPUB container backend; its documents are XHTML.
	EPUB = Context{FileSuffix: "epub.xhtml", Selector: "epub"}
	// PDF is the PDF backend.
	PDF = Context{FileSuffix: "pdf", Selector: "pdf"}
	// AST is the debugging backend emitting a formatted tree dump.
	AST = Context{FileSuffix: "txt", Selector: "ast"}
	// Terminal is the ANSI terminal preview backend.
	Terminal = Context{FileSuffix: "txt", Selector: "terminal"}
)

// Lookup resolves a selector string to one of the predefined contexts.
func Lookup(selector string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case HTML.Selector:
		return HTML, nil
	case EPUB.Selector:
		return EPUB, nil
	case PDF.Selector:
		return PDF, nil
	case AST.Selector:
		return AST, nil
	case Terminal.Selector, "term":
		return Terminal, nil
	default:
		return Context{}, &InvalidFormatError{Selector: selector}
	}
}

// Selectors returns the selector names of all predefined contexts.
func Selectors() []string {
	return []string{HTML.Selector, EPUB.Selector, PDF.Selector, AST.Selector, Terminal.Selector}
}

// String returns the context's selector.
func (c Context) String() string { return c.Selector }

// Validate returns an error if either field is empty.
func (c Context) Validate() error {
	if c.FileSuffix == "" || c.Selector == "" {
		return &InvalidFormatError{Selector: c.Selector}
	}
	return nil
}

// AppliesTo reports whether content restricted to the given format names
// applies to this context. An empty restriction list applies everywhere.
func (c Context) AppliesTo(formats []string) bool {
	if len(formats) == 0 {
		return true
	}
	for _, f := range formats {
		if f == c.Selector {
			return true
		}
	}
	return false
}

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q: known formats are %s",
		e.Selector, strings.Join(Selectors(), ", "))
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }
