// SPDX-License-Identifier: MPL-2.0

// Package astdump renders a document tree as an indented textual dump.
// It is the debugging backend: every node kind, its metadata and its text
// content are visible, including Invalid and Unresolved nodes that other
// renderers reject or transform.
package astdump

import (
	"fmt"
	"io"
	"strings"

	"folio-cli/internal/doctree"
)

// Dump writes the indented tree rooted at n.
func Dump(w io.Writer, n doctree.Node) error {
	return dump(w, n, 0)
}

func dump(w io.Writer, n doctree.Node, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(n)); err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err := dump(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// describe renders one node as kind plus the fields worth seeing in a dump.
func describe(n doctree.Node) string {
	var b strings.Builder
	b.WriteString(kind(n))

	opts := n.Options()
	if opts.ID != "" {
		fmt.Fprintf(&b, " #%s", opts.ID)
	}
	for _, tag := range opts.Styles.Values() {
		fmt.Fprintf(&b, " .%s", tag)
	}

	switch t := n.(type) {
	case *doctree.Header:
		fmt.Fprintf(&b, " level=%d", t.Level)
	case *doctree.CodeBlock:
		if t.Language != "" {
			fmt.Fprintf(&b, " lang=%s", t.Language)
		}
	case *doctree.OrderedList:
		fmt.Fprintf(&b, " start=%d", t.Start)
	case *doctree.SpanLink:
		fmt.Fprintf(&b, " -> %s", target(t.Target))
	case *doctree.LocalLink:
		fmt.Fprintf(&b, " -> #%s", t.RefID)
	case *doctree.Image:
		fmt.Fprintf(&b, " -> %s alt=%q", target(t.Target), t.Alt)
	case *doctree.RawBlock:
		fmt.Fprintf(&b, " formats=%s", strings.Join(t.Formats, ","))
	}

	if inv, ok := n.(doctree.Invalid); ok {
		p := inv.Problem()
		fmt.Fprintf(&b, " !%s %q", p.Severity, p.Message)
	}
	if unres, ok := n.(doctree.Unresolved); ok {
		fmt.Fprintf(&b, " ?%q", unres.UnresolvedDiagnostic().Message)
	}
	if txt, ok := n.(doctree.TextContainer); ok {
		fmt.Fprintf(&b, " %q", txt.TextContent())
	}
	return b.String()
}

// kind is the node's concrete type name without package and pointer noise.
func kind(n doctree.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*doctree.")
}

func target(t doctree.Target) string {
	switch tt := t.(type) {
	case doctree.ExternalTarget:
		return tt.URL
	case doctree.InternalTarget:
		if tt.Fragment != "" {
			return fmt.Sprintf("%s#%s", tt.Path, tt.Fragment)
		}
		return tt.Path.String()
	default:
		return "?"
	}
}
