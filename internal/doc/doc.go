// SPDX-License-Identifier: MPL-2.0

// Package doc models whole documents and document trees on top of the node
// model: declared titles, section outlines for navigation, and the
// standard rewrite rules a pipeline applies between parsing and rendering.
package doc

import (
	"errors"
	"fmt"
	"strings"

	"folio-cli/internal/doctree"
	"folio-cli/internal/nav"
	"folio-cli/pkg/vpath"
)

// ErrUnresolved is the sentinel error wrapped by UnresolvedError.
var ErrUnresolved = errors.New("unresolved nodes in document")

type (
	// Document is one parsed markup document within the site tree.
	Document struct {
		// Path is the document's virtual location.
		Path vpath.DocPath
		// Content is the parsed block tree.
		Content *doctree.RootBlock
		// DeclaredTitle is the title from document metadata (front
		// matter); nil when none was declared.
		DeclaredTitle []doctree.Span
		// Styles are style tags declared in document metadata.
		Styles doctree.StyleSet
	}

	// Tree is a directory level of the site: documents plus subtrees.
	Tree struct {
		Path vpath.DocPath
		// Title is the tree's declared title; when nil it is synthesized
		// from the directory name.
		Title []doctree.Span
		// TitleDoc, when set, makes the tree's own navigation entry a
		// link to this document instead of a plain header.
		TitleDoc  *Document
		Documents []*Document
		Subtrees  []*Tree
	}

	// UnresolvedError reports Unresolved nodes that survived the rewrite
	// pass. It reaching a renderer boundary is a pipeline defect.
	UnresolvedError struct {
		Path        vpath.DocPath
		Diagnostics []doctree.Diagnostic
	}
)

// Title returns the document's effective title: the declared title when
// present, the content of the first level-1 header otherwise, or nil when
// the document has neither.
func (d *Document) Title() []doctree.Span {
	if len(d.DeclaredTitle) > 0 {
		return d.DeclaredTitle
	}
	for _, b := range d.Content.Content {
		if h, ok := b.(*doctree.Header); ok && h.Level == 1 {
			return h.Content
		}
	}
	return nil
}

// NavPath implements nav.Source.
func (d *Document) NavPath() vpath.DocPath { return d.Path }

// NavTitle implements nav.Source.
func (d *Document) NavTitle() []doctree.Span { return d.Title() }

// NavSections implements nav.Source.
func (d *Document) NavSections() []nav.SectionInfo { return Sections(d.Content) }

var _ nav.Source = (*Document)(nil)

// Sections extracts the nested section outline from the header structure
// of a block tree. Headers nest by level: a header opens a section that
// holds every following header with a larger level. The first level-1
// header is treated as the document title and opens no section of its own.
func Sections(root *doctree.RootBlock) []nav.SectionInfo {
	if root == nil {
		return nil
	}
	headers := doctree.Collect(root, func(n doctree.Node) (*doctree.Header, bool) {
		h, ok := n.(*doctree.Header)
		return h, ok
	})
	if len(headers) > 0 && headers[0].Level == 1 {
		headers = headers[1:]
	}

	return buildSections(headers)
}

// buildSections nests a flat, document-ordered header list by level: each
// header owns every following header with a larger level.
func buildSections(headers []*doctree.Header) []nav.SectionInfo {
	var sections []nav.SectionInfo
	for i := 0; i < len(headers); {
		h := headers[i]
		end := i + 1
		for end < len(headers) && headers[end].Level > h.Level {
			end++
		}
		sections = append(sections, nav.SectionInfo{
			ID:     h.Opts.ID,
			Title:  h.Content,
			Nested: buildSections(headers[i+1 : end]),
		})
		i = end
	}
	return sections
}

// TreeTitle returns the tree's effective title.
func (t *Tree) TreeTitle() []doctree.Span {
	if len(t.Title) > 0 {
		return t.Title
	}
	if t.TitleDoc != nil {
		if title := t.TitleDoc.Title(); len(title) > 0 {
			return title
		}
	}
	return []doctree.Span{&doctree.Text{Text: nav.TitleFromName(t.Path)}}
}

// NavItem builds the navigation item for a whole tree level: one child per
// document and subtree, under the same depth budget as section items. With
// Context.ExcludeSelf set, the consuming document's own entry is omitted.
func (t *Tree) NavItem(ctx nav.Context) nav.Item {
	var children []nav.Item
	if ctx.CurrentLevel < ctx.MaxLevels {
		next := ctx.Next()
		for _, d := range t.Documents {
			if ctx.ExcludeSelf && d.Path == ctx.RefPath {
				continue
			}
			children = append(children, nav.ForDocument(d, next))
		}
		for _, sub := range t.Subtrees {
			children = append(children, sub.NavItem(next))
		}
	}
	var target vpath.DocPath
	if t.TitleDoc != nil {
		target = t.TitleDoc.Path
	}
	return nav.NewItem(t.TreeTitle(), target, children, ctx)
}

// CheckResolved verifies that no Unresolved node survived rewriting.
func (d *Document) CheckResolved() error {
	diags := doctree.Collect(d.Content, func(n doctree.Node) (doctree.Diagnostic, bool) {
		u, ok := n.(doctree.Unresolved)
		if !ok {
			return doctree.Diagnostic{}, false
		}
		return u.UnresolvedDiagnostic(), true
	})
	if len(diags) == 0 {
		return nil
	}
	return &UnresolvedError{Path: d.Path, Diagnostics: diags}
}

// Error implements the error interface for UnresolvedError.
func (e *UnresolvedError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("line %d: %s", d.Source.Line, d.Message)
	}
	return fmt.Sprintf("document %s still holds %d unresolved node(s): %s",
		e.Path, len(e.Diagnostics), strings.Join(msgs, "; "))
}

// Unwrap returns ErrUnresolved for errors.Is() compatibility.
func (e *UnresolvedError) Unwrap() error { return ErrUnresolved }
