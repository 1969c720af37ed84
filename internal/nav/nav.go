// SPDX-License-Identifier: MPL-2.0

// Package nav builds depth-limited navigation trees from document outlines.
// Building is pure: a Context value is threaded through the recursion and
// every invocation produces a fresh Item tree, so the same document set can
// be rendered from different reference documents concurrently.
package nav

import (
	"fmt"
	"strings"

	"folio-cli/internal/doctree"
	"folio-cli/pkg/vpath"
)

type (
	// Context carries the per-invocation state of navigation building. It
	// is a value; recursive descent copies it with the level advanced, and
	// nothing else mutates between calls.
	Context struct {
		// RefPath is the path of the document the navigation is rendered
		// into. All link targets are expressed relative to it.
		RefPath vpath.DocPath
		// ItemStyles is stamped onto every generated item.
		ItemStyles doctree.StyleSet
		// MaxLevels is the depth budget, shared across document and
		// section levels.
		MaxLevels int
		// CurrentLevel is the depth of the item under construction,
		// starting at 1.
		CurrentLevel int
		// ExcludeSections suppresses descending into a document's own
		// section outline.
		ExcludeSections bool
		// ExcludeSelf omits the consuming document's own entry when a
		// document tree is built.
		ExcludeSelf bool
	}

	// Item is a node of the generated navigation tree: either a Header
	// (pure grouping, not independently linkable) or a Link.
	Item interface {
		navItem()
		// ItemTitle returns the item's title spans.
		ItemTitle() []doctree.Span
		// ChildItems returns the nested items.
		ChildItems() []Item
		// ItemStyles returns the style tags stamped on the item.
		ItemStyles() doctree.StyleSet
	}

	// Header is a grouping item without a target of its own.
	Header struct {
		Title    []doctree.Span
		Children []Item
		Styles   doctree.StyleSet
	}

	// Link is an item targeting a document, expressed relative to the
	// consuming document.
	Link struct {
		Title    []doctree.Span
		Target   string
		Children []Item
		// Self is true when the link targets the consuming document.
		Self   bool
		Styles doctree.StyleSet
	}

	// SectionInfo is a document's outline entry: its rendered title and
	// the nested sections below it. Suppliers extract it from the header
	// structure of a parsed document.
	SectionInfo struct {
		// ID is the section's anchor within its document.
		ID     string
		Title  []doctree.Span
		Nested []SectionInfo
	}

	// Source is a document as seen by the navigation builder.
	Source interface {
		NavPath() vpath.DocPath
		// NavTitle returns the declared title, or nil when the document
		// has none and a title must be synthesized from its name.
		NavTitle() []doctree.Span
		NavSections() []SectionInfo
	}
)

func (*Header) navItem() {}
func (*Link) navItem()   {}

var (
	_ Item = (*Header)(nil)
	_ Item = (*Link)(nil)
)

func (h *Header) ItemTitle() []doctree.Span    { return h.Title }
func (h *Header) ChildItems() []Item           { return h.Children }
func (h *Header) ItemStyles() doctree.StyleSet { return h.Styles }

func (l *Link) ItemTitle() []doctree.Span    { return l.Title }
func (l *Link) ChildItems() []Item           { return l.Children }
func (l *Link) ItemStyles() doctree.StyleSet { return l.Styles }

// NewContext returns a Context rooted at level 1 for the given consuming
// document and depth budget.
func NewContext(refPath vpath.DocPath, maxLevels int) Context {
	return Context{RefPath: refPath, MaxLevels: maxLevels, CurrentLevel: 1}
}

// WithStyles returns the context with the given item styles.
func (c Context) WithStyles(tags ...string) Context {
	c.ItemStyles = c.ItemStyles.Add(tags...)
	return c
}

// Next returns the context for one level deeper. It is computed eagerly;
// the value is cheap and nothing else in the context changes on descent.
func (c Context) Next() Context {
	c.CurrentLevel++
	return c
}

// depthBudgetLeft reports whether another level of children may be built.
func (c Context) depthBudgetLeft() bool {
	return c.CurrentLevel < c.MaxLevels
}

// NewItem builds a single navigation item. When target is empty the result
// is a Header; otherwise it is a Link whose target is resolved relative to
// the context's reference path and whose Self flag is set exactly when the
// target equals the reference path. Either way the item's styles are the
// union of a depth tag for the current level and the context's item styles.
func NewItem(title []doctree.Span, target vpath.DocPath, children []Item, ctx Context) Item {
	return newItem(title, target, "", children, ctx)
}

func newItem(title []doctree.Span, target vpath.DocPath, fragment string, children []Item, ctx Context) Item {
	styles := doctree.NewStyles(depthStyle(ctx.CurrentLevel)).Union(ctx.ItemStyles)
	if target == "" {
		return &Header{Title: title, Children: children, Styles: styles}
	}
	rel := target.RelativeTo(ctx.RefPath)
	if fragment != "" {
		rel += "#" + fragment
	}
	return &Link{
		Title:    title,
		Target:   rel,
		Children: children,
		Self:     target == ctx.RefPath,
		Styles:   styles,
	}
}

// depthStyle is the generated "depth = currentLevel" tag.
func depthStyle(level int) string {
	return fmt.Sprintf("nav-level-%d", level)
}

// ForDocument builds the navigation item for a single document: a link to
// the document itself with one child per top-level section, recursively
// nested under the shared depth budget. With the budget exhausted or
// sections excluded the item has no children.
func ForDocument(d Source, ctx Context) Item {
	title := d.NavTitle()
	if len(title) == 0 {
		title = []doctree.Span{&doctree.Text{Text: TitleFromName(d.NavPath())}}
	}
	var children []Item
	if ctx.depthBudgetLeft() && !ctx.ExcludeSections {
		next := ctx.Next()
		for _, section := range d.NavSections() {
			children = append(children, section.item(d.NavPath(), next))
		}
	}
	return NewItem(title, d.NavPath(), children, ctx)
}

// item builds the navigation item for one section of the document at path.
func (s SectionInfo) item(path vpath.DocPath, ctx Context) Item {
	var children []Item
	if ctx.depthBudgetLeft() {
		next := ctx.Next()
		for _, sub := range s.Nested {
			children = append(children, sub.item(path, next))
		}
	}
	return newItem(s.Title, path, s.ID, children, ctx)
}

// TitleFromName synthesizes a text title from a document's file name:
// the suffix is dropped and separator characters become spaces.
func TitleFromName(path vpath.DocPath) string {
	name := path.BaseName()
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.TrimSpace(name)
}
