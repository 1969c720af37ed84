// SPDX-License-Identifier: MPL-2.0

// Package html renders resolved document trees to HTML. It sits behind the
// renderer boundary: trees handed to it must be free of Unresolved nodes,
// and Invalid nodes are rendered according to the configured severity
// threshold (fallback only below it, message plus fallback at or above).
package html

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"folio-cli/internal/doc"
	"folio-cli/internal/doctree"
	"folio-cli/internal/nav"
	"folio-cli/pkg/format"
	"folio-cli/pkg/vpath"
)

type (
	// Options configures a Renderer.
	Options struct {
		// Format is the active backend context; raw content restricted
		// to other formats is skipped.
		Format format.Context
		// Sanitize passes raw HTML blocks through a bluemonday UGC
		// policy before emitting them.
		Sanitize bool
		// MessageThreshold is the minimum severity at which Invalid
		// nodes render their message alongside the fallback. Below it
		// only the fallback is rendered.
		MessageThreshold doctree.Severity
	}

	// Renderer writes HTML for resolved documents.
	Renderer struct {
		opts   Options
		policy *bluemonday.Policy
	}

	// writer tracks the consuming document while rendering, so internal
	// targets resolve to relative hrefs.
	writer struct {
		r   *Renderer
		w   io.Writer
		ref vpath.DocPath
		err error
	}
)

// New creates a Renderer. The zero Options value renders for the HTML
// backend without sanitization and reports messages at error severity.
func New(opts Options) *Renderer {
	if opts.Format == (format.Context{}) {
		opts.Format = format.HTML
	}
	if opts.MessageThreshold == doctree.Severity(0) {
		opts.MessageThreshold = doctree.SeverityError
	}
	r := &Renderer{opts: opts}
	if opts.Sanitize {
		r.policy = bluemonday.UGCPolicy()
	}
	return r
}

// Render writes the document body as HTML. It fails without writing when
// the tree still holds Unresolved nodes, since that signals an incomplete
// rewrite pass rather than a content problem.
func (r *Renderer) Render(w io.Writer, d *doc.Document) error {
	if err := d.CheckResolved(); err != nil {
		return err
	}
	hw := &writer{r: r, w: w, ref: d.Path}
	hw.blocks(d.Content.Content)
	return hw.err
}

// RenderNav writes a navigation item tree as nested lists.
func (r *Renderer) RenderNav(w io.Writer, item nav.Item, ref vpath.DocPath) error {
	hw := &writer{r: r, w: w, ref: ref}
	hw.printf("<ul class=\"nav\">\n")
	hw.navItem(item)
	hw.printf("</ul>\n")
	return hw.err
}

func (hw *writer) printf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}

func (hw *writer) blocks(blocks []doctree.Block) {
	for _, b := range blocks {
		hw.block(b)
	}
}

func (hw *writer) block(b doctree.Block) {
	switch t := b.(type) {
	case *doctree.RootBlock:
		hw.blocks(t.Content)
	case *doctree.Paragraph:
		hw.printf("<p%s>", attrs(t.Opts))
		hw.spans(t.Content)
		hw.printf("</p>\n")
	case *doctree.Header:
		level := min(max(t.Level, 1), 6)
		hw.printf("<h%d%s>", level, attrs(t.Opts))
		hw.spans(t.Content)
		hw.printf("</h%d>\n", level)
	case *doctree.CodeBlock:
		hw.printf("<pre%s><code%s>", attrs(t.Opts), classAttr(languageClass(t.Language)))
		hw.printf("%s", html.EscapeString(t.Text))
		hw.printf("</code></pre>\n")
	case *doctree.QuoteBlock:
		hw.printf("<blockquote%s>\n", attrs(t.Opts))
		hw.blocks(t.Content)
		if len(t.Attribution) > 0 {
			hw.printf("<p class=\"attribution\">")
			hw.spans(t.Attribution)
			hw.printf("</p>\n")
		}
		hw.printf("</blockquote>\n")
	case *doctree.BulletList:
		hw.printf("<ul%s>\n", attrs(t.Opts))
		hw.items(t.Entries)
		hw.printf("</ul>\n")
	case *doctree.OrderedList:
		if t.Start > 1 {
			hw.printf("<ol start=\"%d\"%s>\n", t.Start, attrs(t.Opts))
		} else {
			hw.printf("<ol%s>\n", attrs(t.Opts))
		}
		hw.items(t.Entries)
		hw.printf("</ol>\n")
	case *doctree.Rule:
		hw.printf("<hr%s>\n", attrs(t.Opts))
	case *doctree.RawBlock:
		hw.rawBlock(t)
	case *doctree.InvalidBlock:
		hw.invalid(t.Info, t.FallbackNode(), true)
	case doctree.Hidden:
		// Hidden blocks surviving to a renderer are skipped silently.
	default:
		hw.printf("<!-- unsupported block %T -->\n", b)
	}
}

func (hw *writer) items(items []doctree.ListItem) {
	for _, item := range items {
		entry, ok := item.(*doctree.ListEntry)
		if !ok {
			continue
		}
		hw.printf("<li%s>\n", attrs(entry.Opts))
		hw.blocks(entry.Content)
		hw.printf("</li>\n")
	}
}

func (hw *writer) rawBlock(t *doctree.RawBlock) {
	if !hw.r.opts.Format.AppliesTo(t.Formats) {
		return
	}
	text := t.Text
	if hw.r.policy != nil {
		text = hw.r.policy.Sanitize(text)
	}
	hw.printf("%s", text)
}

func (hw *writer) spans(spans []doctree.Span) {
	for _, s := range spans {
		hw.span(s)
	}
}

func (hw *writer) span(s doctree.Span) {
	switch t := s.(type) {
	case *doctree.Text:
		hw.printf("%s", html.EscapeString(t.Text))
	case *doctree.SpanSequence:
		hw.spans(t.Content)
	case *doctree.Emphasis:
		hw.printf("<em%s>", attrs(t.Opts))
		hw.spans(t.Content)
		hw.printf("</em>")
	case *doctree.Strong:
		hw.printf("<strong%s>", attrs(t.Opts))
		hw.spans(t.Content)
		hw.printf("</strong>")
	case *doctree.Literal:
		hw.printf("<code%s>%s</code>", attrs(t.Opts), html.EscapeString(t.Text))
	case *doctree.LineBreak:
		hw.printf("<br>\n")
	case *doctree.SpanLink:
		hw.printf("<a href=\"%s\"%s%s>", html.EscapeString(hw.href(t.Target)), titleAttr(t.Title), attrs(t.Opts))
		hw.spans(t.Content)
		hw.printf("</a>")
	case *doctree.LocalLink:
		hw.printf("<a href=\"#%s\"%s>", html.EscapeString(t.RefID), attrs(t.Opts))
		hw.spans(t.Content)
		hw.printf("</a>")
	case *doctree.Image:
		hw.printf("<img src=\"%s\" alt=\"%s\"%s%s>",
			html.EscapeString(hw.href(t.Target)), html.EscapeString(t.Alt), titleAttr(t.Title), attrs(t.Opts))
	case *doctree.InternalAnchor:
		hw.printf("<a id=\"%s\"></a>", html.EscapeString(t.Opts.ID))
	case *doctree.InvalidSpan:
		hw.invalid(t.Info, t.FallbackNode(), false)
	case doctree.Hidden:
		// Skipped, same as hidden blocks.
	default:
		hw.printf("<!-- unsupported span %T -->", s)
	}
}

// invalid renders an Invalid node: the fallback always, preceded by the
// message when the problem's severity reaches the configured threshold.
func (hw *writer) invalid(p doctree.Problem, fallback doctree.Node, blockLevel bool) {
	if p.Severity >= hw.r.opts.MessageThreshold {
		tag := "span"
		if blockLevel {
			tag = "p"
		}
		hw.printf("<%s class=\"invalid %s\">%s</%s>", tag, p.Severity, html.EscapeString(p.Message), tag)
		if blockLevel {
			hw.printf("\n")
		}
	}
	switch fb := fallback.(type) {
	case doctree.Block:
		hw.block(fb)
	case doctree.Span:
		hw.span(fb)
	}
}

// href resolves a link target to the attribute value for the consuming
// document: internal targets become relative paths with the suffix mapped
// to the backend's, external targets pass through.
func (hw *writer) href(target doctree.Target) string {
	switch t := target.(type) {
	case doctree.ExternalTarget:
		return t.URL
	case doctree.InternalTarget:
		out := t.Path
		if out.Suffix() == "md" {
			out = out.WithSuffix(hw.r.opts.Format.FileSuffix)
		}
		href := out.RelativeTo(hw.ref.WithSuffix(hw.r.opts.Format.FileSuffix))
		if t.Fragment != "" {
			href += "#" + t.Fragment
		}
		return href
	default:
		return ""
	}
}

func (hw *writer) navItem(item nav.Item) {
	switch t := item.(type) {
	case *nav.Header:
		hw.printf("<li%s><span>", classAttr(strings.Join(t.Styles.Values(), " ")))
		hw.spans(t.Title)
		hw.printf("</span>")
		hw.navChildren(t.Children)
		hw.printf("</li>\n")
	case *nav.Link:
		classes := t.Styles.Values()
		if t.Self {
			classes = append(classes, "active")
			sort.Strings(classes)
		}
		hw.printf("<li%s><a href=\"%s\">", classAttr(strings.Join(classes, " ")), html.EscapeString(hw.navHref(t.Target)))
		hw.spans(t.Title)
		hw.printf("</a>")
		hw.navChildren(t.Children)
		hw.printf("</li>\n")
	}
}

// navHref maps a navigation target (built from source document paths) to
// the backend's file suffix, preserving any fragment.
func (hw *writer) navHref(target string) string {
	path, fragment, hasFrag := strings.Cut(target, "#")
	if cut, ok := strings.CutSuffix(path, ".md"); ok {
		path = cut + "." + hw.r.opts.Format.FileSuffix
	}
	if hasFrag {
		return path + "#" + fragment
	}
	return path
}

func (hw *writer) navChildren(children []nav.Item) {
	if len(children) == 0 {
		return
	}
	hw.printf("\n<ul>\n")
	for _, child := range children {
		hw.navItem(child)
	}
	hw.printf("</ul>\n")
}

// attrs renders id and class attributes for node metadata.
func attrs(o doctree.Options) string {
	var b strings.Builder
	if o.ID != "" {
		fmt.Fprintf(&b, " id=%q", html.EscapeString(o.ID))
	}
	b.WriteString(classAttr(strings.Join(o.Styles.Values(), " ")))
	return b.String()
}

func titleAttr(title string) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf(" title=%q", html.EscapeString(title))
}

func classAttr(classes string) string {
	if classes == "" {
		return ""
	}
	return fmt.Sprintf(" class=%q", html.EscapeString(classes))
}

func languageClass(lang string) string {
	if lang == "" {
		return ""
	}
	return "language-" + lang
}
