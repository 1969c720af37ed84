// SPDX-License-Identifier: MPL-2.0

// Package term renders resolved document trees for the terminal. Documents
// are serialized back to markdown and styled with glamour, so the preview
// honors the configured color scheme and wrap width.
package term

import (
	"io"
	"strconv"
	"strings"

	"folio-cli/internal/config"
	"folio-cli/internal/doc"
	"folio-cli/internal/doctree"
	"folio-cli/internal/nav"
	"folio-cli/internal/tui"
	"folio-cli/pkg/format"
	"folio-cli/pkg/vpath"
)

type (
	// Options configures a Renderer.
	Options struct {
		// ColorScheme selects the glamour style.
		ColorScheme config.ColorScheme
		// Width is the word wrap width (0 for no wrap).
		Width tui.TerminalDimension
		// MessageThreshold is the minimum severity at which Invalid
		// nodes render their message alongside the fallback.
		MessageThreshold doctree.Severity
	}

	// Renderer writes ANSI-styled previews for resolved documents.
	Renderer struct {
		opts Options
	}

	// writer serializes the tree to markdown before styling.
	writer struct {
		b         strings.Builder
		ref       vpath.DocPath
		threshold doctree.Severity
	}
)

// New creates a Renderer. The zero Options value auto-detects the color
// scheme and reports messages at error severity.
func New(opts Options) *Renderer {
	if opts.ColorScheme == "" {
		opts.ColorScheme = config.ColorSchemeAuto
	}
	if opts.MessageThreshold == doctree.Severity(0) {
		opts.MessageThreshold = doctree.SeverityError
	}
	return &Renderer{opts: opts}
}

// Render writes the styled document body. Like the other backends it
// refuses trees that still hold Unresolved nodes.
func (r *Renderer) Render(w io.Writer, d *doc.Document) error {
	if err := d.CheckResolved(); err != nil {
		return err
	}
	mw := &writer{ref: d.Path, threshold: r.opts.MessageThreshold}
	mw.blocks(d.Content.Content, "")
	return r.style(w, mw.b.String())
}

// RenderNav writes a navigation item tree as a styled nested list.
func (r *Renderer) RenderNav(w io.Writer, item nav.Item) error {
	mw := &writer{threshold: r.opts.MessageThreshold}
	mw.navItem(item, 0)
	return r.style(w, mw.b.String())
}

func (r *Renderer) style(w io.Writer, markdown string) error {
	out, err := tui.Format(tui.FormatOptions{
		Content:     markdown,
		ColorScheme: r.opts.ColorScheme,
		Width:       r.opts.Width,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func (mw *writer) blocks(blocks []doctree.Block, prefix string) {
	for _, b := range blocks {
		mw.block(b, prefix)
	}
}

func (mw *writer) block(b doctree.Block, prefix string) {
	switch t := b.(type) {
	case *doctree.RootBlock:
		mw.blocks(t.Content, prefix)
	case *doctree.Paragraph:
		mw.line(prefix, spansString(t.Content))
		mw.blank(prefix)
	case *doctree.Header:
		level := min(max(t.Level, 1), 6)
		mw.line(prefix, strings.Repeat("#", level)+" "+spansString(t.Content))
		mw.blank(prefix)
	case *doctree.CodeBlock:
		mw.line(prefix, "```"+t.Language)
		for line := range strings.Lines(t.Text) {
			mw.line(prefix, strings.TrimSuffix(line, "\n"))
		}
		mw.line(prefix, "```")
		mw.blank(prefix)
	case *doctree.QuoteBlock:
		mw.blocks(t.Content, prefix+"> ")
		if len(t.Attribution) > 0 {
			mw.line(prefix+"> ", "-- "+spansString(t.Attribution))
			mw.blank(prefix)
		}
	case *doctree.BulletList:
		for _, item := range t.Entries {
			mw.item(item, prefix, "- ")
		}
		mw.blank(prefix)
	case *doctree.OrderedList:
		n := max(t.Start, 1)
		for _, item := range t.Entries {
			mw.item(item, prefix, strconv.Itoa(n)+". ")
			n++
		}
		mw.blank(prefix)
	case *doctree.Rule:
		mw.line(prefix, "---")
		mw.blank(prefix)
	case *doctree.RawBlock:
		if format.Terminal.AppliesTo(t.Formats) {
			mw.b.WriteString(t.Text)
			if !strings.HasSuffix(t.Text, "\n") {
				mw.b.WriteString("\n")
			}
			mw.blank(prefix)
		}
	case *doctree.InvalidBlock:
		if t.Info.Severity >= mw.threshold {
			mw.line(prefix, "**"+t.Info.Severity.String()+":** "+escape(t.Info.Message))
			mw.blank(prefix)
		}
		if fb, ok := t.FallbackNode().(doctree.Block); ok {
			mw.block(fb, prefix)
		}
	case doctree.Hidden:
		// Hidden blocks surviving to a renderer are skipped silently.
	}
}

// item renders a list item with the marker on its first line and
// continuation lines indented to the marker width.
func (mw *writer) item(item doctree.ListItem, prefix, marker string) {
	entry, ok := item.(*doctree.ListEntry)
	if !ok {
		return
	}
	sub := &writer{ref: mw.ref, threshold: mw.threshold}
	sub.blocks(entry.Content, "")
	lines := strings.Split(strings.TrimRight(sub.b.String(), "\n"), "\n")
	cont := strings.Repeat(" ", len(marker))
	for i, line := range lines {
		if i == 0 {
			mw.line(prefix, marker+line)
		} else if line == "" {
			mw.blank(prefix)
		} else {
			mw.line(prefix, cont+line)
		}
	}
}

func (mw *writer) line(prefix, text string) {
	mw.b.WriteString(strings.TrimRight(prefix+text, " "))
	mw.b.WriteString("\n")
}

func (mw *writer) blank(prefix string) {
	mw.line(strings.TrimRight(prefix, " "), "")
}

func (mw *writer) navItem(item nav.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := item.(type) {
	case *nav.Header:
		mw.line(indent, "- **"+spansString(t.Title)+"**")
		for _, child := range t.Children {
			mw.navItem(child, depth+1)
		}
	case *nav.Link:
		entry := "[" + spansString(t.Title) + "](" + t.Target + ")"
		if t.Self {
			entry = "**" + entry + "**"
		}
		mw.line(indent, "- "+entry)
		for _, child := range t.Children {
			mw.navItem(child, depth+1)
		}
	}
}

// spansString serializes a span sequence to inline markdown.
func spansString(spans []doctree.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(spanString(s))
	}
	return b.String()
}

func spanString(s doctree.Span) string {
	switch t := s.(type) {
	case *doctree.Text:
		return escape(t.Text)
	case *doctree.SpanSequence:
		return spansString(t.Content)
	case *doctree.Emphasis:
		return "*" + spansString(t.Content) + "*"
	case *doctree.Strong:
		return "**" + spansString(t.Content) + "**"
	case *doctree.Literal:
		return "`" + t.Text + "`"
	case *doctree.LineBreak:
		return "  \n"
	case *doctree.SpanLink:
		return "[" + spansString(t.Content) + "](" + linkTarget(t.Target) + ")"
	case *doctree.LocalLink:
		return "[" + spansString(t.Content) + "](#" + t.RefID + ")"
	case *doctree.Image:
		return "![" + escape(t.Alt) + "](" + linkTarget(t.Target) + ")"
	case *doctree.InternalAnchor:
		return ""
	case *doctree.InvalidSpan:
		var b strings.Builder
		if t.Info.Severity >= doctree.SeverityError {
			b.WriteString("**" + escape(t.Info.Message) + "** ")
		}
		if fb, ok := t.FallbackNode().(doctree.Span); ok {
			b.WriteString(spanString(fb))
		}
		return b.String()
	default:
		return ""
	}
}

// linkTarget keeps external URLs as-is and renders internal targets as
// source-relative paths, since a terminal preview has no output files to
// point at.
func linkTarget(target doctree.Target) string {
	switch t := target.(type) {
	case doctree.ExternalTarget:
		return t.URL
	case doctree.InternalTarget:
		out := t.Path.String()
		if t.Fragment != "" {
			out += "#" + t.Fragment
		}
		return out
	default:
		return ""
	}
}

// escape backslash-escapes markdown metacharacters in plain text so a
// round trip through glamour does not restyle literal content.
func escape(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch r {
		case '\\', '`', '*', '_', '[', ']':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

