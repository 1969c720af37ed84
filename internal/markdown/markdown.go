// SPDX-License-Identifier: MPL-2.0

// Package markdown parses Markdown sources into document trees. It is one
// concrete producer behind the parser boundary: goldmark builds the
// Markdown AST and this package projects it onto the doctree node model.
// Constructs the projection does not support become Invalid nodes carrying
// the originating source fragment; parsing itself only fails on malformed
// front matter.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"folio-cli/internal/doc"
	"folio-cli/internal/doctree"
	"folio-cli/pkg/vpath"
)

// Parser converts Markdown sources into documents.
type Parser struct {
	md goldmark.Markdown
}

// New creates a Parser with the default goldmark configuration.
func New() *Parser {
	return &Parser{md: goldmark.New()}
}

// Parse builds the document at path from the given source. The returned
// document is raw: references are unresolved and hidden nodes are still
// present until the standard rewrite pass runs.
func (p *Parser) Parse(path vpath.DocPath, source []byte) (*doc.Document, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	meta, body, metaLines, err := splitFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root := p.md.Parser().Parse(gtext.NewReader(body))
	conv := &converter{source: body, lineOffset: metaLines, docDir: path.Parent()}

	document := &doc.Document{
		Path: path,
		Content: &doctree.RootBlock{
			Content: conv.blocks(root),
			Opts:    doctree.Options{ID: meta.ID, Styles: doctree.NewStyles(meta.Styles...)},
		},
		Styles: doctree.NewStyles(meta.Styles...),
	}
	if meta.Title != "" {
		document.DeclaredTitle = []doctree.Span{&doctree.Text{Text: meta.Title}}
	}
	return document, nil
}

// converter carries per-parse state for the AST projection.
type converter struct {
	source     []byte
	lineOffset int
	docDir     vpath.DocPath
}

// blocks converts the block-level children of n.
func (c *converter) blocks(n ast.Node) []doctree.Block {
	var out []doctree.Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.block(child))
	}
	return out
}

func (c *converter) block(n ast.Node) doctree.Block {
	switch t := n.(type) {
	case *ast.Heading:
		return &doctree.Header{Level: t.Level, Content: c.spans(t)}
	case *ast.Paragraph:
		return &doctree.Paragraph{Content: c.spans(t)}
	case *ast.TextBlock:
		// Tight list items hold a TextBlock instead of a Paragraph.
		return &doctree.Paragraph{Content: c.spans(t)}
	case *ast.Blockquote:
		return &doctree.QuoteBlock{Content: c.blocks(t)}
	case *ast.List:
		return c.list(t)
	case *ast.FencedCodeBlock:
		return &doctree.CodeBlock{
			Language: string(t.Language(c.source)),
			Text:     c.linesText(t),
		}
	case *ast.CodeBlock:
		return &doctree.CodeBlock{Text: c.linesText(t)}
	case *ast.ThematicBreak:
		return &doctree.Rule{}
	case *ast.HTMLBlock:
		text := c.linesText(t)
		if t.HasClosure() {
			text += string(t.ClosureLine.Value(c.source))
		}
		return &doctree.RawBlock{Formats: []string{"html", "epub"}, Text: text}
	default:
		return &doctree.InvalidBlock{
			Info: doctree.Problem{
				Severity: doctree.SeverityWarning,
				Message:  fmt.Sprintf("unsupported markdown block %s", n.Kind()),
				Source:   c.fragment(n),
			},
			Fallback: &doctree.Paragraph{Content: c.spans(n)},
		}
	}
}

func (c *converter) list(n *ast.List) doctree.Block {
	var items []doctree.ListItem
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		items = append(items, &doctree.ListEntry{Content: c.blocks(child)})
	}
	if n.IsOrdered() {
		return &doctree.OrderedList{Entries: items, Start: n.Start}
	}
	return &doctree.BulletList{Entries: items}
}

// spans converts the inline children of n.
func (c *converter) spans(n ast.Node) []doctree.Span {
	var out []doctree.Span
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.span(child)...)
	}
	return out
}

func (c *converter) span(n ast.Node) []doctree.Span {
	switch t := n.(type) {
	case *ast.Text:
		spans := []doctree.Span{&doctree.Text{Text: string(t.Segment.Value(c.source))}}
		switch {
		case t.HardLineBreak():
			spans = append(spans, &doctree.LineBreak{})
		case t.SoftLineBreak():
			spans = append(spans, &doctree.Text{Text: " "})
		}
		return spans
	case *ast.String:
		return []doctree.Span{&doctree.Text{Text: string(t.Value)}}
	case *ast.Emphasis:
		if t.Level >= 2 {
			return []doctree.Span{&doctree.Strong{Content: c.spans(t)}}
		}
		return []doctree.Span{&doctree.Emphasis{Content: c.spans(t)}}
	case *ast.CodeSpan:
		return []doctree.Span{&doctree.Literal{Text: doctree.ExtractText(c.spans(t))}}
	case *ast.Link:
		return []doctree.Span{c.link(string(t.Destination), string(t.Title), c.spans(t), n)}
	case *ast.AutoLink:
		url := string(t.URL(c.source))
		return []doctree.Span{&doctree.SpanLink{
			Content: []doctree.Span{&doctree.Text{Text: string(t.Label(c.source))}},
			Target:  doctree.ExternalTarget{URL: url},
		}}
	case *ast.Image:
		return []doctree.Span{&doctree.Image{
			Target: c.target(string(t.Destination)),
			Alt:    doctree.ExtractText(c.spans(t)),
			Title:  string(t.Title),
		}}
	case *ast.RawHTML:
		return []doctree.Span{&doctree.InvalidSpan{
			Info: doctree.Problem{
				Severity: doctree.SeverityInfo,
				Message:  "inline raw HTML is not supported",
				Source:   c.fragment(n),
			},
			Fallback: &doctree.Literal{Text: c.segmentsText(t.Segments)},
		}}
	default:
		return []doctree.Span{&doctree.InvalidSpan{
			Info: doctree.Problem{
				Severity: doctree.SeverityWarning,
				Message:  fmt.Sprintf("unsupported markdown inline %s", n.Kind()),
				Source:   c.fragment(n),
			},
			Fallback: &doctree.Text{Text: ""},
		}}
	}
}

// link classifies a link destination: a "#fragment" destination becomes an
// unresolved reference for the rewrite pass to validate, a destination
// with a scheme stays external, and anything else is an internal target
// resolved against the document's directory.
func (c *converter) link(dest, title string, content []doctree.Span, n ast.Node) doctree.Span {
	if frag, ok := strings.CutPrefix(dest, "#"); ok {
		return &doctree.LinkReference{RefID: frag, Content: content, Source: c.fragment(n)}
	}
	return &doctree.SpanLink{Content: content, Target: c.target(dest), Title: title}
}

// target resolves a destination string to a link target.
func (c *converter) target(dest string) doctree.Target {
	if isExternal(dest) {
		return doctree.ExternalTarget{URL: dest}
	}
	path, fragment, _ := strings.Cut(dest, "#")
	resolved := c.docDir.Join(path)
	return doctree.InternalTarget{Path: resolved, Fragment: fragment}
}

func isExternal(dest string) bool {
	return strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:")
}

// linesText concatenates the source lines of a block node.
func (c *converter) linesText(n ast.Node) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

// segmentsText concatenates raw segments (inline raw HTML).
func (c *converter) segmentsText(segments *gtext.Segments) string {
	if segments == nil {
		return ""
	}
	var b bytes.Buffer
	for i := range segments.Len() {
		seg := segments.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

// fragment captures the source slice a node originated from, with the line
// number adjusted for stripped front matter. Inline nodes carry no source
// lines of their own, so the nearest enclosing block supplies the fragment.
func (c *converter) fragment(n ast.Node) doctree.Fragment {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() != ast.TypeBlock {
			continue
		}
		lines := cur.Lines()
		if lines == nil || lines.Len() == 0 {
			continue
		}
		seg := lines.At(0)
		line := bytes.Count(c.source[:seg.Start], []byte("\n")) + 1 + c.lineOffset
		return doctree.Fragment{
			Snippet: strings.TrimRight(string(seg.Value(c.source)), "\n"),
			Line:    line,
		}
	}
	return doctree.Fragment{}
}
