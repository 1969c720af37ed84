// SPDX-License-Identifier: MPL-2.0

package markdown

import (
	"strings"
	"testing"

	"folio-cli/internal/doctree"
)

func parse(t *testing.T, source string) *doctree.RootBlock {
	t.Helper()
	d, err := New().Parse("/guide/doc.md", []byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d.Content
}

func TestParse_FrontMatter(t *testing.T) {
	t.Parallel()
	source := "---\ntitle: My Title\nid: root\nstyles: [wide, draft]\n---\n# Heading\n"
	d, err := New().Parse("/doc.md", []byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doctree.ExtractText(d.DeclaredTitle); got != "My Title" {
		t.Errorf("DeclaredTitle = %q, want %q", got, "My Title")
	}
	if d.Content.Opts.ID != "root" {
		t.Errorf("root ID = %q, want %q", d.Content.Opts.ID, "root")
	}
	if !d.Styles.Contains("wide") || !d.Styles.Contains("draft") {
		t.Errorf("styles = %v", d.Styles.Values())
	}
}

func TestParse_InvalidFrontMatter(t *testing.T) {
	t.Parallel()
	_, err := New().Parse("/doc.md", []byte("---\ntitle: [unclosed\n---\nbody\n"))
	if err == nil {
		t.Fatal("expected error for malformed front matter")
	}
}

func TestParse_NoFrontMatter(t *testing.T) {
	t.Parallel()
	root := parse(t, "plain paragraph\n")
	if len(root.Content) != 1 {
		t.Fatalf("got %d blocks, want 1", len(root.Content))
	}
	p, ok := root.Content[0].(*doctree.Paragraph)
	if !ok {
		t.Fatalf("block is %T, want *doctree.Paragraph", root.Content[0])
	}
	if got := doctree.ExtractText(p.Content); got != "plain paragraph" {
		t.Errorf("text = %q", got)
	}
}

func TestParse_HeadingLevels(t *testing.T) {
	t.Parallel()
	root := parse(t, "# One\n\n## Two\n")
	if len(root.Content) != 2 {
		t.Fatalf("got %d blocks, want 2", len(root.Content))
	}
	h1 := root.Content[0].(*doctree.Header)
	h2 := root.Content[1].(*doctree.Header)
	if h1.Level != 1 || h2.Level != 2 {
		t.Errorf("levels = %d, %d; want 1, 2", h1.Level, h2.Level)
	}
	if got := doctree.ExtractText(h2.Content); got != "Two" {
		t.Errorf("h2 text = %q, want %q", got, "Two")
	}
}

func TestParse_EmphasisAndCode(t *testing.T) {
	t.Parallel()
	root := parse(t, "a *b* **c** `d`\n")
	p := root.Content[0].(*doctree.Paragraph)

	var em, strong, lit bool
	doctree.ForEach(p, func(n doctree.Node) {
		switch t := n.(type) {
		case *doctree.Emphasis:
			em = doctree.ExtractText(t.Content) == "b"
		case *doctree.Strong:
			strong = doctree.ExtractText(t.Content) == "c"
		case *doctree.Literal:
			lit = t.Text == "d"
		}
	})
	if !em || !strong || !lit {
		t.Errorf("emphasis/strong/literal not converted: %v %v %v", em, strong, lit)
	}
	if got := doctree.ExtractText(p.Content); got != "a b c d" {
		t.Errorf("full text = %q, want %q", got, "a b c d")
	}
}

func TestParse_LinkClassification(t *testing.T) {
	t.Parallel()
	root := parse(t, "[ext](https://example.com) [rel](other.md) [frag](#section)\n")
	p := root.Content[0].(*doctree.Paragraph)

	var external, internal, reference bool
	doctree.ForEach(p, func(n doctree.Node) {
		switch t := n.(type) {
		case *doctree.SpanLink:
			switch target := t.Target.(type) {
			case doctree.ExternalTarget:
				external = target.URL == "https://example.com"
			case doctree.InternalTarget:
				internal = target.Path == "/guide/other.md"
			}
		case *doctree.LinkReference:
			reference = t.RefID == "section"
		}
	})
	if !external {
		t.Error("external link not converted")
	}
	if !internal {
		t.Error("relative link not resolved against the document directory")
	}
	if !reference {
		t.Error("fragment link not converted to an unresolved reference")
	}
}

func TestParse_RelativeLinkAboveDocDir(t *testing.T) {
	t.Parallel()
	root := parse(t, "![logo](../img/logo.png)\n")
	p := root.Content[0].(*doctree.Paragraph)
	img := p.Content[0].(*doctree.Image)
	target := img.Target.(doctree.InternalTarget)
	if target.Path != "/img/logo.png" {
		t.Errorf("image target = %q, want %q", target.Path, "/img/logo.png")
	}
	if img.Alt != "logo" {
		t.Errorf("alt = %q, want %q", img.Alt, "logo")
	}
}

func TestParse_CodeFence(t *testing.T) {
	t.Parallel()
	root := parse(t, "```go\nfmt.Println(1)\n```\n")
	cb, ok := root.Content[0].(*doctree.CodeBlock)
	if !ok {
		t.Fatalf("block is %T, want *doctree.CodeBlock", root.Content[0])
	}
	if cb.Language != "go" {
		t.Errorf("language = %q, want %q", cb.Language, "go")
	}
	if !strings.Contains(cb.Text, "fmt.Println(1)") {
		t.Errorf("text = %q", cb.Text)
	}
}

func TestParse_ListAndQuote(t *testing.T) {
	t.Parallel()
	root := parse(t, "- one\n- two\n\n> quoted\n")

	list, ok := root.Content[0].(*doctree.BulletList)
	if !ok {
		t.Fatalf("block is %T, want *doctree.BulletList", root.Content[0])
	}
	if len(list.Entries) != 2 {
		t.Fatalf("list has %d entries, want 2", len(list.Entries))
	}
	entry := list.Entries[0].(*doctree.ListEntry)
	first := entry.Content[0].(*doctree.Paragraph)
	if got := doctree.ExtractText(first.Content); got != "one" {
		t.Errorf("first entry = %q, want %q", got, "one")
	}

	quote, ok := root.Content[1].(*doctree.QuoteBlock)
	if !ok {
		t.Fatalf("block is %T, want *doctree.QuoteBlock", root.Content[1])
	}
	inner := quote.Content[0].(*doctree.Paragraph)
	if got := doctree.ExtractText(inner.Content); got != "quoted" {
		t.Errorf("quote text = %q, want %q", got, "quoted")
	}
}

func TestParse_OrderedListStart(t *testing.T) {
	t.Parallel()
	root := parse(t, "3. three\n4. four\n")
	list, ok := root.Content[0].(*doctree.OrderedList)
	if !ok {
		t.Fatalf("block is %T, want *doctree.OrderedList", root.Content[0])
	}
	if list.Start != 3 {
		t.Errorf("Start = %d, want 3", list.Start)
	}
}

func TestParse_ThematicBreakAndHTMLBlock(t *testing.T) {
	t.Parallel()
	root := parse(t, "---\n\n<div>raw</div>\n")
	if _, ok := root.Content[0].(*doctree.Rule); !ok {
		t.Errorf("block 0 is %T, want *doctree.Rule", root.Content[0])
	}
	raw, ok := root.Content[1].(*doctree.RawBlock)
	if !ok {
		t.Fatalf("block 1 is %T, want *doctree.RawBlock", root.Content[1])
	}
	if !strings.Contains(raw.Text, "<div>raw</div>") {
		t.Errorf("raw text = %q", raw.Text)
	}
	if !raw.AppliesTo("html") || raw.AppliesTo("pdf") {
		t.Error("raw block must be restricted to markup formats")
	}
}

func TestParse_FragmentLineAccountsForFrontMatter(t *testing.T) {
	t.Parallel()
	source := "---\ntitle: T\n---\n\n[x](#missing)\n"
	d, err := New().Parse("/doc.md", []byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	refs := doctree.Collect(d.Content, func(n doctree.Node) (*doctree.LinkReference, bool) {
		r, ok := n.(*doctree.LinkReference)
		return r, ok
	})
	if len(refs) != 1 {
		t.Fatalf("got %d references, want 1", len(refs))
	}
	// The reference sits on line 5 of the original input.
	if refs[0].Source.Line != 5 {
		t.Errorf("source line = %d, want 5", refs[0].Source.Line)
	}
}
