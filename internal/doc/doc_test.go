// SPDX-License-Identifier: MPL-2.0

package doc

import (
	"errors"
	"testing"

	"folio-cli/internal/doctree"
	"folio-cli/internal/nav"
)

func text(s string) []doctree.Span {
	return []doctree.Span{&doctree.Text{Text: s}}
}

func header(level int, title, id string) *doctree.Header {
	return &doctree.Header{Level: level, Content: text(title), Opts: doctree.Options{ID: id}}
}

func TestTitle_DeclaredWins(t *testing.T) {
	t.Parallel()
	d := &Document{
		Path:          "/doc.md",
		DeclaredTitle: text("Declared"),
		Content:       &doctree.RootBlock{Content: []doctree.Block{header(1, "From Header", "")}},
	}
	if got := doctree.ExtractText(d.Title()); got != "Declared" {
		t.Errorf("Title() = %q, want %q", got, "Declared")
	}
}

func TestTitle_FallsBackToFirstLevelOneHeader(t *testing.T) {
	t.Parallel()
	d := &Document{
		Path: "/doc.md",
		Content: &doctree.RootBlock{Content: []doctree.Block{
			header(2, "Not This", ""),
			header(1, "The Title", ""),
		}},
	}
	if got := doctree.ExtractText(d.Title()); got != "The Title" {
		t.Errorf("Title() = %q, want %q", got, "The Title")
	}
}

func TestSections_NestingByLevel(t *testing.T) {
	t.Parallel()
	root := &doctree.RootBlock{Content: []doctree.Block{
		header(1, "Title", "title"),
		header(2, "One", "one"),
		header(3, "One A", "one-a"),
		header(3, "One B", "one-b"),
		header(2, "Two", "two"),
	}}

	sections := Sections(root)
	if len(sections) != 2 {
		t.Fatalf("got %d top-level sections, want 2", len(sections))
	}
	if sections[0].ID != "one" || sections[1].ID != "two" {
		t.Errorf("top-level ids = %q, %q; want one, two", sections[0].ID, sections[1].ID)
	}
	if len(sections[0].Nested) != 2 {
		t.Fatalf("section one has %d subsections, want 2", len(sections[0].Nested))
	}
	if sections[0].Nested[0].ID != "one-a" || sections[0].Nested[1].ID != "one-b" {
		t.Errorf("subsection ids = %q, %q", sections[0].Nested[0].ID, sections[0].Nested[1].ID)
	}
	if len(sections[1].Nested) != 0 {
		t.Errorf("section two has %d subsections, want 0", len(sections[1].Nested))
	}
}

func TestSections_SkippedLevels(t *testing.T) {
	t.Parallel()
	root := &doctree.RootBlock{Content: []doctree.Block{
		header(2, "One", "one"),
		header(4, "Deep", "deep"),
		header(2, "Two", "two"),
	}}
	sections := Sections(root)
	if len(sections) != 2 {
		t.Fatalf("got %d top-level sections, want 2", len(sections))
	}
	if len(sections[0].Nested) != 1 || sections[0].Nested[0].ID != "deep" {
		t.Errorf("section one nested = %+v, want the level-4 header", sections[0].Nested)
	}
}

func TestResolve_ReferenceToDefinition(t *testing.T) {
	t.Parallel()
	d := &Document{
		Path: "/doc.md",
		Content: &doctree.RootBlock{Content: []doctree.Block{
			&doctree.Paragraph{Content: []doctree.Span{
				&doctree.LinkReference{RefID: "home", Content: text("Home")},
			}},
			&doctree.LinkDefinition{ID: "home", Target: doctree.ExternalTarget{URL: "https://example.com"}},
		}},
	}

	resolved := d.Resolve()

	para := resolved.Content.Content[0].(*doctree.Paragraph)
	link, ok := para.Content[0].(*doctree.SpanLink)
	if !ok {
		t.Fatalf("span is %T, want *doctree.SpanLink", para.Content[0])
	}
	ext, ok := link.Target.(doctree.ExternalTarget)
	if !ok || ext.URL != "https://example.com" {
		t.Errorf("target = %#v, want the definition's external target", link.Target)
	}
	// The hidden definition is gone.
	if len(resolved.Content.Content) != 1 {
		t.Errorf("resolved tree has %d blocks, want 1 (definition removed)", len(resolved.Content.Content))
	}
	// The input document is unchanged.
	if len(d.Content.Content) != 2 {
		t.Error("input document was mutated")
	}
}

func TestResolve_ReferenceToHeaderAnchor(t *testing.T) {
	t.Parallel()
	d := &Document{
		Path: "/doc.md",
		Content: &doctree.RootBlock{Content: []doctree.Block{
			header(2, "Install Guide", ""),
			&doctree.Paragraph{Content: []doctree.Span{
				&doctree.LinkReference{RefID: "install-guide", Content: text("see install")},
			}},
		}},
	}

	resolved := d.Resolve()

	h := resolved.Content.Content[0].(*doctree.Header)
	if h.Opts.ID != "install-guide" {
		t.Errorf("header anchor = %q, want %q", h.Opts.ID, "install-guide")
	}
	para := resolved.Content.Content[1].(*doctree.Paragraph)
	local, ok := para.Content[0].(*doctree.LocalLink)
	if !ok {
		t.Fatalf("span is %T, want *doctree.LocalLink", para.Content[0])
	}
	if local.RefID != "install-guide" {
		t.Errorf("RefID = %q, want %q", local.RefID, "install-guide")
	}
}

func TestResolve_UnresolvableBecomesInvalid(t *testing.T) {
	t.Parallel()
	d := &Document{
		Path: "/doc.md",
		Content: &doctree.RootBlock{Content: []doctree.Block{
			&doctree.Paragraph{Content: []doctree.Span{
				&doctree.LinkReference{
					RefID:   "nowhere",
					Content: text("broken"),
					Source:  doctree.Fragment{Snippet: "[broken][nowhere]", Line: 3},
				},
			}},
		}},
	}

	resolved := d.Resolve()

	para := resolved.Content.Content[0].(*doctree.Paragraph)
	invalid, ok := para.Content[0].(*doctree.InvalidSpan)
	if !ok {
		t.Fatalf("span is %T, want *doctree.InvalidSpan", para.Content[0])
	}
	if invalid.Info.Severity != doctree.SeverityError {
		t.Errorf("severity = %v, want error", invalid.Info.Severity)
	}
	if invalid.Info.Source.Line != 3 {
		t.Errorf("source line = %d, want 3", invalid.Info.Source.Line)
	}
	if got := doctree.ExtractText([]doctree.Span{invalid.Fallback}); got != "broken" {
		t.Errorf("fallback text = %q, want %q", got, "broken")
	}
	// Invalid is terminal: the resolved document passes the boundary check.
	if err := resolved.CheckResolved(); err != nil {
		t.Errorf("CheckResolved() = %v, want nil", err)
	}
}

func TestCheckResolved_ReportsSurvivors(t *testing.T) {
	t.Parallel()
	d := &Document{
		Path: "/doc.md",
		Content: &doctree.RootBlock{Content: []doctree.Block{
			&doctree.Paragraph{Content: []doctree.Span{
				&doctree.LinkReference{RefID: "x", Content: text("x")},
			}},
		}},
	}
	err := d.CheckResolved()
	if err == nil {
		t.Fatal("expected error for a tree holding an unresolved reference")
	}
	if !errors.Is(err, ErrUnresolved) {
		t.Errorf("error %v is not ErrUnresolved", err)
	}
}

func TestHeaderAnchorRules_DuplicateSlugs(t *testing.T) {
	t.Parallel()
	d := &Document{
		Path: "/doc.md",
		Content: &doctree.RootBlock{Content: []doctree.Block{
			header(2, "Setup", ""),
			header(2, "Setup", ""),
		}},
	}
	resolved := d.Resolve()
	first := resolved.Content.Content[0].(*doctree.Header)
	second := resolved.Content.Content[1].(*doctree.Header)
	if first.Opts.ID != "setup" || second.Opts.ID != "setup-1" {
		t.Errorf("anchors = %q, %q; want setup, setup-1", first.Opts.ID, second.Opts.ID)
	}
}

func TestTreeNavItem_ExcludeSelf(t *testing.T) {
	t.Parallel()
	tree := &Tree{
		Path: "/",
		Documents: []*Document{
			{Path: "/a.md", DeclaredTitle: text("A"), Content: &doctree.RootBlock{}},
			{Path: "/b.md", DeclaredTitle: text("B"), Content: &doctree.RootBlock{}},
		},
	}
	ctx := nav.NewContext("/a.md", 3)
	ctx.ExcludeSelf = true

	item := tree.NavItem(ctx)
	children := item.ChildItems()
	if len(children) != 1 {
		t.Fatalf("got %d children, want 1 (self excluded)", len(children))
	}
	if got := doctree.ExtractText(children[0].ItemTitle()); got != "B" {
		t.Errorf("remaining child = %q, want B", got)
	}
}

func TestTreeNavItem_HeaderWithoutTitleDoc(t *testing.T) {
	t.Parallel()
	tree := &Tree{
		Path:      "/guide",
		Documents: []*Document{{Path: "/guide/a.md", DeclaredTitle: text("A"), Content: &doctree.RootBlock{}}},
	}
	item := tree.NavItem(nav.NewContext("/index.md", 3))
	h, ok := item.(*nav.Header)
	if !ok {
		t.Fatalf("item is %T, want *nav.Header", item)
	}
	if got := doctree.ExtractText(h.Title); got != "guide" {
		t.Errorf("tree title = %q, want %q (synthesized)", got, "guide")
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"Install Guide", "install-guide"},
		{"  Spaces  everywhere ", "spaces-everywhere"},
		{"C'est l'été!", "c-est-l-t"},
		{"v2.0 — Release", "v2-0-release"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
