// SPDX-License-Identifier: MPL-2.0

package astdump

import (
	"strings"
	"testing"

	"folio-cli/internal/doctree"
)

func TestDump(t *testing.T) {
	t.Parallel()
	tree := &doctree.RootBlock{Content: []doctree.Block{
		&doctree.Header{Level: 2, Content: []doctree.Span{&doctree.Text{Text: "Title"}}, Opts: doctree.Options{ID: "title"}},
		&doctree.Paragraph{Content: []doctree.Span{
			&doctree.Emphasis{Content: []doctree.Span{&doctree.Text{Text: "x"}}},
		}},
	}}

	var b strings.Builder
	if err := Dump(&b, tree); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	got := b.String()

	for _, want := range []string{
		"RootBlock",
		"Header #title level=2",
		`Text "Title"`,
		"Paragraph",
		"Emphasis",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dump missing %q:\n%s", want, got)
		}
	}

	// Indentation reflects depth: the emphasis text sits three levels deep.
	if !strings.Contains(got, "\n      Text \"x\"") {
		t.Errorf("indentation wrong:\n%s", got)
	}
}

func TestDump_ShowsProblemsAndDiagnostics(t *testing.T) {
	t.Parallel()
	tree := &doctree.Paragraph{Content: []doctree.Span{
		&doctree.LinkReference{RefID: "ghost"},
		&doctree.InvalidSpan{
			Info:     doctree.Problem{Severity: doctree.SeverityError, Message: "bad"},
			Fallback: &doctree.Text{Text: "fb"},
		},
	}}

	var b strings.Builder
	if err := Dump(&b, tree); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	got := b.String()
	if !strings.Contains(got, `?"unresolved link reference \"ghost\""`) {
		t.Errorf("unresolved diagnostic missing:\n%s", got)
	}
	if !strings.Contains(got, `!error "bad"`) {
		t.Errorf("invalid problem missing:\n%s", got)
	}
}
