// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"reflect"
	"strings"
	"testing"

	"folio-cli/internal/doctree"
)

func para(spans ...doctree.Span) *doctree.Paragraph {
	return &doctree.Paragraph{Content: spans}
}

func text(s string) *doctree.Text {
	return &doctree.Text{Text: s}
}

func TestTree_NoMatchingRulesIsIdentity(t *testing.T) {
	t.Parallel()
	tree := &doctree.RootBlock{Content: []doctree.Block{
		para(text("a"), &doctree.Emphasis{Content: []doctree.Span{text("b")}}),
		&doctree.Rule{},
	}}

	never := func(doctree.Span) (Action[doctree.Span], bool) {
		return Action[doctree.Span]{}, false
	}
	got := Tree(tree, SpanRules(never))

	if !reflect.DeepEqual(got, doctree.Node(tree)) {
		t.Errorf("rewrite with no matching rules changed the tree:\ngot  %#v\nwant %#v", got, tree)
	}
}

func TestTree_ReplacementAppliedExactlyOnce(t *testing.T) {
	t.Parallel()
	tree := para(text("a"))

	// "a" -> "aa": if the replacement were re-offered to the rules the
	// pass would not terminate with a single "aa".
	doubling := func(s doctree.Span) (Action[doctree.Span], bool) {
		txt, ok := s.(*doctree.Text)
		if !ok || txt.Text != "a" {
			return Action[doctree.Span]{}, false
		}
		return Replace[doctree.Span](text(txt.Text + txt.Text)), true
	}

	got := Spans(tree, doubling).(*doctree.Paragraph)
	if len(got.Content) != 1 {
		t.Fatalf("paragraph has %d spans, want 1", len(got.Content))
	}
	if txt := got.Content[0].(*doctree.Text); txt.Text != "aa" {
		t.Errorf("text = %q, want %q", txt.Text, "aa")
	}
}

func TestTree_ReplaceManyAndRemove(t *testing.T) {
	t.Parallel()
	tree := para(text("split"), text("drop"), text("keep"))

	rule := func(s doctree.Span) (Action[doctree.Span], bool) {
		txt, ok := s.(*doctree.Text)
		if !ok {
			return Action[doctree.Span]{}, false
		}
		switch txt.Text {
		case "split":
			return ReplaceMany[doctree.Span](text("s1"), text("s2")), true
		case "drop":
			return Remove[doctree.Span](), true
		default:
			return Action[doctree.Span]{}, false
		}
	}

	got := Spans(tree, rule).(*doctree.Paragraph)
	var texts []string
	for _, s := range got.Content {
		texts = append(texts, s.(*doctree.Text).Text)
	}
	want := []string{"s1", "s2", "keep"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("spans = %v, want %v", texts, want)
	}
}

func TestTree_FirstDefinedRuleWins(t *testing.T) {
	t.Parallel()
	tree := para(text("x"))

	first := func(doctree.Span) (Action[doctree.Span], bool) {
		return Replace[doctree.Span](text("first")), true
	}
	second := func(doctree.Span) (Action[doctree.Span], bool) {
		return Replace[doctree.Span](text("second")), true
	}

	got := Spans(tree, first, second).(*doctree.Paragraph)
	if txt := got.Content[0].(*doctree.Text).Text; txt != "first" {
		t.Errorf("text = %q, want %q", txt, "first")
	}
}

func TestTree_RetainStopsLaterRules(t *testing.T) {
	t.Parallel()
	tree := para(text("x"))

	keep := func(doctree.Span) (Action[doctree.Span], bool) {
		return Retain[doctree.Span](), true
	}
	replace := func(doctree.Span) (Action[doctree.Span], bool) {
		return Replace[doctree.Span](text("changed")), true
	}

	got := Spans(tree, keep, replace).(*doctree.Paragraph)
	if txt := got.Content[0].(*doctree.Text).Text; txt != "x" {
		t.Errorf("text = %q, want %q", txt, "x")
	}
}

func TestTree_PreservesContainerMetadata(t *testing.T) {
	t.Parallel()
	tree := &doctree.Paragraph{
		Content: []doctree.Span{text("a")},
		Opts:    doctree.Options{ID: "p1", Styles: doctree.NewStyles("lead")},
	}

	upper := func(s doctree.Span) (Action[doctree.Span], bool) {
		txt, ok := s.(*doctree.Text)
		if !ok {
			return Action[doctree.Span]{}, false
		}
		return Replace[doctree.Span](text(strings.ToUpper(txt.Text))), true
	}

	got := Spans(tree, upper).(*doctree.Paragraph)
	if got.Opts.ID != "p1" || !got.Opts.Styles.Contains("lead") {
		t.Errorf("container metadata not preserved: %+v", got.Opts)
	}
}

func TestTree_BottomUp_ChildrenRewrittenBeforeParentMatched(t *testing.T) {
	t.Parallel()
	tree := &doctree.RootBlock{Content: []doctree.Block{
		para(text("a"), &doctree.Emphasis{Content: []doctree.Span{text("b")}}),
	}}

	upper := func(s doctree.Span) (Action[doctree.Span], bool) {
		txt, ok := s.(*doctree.Text)
		if !ok {
			return Action[doctree.Span]{}, false
		}
		return Replace[doctree.Span](text(strings.ToUpper(txt.Text))), true
	}
	// Defined only for paragraphs whose span rewriting already happened.
	sawUpper := false
	blockCheck := func(b doctree.Block) (Action[doctree.Block], bool) {
		p, ok := b.(*doctree.Paragraph)
		if !ok {
			return Action[doctree.Block]{}, false
		}
		sawUpper = doctree.ExtractText(p.Content) == "AB"
		return Retain[doctree.Block](), true
	}

	Tree(tree, Combine(SpanRules(upper), BlockRules(blockCheck)))
	if !sawUpper {
		t.Error("block rule saw the paragraph before its spans were rewritten")
	}
}

func TestTree_ListItemsRecursed(t *testing.T) {
	t.Parallel()
	tree := &doctree.BulletList{Entries: []doctree.ListItem{
		&doctree.ListEntry{Content: []doctree.Block{para(text("a"))}},
	}}

	upper := func(s doctree.Span) (Action[doctree.Span], bool) {
		txt, ok := s.(*doctree.Text)
		if !ok {
			return Action[doctree.Span]{}, false
		}
		return Replace[doctree.Span](text(strings.ToUpper(txt.Text))), true
	}

	got := Spans(tree, upper).(*doctree.BulletList)
	entry := got.Entries[0].(*doctree.ListEntry)
	p := entry.Content[0].(*doctree.Paragraph)
	if txt := p.Content[0].(*doctree.Text).Text; txt != "A" {
		t.Errorf("text = %q, want %q", txt, "A")
	}
}

func TestTree_MixedContainerBothCategories(t *testing.T) {
	t.Parallel()
	tree := &doctree.QuoteBlock{
		Content:     []doctree.Block{para(text("quoted"))},
		Attribution: []doctree.Span{text("author")},
	}

	dropRules := func(b doctree.Block) (Action[doctree.Block], bool) {
		if _, ok := b.(*doctree.Rule); ok {
			return Remove[doctree.Block](), true
		}
		return Action[doctree.Block]{}, false
	}
	upper := func(s doctree.Span) (Action[doctree.Span], bool) {
		txt, ok := s.(*doctree.Text)
		if !ok {
			return Action[doctree.Span]{}, false
		}
		return Replace[doctree.Span](text(strings.ToUpper(txt.Text))), true
	}

	got := Tree(tree, Combine(BlockRules(dropRules), SpanRules(upper))).(*doctree.QuoteBlock)
	if attr := got.Attribution[0].(*doctree.Text).Text; attr != "AUTHOR" {
		t.Errorf("attribution = %q, want %q", attr, "AUTHOR")
	}
	inner := got.Content[0].(*doctree.Paragraph)
	if txt := inner.Content[0].(*doctree.Text).Text; txt != "QUOTED" {
		t.Errorf("quoted text = %q, want %q", txt, "QUOTED")
	}
}

func TestTree_NilRoot(t *testing.T) {
	t.Parallel()
	if got := Tree(nil, Rules{}); got != nil {
		t.Errorf("Tree(nil) = %v, want nil", got)
	}
}
