// SPDX-License-Identifier: MPL-2.0

package doctree

import "fmt"

type (
	// Text is a plain text leaf.
	Text struct {
		Text string
		Opts Options
	}

	// SpanSequence groups spans without any semantics of its own.
	SpanSequence struct {
		Content []Span
		Opts    Options
	}

	// Emphasis is emphasized (usually italic) span content.
	Emphasis struct {
		Content []Span
		Opts    Options
	}

	// Strong is strongly emphasized (usually bold) span content.
	Strong struct {
		Content []Span
		Opts    Options
	}

	// Literal is an inline code leaf.
	Literal struct {
		Text string
		Opts Options
	}

	// LineBreak is a hard line break.
	LineBreak struct {
		Opts Options
	}

	// SpanLink is a resolved link wrapping span content.
	SpanLink struct {
		Content []Span
		Target  Target
		Title   string
		Opts    Options
	}

	// LocalLink points at an anchor within the same document.
	LocalLink struct {
		RefID   string
		Content []Span
		Opts    Options
	}

	// Image is a resolved image reference. External targets are not
	// supported in every output format (embedded images must be local in
	// some of them).
	Image struct {
		Target Target
		Alt    string
		Title  string
		Opts   Options
	}

	// LinkReference is an unresolved reference to a link definition or
	// anchor. The rewrite pass replaces it with a SpanLink or LocalLink,
	// or with an InvalidSpan when the identifier cannot be resolved.
	LinkReference struct {
		RefID   string
		Content []Span
		Source  Fragment
		Opts    Options
	}

	// InternalAnchor is an invisible span that local links can target.
	InternalAnchor struct {
		Opts Options
	}

	// InvalidSpan is a terminal error node at span level.
	InvalidSpan struct {
		Info     Problem
		Fallback Span
		Opts     Options
	}
)

func (*Text) spanNode()           {}
func (*SpanSequence) spanNode()   {}
func (*Emphasis) spanNode()       {}
func (*Strong) spanNode()         {}
func (*Literal) spanNode()        {}
func (*LineBreak) spanNode()      {}
func (*SpanLink) spanNode()       {}
func (*LocalLink) spanNode()      {}
func (*Image) spanNode()          {}
func (*LinkReference) spanNode()  {}
func (*InternalAnchor) spanNode() {}
func (*InvalidSpan) spanNode()    {}

// Text

func (s *Text) Options() Options { return s.Opts }

func (s *Text) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *Text) Children() []Node { return nil }

func (s *Text) TextContent() string { return s.Text }

// SpanSequence

func (s *SpanSequence) Options() Options { return s.Opts }

func (s *SpanSequence) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *SpanSequence) Children() []Node { return spanNodes(s.Content) }

func (s *SpanSequence) SpanContent() []Span { return s.Content }

func (s *SpanSequence) WithSpanContent(spans []Span) Node {
	c := *s
	c.Content = spans
	return &c
}

// Emphasis

func (s *Emphasis) Options() Options { return s.Opts }

func (s *Emphasis) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *Emphasis) Children() []Node { return spanNodes(s.Content) }

func (s *Emphasis) SpanContent() []Span { return s.Content }

func (s *Emphasis) WithSpanContent(spans []Span) Node {
	c := *s
	c.Content = spans
	return &c
}

// Strong

func (s *Strong) Options() Options { return s.Opts }

func (s *Strong) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *Strong) Children() []Node { return spanNodes(s.Content) }

func (s *Strong) SpanContent() []Span { return s.Content }

func (s *Strong) WithSpanContent(spans []Span) Node {
	c := *s
	c.Content = spans
	return &c
}

// Literal

func (s *Literal) Options() Options { return s.Opts }

func (s *Literal) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *Literal) Children() []Node { return nil }

func (s *Literal) TextContent() string { return s.Text }

// LineBreak

func (s *LineBreak) Options() Options { return s.Opts }

func (s *LineBreak) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *LineBreak) Children() []Node { return nil }

// SpanLink

func (s *SpanLink) Options() Options { return s.Opts }

func (s *SpanLink) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *SpanLink) Children() []Node { return spanNodes(s.Content) }

func (s *SpanLink) SpanContent() []Span { return s.Content }

func (s *SpanLink) WithSpanContent(spans []Span) Node {
	c := *s
	c.Content = spans
	return &c
}

func (s *SpanLink) linkNode() {}

func (s *SpanLink) LinkTarget() Target { return s.Target }

func (s *SpanLink) SupportsExternalTargets() bool { return true }

// LocalLink

func (s *LocalLink) Options() Options { return s.Opts }

func (s *LocalLink) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *LocalLink) Children() []Node { return spanNodes(s.Content) }

func (s *LocalLink) SpanContent() []Span { return s.Content }

func (s *LocalLink) WithSpanContent(spans []Span) Node {
	c := *s
	c.Content = spans
	return &c
}

func (s *LocalLink) linkNode() {}

// Image

func (s *Image) Options() Options { return s.Opts }

func (s *Image) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *Image) Children() []Node { return nil }

func (s *Image) linkNode() {}

func (s *Image) LinkTarget() Target { return s.Target }

func (s *Image) SupportsExternalTargets() bool { return false }

// LinkReference

func (s *LinkReference) Options() Options { return s.Opts }

func (s *LinkReference) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *LinkReference) Children() []Node { return spanNodes(s.Content) }

func (s *LinkReference) SpanContent() []Span { return s.Content }

func (s *LinkReference) WithSpanContent(spans []Span) Node {
	c := *s
	c.Content = spans
	return &c
}

func (s *LinkReference) ReferenceID() string { return s.RefID }

func (s *LinkReference) UnresolvedDiagnostic() Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("unresolved link reference %q", s.RefID),
		Source:  s.Source,
	}
}

// InternalAnchor

func (s *InternalAnchor) Options() Options { return s.Opts }

func (s *InternalAnchor) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *InternalAnchor) Children() []Node { return nil }

func (s *InternalAnchor) AnchorID() string { return s.Opts.ID }

// InvalidSpan

func (s *InvalidSpan) Options() Options { return s.Opts }

func (s *InvalidSpan) WithOptions(o Options) Node {
	c := *s
	c.Opts = o
	return &c
}

func (s *InvalidSpan) Children() []Node {
	if s.Fallback == nil {
		return nil
	}
	return []Node{s.Fallback}
}

func (s *InvalidSpan) Problem() Problem { return s.Info }

func (s *InvalidSpan) FallbackNode() Node {
	if s.Fallback == nil {
		return nil
	}
	return s.Fallback
}
