// SPDX-License-Identifier: MPL-2.0

package doctree

type (
	// RootBlock is the root container of a parsed document.
	RootBlock struct {
		Content []Block
		Opts    Options
	}

	// Paragraph is a block of flowing span content.
	Paragraph struct {
		Content []Span
		Opts    Options
	}

	// Header is a section heading. Its identifier doubles as the anchor
	// local links resolve against.
	Header struct {
		Level   int
		Content []Span
		Opts    Options
	}

	// CodeBlock is a literal block with an optional language hint.
	CodeBlock struct {
		Language string
		Text     string
		Opts     Options
	}

	// QuoteBlock is a quoted sequence of blocks with an optional
	// attribution line. It owns both block and span children, making it
	// the usual example of a mixed container.
	QuoteBlock struct {
		Content     []Block
		Attribution []Span
		Opts        Options
	}

	// BulletList is an unordered list.
	BulletList struct {
		Entries []ListItem
		Opts    Options
	}

	// OrderedList is a numbered list starting at Start.
	OrderedList struct {
		Entries []ListItem
		Start   int
		Opts    Options
	}

	// ListEntry is the standard list item: a sequence of blocks.
	ListEntry struct {
		Content []Block
		Opts    Options
	}

	// Rule is a thematic break.
	Rule struct {
		Opts Options
	}

	// RawBlock carries verbatim output for specific formats only; an empty
	// Formats list means the block applies to every format.
	RawBlock struct {
		Formats []string
		Text    string
		Opts    Options
	}

	// Comment is markup commentary. It is hidden and never rendered.
	Comment struct {
		Text string
		Opts Options
	}

	// LinkDefinition is a pre-render-only definition binding an identifier
	// to a link target. It is hidden and removed before rendering.
	LinkDefinition struct {
		ID     string
		Target Target
		Title  string
		Opts   Options
	}

	// InvalidBlock is a terminal error node at block level, carrying the
	// problem and a fallback block a renderer may substitute.
	InvalidBlock struct {
		Info     Problem
		Fallback Block
		Opts     Options
	}
)

func (*RootBlock) blockNode()      {}
func (*Paragraph) blockNode()      {}
func (*Header) blockNode()         {}
func (*CodeBlock) blockNode()      {}
func (*QuoteBlock) blockNode()     {}
func (*BulletList) blockNode()     {}
func (*OrderedList) blockNode()    {}
func (*Rule) blockNode()           {}
func (*RawBlock) blockNode()       {}
func (*Comment) blockNode()        {}
func (*LinkDefinition) blockNode() {}
func (*InvalidBlock) blockNode()   {}

func (*ListEntry) listItemNode() {}

// RootBlock

func (b *RootBlock) Options() Options { return b.Opts }

func (b *RootBlock) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *RootBlock) Children() []Node { return blockNodes(b.Content) }

func (b *RootBlock) BlockContent() []Block { return b.Content }

func (b *RootBlock) WithBlockContent(blocks []Block) Node {
	c := *b
	c.Content = blocks
	return &c
}

// Paragraph

func (b *Paragraph) Options() Options { return b.Opts }

func (b *Paragraph) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *Paragraph) Children() []Node { return spanNodes(b.Content) }

func (b *Paragraph) SpanContent() []Span { return b.Content }

func (b *Paragraph) WithSpanContent(spans []Span) Node {
	c := *b
	c.Content = spans
	return &c
}

// Header

func (b *Header) Options() Options { return b.Opts }

func (b *Header) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *Header) Children() []Node { return spanNodes(b.Content) }

func (b *Header) SpanContent() []Span { return b.Content }

func (b *Header) WithSpanContent(spans []Span) Node {
	c := *b
	c.Content = spans
	return &c
}

// AnchorID returns the header's identifier, making headers addressable by
// local links.
func (b *Header) AnchorID() string { return b.Opts.ID }

// CodeBlock

func (b *CodeBlock) Options() Options { return b.Opts }

func (b *CodeBlock) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *CodeBlock) Children() []Node { return nil }

func (b *CodeBlock) TextContent() string { return b.Text }

// QuoteBlock

func (b *QuoteBlock) Options() Options { return b.Opts }

func (b *QuoteBlock) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *QuoteBlock) Children() []Node {
	nodes := blockNodes(b.Content)
	return append(nodes, spanNodes(b.Attribution)...)
}

func (b *QuoteBlock) BlockContent() []Block { return b.Content }

func (b *QuoteBlock) WithBlockContent(blocks []Block) Node {
	c := *b
	c.Content = blocks
	return &c
}

func (b *QuoteBlock) SpanContent() []Span { return b.Attribution }

func (b *QuoteBlock) WithSpanContent(spans []Span) Node {
	c := *b
	c.Attribution = spans
	return &c
}

// BulletList

func (b *BulletList) Options() Options { return b.Opts }

func (b *BulletList) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *BulletList) Children() []Node { return itemNodes(b.Entries) }

func (b *BulletList) Items() []ListItem { return b.Entries }

func (b *BulletList) WithItems(items []ListItem) Node {
	c := *b
	c.Entries = items
	return &c
}

// OrderedList

func (b *OrderedList) Options() Options { return b.Opts }

func (b *OrderedList) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *OrderedList) Children() []Node { return itemNodes(b.Entries) }

func (b *OrderedList) Items() []ListItem { return b.Entries }

func (b *OrderedList) WithItems(items []ListItem) Node {
	c := *b
	c.Entries = items
	return &c
}

// ListEntry

func (b *ListEntry) Options() Options { return b.Opts }

func (b *ListEntry) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *ListEntry) Children() []Node { return blockNodes(b.Content) }

func (b *ListEntry) BlockContent() []Block { return b.Content }

func (b *ListEntry) WithBlockContent(blocks []Block) Node {
	c := *b
	c.Content = blocks
	return &c
}

// Rule

func (b *Rule) Options() Options { return b.Opts }

func (b *Rule) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *Rule) Children() []Node { return nil }

// RawBlock

func (b *RawBlock) Options() Options { return b.Opts }

func (b *RawBlock) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *RawBlock) Children() []Node { return nil }

func (b *RawBlock) TextContent() string { return b.Text }

// AppliesTo reports whether the block is intended for the given format
// selector. An empty Formats list applies everywhere.
func (b *RawBlock) AppliesTo(selector string) bool {
	if len(b.Formats) == 0 {
		return true
	}
	for _, f := range b.Formats {
		if f == selector {
			return true
		}
	}
	return false
}

// Comment

func (b *Comment) Options() Options { return b.Opts }

func (b *Comment) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *Comment) Children() []Node { return nil }

func (b *Comment) TextContent() string { return b.Text }

func (b *Comment) hiddenNode() {}

// LinkDefinition

func (b *LinkDefinition) Options() Options { return b.Opts }

func (b *LinkDefinition) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *LinkDefinition) Children() []Node { return nil }

func (b *LinkDefinition) DefinitionID() string { return b.ID }

func (b *LinkDefinition) hiddenNode() {}

// InvalidBlock

func (b *InvalidBlock) Options() Options { return b.Opts }

func (b *InvalidBlock) WithOptions(o Options) Node {
	c := *b
	c.Opts = o
	return &c
}

func (b *InvalidBlock) Children() []Node {
	if b.Fallback == nil {
		return nil
	}
	return []Node{b.Fallback}
}

func (b *InvalidBlock) Problem() Problem { return b.Info }

func (b *InvalidBlock) FallbackNode() Node {
	if b.Fallback == nil {
		return nil
	}
	return b.Fallback
}
