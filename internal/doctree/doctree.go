// SPDX-License-Identifier: MPL-2.0

// Package doctree defines the in-memory document tree that every markup
// parser produces and every renderer consumes. Nodes are immutable values:
// all update operations return a new node of the same concrete kind and
// leave the input untouched, so trees can be shared freely across
// goroutines without coordination.
//
// Every node belongs to exactly one structural kind (Block, Span or
// ListItem) and may additionally implement capability interfaces such as
// Hidden, Unresolved, Invalid or Link. Capability checks are plain type
// assertions; no reflection is used anywhere in the package.
package doctree

import "folio-cli/pkg/vpath"

type (
	// Node is any element of the document tree.
	Node interface {
		// Options returns the node's metadata (identifier and style tags).
		Options() Options
		// WithOptions returns a new node of the same concrete kind with the
		// given metadata and all other fields unchanged.
		WithOptions(Options) Node
		// Children returns the node's direct child nodes in document order.
		// This is the sole extension point the traversal engine relies on:
		// a node kind that lists its children here participates in ForEach,
		// Select and Collect without any engine changes. Non-node fields
		// are never exposed through Children.
		Children() []Node
	}

	// Block is a block-level node (paragraph, header, list, ...).
	Block interface {
		Node
		blockNode()
	}

	// Span is an inline node (text, emphasis, link, ...).
	Span interface {
		Node
		spanNode()
	}

	// ListItem is a single entry of a list container.
	ListItem interface {
		Node
		listItemNode()
	}
)

// Container facets. A concrete kind may implement more than one (QuoteBlock
// owns both block content and an attribution span sequence).
type (
	// BlockContainer is a node owning an ordered sequence of blocks.
	BlockContainer interface {
		Node
		BlockContent() []Block
		// WithBlockContent returns a same-kind node with the child blocks
		// replaced; metadata and all non-child fields are preserved.
		WithBlockContent([]Block) Node
	}

	// SpanContainer is a node owning an ordered sequence of spans.
	SpanContainer interface {
		Node
		SpanContent() []Span
		// WithSpanContent returns a same-kind node with the child spans
		// replaced; metadata and all non-child fields are preserved.
		WithSpanContent([]Span) Node
	}

	// ListItemContainer is a node owning an ordered sequence of list items.
	ListItemContainer interface {
		Node
		Items() []ListItem
		// WithItems returns a same-kind node with the items replaced;
		// metadata and all non-child fields are preserved.
		WithItems([]ListItem) Node
	}

	// TextContainer is a leaf node carrying raw text content.
	TextContainer interface {
		Node
		TextContent() string
	}
)

// Cross-cutting capabilities.
type (
	// Hidden marks nodes that are excluded from rendering. The standard
	// pre-render rewrite rules remove them before a tree reaches a renderer.
	Hidden interface {
		Node
		hiddenNode()
	}

	// Unresolved marks mid-pipeline placeholder nodes, e.g. a link
	// reference whose target has not been resolved yet. The rewrite pass
	// must eliminate every Unresolved node; one reaching a renderer is a
	// pipeline defect, not a user-facing error.
	Unresolved interface {
		Node
		UnresolvedDiagnostic() Diagnostic
	}

	// Invalid marks terminal error nodes. They may legitimately reach a
	// renderer, which can render the fallback, the message, both or
	// neither depending on downstream policy.
	Invalid interface {
		Node
		Problem() Problem
		// FallbackNode returns the replacement to use when the consumer
		// chooses to suppress the error.
		FallbackNode() Node
	}

	// Reference is an unresolved span naming a target to be resolved by
	// the rewrite pass.
	Reference interface {
		Span
		Unresolved
		ReferenceID() string
	}

	// Link is a span pointing at a target, local or global.
	Link interface {
		Span
		linkNode()
	}

	// GlobalLink is a link with a fully resolved, possibly external target.
	GlobalLink interface {
		Link
		LinkTarget() Target
		// SupportsExternalTargets reports whether this link kind can point
		// at an external target in every output format (false for embedded
		// images in some formats).
		SupportsExternalTargets() bool
	}

	// AnchorNode is a node that can serve as the target of a local link.
	AnchorNode interface {
		Node
		AnchorID() string
	}

	// Definition is a pre-render-only definition node with a per-document
	// unique identifier. Definitions never render.
	Definition interface {
		Node
		DefinitionID() string
	}
)

// Targets of resolved links.
type (
	// Target is the destination of a resolved link, either inside the
	// site tree or external to it.
	Target interface {
		targetKind()
	}

	// InternalTarget points at a document within the site tree, optionally
	// at an anchor inside it.
	InternalTarget struct {
		Path     vpath.DocPath
		Fragment string
	}

	// ExternalTarget points outside the site tree.
	ExternalTarget struct {
		URL string
	}
)

func (InternalTarget) targetKind() {}
func (ExternalTarget) targetKind() {}

// Diagnostic describes why a node is unresolved, retaining the originating
// source fragment so reports can cite the exact input location.
type Diagnostic struct {
	Message string
	Source  Fragment
}

// Fragment is the slice of markup input a node originated from.
type Fragment struct {
	Snippet string
	Line    int
}

// Severity classifies a Problem.
type Severity int

const (
	// SeverityInfo is advisory only. The zero value is deliberately not
	// a valid severity so that an unset threshold can be detected.
	SeverityInfo Severity = iota + 1
	// SeverityWarning indicates degraded output.
	SeverityWarning
	// SeverityError indicates content that could not be processed.
	SeverityError
	// SeverityFatal indicates the whole run should be considered failed.
	SeverityFatal
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Problem is the payload of an Invalid node.
type Problem struct {
	Severity Severity
	Message  string
	Source   Fragment
}

// blockNodes widens a block slice for Children.
func blockNodes(blocks []Block) []Node {
	nodes := make([]Node, len(blocks))
	for i, b := range blocks {
		nodes[i] = b
	}
	return nodes
}

// spanNodes widens a span slice for Children.
func spanNodes(spans []Span) []Node {
	nodes := make([]Node, len(spans))
	for i, s := range spans {
		nodes[i] = s
	}
	return nodes
}

// itemNodes widens a list-item slice for Children.
func itemNodes(items []ListItem) []Node {
	nodes := make([]Node, len(items))
	for i, it := range items {
		nodes[i] = it
	}
	return nodes
}
