// SPDX-License-Identifier: MPL-2.0

package doctree

import "strings"

// ForEach visits root and every descendant depth-first, bottom-up: for each
// node, all of its descendants (in left-to-right child order, recursively)
// are visited before the node itself. The walk uses an explicit stack, so
// tree depth is not limited by goroutine stack size.
func ForEach(root Node, visit func(Node)) {
	if root == nil {
		return
	}
	type frame struct {
		node     Node
		expanded bool
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.expanded {
			visit(top.node)
			continue
		}
		stack = append(stack, frame{node: top.node, expanded: true})
		children := top.node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i]})
		}
	}
}

// Select returns every node of the tree (including root) for which pred
// holds, in bottom-up visit order.
func Select(root Node, pred func(Node) bool) []Node {
	var selected []Node
	ForEach(root, func(n Node) {
		if pred(n) {
			selected = append(selected, n)
		}
	})
	return selected
}

// Collect returns, in bottom-up visit order, the mapped value for every
// node for which fn is defined (reports true). It is equivalent to
// selecting with fn's defined-domain test and then applying fn.
func Collect[T any](root Node, fn func(Node) (T, bool)) []T {
	var collected []T
	ForEach(root, func(n Node) {
		if v, ok := fn(n); ok {
			collected = append(collected, v)
		}
	})
	return collected
}

// ExtractText concatenates the text content of all text leaves in the
// given spans, depth-first, recursing into nested span containers. Leaves
// without text content (images, line breaks, anchors) contribute nothing.
func ExtractText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		extractText(&b, s)
	}
	return b.String()
}

func extractText(b *strings.Builder, s Span) {
	switch n := s.(type) {
	case TextContainer:
		b.WriteString(n.TextContent())
	case SpanContainer:
		for _, child := range n.SpanContent() {
			extractText(b, child)
		}
	}
}

// Compile-time checks that every concrete kind satisfies its structural and
// capability interfaces.
var (
	_ BlockContainer    = (*RootBlock)(nil)
	_ SpanContainer     = (*Paragraph)(nil)
	_ SpanContainer     = (*Header)(nil)
	_ AnchorNode        = (*Header)(nil)
	_ TextContainer     = (*CodeBlock)(nil)
	_ BlockContainer    = (*QuoteBlock)(nil)
	_ SpanContainer     = (*QuoteBlock)(nil)
	_ ListItemContainer = (*BulletList)(nil)
	_ ListItemContainer = (*OrderedList)(nil)
	_ BlockContainer    = (*ListEntry)(nil)
	_ ListItem          = (*ListEntry)(nil)
	_ Block             = (*Rule)(nil)
	_ TextContainer     = (*RawBlock)(nil)
	_ Hidden            = (*Comment)(nil)
	_ Hidden            = (*LinkDefinition)(nil)
	_ Definition        = (*LinkDefinition)(nil)
	_ Invalid           = (*InvalidBlock)(nil)
	_ Block             = (*InvalidBlock)(nil)

	_ TextContainer = (*Text)(nil)
	_ SpanContainer = (*SpanSequence)(nil)
	_ SpanContainer = (*Emphasis)(nil)
	_ SpanContainer = (*Strong)(nil)
	_ TextContainer = (*Literal)(nil)
	_ Span          = (*LineBreak)(nil)
	_ GlobalLink    = (*SpanLink)(nil)
	_ Link          = (*LocalLink)(nil)
	_ GlobalLink    = (*Image)(nil)
	_ Reference     = (*LinkReference)(nil)
	_ AnchorNode    = (*InternalAnchor)(nil)
	_ Invalid       = (*InvalidSpan)(nil)
	_ Span          = (*InvalidSpan)(nil)
)
