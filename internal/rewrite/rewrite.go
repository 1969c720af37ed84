// SPDX-License-Identifier: MPL-2.0

// Package rewrite implements single-pass, bottom-up structural rewriting of
// document trees. A rule set is applied to every node in exactly one pass
// over the original tree shape: replacement nodes are never re-offered to
// the rules, so termination is guaranteed regardless of rule content.
//
// Rules cannot fail. A rule that wants to surface a domain error produces
// an Invalid node as its replacement instead of returning a Go error.
package rewrite

import "folio-cli/internal/doctree"

type (
	// Rule matches some nodes of one category and maps each match to an
	// Action. The second return value reports whether the rule is defined
	// for the given node; an undefined rule leaves the node to the next
	// rule in the set.
	Rule[N doctree.Node] func(N) (Action[N], bool)

	// BlockRule rewrites block nodes.
	BlockRule = Rule[doctree.Block]

	// SpanRule rewrites span nodes.
	SpanRule = Rule[doctree.Span]

	// Action is the outcome a rule chose for a matched node: retain it,
	// replace it with one node, replace it with any number of nodes, or
	// remove it.
	Action[N doctree.Node] struct {
		replace bool
		nodes   []N
	}

	// Rules aggregates the ordered rule lists per node category. For each
	// node, rules of its category are tried left to right and the first
	// one defined for the node wins; when none match, the node is
	// retained unchanged.
	Rules struct {
		Blocks []BlockRule
		Spans  []SpanRule
	}
)

// Retain leaves the matched node unchanged. Matching with Retain differs
// from not matching at all only in that it stops later rules in the set
// from seeing the node.
func Retain[N doctree.Node]() Action[N] {
	return Action[N]{}
}

// Replace substitutes a single node for the matched node.
func Replace[N doctree.Node](n N) Action[N] {
	return Action[N]{replace: true, nodes: []N{n}}
}

// ReplaceMany substitutes zero or more nodes for the matched node.
func ReplaceMany[N doctree.Node](nodes ...N) Action[N] {
	return Action[N]{replace: true, nodes: nodes}
}

// Remove drops the matched node from its container.
func Remove[N doctree.Node]() Action[N] {
	return Action[N]{replace: true}
}

// Combine concatenates rule sets in order, preserving first-match
// precedence across the combined lists.
func Combine(sets ...Rules) Rules {
	var combined Rules
	for _, s := range sets {
		combined.Blocks = append(combined.Blocks, s.Blocks...)
		combined.Spans = append(combined.Spans, s.Spans...)
	}
	return combined
}

// BlockRules builds a rule set holding only block rules.
func BlockRules(rules ...BlockRule) Rules {
	return Rules{Blocks: rules}
}

// SpanRules builds a rule set holding only span rules.
func SpanRules(rules ...SpanRule) Rules {
	return Rules{Spans: rules}
}

// Tree rewrites every descendant of root in a single bottom-up pass and
// returns the reconstructed root. For each container, every direct child
// is first fully rewritten itself, the result is then offered to the rules
// of its category, and the container is finally reconstructed from the
// resulting child sequence, preserving its metadata and non-child fields.
// The root node itself is reconstructed but not offered to the rules,
// since it has no enclosing container.
func Tree(root doctree.Node, rules Rules) doctree.Node {
	if root == nil {
		return nil
	}
	return rewriteChildren(root, rules)
}

// Blocks rewrites root with block rules only.
func Blocks(root doctree.Node, rules ...BlockRule) doctree.Node {
	return Tree(root, BlockRules(rules...))
}

// Spans rewrites root with span rules only.
func Spans(root doctree.Node, rules ...SpanRule) doctree.Node {
	return Tree(root, SpanRules(rules...))
}

// rewriteChildren dispatches on the container facets of n. A mixed
// container (block and span children on one node) has each facet rewritten
// with the rules of the matching category.
func rewriteChildren(n doctree.Node, rules Rules) doctree.Node {
	if bc, ok := n.(doctree.BlockContainer); ok {
		n = bc.WithBlockContent(rewriteSequence(bc.BlockContent(), rules.Blocks, rules))
	}
	if sc, ok := n.(doctree.SpanContainer); ok {
		n = sc.WithSpanContent(rewriteSequence(sc.SpanContent(), rules.Spans, rules))
	}
	if lc, ok := n.(doctree.ListItemContainer); ok {
		items := lc.Items()
		out := make([]doctree.ListItem, len(items))
		for i, item := range items {
			out[i] = rewriteChildren(item, rules).(doctree.ListItem)
		}
		n = lc.WithItems(out)
	}
	return n
}

// rewriteSequence rewrites one child sequence: each child is recursively
// rewritten first, then matched against the category rules, and the
// outcome expands or contracts the sequence per Replace/ReplaceMany/Remove.
func rewriteSequence[N doctree.Node](children []N, categoryRules []Rule[N], rules Rules) []N {
	out := make([]N, 0, len(children))
	for _, child := range children {
		rewritten := rewriteChildren(child, rules).(N)
		out = append(out, applyFirst(categoryRules, rewritten)...)
	}
	return out
}

// applyFirst offers n to the rules left to right; the first rule defined
// for n decides the outcome, and an unmatched node is retained.
func applyFirst[N doctree.Node](rules []Rule[N], n N) []N {
	for _, rule := range rules {
		action, defined := rule(n)
		if !defined {
			continue
		}
		if action.replace {
			return action.nodes
		}
		return []N{n}
	}
	return []N{n}
}
