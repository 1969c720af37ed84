// SPDX-License-Identifier: MPL-2.0

package doc

import (
	"fmt"

	"folio-cli/internal/doctree"
	"folio-cli/internal/rewrite"
)

// ResolverRules builds the standard rule set that turns a raw parsed tree
// into a render-ready one: link references are resolved against the
// document's definitions and anchors, unresolvable references become
// Invalid spans carrying the reference content as fallback.
func (d *Document) ResolverRules() rewrite.Rules {
	definitions := make(map[string]*doctree.LinkDefinition)
	anchors := make(map[string]bool)
	doctree.ForEach(d.Content, func(n doctree.Node) {
		switch t := n.(type) {
		case *doctree.LinkDefinition:
			// First definition wins; duplicates are markup noise.
			if _, dup := definitions[t.ID]; !dup {
				definitions[t.ID] = t
			}
		case doctree.AnchorNode:
			if id := t.AnchorID(); id != "" {
				anchors[id] = true
			}
		}
	})

	resolveReference := func(s doctree.Span) (rewrite.Action[doctree.Span], bool) {
		ref, ok := s.(*doctree.LinkReference)
		if !ok {
			return rewrite.Action[doctree.Span]{}, false
		}
		if def, found := definitions[ref.RefID]; found {
			return rewrite.Replace[doctree.Span](&doctree.SpanLink{
				Content: ref.Content,
				Target:  def.Target,
				Title:   def.Title,
				Opts:    ref.Opts,
			}), true
		}
		if anchors[ref.RefID] {
			return rewrite.Replace[doctree.Span](&doctree.LocalLink{
				RefID:   ref.RefID,
				Content: ref.Content,
				Opts:    ref.Opts,
			}), true
		}
		diag := ref.UnresolvedDiagnostic()
		return rewrite.Replace[doctree.Span](&doctree.InvalidSpan{
			Info: doctree.Problem{
				Severity: doctree.SeverityError,
				Message:  diag.Message,
				Source:   diag.Source,
			},
			Fallback: &doctree.SpanSequence{Content: ref.Content},
			Opts:     ref.Opts,
		}), true
	}

	return rewrite.SpanRules(resolveReference)
}

// RemoveHiddenRules removes Hidden nodes of both categories so they never
// reach a renderer.
func RemoveHiddenRules() rewrite.Rules {
	dropBlock := func(b doctree.Block) (rewrite.Action[doctree.Block], bool) {
		if _, hidden := b.(doctree.Hidden); hidden {
			return rewrite.Remove[doctree.Block](), true
		}
		return rewrite.Action[doctree.Block]{}, false
	}
	dropSpan := func(s doctree.Span) (rewrite.Action[doctree.Span], bool) {
		if _, hidden := s.(doctree.Hidden); hidden {
			return rewrite.Remove[doctree.Span](), true
		}
		return rewrite.Action[doctree.Span]{}, false
	}
	return rewrite.Combine(rewrite.BlockRules(dropBlock), rewrite.SpanRules(dropSpan))
}

// HeaderAnchorRules assigns identifiers to headers that have none, derived
// from their text content, so section outlines and local links can address
// them. Identifiers already present are kept.
func HeaderAnchorRules() rewrite.Rules {
	seen := make(map[string]int)
	anchor := func(b doctree.Block) (rewrite.Action[doctree.Block], bool) {
		h, ok := b.(*doctree.Header)
		if !ok || h.Opts.ID != "" {
			return rewrite.Action[doctree.Block]{}, false
		}
		id := Slug(doctree.ExtractText(h.Content))
		if id == "" {
			return rewrite.Retain[doctree.Block](), true
		}
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n-1)
		}
		return rewrite.Replace[doctree.Block](doctree.WithID(h, id).(doctree.Block)), true
	}
	return rewrite.BlockRules(anchor)
}

// Resolve runs the standard rewrites over the document: first header
// anchor assignment, then — against the anchored tree — reference
// resolution combined with hidden-node removal. Two passes, so references
// can target generated header anchors. It returns a new document; the
// input is unchanged.
func (d *Document) Resolve() *Document {
	anchored := *d
	anchored.Content = rewrite.Tree(d.Content, HeaderAnchorRules()).(*doctree.RootBlock)

	rules := rewrite.Combine(anchored.ResolverRules(), RemoveHiddenRules())
	anchored.Content = rewrite.Tree(anchored.Content, rules).(*doctree.RootBlock)
	return &anchored
}
