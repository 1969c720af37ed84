// SPDX-License-Identifier: MPL-2.0

package doctree

import (
	"slices"
	"sort"
)

type (
	// Options is the metadata every node carries: an optional identifier
	// and a set of style tags. The zero value means "no identifier, no
	// styles". Options is a value type; all operations return a new value.
	Options struct {
		// ID is the node's identifier; "" means the node has none.
		ID string
		// Styles is the node's set of style tags.
		Styles StyleSet
	}

	// StyleSet is an immutable set of style-tag strings. Insertion order is
	// irrelevant; Values returns tags in sorted order so renderer output is
	// deterministic. The zero value is the empty set.
	StyleSet struct {
		tags map[string]struct{}
	}
)

// NewStyles builds a StyleSet from the given tags.
func NewStyles(tags ...string) StyleSet {
	if len(tags) == 0 {
		return StyleSet{}
	}
	m := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		m[t] = struct{}{}
	}
	return StyleSet{tags: m}
}

// Contains reports whether the set holds the given tag.
func (s StyleSet) Contains(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

// Len returns the number of tags in the set.
func (s StyleSet) Len() int { return len(s.tags) }

// Values returns the tags in sorted order.
func (s StyleSet) Values() []string {
	if len(s.tags) == 0 {
		return nil
	}
	tags := make([]string, 0, len(s.tags))
	for t := range s.tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Add returns a new set with the given tags included.
func (s StyleSet) Add(tags ...string) StyleSet {
	if len(tags) == 0 {
		return s
	}
	m := make(map[string]struct{}, len(s.tags)+len(tags))
	for t := range s.tags {
		m[t] = struct{}{}
	}
	for _, t := range tags {
		m[t] = struct{}{}
	}
	return StyleSet{tags: m}
}

// Union returns a new set holding every tag of s and other.
func (s StyleSet) Union(other StyleSet) StyleSet {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return other
	}
	return s.Add(other.Values()...)
}

// Equal reports whether both sets hold exactly the same tags.
func (s StyleSet) Equal(other StyleSet) bool {
	return slices.Equal(s.Values(), other.Values())
}

// WithID returns the options with the identifier replaced.
func (o Options) WithID(id string) Options {
	o.ID = id
	return o
}

// WithoutID returns the options with the identifier removed.
func (o Options) WithoutID() Options {
	o.ID = ""
	return o
}

// AddStyles returns the options with the given tags added to the style set.
func (o Options) AddStyles(tags ...string) Options {
	o.Styles = o.Styles.Add(tags...)
	return o
}

// Merge combines two metadata values: the style sets are unioned, and the
// receiver's identifier wins unless it is empty. Used when stamping
// additional styles onto an existing node.
func (o Options) Merge(other Options) Options {
	id := o.ID
	if id == "" {
		id = other.ID
	}
	return Options{ID: id, Styles: o.Styles.Union(other.Styles)}
}

// Equal reports whether both options carry the same identifier and styles.
func (o Options) Equal(other Options) bool {
	return o.ID == other.ID && o.Styles.Equal(other.Styles)
}

// Node-level metadata operations. Each returns a new node of the same
// concrete kind as its input; none of them can fail.

// WithID returns n with its identifier replaced.
func WithID(n Node, id string) Node {
	return n.WithOptions(n.Options().WithID(id))
}

// WithoutID returns n with its identifier removed.
func WithoutID(n Node) Node {
	return n.WithOptions(n.Options().WithoutID())
}

// WithStyle returns n with one style tag added.
func WithStyle(n Node, tag string) Node {
	return n.WithOptions(n.Options().AddStyles(tag))
}

// WithStyles returns n with the given style tags added.
func WithStyles(n Node, tags ...string) Node {
	return n.WithOptions(n.Options().AddStyles(tags...))
}

// MergeOptions returns n with the given metadata merged into its own.
func MergeOptions(n Node, o Options) Node {
	return n.WithOptions(n.Options().Merge(o))
}

// ClearOptions returns n with empty metadata.
func ClearOptions(n Node) Node {
	return n.WithOptions(Options{})
}
