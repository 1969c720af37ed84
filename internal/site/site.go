// SPDX-License-Identifier: MPL-2.0

// Package site loads a source directory into a document tree and builds
// rendered output for a selected backend.
package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"folio-cli/internal/doc"
	"folio-cli/internal/markdown"
	"folio-cli/pkg/types"
	"folio-cli/pkg/vpath"
)

// titleDocName is the document that represents its directory: it becomes
// the tree's TitleDoc so the directory's navigation entry links to it.
const titleDocName = "index.md"

// ErrNoDocuments is returned when a source directory holds no markdown.
var ErrNoDocuments = errors.New("no markdown documents found")

type (
	// Loader reads markdown sources from a directory into a doc.Tree.
	Loader struct {
		parser *markdown.Parser
	}

	// ParseError reports a document that could not be parsed.
	ParseError struct {
		Path vpath.DocPath
		Err  error
	}
)

// NewLoader creates a Loader with the standard markdown parser.
func NewLoader() *Loader {
	return &Loader{parser: markdown.New()}
}

// Load walks dir and parses every .md file into a document tree mirroring
// the directory structure. Hidden directories and files are skipped.
func (l *Loader) Load(dir types.FilesystemPath) (*doc.Tree, error) {
	root := &doc.Tree{Path: vpath.Root}
	trees := map[vpath.DocPath]*doc.Tree{vpath.Root: root}
	count := 0

	base := dir.String()
	err := filepath.WalkDir(base, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if path != base && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(name, ".md") {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		docPath := vpath.DocPath("/" + filepath.ToSlash(rel))

		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		parsed, err := l.parser.Parse(docPath, source)
		if err != nil {
			return &ParseError{Path: docPath, Err: err}
		}

		tree := l.treeFor(trees, docPath.Parent())
		if docPath.Name() == titleDocName {
			tree.TitleDoc = parsed
		} else {
			tree.Documents = append(tree.Documents, parsed)
		}
		count++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoDocuments, dir)
	}

	sortTree(root)
	return root, nil
}

// treeFor returns the tree node for a directory path, creating it and its
// ancestors on first use.
func (l *Loader) treeFor(trees map[vpath.DocPath]*doc.Tree, dir vpath.DocPath) *doc.Tree {
	if t, ok := trees[dir]; ok {
		return t
	}
	t := &doc.Tree{Path: dir}
	trees[dir] = t
	parent := l.treeFor(trees, dir.Parent())
	parent.Subtrees = append(parent.Subtrees, t)
	return t
}

// sortTree orders documents and subtrees by path so output and navigation
// are deterministic regardless of filesystem iteration order.
func sortTree(t *doc.Tree) {
	sort.Slice(t.Documents, func(i, j int) bool { return t.Documents[i].Path < t.Documents[j].Path })
	sort.Slice(t.Subtrees, func(i, j int) bool { return t.Subtrees[i].Path < t.Subtrees[j].Path })
	for _, sub := range t.Subtrees {
		sortTree(sub)
	}
}

// Resolve runs the standard rewrite pass over every document in the tree,
// returning a new tree. The input is unchanged.
func Resolve(t *doc.Tree) *doc.Tree {
	out := &doc.Tree{Path: t.Path, Title: t.Title}
	if t.TitleDoc != nil {
		out.TitleDoc = t.TitleDoc.Resolve()
	}
	for _, d := range t.Documents {
		out.Documents = append(out.Documents, d.Resolve())
	}
	for _, sub := range t.Subtrees {
		out.Subtrees = append(out.Subtrees, Resolve(sub))
	}
	return out
}

// Documents returns every document in the tree in depth-first order,
// title documents included.
func Documents(t *doc.Tree) []*doc.Document {
	var docs []*doc.Document
	if t.TitleDoc != nil {
		docs = append(docs, t.TitleDoc)
	}
	docs = append(docs, t.Documents...)
	for _, sub := range t.Subtrees {
		docs = append(docs, Documents(sub)...)
	}
	return docs
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *ParseError) Unwrap() error { return e.Err }
