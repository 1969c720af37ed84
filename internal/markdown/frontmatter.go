// SPDX-License-Identifier: MPL-2.0

package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Metadata is the YAML front matter a document may start with.
type Metadata struct {
	// Title is the declared document title.
	Title string `yaml:"title"`
	// ID is an identifier for the document's root block.
	ID string `yaml:"id"`
	// Styles are style tags stamped onto the document root.
	Styles []string `yaml:"styles"`
}

var (
	frontMatterOpen  = []byte("---\n")
	frontMatterClose = []byte("\n---\n")
)

// splitFrontMatter separates a leading YAML front matter block from the
// markup body. It returns the parsed metadata, the body, and the number of
// lines the front matter occupied (so source locations in the body can be
// reported against the original input).
func splitFrontMatter(source []byte) (Metadata, []byte, int, error) {
	var meta Metadata
	rest, ok := bytes.CutPrefix(source, frontMatterOpen)
	if !ok {
		return meta, source, 0, nil
	}
	raw, body, found := bytes.Cut(rest, frontMatterClose)
	if !found {
		return meta, source, 0, nil
	}
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return meta, source, 0, fmt.Errorf("parsing front matter: %w", err)
	}
	// Opening fence, metadata lines, closing fence.
	lines := bytes.Count(raw, []byte("\n")) + 3
	return meta, body, lines, nil
}
