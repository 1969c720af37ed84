// SPDX-License-Identifier: MPL-2.0

package site

import (
	"bufio"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"folio-cli/internal/config"
	"folio-cli/internal/doc"
	"folio-cli/internal/doctree"
	"folio-cli/internal/nav"
	"folio-cli/internal/render/astdump"
	htmlrender "folio-cli/internal/render/html"
	"folio-cli/internal/render/term"
	"folio-cli/pkg/format"
	"folio-cli/pkg/fspath"
	"folio-cli/pkg/platform"
	"folio-cli/pkg/types"
	"folio-cli/pkg/vpath"
)

type (
	// BuildOptions configures a Builder.
	BuildOptions struct {
		// Format is the output backend.
		Format format.Context
		// OutputDir is where rendered files are written.
		OutputDir types.FilesystemPath
		// SiteTitle is the fallback page title.
		SiteTitle string
		// NavDepth is the navigation depth budget.
		NavDepth int
		// NavStyles are extra style tags stamped on navigation items.
		NavStyles []string
		// ExcludeSections omits section outlines from navigation.
		ExcludeSections bool
		// Sanitize strips unsafe markup from raw HTML blocks.
		Sanitize bool
		// MessageThreshold is the minimum severity at which Invalid
		// nodes render their message.
		MessageThreshold doctree.Severity
		// ColorScheme selects the style of the terminal backend.
		ColorScheme config.ColorScheme
	}

	// Builder renders a document tree to the output directory.
	Builder struct {
		opts   BuildOptions
		logger *log.Logger
	}

	// UnsupportedBackendError is returned for format contexts that have
	// no file-producing renderer.
	UnsupportedBackendError struct {
		Format format.Context
	}
)

// SeverityFor maps a configured message threshold to the node severity
// scale used by the renderers.
func SeverityFor(th config.Threshold) doctree.Severity {
	switch th {
	case config.ThresholdInfo:
		return doctree.SeverityInfo
	case config.ThresholdWarning:
		return doctree.SeverityWarning
	case config.ThresholdFatal:
		return doctree.SeverityFatal
	default:
		return doctree.SeverityError
	}
}

// NewBuilder creates a Builder. Formats without a file-producing renderer
// (EPUB, PDF) are rejected here rather than midway through a build.
func NewBuilder(opts BuildOptions, logger *log.Logger) (*Builder, error) {
	switch opts.Format {
	case format.HTML, format.AST, format.Terminal:
	default:
		return nil, &UnsupportedBackendError{Format: opts.Format}
	}
	if opts.NavDepth < 1 {
		opts.NavDepth = 3
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{opts: opts, logger: logger}, nil
}

// Build resolves every document in the tree and writes the rendered output
// files, mirroring the source structure under OutputDir.
func (b *Builder) Build(tree *doc.Tree) error {
	resolved := Resolve(tree)

	for _, d := range Documents(resolved) {
		if err := b.buildDocument(resolved, d); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildDocument(tree *doc.Tree, d *doc.Document) error {
	// Reserved device names (CON, NUL, ...) cannot be created as files on
	// Windows, so refuse them regardless of the build host.
	if base := d.Path.BaseName(); platform.IsWindowsReservedName(base) {
		return fmt.Errorf("document %s: %q is a reserved file name on Windows", d.Path, base)
	}

	outPath := b.outputPath(d.Path)
	if err := os.MkdirAll(fspath.Dir(outPath).String(), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(outPath.String())
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	w := bufio.NewWriter(f)

	renderErr := b.renderDocument(w, tree, d)
	if flushErr := w.Flush(); renderErr == nil {
		renderErr = flushErr
	}
	if closeErr := f.Close(); renderErr == nil {
		renderErr = closeErr
	}
	if renderErr != nil {
		return fmt.Errorf("render %s: %w", d.Path, renderErr)
	}

	b.logger.Debug("rendered document", "source", d.Path, "output", outPath)
	return nil
}

func (b *Builder) renderDocument(w *bufio.Writer, tree *doc.Tree, d *doc.Document) error {
	switch b.opts.Format {
	case format.AST:
		return astdump.Dump(w, d.Content)
	case format.Terminal:
		r := term.New(term.Options{
			ColorScheme:      b.opts.ColorScheme,
			MessageThreshold: b.opts.MessageThreshold,
		})
		return r.Render(w, d)
	default:
		return b.renderHTMLPage(w, tree, d)
	}
}

// renderHTMLPage writes a full page: head with the document title,
// navigation for the consuming document, and the rendered body.
func (b *Builder) renderHTMLPage(w *bufio.Writer, tree *doc.Tree, d *doc.Document) error {
	r := htmlrender.New(htmlrender.Options{
		Format:           b.opts.Format,
		Sanitize:         b.opts.Sanitize,
		MessageThreshold: b.opts.MessageThreshold,
	})

	title := doctree.ExtractText(d.Title())
	if title == "" {
		title = b.opts.SiteTitle
	}

	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(title))

	ctx := nav.NewContext(d.Path, b.opts.NavDepth).WithStyles(b.opts.NavStyles...)
	ctx.ExcludeSections = b.opts.ExcludeSections
	fmt.Fprintf(w, "<nav>\n")
	if err := r.RenderNav(w, tree.NavItem(ctx), d.Path); err != nil {
		return err
	}
	fmt.Fprintf(w, "</nav>\n<main>\n")

	if err := r.Render(w, d); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</main>\n</body>\n</html>\n")
	return err
}

// outputPath maps a document's virtual path to its output file location,
// with the source suffix replaced by the backend's.
func (b *Builder) outputPath(p vpath.DocPath) types.FilesystemPath {
	out := p.WithSuffix(b.opts.Format.FileSuffix)
	return fspath.JoinStr(b.opts.OutputDir, filepath.FromSlash(out.String()))
}

// Error implements the error interface for UnsupportedBackendError.
func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("format %q has no file-producing renderer (use html, ast, or terminal)", e.Format)
}
