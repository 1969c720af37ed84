// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"folio-cli/internal/config"
	"folio-cli/internal/doc"
	"folio-cli/internal/issue"
	"folio-cli/internal/markdown"
	"folio-cli/internal/render/astdump"
	htmlrender "folio-cli/internal/render/html"
	"folio-cli/internal/render/term"
	"folio-cli/internal/site"
	"folio-cli/pkg/format"
	"folio-cli/pkg/vpath"

	"github.com/spf13/cobra"
)

var (
	// renderFormat is the --format flag ("" means the configured default).
	renderFormat string

	renderCmd = &cobra.Command{
		Use:   "render <file>",
		Short: "Render a single markdown document to stdout",
		Long: `Render a single markdown document to stdout.

The document is parsed, its header anchors and internal references are
resolved, and the result is written in the selected output format.
Formats that produce whole sites (epub, pdf) are not available here;
use html, terminal, or ast.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0])
		},
	}
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format (html, terminal, ast)")
}

func runRender(path string) error {
	d, err := loadDocument(path)
	if err != nil {
		return err
	}

	cfg := config.Get()
	fc, err := selectFormat(renderFormat, cfg)
	if err != nil {
		return err
	}

	resolved := d.Resolve()

	switch fc {
	case format.AST:
		return astdump.Dump(os.Stdout, resolved.Content)
	case format.Terminal:
		r := term.New(term.Options{
			ColorScheme:      cfg.UI.ColorScheme,
			MessageThreshold: site.SeverityFor(cfg.Render.MessageThreshold),
		})
		return r.Render(os.Stdout, resolved)
	case format.HTML:
		r := htmlrender.New(htmlrender.Options{
			Format:           format.HTML,
			Sanitize:         cfg.Render.Sanitize,
			MessageThreshold: site.SeverityFor(cfg.Render.MessageThreshold),
		})
		return r.Render(os.Stdout, resolved)
	default:
		return issue.NewErrorContext().
			WithOperation("render document").
			WithResource(path).
			WithSuggestion("use --format html, terminal, or ast").
			Wrap(fmt.Errorf("format %q produces whole sites and cannot render a single document", fc)).
			BuildError()
	}
}

// loadDocument reads and parses one markdown file. The document path is
// the file name rooted at "/", so intra-document anchors resolve while
// links to sibling files stay unresolved (render works on one file).
func loadDocument(path string) (*doc.Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read document").
			WithResource(path).
			WithSuggestion("check that the file exists and is readable").
			Wrap(err).
			BuildError()
	}

	docPath := vpath.DocPath("/" + filepath.Base(path))
	d, err := markdown.New().Parse(docPath, source)
	if err != nil {
		return nil, issue.WrapWithContext(err, "parse document", path)
	}
	return d, nil
}

// selectFormat resolves the --format flag against the configured default.
func selectFormat(flag string, cfg *config.Config) (format.Context, error) {
	selector := flag
	if selector == "" {
		selector = cfg.DefaultFormat.String()
	}
	fc, err := format.Lookup(selector)
	if err != nil {
		return format.Context{}, issue.NewErrorContext().
			WithOperation("select output format").
			WithSuggestion(fmt.Sprintf("valid formats: %v", format.Selectors())).
			Wrap(err).
			BuildError()
	}
	return fc, nil
}
