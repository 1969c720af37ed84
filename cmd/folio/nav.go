// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"folio-cli/internal/config"
	"folio-cli/internal/nav"
	"folio-cli/internal/render/term"
	"folio-cli/internal/site"
	"folio-cli/pkg/types"
	"folio-cli/pkg/vpath"

	"github.com/spf13/cobra"
)

var (
	navDepth       int
	navSections    bool
	navExcludeSelf bool

	navCmd = &cobra.Command{
		Use:   "nav <dir>",
		Short: "Print the navigation structure of a document directory",
		Long: `Print the navigation structure of a document directory.

The outline mirrors what the build command embeds in every page:
one entry per document, grouped by subdirectory, with section entries
for the headers inside each document up to the depth budget.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNav(cmd, args[0])
		},
	}
)

func init() {
	navCmd.Flags().IntVar(&navDepth, "depth", 0, "navigation depth budget (default from config)")
	navCmd.Flags().BoolVar(&navSections, "sections", true, "include document sections in the outline")
	navCmd.Flags().BoolVar(&navExcludeSelf, "exclude-self", false, "omit the reference document's own entry")
}

func runNav(cmd *cobra.Command, dir string) error {
	cfg := config.Get()

	depth := navDepth
	if !cmd.Flags().Changed("depth") {
		depth = cfg.Nav.MaxDepth
	}

	tree, err := site.NewLoader().Load(types.FilesystemPath(dir))
	if err != nil {
		return wrapLoadError(err, dir)
	}
	resolved := site.Resolve(tree)

	refPath := vpath.Root
	if resolved.TitleDoc != nil {
		refPath = resolved.TitleDoc.Path
	}

	ctx := navContext(cfg, refPath, depth, !navSections, navExcludeSelf)

	r := term.New(term.Options{ColorScheme: cfg.UI.ColorScheme})
	return r.RenderNav(os.Stdout, resolved.NavItem(ctx))
}

// navContext assembles the navigation context from configuration plus
// the command-line overrides.
func navContext(cfg *config.Config, refPath vpath.DocPath, depth int, excludeSections, excludeSelf bool) nav.Context {
	ctx := nav.NewContext(refPath, depth)
	for _, s := range cfg.Nav.Styles {
		ctx = ctx.WithStyles(string(s))
	}
	ctx.ExcludeSections = excludeSections || cfg.Nav.ExcludeSections
	ctx.ExcludeSelf = excludeSelf
	return ctx
}
