// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"folio-cli/internal/config"
	"folio-cli/internal/issue"
	"folio-cli/internal/site"
	"folio-cli/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	buildOutput   string
	buildFormat   string
	buildNavDepth int
	buildNavStyle []string

	buildCmd = &cobra.Command{
		Use:   "build <dir>",
		Short: "Render a directory of markdown into an output tree",
		Long: `Render a directory of markdown into an output tree.

Every .md file under the directory becomes one output file, with
cross-document links and header anchors resolved site-wide and a
navigation outline generated per page. index.md files title their
directory in the navigation. Dot-prefixed files and directories are
skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0])
		},
	}
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (default from config, falling back to ./dist)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "output format (html, terminal, ast)")
	buildCmd.Flags().IntVar(&buildNavDepth, "nav-depth", 0, "navigation depth budget (default from config)")
	buildCmd.Flags().StringArrayVar(&buildNavStyle, "nav-style", nil, "extra style tag for navigation entries (repeatable)")
}

func runBuild(cmd *cobra.Command, dir string) error {
	cfg := config.Get()

	fc, err := selectFormat(buildFormat, cfg)
	if err != nil {
		return err
	}

	outputDir := buildOutput
	if outputDir == "" {
		outputDir = string(cfg.Render.OutputDir)
	}
	if outputDir == "" {
		outputDir = "dist"
	}

	navDepth := buildNavDepth
	if !cmd.Flags().Changed("nav-depth") {
		navDepth = cfg.Nav.MaxDepth
	}

	navStyles := buildNavStyle
	if len(navStyles) == 0 {
		navStyles = navStyleStrings(cfg)
	}

	logger := buildLogger()

	tree, err := site.NewLoader().Load(types.FilesystemPath(dir))
	if err != nil {
		return wrapLoadError(err, dir)
	}

	builder, err := site.NewBuilder(site.BuildOptions{
		Format:           fc,
		OutputDir:        types.FilesystemPath(outputDir),
		SiteTitle:        cfg.SiteTitle,
		NavDepth:         navDepth,
		NavStyles:        navStyles,
		ExcludeSections:  cfg.Nav.ExcludeSections,
		Sanitize:         cfg.Render.Sanitize,
		MessageThreshold: site.SeverityFor(cfg.Render.MessageThreshold),
		ColorScheme:      cfg.UI.ColorScheme,
	}, logger)
	if err != nil {
		var ube *site.UnsupportedBackendError
		if errors.As(err, &ube) {
			return issue.NewErrorContext().
				WithOperation("build site").
				WithSuggestion("use --format html, terminal, or ast").
				Wrap(err).
				BuildError()
		}
		return err
	}

	if err := builder.Build(tree); err != nil {
		return issue.WrapWithContext(err, "build site", dir)
	}

	count := len(site.Documents(tree))
	fmt.Fprintln(os.Stdout, SuccessStyle.Apply("✓ ")+fmt.Sprintf("rendered %d document(s) to %s", count, CmdStyle.Apply(outputDir)))
	return nil
}

// buildLogger creates the structured logger the build pipeline reports
// through. Verbose mode lowers the level to debug so per-file output
// paths are visible.
func buildLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// wrapLoadError attaches user guidance to site loading failures.
func wrapLoadError(err error, dir string) error {
	ec := issue.NewErrorContext().
		WithOperation("load documents").
		WithResource(dir)
	if errors.Is(err, site.ErrNoDocuments) {
		ec = ec.WithSuggestion("add at least one .md file under the directory")
	}
	return ec.Wrap(err).BuildError()
}
