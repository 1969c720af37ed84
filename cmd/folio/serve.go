// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"folio-cli/internal/config"
	"folio-cli/internal/issue"
	"folio-cli/internal/preview"
	"folio-cli/internal/site"
	"folio-cli/internal/watch"
	"folio-cli/pkg/format"
	"folio-cli/pkg/types"

	"github.com/spf13/cobra"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool

	serveCmd = &cobra.Command{
		Use:   "serve <dir>",
		Short: "Build a document directory and serve it over HTTP",
		Long: `Build a document directory and serve it over HTTP.

The directory is rendered to HTML in a temporary location and served
from there. With --watch, markdown changes under the directory trigger
a rebuild, so a browser refresh shows the new content. The server runs
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0])
		},
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "interface to bind (default localhost only)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "TCP port to listen on (0 auto-selects)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "rebuild when markdown files change")
}

func runServe(ctx context.Context, dir string) error {
	cfg := config.Get()
	logger := buildLogger()

	outDir, err := os.MkdirTemp("", "folio-preview-*")
	if err != nil {
		return fmt.Errorf("create preview directory: %w", err)
	}
	defer os.RemoveAll(outDir) //nolint:errcheck // best-effort cleanup

	rebuild := func() error {
		tree, err := site.NewLoader().Load(types.FilesystemPath(dir))
		if err != nil {
			return wrapLoadError(err, dir)
		}
		builder, err := site.NewBuilder(site.BuildOptions{
			Format:           format.HTML,
			OutputDir:        types.FilesystemPath(outDir),
			SiteTitle:        cfg.SiteTitle,
			NavDepth:         cfg.Nav.MaxDepth,
			NavStyles:        navStyleStrings(cfg),
			ExcludeSections:  cfg.Nav.ExcludeSections,
			Sanitize:         cfg.Render.Sanitize,
			MessageThreshold: site.SeverityFor(cfg.Render.MessageThreshold),
		}, logger)
		if err != nil {
			return err
		}
		if err := builder.Build(tree); err != nil {
			return issue.WrapWithContext(err, "build site", dir)
		}
		return nil
	}

	if err := rebuild(); err != nil {
		return err
	}

	srv, err := preview.New(preview.Config{
		Host:   serveHost,
		Port:   types.ListenPort(servePort),
		Dir:    types.FilesystemPath(outDir),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if err := srv.Start(ctx); err != nil {
		return issue.WrapWithOperation(err, "start preview server")
	}
	fmt.Fprintln(os.Stdout, SuccessStyle.Apply("✓ ")+"serving at "+CmdStyle.Apply(srv.URL()))

	if serveWatch {
		w, err := watch.New(watch.Config{
			BaseDir:  dir,
			Patterns: []string{"**/*.md"},
			OnChange: func(ctx context.Context, changed []string) error {
				logger.Info("rebuilding", "changed", len(changed))
				if err := rebuild(); err != nil {
					fmt.Fprintln(os.Stderr, ErrorStyle.Apply("rebuild failed: ")+formatErrorForDisplay(err, verbose))
				}
				return nil
			},
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		})
		if err != nil {
			stopErr := srv.Stop()
			if stopErr != nil {
				logger.Error("stop preview server", "err", stopErr)
			}
			return issue.WrapWithOperation(err, "watch documents")
		}
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				fmt.Fprintln(os.Stderr, ErrorStyle.Apply("watch failed: ")+err.Error())
			}
		}()
	}

	<-ctx.Done()
	return srv.Stop()
}

// navStyleStrings converts the configured navigation style tags to the
// plain strings the builder expects.
func navStyleStrings(cfg *config.Config) []string {
	styles := make([]string, 0, len(cfg.Nav.Styles))
	for _, s := range cfg.Nav.Styles {
		styles = append(styles, string(s))
	}
	return styles
}
