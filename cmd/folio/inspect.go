// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"folio-cli/internal/render/astdump"

	"github.com/spf13/cobra"
)

var (
	inspectResolved bool

	inspectCmd = &cobra.Command{
		Use:   "inspect <file>",
		Short: "Dump the parsed document tree",
		Long: `Dump the parsed document tree.

Prints one line per node with its kind, identifier, style tags, and the
fields worth seeing in a debugging dump. By default the tree is shown
as parsed; --resolved runs the anchor and reference rewrite passes
first, so link references appear as resolved targets instead of
Unresolved nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
)

func init() {
	inspectCmd.Flags().BoolVar(&inspectResolved, "resolved", false, "resolve references before dumping")
}

func runInspect(path string) error {
	d, err := loadDocument(path)
	if err != nil {
		return err
	}
	if inspectResolved {
		d = d.Resolve()
	}
	return astdump.Dump(os.Stdout, d.Content)
}
