// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"folio-cli/internal/config"
	"folio-cli/internal/issue"
	"folio-cli/internal/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage folio configuration",
	Long: `Manage folio configuration.

Configuration is stored in:
  - Linux: ~/.config/folio/folio.toml
  - macOS: ~/Library/Application Support/folio/folio.toml
  - Windows: %APPDATA%\folio\folio.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	})
}

// showConfig prints the effective configuration as TOML. On a terminal
// the output is syntax-highlighted; piped output stays plain.
func showConfig() error {
	cfg := config.Get()
	if err := config.LastLoadError(); err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Apply("Warning: ")+"using defaults, "+formatErrorForDisplay(err, verbose))
	}

	content, err := config.GenerateTOML(cfg)
	if err != nil {
		return issue.WrapWithOperation(err, "serialize configuration")
	}

	if tui.IsOutputTerminal() {
		styled, err := tui.NewFormat().
			Content(content).
			Code("toml").
			ColorScheme(cfg.UI.ColorScheme).
			Run()
		if err == nil {
			fmt.Fprint(os.Stdout, styled)
			return nil
		}
	}

	fmt.Fprint(os.Stdout, content)
	return nil
}

// initConfig writes the default config file unless one already exists.
func initConfig() error {
	if err := config.CreateDefaultConfig(); err != nil {
		return issue.NewErrorContext().
			WithOperation("create configuration file").
			WithSuggestion("check write permissions for the config directory").
			Wrap(err).
			BuildError()
	}

	if err := config.EnsureThemesDir(); err != nil {
		return issue.NewErrorContext().
			WithOperation("create themes directory").
			WithSuggestion("check write permissions for your home directory").
			Wrap(err).
			BuildError()
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	fmt.Fprintln(os.Stdout, SuccessStyle.Apply("✓ ")+"configuration ready at "+CmdStyle.Apply(cfgPath))
	return nil
}

// printConfigPath prints where configuration was loaded from, or where
// it would be written.
func printConfigPath() error {
	if path := config.ConfigFilePath(); path != "" {
		fmt.Fprintln(os.Stdout, path)
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
