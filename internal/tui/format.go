// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"

	"folio-cli/internal/config"
)

// FormatOptions configures markdown-to-ANSI formatting.
type FormatOptions struct {
	// Content is the markdown text to format.
	Content string
	// Language wraps Content in a fenced code block with the given
	// language before rendering. Empty means render Content as-is.
	Language string
	// ColorScheme selects the glamour style. ColorSchemeAuto detects
	// the terminal background.
	ColorScheme config.ColorScheme
	// Width is the word wrap width (0 for no wrap).
	Width TerminalDimension
}

// Format renders markdown content as styled terminal output.
func Format(opts FormatOptions) (string, error) {
	content := opts.Content
	if opts.Language != "" {
		content = "```" + opts.Language + "\n" + content + "\n```"
	}

	var rendererOpts []glamour.TermRendererOption
	switch opts.ColorScheme {
	case config.ColorSchemeDark, config.ColorSchemeLight:
		if path := themeOverride(opts.ColorScheme); path != "" {
			rendererOpts = append(rendererOpts, glamour.WithStylePath(path))
		} else {
			rendererOpts = append(rendererOpts, glamour.WithStandardStyle(GlamourStyle(opts.ColorScheme)))
		}
	default:
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	}
	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(int(opts.Width)))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", err
	}

	return renderer.Render(content)
}

// themeOverride returns the path of a user-installed glamour style for
// the scheme, looked up as <scheme>.json under the themes directory.
// Returns "" when no style file is installed.
func themeOverride(scheme config.ColorScheme) string {
	dir, err := config.ThemesDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, string(scheme)+".json")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// FormatBuilder provides a fluent API for building Format operations.
type FormatBuilder struct {
	opts FormatOptions
}

// NewFormat creates a new FormatBuilder with default options.
func NewFormat() *FormatBuilder {
	return &FormatBuilder{
		opts: FormatOptions{
			ColorScheme: config.ColorSchemeAuto,
		},
	}
}

// Content sets the markdown content to format.
func (b *FormatBuilder) Content(content string) *FormatBuilder {
	b.opts.Content = content
	return b
}

// Code wraps the content in a fenced code block with the given language.
func (b *FormatBuilder) Code(language string) *FormatBuilder {
	b.opts.Language = language
	return b
}

// ColorScheme sets the color scheme.
func (b *FormatBuilder) ColorScheme(scheme config.ColorScheme) *FormatBuilder {
	b.opts.ColorScheme = scheme
	return b
}

// Width sets the word wrap width.
func (b *FormatBuilder) Width(width TerminalDimension) *FormatBuilder {
	b.opts.Width = width
	return b
}

// Run formats the content and returns the result.
func (b *FormatBuilder) Run() (string, error) {
	return Format(b.opts)
}
