// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"folio-cli/internal/config"
)

// IsOutputTerminal returns true if stdout is connected to a terminal.
// Returns false when output is redirected to a file or pipe, in which
// case callers should skip ANSI styling.
func IsOutputTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GlamourStyle maps a configured color scheme to the glamour standard
// style name used for terminal markdown rendering.
func GlamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// Style represents styling options for text output.
type Style struct {
	// Foreground color (CSS hex, ANSI code, or color name).
	Foreground ColorSpec
	// Background color (CSS hex, ANSI code, or color name).
	Background ColorSpec
	// Bold enables bold text.
	Bold bool
	// Italic enables italic text.
	Italic bool
	// Underline enables underlined text.
	Underline bool
	// Strikethrough enables strikethrough text.
	Strikethrough bool
	// Faint enables faint/dim text.
	Faint bool
	// Padding adds padding around the text (top, right, bottom, left or single value for all).
	Padding []int
	// Margin adds margin around the text (top, right, bottom, left or single value for all).
	Margin []int
	// Border type (none, normal, rounded, thick, double, hidden).
	Border string
	// BorderForeground color for the border.
	BorderForeground ColorSpec
	// Width sets the width of the text block.
	Width TerminalDimension
	// Align sets text alignment (left, center, right).
	Align string
}

// Apply applies the style to the given text and returns the styled output.
func (s Style) Apply(text string) string {
	style := lipgloss.NewStyle()

	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground.String()))
	}
	if s.Background != "" {
		style = style.Background(lipgloss.Color(s.Background.String()))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	if s.Strikethrough {
		style = style.Strikethrough(true)
	}
	if s.Faint {
		style = style.Faint(true)
	}

	switch len(s.Padding) {
	case 1:
		style = style.Padding(s.Padding[0])
	case 2:
		style = style.Padding(s.Padding[0], s.Padding[1])
	case 4:
		style = style.Padding(s.Padding[0], s.Padding[1], s.Padding[2], s.Padding[3])
	}

	switch len(s.Margin) {
	case 1:
		style = style.Margin(s.Margin[0])
	case 2:
		style = style.Margin(s.Margin[0], s.Margin[1])
	case 4:
		style = style.Margin(s.Margin[0], s.Margin[1], s.Margin[2], s.Margin[3])
	}

	if s.Border != "" && s.Border != "none" {
		var border lipgloss.Border
		switch s.Border {
		case "rounded":
			border = lipgloss.RoundedBorder()
		case "thick":
			border = lipgloss.ThickBorder()
		case "double":
			border = lipgloss.DoubleBorder()
		case "hidden":
			border = lipgloss.HiddenBorder()
		default:
			border = lipgloss.NormalBorder()
		}
		style = style.Border(border)
		if s.BorderForeground != "" {
			style = style.BorderForeground(lipgloss.Color(s.BorderForeground.String()))
		}
	}

	if s.Width > 0 {
		style = style.Width(int(s.Width))
	}

	switch s.Align {
	case "center":
		style = style.Align(lipgloss.Center)
	case "right":
		style = style.Align(lipgloss.Right)
	default:
		style = style.Align(lipgloss.Left)
	}

	return style.Render(text)
}
