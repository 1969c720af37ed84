// SPDX-License-Identifier: MPL-2.0

package cmd

import "folio-cli/internal/tui"

// Color palette - shared hex colors for consistent theming across all CLI output.
// These colors are designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles, headers, and primary emphasis.
	ColorPrimary tui.ColorSpec = "#7C3AED"

	// ColorMuted is gray - used for subtitles, secondary text, and de-emphasized content.
	ColorMuted tui.ColorSpec = "#6B7280"

	// ColorSuccess is green - used for success states, checkmarks, and positive outcomes.
	ColorSuccess tui.ColorSpec = "#10B981"

	// ColorError is red - used for errors, failures, and negative outcomes.
	ColorError tui.ColorSpec = "#EF4444"

	// ColorWarning is amber - used for warnings, caution states, and attention-needed items.
	ColorWarning tui.ColorSpec = "#F59E0B"

	// ColorHighlight is blue - used for commands, links, and interactive elements.
	ColorHighlight tui.ColorSpec = "#3B82F6"
)

// Base styles - reusable styles built from the color palette.
var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = tui.Style{Bold: true, Foreground: ColorPrimary}

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = tui.Style{Foreground: ColorMuted}

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = tui.Style{Foreground: ColorSuccess}

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = tui.Style{Bold: true, Foreground: ColorError}

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = tui.Style{Foreground: ColorWarning}

	// CmdStyle is for command names, code, and interactive elements.
	CmdStyle = tui.Style{Foreground: ColorHighlight}
)
