// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FormatHTML renders standalone HTML pages.
	FormatHTML FormatName = "html"
	// FormatEPUB renders HTML tuned for EPUB packaging.
	FormatEPUB FormatName = "epub"
	// FormatPDF renders HTML tuned for PDF conversion.
	FormatPDF FormatName = "pdf"
	// FormatAST renders an indented dump of the document tree.
	FormatAST FormatName = "ast"
	// FormatTerminal renders styled output for the terminal.
	FormatTerminal FormatName = "terminal"

	// ThresholdInfo surfaces every embedded message.
	ThresholdInfo Threshold = "info"
	// ThresholdWarning surfaces warnings and worse.
	ThresholdWarning Threshold = "warning"
	// ThresholdError surfaces errors and worse.
	ThresholdError Threshold = "error"
	// ThresholdFatal surfaces only fatal messages.
	ThresholdFatal Threshold = "fatal"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidFormatName is returned when a FormatName value is not recognized.
	ErrInvalidFormatName = errors.New("invalid format name")
	// ErrInvalidThreshold is returned when a Threshold value is not recognized.
	ErrInvalidThreshold = errors.New("invalid message threshold")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputDirPath is returned when an OutputDirPath value is whitespace-only.
	ErrInvalidOutputDirPath = errors.New("invalid output dir path")
	// ErrInvalidNavStyle is the sentinel error wrapped by InvalidNavStyleError.
	ErrInvalidNavStyle = errors.New("invalid nav style")
	// ErrInvalidNavConfig is the sentinel error wrapped by InvalidNavConfigError.
	ErrInvalidNavConfig = errors.New("invalid nav config")
	// ErrInvalidRenderConfig is the sentinel error wrapped by InvalidRenderConfigError.
	ErrInvalidRenderConfig = errors.New("invalid render config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// FormatName selects the output format by its selector string.
	// Defined locally to avoid coupling config to pkg/format;
	// the CLI resolves to a format.Context at the boundary.
	FormatName string

	// InvalidFormatNameError is returned when a FormatName value is not recognized.
	// It wraps ErrInvalidFormatName for errors.Is() compatibility.
	InvalidFormatNameError struct {
		Value FormatName
	}

	// Threshold names the minimum severity at which embedded messages are
	// surfaced in rendered output.
	Threshold string

	// InvalidThresholdError is returned when a Threshold value is not recognized.
	// It wraps ErrInvalidThreshold for errors.Is() compatibility.
	InvalidThresholdError struct {
		Value Threshold
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputDirPath represents a filesystem path to the build output directory.
	// The zero value ("") is valid and means "use the default output directory".
	// Non-zero values must not be whitespace-only.
	OutputDirPath string

	// InvalidOutputDirPathError is returned when an OutputDirPath value is
	// non-empty but whitespace-only.
	InvalidOutputDirPathError struct {
		Value OutputDirPath
	}

	// NavStyle is a style tag applied to generated navigation entries.
	// A valid style must be non-empty and not whitespace-only.
	NavStyle string

	// InvalidNavStyleError is returned when a NavStyle value is empty or
	// whitespace-only. It wraps ErrInvalidNavStyle for errors.Is() compatibility.
	InvalidNavStyleError struct {
		Value NavStyle
	}

	// InvalidNavConfigError is returned when a NavConfig has invalid fields.
	// It wraps ErrInvalidNavConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidNavConfigError struct {
		FieldErrors []error
	}

	// InvalidRenderConfigError is returned when a RenderConfig has invalid fields.
	// It wraps ErrInvalidRenderConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidRenderConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// SiteTitle is the fallback title for the root of a document tree.
		SiteTitle string `json:"site_title" mapstructure:"site_title" toml:"site_title"`
		// DefaultFormat selects the output format used when no --format flag is given.
		DefaultFormat FormatName `json:"default_format" mapstructure:"default_format" toml:"default_format"`
		// Nav configures navigation structure generation.
		Nav NavConfig `json:"nav" mapstructure:"nav" toml:"nav"`
		// Render configures output rendering.
		Render RenderConfig `json:"render" mapstructure:"render" toml:"render"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// NavConfig configures navigation structure generation.
	NavConfig struct {
		// MaxDepth bounds how many levels of navigation entries are generated.
		MaxDepth int `json:"max_depth" mapstructure:"max_depth" toml:"max_depth"`
		// Styles are extra style tags applied to every generated entry.
		Styles []NavStyle `json:"styles" mapstructure:"styles" toml:"styles"`
		// ExcludeSections omits document sections from generated navigation.
		ExcludeSections bool `json:"exclude_sections" mapstructure:"exclude_sections" toml:"exclude_sections"`
	}

	// RenderConfig configures output rendering.
	RenderConfig struct {
		// Sanitize strips unsafe markup from raw content blocks.
		Sanitize bool `json:"sanitize" mapstructure:"sanitize" toml:"sanitize"`
		// MessageThreshold is the minimum severity at which embedded
		// messages appear in rendered output.
		MessageThreshold Threshold `json:"message_threshold" mapstructure:"message_threshold" toml:"message_threshold"`
		// OutputDir is where the build command writes rendered files.
		OutputDir OutputDirPath `json:"output_dir" mapstructure:"output_dir" toml:"output_dir"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// String returns the string representation of the FormatName.
func (f FormatName) String() string { return string(f) }

// IsValid returns whether the FormatName is one of the defined output formats,
// and a list of validation errors if it is not.
func (f FormatName) IsValid() (bool, []error) {
	switch f {
	case FormatHTML, FormatEPUB, FormatPDF, FormatAST, FormatTerminal:
		return true, nil
	default:
		return false, []error{&InvalidFormatNameError{Value: f}}
	}
}

// Error implements the error interface for InvalidFormatNameError.
func (e *InvalidFormatNameError) Error() string {
	return fmt.Sprintf("invalid format name %q (valid: html, epub, pdf, ast, terminal)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidFormatNameError) Unwrap() error { return ErrInvalidFormatName }

// String returns the string representation of the Threshold.
func (th Threshold) String() string { return string(th) }

// IsValid returns whether the Threshold is one of the defined severity names,
// and a list of validation errors if it is not.
func (th Threshold) IsValid() (bool, []error) {
	switch th {
	case ThresholdInfo, ThresholdWarning, ThresholdError, ThresholdFatal:
		return true, nil
	default:
		return false, []error{&InvalidThresholdError{Value: th}}
	}
}

// Error implements the error interface for InvalidThresholdError.
func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid message threshold %q (valid: info, warning, error, fatal)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidThresholdError) Unwrap() error { return ErrInvalidThreshold }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the OutputDirPath.
func (p OutputDirPath) String() string { return string(p) }

// IsValid returns whether the OutputDirPath is valid.
// The zero value ("") is valid (means "use default output directory").
// Non-zero values must not be whitespace-only.
func (p OutputDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputDirPathError.
func (e *InvalidOutputDirPathError) Error() string {
	return fmt.Sprintf("invalid output dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidOutputDirPath for errors.Is() compatibility.
func (e *InvalidOutputDirPathError) Unwrap() error { return ErrInvalidOutputDirPath }

// String returns the string representation of the NavStyle.
func (s NavStyle) String() string { return string(s) }

// IsValid returns whether the NavStyle is valid.
// A valid style must be non-empty and not whitespace-only.
func (s NavStyle) IsValid() (bool, []error) {
	if strings.TrimSpace(string(s)) == "" {
		return false, []error{&InvalidNavStyleError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidNavStyleError.
func (e *InvalidNavStyleError) Error() string {
	return fmt.Sprintf("invalid nav style %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidNavStyle for errors.Is() compatibility.
func (e *InvalidNavStyleError) Unwrap() error { return ErrInvalidNavStyle }

// IsValid returns whether the NavConfig has valid fields.
// It delegates to each style's IsValid(); MaxDepth range checks live in the
// schema, but a negative value coming from defaults overrides is rejected here.
func (c NavConfig) IsValid() (bool, []error) {
	var errs []error
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("nav max_depth %d: must be at least 1", c.MaxDepth))
	}
	for _, s := range c.Styles {
		if valid, fieldErrs := s.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidNavConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidNavConfigError.
func (e *InvalidNavConfigError) Error() string {
	return fmt.Sprintf("invalid nav config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidNavConfig for errors.Is() compatibility.
func (e *InvalidNavConfigError) Unwrap() error { return ErrInvalidNavConfig }

// IsValid returns whether the RenderConfig has valid fields.
// It delegates to MessageThreshold.IsValid() and OutputDir.IsValid();
// bool fields need no validation.
func (c RenderConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.MessageThreshold.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.OutputDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidRenderConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRenderConfigError.
func (e *InvalidRenderConfigError) Error() string {
	return fmt.Sprintf("invalid render config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidRenderConfig for errors.Is() compatibility.
func (e *InvalidRenderConfigError) Unwrap() error { return ErrInvalidRenderConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to DefaultFormat.IsValid(), Nav.IsValid(), Render.IsValid(),
// and UI.IsValid(). SiteTitle is free-form and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.DefaultFormat.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Nav.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Render.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SiteTitle:     "Documentation",
		DefaultFormat: FormatHTML,
		Nav: NavConfig{
			MaxDepth:        3,
			Styles:          []NavStyle{},
			ExcludeSections: false,
		},
		Render: RenderConfig{
			Sanitize:         true,
			MessageThreshold: ThresholdError,
			OutputDir:        "", // Will use ./public if empty
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
