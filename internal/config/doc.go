// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/folio/folio.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/folio/folio.toml on macOS, %APPDATA%\folio\folio.toml
// on Windows). The package provides type-safe configuration access and covers the site
// title, the default output format, navigation generation, and rendering behavior.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
