// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"folio-cli/pkg/types"
)

// Package-level cache state. The CLI loads configuration once per process;
// tests reset this state between cases.
var (
	// globalConfig caches the last successfully loaded configuration.
	globalConfig *Config
	// configPath records where the cached configuration was loaded from
	// ("" when defaults were used).
	configPath string
	// errLastLoad records the error from the last failed load, so the CLI
	// can fall back to defaults but still surface the problem.
	errLastLoad error

	// configFilePathOverride forces loading from a specific file (--config flag).
	configFilePathOverride string
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load returns the cached configuration, loading it from disk on first use.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, resolvedPath, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(configFilePathOverride),
		ConfigDirPath:  types.FilesystemPath(configDirOverride),
	})
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	configPath = resolvedPath
	return cfg, nil
}

// Get returns the configuration, falling back to defaults when loading fails.
// The load error is retrievable via LastLoadError so callers can warn without
// aborting.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		errLastLoad = err
		return DefaultConfig()
	}
	errLastLoad = nil
	return cfg
}

// ConfigFilePath returns the path the cached configuration was loaded from.
// Returns "" when defaults are in use.
//
//nolint:revive // ConfigFilePath is more descriptive than FilePath for external callers
func ConfigFilePath() string {
	return configPath
}

// LastLoadError returns the error from the most recent failed load, if any.
func LastLoadError() error {
	return errLastLoad
}

// Reset clears cache state and test overrides. Call from test cleanup to
// restore defaults.
func Reset() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
	configFilePathOverride = ""
	configDirOverride = ""
}

// ResetCache clears the cached configuration but preserves overrides, forcing
// the next Load to re-read from disk.
func ResetCache() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride forces the next load to use a specific config
// file. Setting a new override invalidates the cache.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
	ResetCache()
}
