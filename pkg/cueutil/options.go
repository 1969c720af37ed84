// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the maximum accepted input size (1 MiB). Config and
// theme files are small; anything larger is almost certainly a mistake.
const DefaultMaxFileSize int64 = 1 << 20

type (
	// Option configures ParseAndDecode behavior.
	Option func(*parseOptions)

	parseOptions struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) { o.filename = name }
}

// WithMaxFileSize overrides the maximum accepted input size.
func WithMaxFileSize(n int64) Option {
	return func(o *parseOptions) { o.maxFileSize = n }
}

// WithConcrete controls whether validation requires concrete values.
// Schemas with optional fields should pass false.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) { o.concrete = concrete }
}
