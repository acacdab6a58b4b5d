// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps how much input the parser will hand to the CUE
// evaluator (5MB). Without a cap, a huge config file turns into a huge
// in-memory CUE value before validation can reject it.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// parseOptions collects the knobs the Option functions set.
type parseOptions struct {
	maxFileSize int64
	concrete    bool
	filename    string
}

// Option configures a single ParseAndDecode call.
type Option func(*parseOptions)

// buildOptions folds opts over the defaults: 5MB size cap, concrete
// validation on, no filename.
func buildOptions(opts []Option) parseOptions {
	cfg := parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxFileSize overrides the DefaultMaxFileSize cap.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete controls whether validation requires every field to be
// concrete. Pass false for schemas whose fields are all optional, where
// an empty input is a valid input.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) {
		o.concrete = concrete
	}
}

// WithFilename attributes parse and validation errors to name instead of
// the "<input>" placeholder.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}
