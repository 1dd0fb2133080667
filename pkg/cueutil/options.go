// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the input accepted by ParseAndDecode unless
// overridden with WithMaxFileSize.
const DefaultMaxFileSize int64 = 1 << 20

type parseOptions struct {
	filename    string
	maxFileSize int64
}

func defaultOptions() parseOptions {
	return parseOptions{maxFileSize: DefaultMaxFileSize}
}

// Option customizes ParseAndDecode.
type Option func(*parseOptions)

// WithFilename sets the file name used in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}

// WithMaxFileSize overrides the input size limit.
func WithMaxFileSize(n int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = n
	}
}
