// Package sheetgrid implements range read, paste and cut, and directional
// scanning over the sparse grid of a spreadsheet document.
//
// Operations address a sheet by name. A name that matches no sheet falls
// back to the first sheet in document order unless WithStrictSheet is given,
// so a misspelled name silently reads or writes the wrong sheet by default.
package sheetgrid

import (
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/value"
)

// Options configures range and scan operations.
type Options struct {
	// Strict disables the first-sheet fallback for unknown sheet names.
	Strict bool
	// Codec classifies pasted values and decodes read values.
	Codec *value.Codec
	// Logger receives fallback warnings.
	Logger logrus.FieldLogger
}

// Option mutates Options.
type Option func(o *Options)

// WithStrictSheet makes unknown sheet names fail with ErrSheetNotFound.
func WithStrictSheet() Option { return func(o *Options) { o.Strict = true } }

// WithCodec sets the value codec.
func WithCodec(c *value.Codec) Option { return func(o *Options) { o.Codec = c } }

// WithLogger sets the logger for fallback warnings.
func WithLogger(l logrus.FieldLogger) Option { return func(o *Options) { o.Logger = l } }

// NewOptions returns the defaults adjusted by opts.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Codec:  value.DefaultCodec,
		Logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Codec == nil {
		o.Codec = value.DefaultCodec
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}
