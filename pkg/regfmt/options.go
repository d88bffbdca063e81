package regfmt

import (
	"github.com/joshuapare/ptreekit/internal/regtext"
	"github.com/joshuapare/ptreekit/internal/textio"
)

// FormatName identifies this format in errors.
const FormatName = regtext.FormatName

// Option configures a read.
type Option func(*readOptions)

type readOptions struct {
	source string
}

func newReadOptions(opts []Option) *readOptions {
	o := &readOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSource names the input in errors. ReadFile sets it to the file name.
func WithSource(name string) Option {
	return func(o *readOptions) { o.source = name }
}

// WriterSettings controls .reg output.
type WriterSettings struct {
	// Encoding of the output file. Auto means UTF-16LE, as regedit
	// exports. A byte order mark is always written for Unicode output.
	Encoding textio.Encoding
	// Limits applied to the tree; nil means DefaultLimits.
	Limits *Limits
}

// DefaultWriterSettings writes UTF-16LE with the default limits.
func DefaultWriterSettings() *WriterSettings {
	return &WriterSettings{Encoding: textio.Auto}
}
