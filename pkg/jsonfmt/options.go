package jsonfmt

import "github.com/joshuapare/ptreekit/internal/textio"

// FormatName identifies this format in errors.
const FormatName = "json"

// Option configures a read.
type Option func(*readOptions)

type readOptions struct {
	source   string
	encoding textio.Encoding
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

// WithEncoding sets the input encoding. A byte order mark overrides it.
func WithEncoding(enc textio.Encoding) Option {
	return func(o *readOptions) { o.encoding = enc }
}

// WriterSettings controls Write output.
type WriterSettings struct {
	// Pretty puts every member on its own line, indented by IndentWidth
	// spaces per level. Otherwise output is compact.
	Pretty      bool
	IndentWidth int
	// Encoding of the output; defaults to UTF-8.
	Encoding textio.Encoding
}

// DefaultWriterSettings pretty-prints with four spaces.
func DefaultWriterSettings() *WriterSettings {
	return &WriterSettings{Pretty: true, IndentWidth: 4}
}
