package yamlfmt

import "github.com/joshuapare/ptreekit/internal/textio"

// FormatName identifies this format in errors.
const FormatName = "yaml"

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
	// Indent is the number of spaces per nesting level.
	Indent int
	// IndentSequence indents sequence items under their key.
	IndentSequence bool
	// Encoding of the output; defaults to UTF-8.
	Encoding textio.Encoding
}

// DefaultWriterSettings indents with two spaces.
func DefaultWriterSettings() *WriterSettings {
	return &WriterSettings{Indent: 2, IndentSequence: true}
}
