package infofmt

import (
	"github.com/joshuapare/ptreekit/internal/textio"
)

// FormatName identifies this format in errors.
const FormatName = "info"

// MaxIncludeDepth bounds #include nesting.
const MaxIncludeDepth = 64

// Option configures a read.
type Option func(*readOptions)

type readOptions struct {
	source   string
	encoding textio.Encoding
	resolver Resolver
}

func newReadOptions(opts []Option) *readOptions {
	o := &readOptions{resolver: FileResolver{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSource names the input in errors and is the base for relative
// includes. ReadFile sets it to the file name.
func WithSource(name string) Option {
	return func(o *readOptions) { o.source = name }
}

// WithEncoding sets the input encoding. A byte order mark overrides it.
func WithEncoding(enc textio.Encoding) Option {
	return func(o *readOptions) { o.encoding = enc }
}

// WithResolver sets how #include names are located.
func WithResolver(r Resolver) Option {
	return func(o *readOptions) { o.resolver = r }
}

// WriterSettings controls Write output.
type WriterSettings struct {
	// IndentChar is repeated IndentWidth times per nesting level.
	IndentChar  rune
	IndentWidth int
	// Encoding of the output; defaults to UTF-8.
	Encoding textio.Encoding
}

// DefaultWriterSettings indents with four spaces.
func DefaultWriterSettings() *WriterSettings {
	return &WriterSettings{IndentChar: ' ', IndentWidth: 4}
}
