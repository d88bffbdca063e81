package xmlfmt

import "github.com/joshuapare/ptreekit/internal/textio"

// FormatName identifies this format in errors.
const FormatName = "xml"

// Reserved child keys.
const (
	AttrKey    = "<xmlattr>"
	CommentKey = "<xmlcomment>"
	TextKey    = "<xmltext>"
)

// Flags select how text and comments are read.
type Flags uint8

const (
	// NoConcatText stores every text run as a separate TextKey child.
	NoConcatText Flags = 1 << iota
	// TrimWhitespace trims text runs, collapses inner whitespace and drops
	// runs left empty.
	TrimWhitespace
	// NoComments discards comments.
	NoComments
)

// Option configures a read.
type Option func(*readOptions)

type readOptions struct {
	source   string
	encoding textio.Encoding
	flags    Flags
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

// WithEncoding sets the input encoding. A byte order mark overrides it;
// the encoding named in the XML declaration is ignored.
func WithEncoding(enc textio.Encoding) Option {
	return func(o *readOptions) { o.encoding = enc }
}

// WithFlags sets the text and comment handling flags.
func WithFlags(f Flags) Option {
	return func(o *readOptions) { o.flags = f }
}

// WriterSettings controls Write output.
type WriterSettings struct {
	// IndentChar is repeated IndentWidth times per nesting level. A zero
	// IndentWidth writes the document on one line.
	IndentChar  rune
	IndentWidth int
	// Encoding of the output, also named in the declaration; defaults to
	// UTF-8.
	Encoding textio.Encoding
}

// DefaultWriterSettings indents with four spaces.
func DefaultWriterSettings() *WriterSettings {
	return &WriterSettings{IndentChar: ' ', IndentWidth: 4}
}
