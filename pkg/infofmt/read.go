package infofmt

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Read parses INFO text from r into t. On error t is left unchanged.
func Read(r io.Reader, t *ptree.Tree, opts ...Option) error {
	o := newReadOptions(opts)
	text, err := textio.ReadAll(r, o.encoding)
	if err != nil {
		return &types.ParseError{Format: FormatName, Source: sourceName(o.source), Msg: "read failed", Err: err}
	}
	return parseInto(text, t, o)
}

// ReadString parses INFO text from s into t.
func ReadString(s string, t *ptree.Tree, opts ...Option) error {
	return parseInto(s, t, newReadOptions(opts))
}

// ReadFile parses the named file into t.
func ReadFile(name string, t *ptree.Tree, opts ...Option) error {
	o := newReadOptions(append([]Option{WithSource(name)}, opts...))
	text, err := textio.Load(FormatName, name, o.encoding)
	if err != nil {
		return err
	}
	return parseInto(text, t, o)
}

// ReadFileOr is ReadFile, except that a missing file makes t a copy of def
// instead of failing. Malformed content is still an error.
func ReadFileOr(name string, t, def *ptree.Tree, opts ...Option) error {
	o := newReadOptions(append([]Option{WithSource(name)}, opts...))
	text, err := textio.Load(FormatName, name, o.encoding)
	if textio.IsNotFound(err) {
		t.Assign(def)
		return nil
	}
	if err != nil {
		return err
	}
	return parseInto(text, t, o)
}

func sourceName(s string) string {
	if s == "" {
		return types.StreamSource
	}
	return s
}

func parseInto(text string, t *ptree.Tree, o *readOptions) error {
	p := &parser{source: sourceName(o.source), resolver: o.resolver, encoding: o.encoding}
	return ptree.ReadInto(t, func(scratch *ptree.Tree) error {
		return p.parse(text, scratch)
	})
}

type parseState int

const (
	expectKey parseState = iota
	expectData
	expectDataCont // a quoted value ended with a backslash
)

type parser struct {
	source   string
	resolver Resolver
	encoding textio.Encoding
	depth    int
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &types.ParseError{Format: FormatName, Source: p.source, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// splitLines splits on '\n' and drops '\r'. A trailing newline does not
// start another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func (p *parser) parse(text string, root *ptree.Tree) error {
	stack := []*ptree.Tree{root}
	var last *ptree.Tree // node a following '{' opens
	state := expectKey

	lines := splitLines(text)
	for i, raw := range lines {
		lineNo := i + 1
		c := &cursor{s: raw}
		if state == expectData {
			state = expectKey
		}

		// '#' starts a directive only as the first token of a line.
		for first := true; ; first = false {
			c.skipSpace()
			if c.eol() || c.peek() == ';' {
				break
			}

			switch state {
			case expectDataCont:
				if c.peek() != '"' {
					return p.errorf(lineNo, "expected \" after \\ in previous line")
				}
				s, more, err := p.readString(c, lineNo)
				if err != nil {
					return err
				}
				last.SetValue(last.Value() + s)
				if !more {
					state = expectKey
				}

			case expectKey:
				switch r := c.peek(); {
				case r == '{':
					if last == nil {
						return p.errorf(lineNo, "unexpected {")
					}
					c.advance()
					stack = append(stack, last)
					last = nil
				case r == '}':
					if len(stack) == 1 {
						return p.errorf(lineNo, "unmatched }")
					}
					c.advance()
					stack = stack[:len(stack)-1]
					last = nil
				case r == '#' && first:
					if err := p.directive(c, stack[len(stack)-1], lineNo); err != nil {
						return err
					}
					last = nil
				default:
					key, err := p.readToken(c, lineNo)
					if err != nil {
						return err
					}
					last = stack[len(stack)-1].Append(key)
					state = expectData
				}

			case expectData:
				switch c.peek() {
				case '{':
					c.advance()
					stack = append(stack, last)
					last = nil
					state = expectKey
				case '}':
					if len(stack) == 1 {
						return p.errorf(lineNo, "unmatched }")
					}
					c.advance()
					stack = stack[:len(stack)-1]
					last = nil
					state = expectKey
				case '"':
					s, more, err := p.readString(c, lineNo)
					if err != nil {
						return err
					}
					last.SetValue(s)
					state = expectKey
					if more {
						state = expectDataCont
					}
				default:
					w := c.word()
					if w == "\\" {
						return p.errorf(lineNo, "unexpected \\")
					}
					last.SetValue(w)
					state = expectKey
				}
			}
		}
	}

	if state == expectDataCont {
		return p.errorf(len(lines), "unexpected end of input after \\")
	}
	if len(stack) > 1 {
		return p.errorf(len(lines), "unmatched {")
	}
	return nil
}

// readToken reads a key: a bare word or a single quoted string.
func (p *parser) readToken(c *cursor, line int) (string, error) {
	if c.peek() != '"' {
		return c.word(), nil
	}
	return p.readQuoted(c, line)
}

// readString reads a value made of one or more adjacent quoted strings.
// more reports a trailing backslash.
func (p *parser) readString(c *cursor, line int) (s string, more bool, err error) {
	var b strings.Builder
	for c.peek() == '"' {
		part, err := p.readQuoted(c, line)
		if err != nil {
			return "", false, err
		}
		b.WriteString(part)
		c.skipSpace()
	}
	if c.peek() == '\\' {
		c.advance()
		more = true
		if err := p.endOfLine(c, line, "\\"); err != nil {
			return "", false, err
		}
	}
	return b.String(), more, nil
}

// readQuoted reads one quoted string starting at the opening quote.
func (p *parser) readQuoted(c *cursor, line int) (string, error) {
	var b strings.Builder
	c.advance()
	for {
		if c.eol() {
			return "", p.errorf(line, "unterminated string")
		}
		r := c.next()
		if r == '"' {
			return b.String(), nil
		}
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if c.eol() {
			return "", p.errorf(line, "unterminated string")
		}
		e, ok := unescape(c.next())
		if !ok {
			return "", p.errorf(line, "unknown escape sequence")
		}
		b.WriteRune(e)
	}
}

func unescape(r rune) (rune, bool) {
	switch r {
	case '0':
		return 0, true
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case '"', '\'', '\\':
		return r, true
	}
	return 0, false
}

// directive handles "#include "name"". '#' and "include" may be separated
// by blanks.
func (p *parser) directive(c *cursor, scope *ptree.Tree, line int) error {
	c.advance()
	c.skipSpace()
	if !strings.HasPrefix(c.rest(), "include") {
		return p.errorf(line, "unknown directive")
	}
	c.pos += len("include")
	c.skipSpace()
	if c.peek() != '"' {
		return p.errorf(line, "expected \" after #include")
	}
	name, err := p.readQuoted(c, line)
	if err != nil {
		return err
	}
	if err := p.endOfLine(c, line, "#include"); err != nil {
		return err
	}
	return p.include(name, scope, line)
}

// endOfLine requires that only blanks or a comment follow what.
func (p *parser) endOfLine(c *cursor, line int, what string) error {
	c.skipSpace()
	if !c.eol() && c.peek() != ';' {
		return p.errorf(line, "unexpected text after %s", what)
	}
	return nil
}

func (p *parser) include(name string, scope *ptree.Tree, line int) error {
	if p.depth >= MaxIncludeDepth {
		return p.errorf(line, "#include nesting exceeds %d levels", MaxIncludeDepth)
	}
	data, src, err := p.resolver.Resolve(name, p.source)
	if err != nil {
		return &types.ParseError{
			Format: FormatName,
			Source: p.source,
			Line:   line,
			Msg:    fmt.Sprintf("cannot open include file %q", name),
			Err:    err,
		}
	}
	text, err := textio.Decode(data, p.encoding)
	if err != nil {
		return &types.ParseError{Format: FormatName, Source: src, Msg: "cannot decode include file", Err: err}
	}
	sub := &parser{source: src, resolver: p.resolver, encoding: p.encoding, depth: p.depth + 1}
	return sub.parse(text, scope)
}

// cursor walks one line.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) eol() bool { return c.pos >= len(c.s) }

func (c *cursor) rest() string { return c.s[c.pos:] }

func (c *cursor) peek() rune {
	if c.eol() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.s[c.pos:])
	return r
}

func (c *cursor) next() rune {
	r, n := utf8.DecodeRuneInString(c.s[c.pos:])
	c.pos += n
	return r
}

func (c *cursor) advance() { c.next() }

func (c *cursor) skipSpace() {
	for !c.eol() && unicode.IsSpace(c.peek()) {
		c.advance()
	}
}

// word reads a bare token up to whitespace, a brace or a comment.
func (c *cursor) word() string {
	start := c.pos
	for !c.eol() {
		r := c.peek()
		if unicode.IsSpace(r) || r == '{' || r == '}' || r == ';' {
			break
		}
		c.advance()
	}
	return c.s[start:c.pos]
}
