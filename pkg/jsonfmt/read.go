package jsonfmt

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Read parses JSON from r into t. On error t is left unchanged.
func Read(r io.Reader, t *ptree.Tree, opts ...Option) error {
	o := newReadOptions(opts)
	text, err := textio.ReadAll(r, o.encoding)
	if err != nil {
		return &types.ParseError{Format: FormatName, Source: sourceName(o.source), Msg: "read failed", Err: err}
	}
	return parseInto(text, t, o)
}

// ReadString parses JSON from s into t.
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
	p := &parser{s: text, line: 1, source: sourceName(o.source)}
	return ptree.ReadInto(t, p.parseDocument)
}

type parser struct {
	s      string
	pos    int
	line   int
	source string
}

func (p *parser) errorf(format string, args ...any) error {
	return &types.ParseError{Format: FormatName, Source: p.source, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) parseDocument(root *ptree.Tree) error {
	if err := p.skipSpace(); err != nil {
		return err
	}
	if p.eof() {
		return p.errorf("empty document")
	}
	if err := p.parseValue(root); err != nil {
		return err
	}
	if err := p.skipSpace(); err != nil {
		return err
	}
	if !p.eof() {
		return p.errorf("garbage after data")
	}
	return nil
}

// skipSpace skips whitespace and comments, counting lines.
func (p *parser) skipSpace() error {
	for !p.eof() {
		switch c := p.s[p.pos]; {
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r':
			p.pos++
		case strings.HasPrefix(p.s[p.pos:], "//"):
			end := strings.IndexByte(p.s[p.pos:], '\n')
			if end < 0 {
				p.pos = len(p.s)
			} else {
				p.pos += end
			}
		case strings.HasPrefix(p.s[p.pos:], "/*"):
			end := strings.Index(p.s[p.pos+2:], "*/")
			if end < 0 {
				p.line += strings.Count(p.s[p.pos:], "\n")
				p.pos = len(p.s)
				return p.errorf("unterminated comment")
			}
			p.line += strings.Count(p.s[p.pos:p.pos+2+end], "\n")
			p.pos += 2 + end + 2
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) parseValue(n *ptree.Tree) error {
	switch c := p.peek(); {
	case c == '{':
		return p.parseObject(n)
	case c == '[':
		return p.parseArray(n)
	case c == '"':
		s, err := p.parseStrings()
		if err != nil {
			return err
		}
		n.SetValue(s)
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		num, err := p.parseNumber()
		if err != nil {
			return err
		}
		n.SetValue(num)
		return nil
	}
	for _, lit := range []string{"true", "false", "null"} {
		if strings.HasPrefix(p.s[p.pos:], lit) {
			p.pos += len(lit)
			if lit != "null" {
				n.SetValue(lit)
			}
			return nil
		}
	}
	if p.eof() {
		return p.errorf("expected value, found end of input")
	}
	return p.errorf("expected value")
}

func (p *parser) parseObject(n *ptree.Tree) error {
	p.pos++ // {
	if err := p.skipSpace(); err != nil {
		return err
	}
	if p.peek() == '}' {
		p.pos++
		return nil
	}
	for {
		if p.peek() != '"' {
			return p.errorf("expected key string")
		}
		key, err := p.parseString()
		if err != nil {
			return err
		}
		if err := p.skipSpace(); err != nil {
			return err
		}
		if p.peek() != ':' {
			return p.errorf("expected ':'")
		}
		p.pos++
		if err := p.skipSpace(); err != nil {
			return err
		}
		if err := p.parseValue(n.Append(key)); err != nil {
			return err
		}
		if err := p.skipSpace(); err != nil {
			return err
		}
		switch p.peek() {
		case ',':
			p.pos++
			if err := p.skipSpace(); err != nil {
				return err
			}
		case '}':
			p.pos++
			return nil
		default:
			return p.errorf("expected ',' or '}'")
		}
	}
}

func (p *parser) parseArray(n *ptree.Tree) error {
	p.pos++ // [
	if err := p.skipSpace(); err != nil {
		return err
	}
	if p.peek() == ']' {
		p.pos++
		return nil
	}
	for {
		if err := p.parseValue(n.Append("")); err != nil {
			return err
		}
		if err := p.skipSpace(); err != nil {
			return err
		}
		switch p.peek() {
		case ',':
			p.pos++
			if err := p.skipSpace(); err != nil {
				return err
			}
		case ']':
			p.pos++
			return nil
		default:
			return p.errorf("expected ',' or ']'")
		}
	}
}

// parseStrings reads a string literal and any literals that follow it with
// only whitespace or comments in between.
func (p *parser) parseStrings() (string, error) {
	s, err := p.parseString()
	if err != nil {
		return "", err
	}
	for {
		pos, line := p.pos, p.line
		if err := p.skipSpace(); err != nil {
			return "", err
		}
		if p.peek() != '"' {
			p.pos, p.line = pos, line
			return s, nil
		}
		more, err := p.parseString()
		if err != nil {
			return "", err
		}
		s += more
	}
}

func (p *parser) parseString() (string, error) {
	p.pos++ // "
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		c := p.s[p.pos]
		switch {
		case c == '"':
			p.pos++
			return b.String(), nil
		case c < 0x20:
			return "", p.errorf("invalid character in string")
		case c == '\\':
			if err := p.parseEscape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.s[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) parseEscape(b *strings.Builder) error {
	p.pos++ // backslash
	if p.eof() {
		return p.errorf("unterminated string")
	}
	c := p.s[p.pos]
	p.pos++
	switch c {
	case '"', '\\', '/':
		b.WriteByte(c)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		r, err := p.parseHex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			// A high surrogate must be followed by an escaped low one.
			if !strings.HasPrefix(p.s[p.pos:], `\u`) {
				return p.errorf("invalid surrogate")
			}
			p.pos += 2
			r2, err := p.parseHex4()
			if err != nil {
				return err
			}
			if r = utf16.DecodeRune(r, r2); r == utf8.RuneError {
				return p.errorf("invalid surrogate")
			}
		}
		b.WriteRune(r)
	default:
		return p.errorf("invalid escape sequence")
	}
	return nil
}

func (p *parser) parseHex4() (rune, error) {
	if p.pos+4 > len(p.s) {
		return 0, p.errorf("invalid \\u escape")
	}
	var r rune
	for _, c := range []byte(p.s[p.pos : p.pos+4]) {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		default:
			return 0, p.errorf("invalid \\u escape")
		}
	}
	p.pos += 4
	return r, nil
}

// parseNumber validates a JSON number and returns its literal text.
func (p *parser) parseNumber() (string, error) {
	start := p.pos
	digits := func() int {
		n := 0
		for !p.eof() && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
			n++
		}
		return n
	}
	if p.peek() == '-' {
		p.pos++
	}
	switch {
	case p.peek() == '0':
		p.pos++
	case digits() == 0:
		return "", p.errorf("expected digits")
	}
	if p.peek() == '.' {
		p.pos++
		if digits() == 0 {
			return "", p.errorf("expected digits after '.'")
		}
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if digits() == 0 {
			return "", p.errorf("expected digits in exponent")
		}
	}
	return p.s[start:p.pos], nil
}
