package xmlfmt

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Read parses XML from r into t. On error t is left unchanged.
func Read(r io.Reader, t *ptree.Tree, opts ...Option) error {
	o := newReadOptions(opts)
	text, err := textio.ReadAll(r, o.encoding)
	if err != nil {
		return &types.ParseError{Format: FormatName, Source: sourceName(o.source), Msg: "read failed", Err: err}
	}
	return parseInto(text, t, o)
}

// ReadString parses XML from s into t.
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
	p := &parser{source: sourceName(o.source), flags: o.flags}
	return ptree.ReadInto(t, func(scratch *ptree.Tree) error {
		return p.parse(text, scratch)
	})
}

// frame is an open element.
type frame struct {
	name    string
	node    *ptree.Tree
	pending strings.Builder // text since the last markup
	nested  bool            // an element or comment was seen inside
}

type parser struct {
	source string
	flags  Flags
	dec    *xml.Decoder
}

func (p *parser) line() int {
	line, _ := p.dec.InputPos()
	return line
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &types.ParseError{Format: FormatName, Source: p.source, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse(text string, root *ptree.Tree) error {
	p.dec = xml.NewDecoder(strings.NewReader(text))
	// text is already UTF-8 whatever the declaration says.
	p.dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	stack := []*frame{{node: root}}
	for {
		tok, err := p.dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p.syntaxError(err)
		}
		top := stack[len(stack)-1]

		switch tok := tok.(type) {
		case xml.StartElement:
			p.flush(top, false)
			top.nested = true
			name := qualified(tok.Name)
			child := top.node.Append(name)
			if len(tok.Attr) > 0 {
				attrs := child.Append(AttrKey)
				for _, a := range tok.Attr {
					attrs.Append(qualified(a.Name)).SetValue(a.Value)
				}
			}
			stack = append(stack, &frame{name: name, node: child})

		case xml.EndElement:
			name := qualified(tok.Name)
			if len(stack) == 1 {
				return p.errorf(p.line(), "unexpected closing tag </%s>", name)
			}
			if name != top.name {
				return p.errorf(p.line(), "mismatched closing tag </%s>, expected </%s>", name, top.name)
			}
			p.flush(top, true)
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 1 {
				if strings.TrimSpace(string(tok)) != "" {
					return p.errorf(p.line(), "text outside of any element")
				}
				continue
			}
			top.pending.Write(tok)

		case xml.Comment:
			if p.flags&NoComments != 0 {
				continue
			}
			p.flush(top, false)
			top.nested = true
			top.node.Append(CommentKey).SetValue(string(tok))
		}
	}

	if len(stack) > 1 {
		return p.errorf(p.line(), "unclosed tag <%s>", stack[len(stack)-1].name)
	}
	return nil
}

// flush stores the text collected in f. end is set when f is closing.
func (p *parser) flush(f *frame, end bool) {
	text := f.pending.String()
	f.pending.Reset()
	if text == "" {
		return
	}

	switch {
	case p.flags&TrimWhitespace != 0:
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			return
		}
	case p.flags&NoConcatText != 0:
	case strings.TrimSpace(text) == "" && (!end || f.nested):
		// Whitespace between markup. An element holding only whitespace
		// keeps it as its value.
		return
	}

	if p.flags&NoConcatText != 0 {
		f.node.Append(TextKey).SetValue(text)
		return
	}
	f.node.SetValue(f.node.Value() + text)
}

func (p *parser) syntaxError(err error) error {
	var serr *xml.SyntaxError
	if errors.As(err, &serr) {
		return &types.ParseError{Format: FormatName, Source: p.source, Line: serr.Line, Msg: serr.Msg}
	}
	return &types.ParseError{Format: FormatName, Source: p.source, Line: p.line(), Msg: "malformed markup", Err: err}
}

// qualified returns the name as written, prefix included.
func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
