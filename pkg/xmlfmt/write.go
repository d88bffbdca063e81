package xmlfmt

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Write renders t as an XML document. A nil s uses DefaultWriterSettings.
// Every top-level child of t becomes a top-level element or comment; t
// itself cannot hold a value or attributes.
func Write(w io.Writer, t *ptree.Tree, s *WriterSettings) error {
	text, s, err := render(t, s)
	if err != nil {
		return err
	}
	return textio.WriteString(w, text, s.Encoding)
}

// WriteFile renders t and atomically replaces the named file.
func WriteFile(name string, t *ptree.Tree, s *WriterSettings) error {
	text, s, err := render(t, s)
	if err != nil {
		return err
	}
	return textio.WriteFile(name, text, s.Encoding)
}

// String renders t with default settings.
func String(t *ptree.Tree) (string, error) {
	text, _, err := render(t, nil)
	return text, err
}

func writeErr(p ptree.Path, format string, args ...any) error {
	return &types.WriteError{Format: FormatName, Path: p.String(), Msg: fmt.Sprintf(format, args...)}
}

func render(t *ptree.Tree, s *WriterSettings) (string, *WriterSettings, error) {
	if s == nil {
		s = DefaultWriterSettings()
	}
	if s.IndentChar == 0 {
		c := *s
		c.IndentChar = ' '
		s = &c
	}
	if t.HasValue() {
		return "", s, writeErr(ptree.Path{}, "root node cannot hold a value")
	}

	w := &writer{settings: s}
	w.b.WriteString(`<?xml version="1.0" encoding="` + declaredEncoding(s.Encoding) + `"?>`)
	pretty := s.IndentWidth > 0
	w.eol(pretty)
	for key, child := range t.All() {
		switch key {
		case AttrKey:
			return "", s, writeErr(ptree.Path{}, "root node cannot hold attributes")
		case TextKey:
			return "", s, writeErr(ptree.Path{}, "text outside of any element")
		}
		if err := w.node(key, child, ptree.PathOf(key), 0, pretty); err != nil {
			return "", s, err
		}
	}
	return w.b.String(), s, nil
}

func declaredEncoding(enc textio.Encoding) string {
	switch enc {
	case textio.UTF16LE, textio.UTF16BE:
		return "utf-16"
	case textio.Windows1252:
		return "windows-1252"
	}
	return "utf-8"
}

type writer struct {
	b        strings.Builder
	settings *WriterSettings
}

func (w *writer) indent(level int, pretty bool) {
	if pretty {
		w.b.WriteString(strings.Repeat(string(w.settings.IndentChar), level*w.settings.IndentWidth))
	}
}

func (w *writer) eol(pretty bool) {
	if pretty {
		w.b.WriteByte('\n')
	}
}

func (w *writer) node(key string, n *ptree.Tree, p ptree.Path, level int, pretty bool) error {
	switch key {
	case CommentKey:
		c := n.Value()
		if strings.Contains(c, "--") || strings.HasSuffix(c, "-") {
			return writeErr(p, "comment cannot contain \"--\" or end with \"-\"")
		}
		w.indent(level, pretty)
		w.b.WriteString("<!--" + c + "-->")
		w.eol(pretty)
		return nil
	case TextKey:
		textEscaper.WriteString(&w.b, n.Value())
		return nil
	}
	if !validName(key) {
		return writeErr(p, "invalid element name %q", key)
	}

	w.indent(level, pretty)
	w.b.WriteString("<" + key)
	content := 0
	mixed := n.HasValue()
	attrs := false
	for k, child := range n.All() {
		switch k {
		case AttrKey:
			if attrs {
				return writeErr(p.Child(k), "duplicate %s block", AttrKey)
			}
			attrs = true
			if err := w.attrs(child, p.Child(k)); err != nil {
				return err
			}
			continue
		case TextKey:
			mixed = true
		}
		content++
	}

	switch {
	case content == 0 && !n.HasValue():
		w.b.WriteString("/>")
		w.eol(pretty)
		return nil
	case content == 0:
		w.b.WriteByte('>')
		textEscaper.WriteString(&w.b, n.Value())
		w.b.WriteString("</" + key + ">")
		w.eol(pretty)
		return nil
	}

	w.b.WriteByte('>')
	textEscaper.WriteString(&w.b, n.Value())
	inner := pretty && !mixed
	w.eol(inner)
	for k, child := range n.All() {
		if k == AttrKey {
			continue
		}
		if err := w.node(k, child, p.Child(k), level+1, inner); err != nil {
			return err
		}
	}
	w.indent(level, inner)
	w.b.WriteString("</" + key + ">")
	w.eol(pretty)
	return nil
}

func (w *writer) attrs(n *ptree.Tree, p ptree.Path) error {
	if n.HasValue() {
		return writeErr(p, "attribute node cannot hold a value")
	}
	seen := make(map[string]bool, n.Len())
	for name, a := range n.All() {
		ap := p.Child(name)
		if !validName(name) {
			return writeErr(ap, "invalid attribute name %q", name)
		}
		if seen[name] {
			return writeErr(ap, "duplicate attribute %q", name)
		}
		seen[name] = true
		if !a.Empty() {
			return writeErr(ap, "attribute cannot have children")
		}
		w.b.WriteString(" " + name + `="`)
		if err := xml.EscapeText(&w.b, []byte(a.Value())); err != nil {
			return err
		}
		w.b.WriteByte('"')
	}
	return nil
}

// textEscaper escapes character data. Carriage returns are written as
// references so that line-end normalization does not drop them.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == ':' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
