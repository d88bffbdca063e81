package jsonfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Write renders t as JSON. A nil s uses DefaultWriterSettings.
// An empty root is written as {} and a root holding only a value as a
// JSON string.
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

func render(t *ptree.Tree, s *WriterSettings) (string, *WriterSettings, error) {
	if s == nil {
		s = DefaultWriterSettings()
	}
	w := &writer{settings: s}
	if t.Empty() && !t.HasValue() {
		w.b.WriteString("{}")
	} else if err := w.value(t, ptree.Path{}, 0); err != nil {
		return "", s, err
	}
	if s.Pretty {
		w.b.WriteByte('\n')
	}
	return w.b.String(), s, nil
}

type writer struct {
	b        strings.Builder
	settings *WriterSettings
}

func (w *writer) newline(level int) {
	if !w.settings.Pretty {
		return
	}
	w.b.WriteByte('\n')
	w.b.WriteString(strings.Repeat(" ", level*w.settings.IndentWidth))
}

func (w *writer) value(n *ptree.Tree, p ptree.Path, level int) error {
	if n.Empty() {
		writeString(&w.b, n.Value())
		return nil
	}
	if n.HasValue() {
		return &types.WriteError{Format: FormatName, Path: p.String(), Msg: "node has both a value and children"}
	}

	open, closing := byte('{'), byte('}')
	list := n.IsList()
	if list {
		open, closing = '[', ']'
	}
	w.b.WriteByte(open)
	i := 0
	for key, child := range n.All() {
		if i > 0 {
			w.b.WriteByte(',')
		}
		i++
		w.newline(level + 1)
		if !list {
			writeString(&w.b, key)
			w.b.WriteByte(':')
			if w.settings.Pretty {
				w.b.WriteByte(' ')
			}
		}
		if err := w.value(child, p.Child(key), level+1); err != nil {
			return err
		}
	}
	w.newline(level)
	w.b.WriteByte(closing)
	return nil
}

// writeString quotes s, escaping quotes, backslashes and control
// characters.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
