package infofmt

import (
	"io"
	"strings"
	"unicode"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Write renders t as INFO text. A nil s uses DefaultWriterSettings.
// The root's own value cannot be represented and is a *types.WriteError.
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
	if s.IndentChar == 0 {
		c := *s
		c.IndentChar = ' '
		s = &c
	}
	if t.HasValue() {
		return "", s, &types.WriteError{Format: FormatName, Msg: "root node cannot hold a value"}
	}
	var b strings.Builder
	writeChildren(&b, t, 0, s)
	return b.String(), s, nil
}

func writeChildren(b *strings.Builder, t *ptree.Tree, level int, s *WriterSettings) {
	indent := strings.Repeat(string(s.IndentChar), level*s.IndentWidth)
	for key, child := range t.All() {
		b.WriteString(indent)
		b.WriteString(quote(key))
		if child.HasValue() {
			b.WriteByte(' ')
			b.WriteString(quote(child.Value()))
		}
		b.WriteByte('\n')
		if !child.Empty() {
			b.WriteString(indent)
			b.WriteString("{\n")
			writeChildren(b, child, level+1, s)
			b.WriteString(indent)
			b.WriteString("}\n")
		}
	}
}

// quote returns s bare when the reader would read it back as one word,
// and as an escaped quoted string otherwise.
func quote(s string) string {
	if !needsQuotes(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuotes(s string) bool {
	if s == "" || s[0] == '#' {
		return true
	}
	return strings.ContainsFunc(s, func(r rune) bool {
		switch r {
		case ';', '{', '}', '"', '\\':
			return true
		}
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}
