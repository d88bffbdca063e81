package inifmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Write renders t as INI. A nil s uses DefaultWriterSettings.
//
// Keys that hold a value and no children are written first, before any
// section; every other top-level node becomes a [section]. Trees deeper
// than two levels, repeated sibling keys, sections holding a value and
// keys or values that would not read back unchanged are rejected with a
// *types.WriteError.
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

func writeErr(path, format string, args ...any) error {
	return &types.WriteError{Format: FormatName, Path: path, Msg: fmt.Sprintf(format, args...)}
}

func render(t *ptree.Tree, s *WriterSettings) (string, *WriterSettings, error) {
	if s == nil {
		s = DefaultWriterSettings()
	}
	sep := s.Separator
	if sep == "" {
		sep = "="
	}
	if strings.TrimSpace(sep) != "=" {
		return "", s, writeErr("", "separator %q must be '=' with optional blanks", sep)
	}
	if err := validate(t); err != nil {
		return "", s, err
	}

	var b strings.Builder
	for key, child := range t.All() {
		if child.Empty() && child.HasValue() {
			writeKey(&b, key, child.Value(), sep)
		}
	}
	for key, child := range t.All() {
		if child.Empty() && child.HasValue() {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("[" + key + "]\n")
		for k, v := range child.All() {
			writeKey(&b, k, v.Value(), sep)
		}
	}
	return b.String(), s, nil
}

func writeKey(b *strings.Builder, key, value, sep string) {
	b.WriteString(key)
	b.WriteString(sep)
	b.WriteString(value)
	b.WriteByte('\n')
}

// validate checks that t reads back unchanged.
func validate(t *ptree.Tree) error {
	if t.HasValue() {
		return writeErr("", "root node cannot hold a value")
	}
	if err := checkUnique(t, ""); err != nil {
		return err
	}
	for key, section := range t.All() {
		if section.Empty() && section.HasValue() {
			if err := checkKey(key, section.Value(), key); err != nil {
				return err
			}
			continue
		}
		if err := checkSectionName(key); err != nil {
			return err
		}
		if section.HasValue() {
			return writeErr(key, "section cannot hold both a value and keys")
		}
		if err := checkUnique(section, key+"."); err != nil {
			return err
		}
		for k, v := range section.All() {
			path := key + "." + k
			if !v.Empty() {
				return writeErr(path, "tree is too deep for INI")
			}
			if err := checkKey(k, v.Value(), path); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkUnique(t *ptree.Tree, prefix string) error {
	for key := range t.All() {
		if t.Count(key) > 1 {
			return writeErr(prefix+key, "duplicate key")
		}
	}
	return nil
}

func checkSectionName(name string) error {
	switch {
	case strings.TrimSpace(name) != name || name == "":
		return writeErr(name, "section name is empty or has surrounding blanks")
	case strings.ContainsAny(name, "]\n\r"):
		return writeErr(name, "section name contains ']' or a line break")
	}
	return nil
}

func checkKey(key, value, path string) error {
	switch {
	case key == "" || strings.TrimSpace(key) != key:
		return writeErr(path, "key is empty or has surrounding blanks")
	case strings.ContainsAny(key, "=\n\r"):
		return writeErr(path, "key contains '=' or a line break")
	case strings.ContainsAny(key[:1], "[;#"):
		return writeErr(path, "key starts with '[', ';' or '#'")
	case strings.TrimSpace(value) != value:
		return writeErr(path, "value has surrounding blanks")
	case strings.ContainsAny(value, ";\n\r"):
		return writeErr(path, "value contains ';' or a line break")
	}
	return nil
}
