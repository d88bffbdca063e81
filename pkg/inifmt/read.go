package inifmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Read parses INI text from r into t. On error t is left unchanged.
func Read(r io.Reader, t *ptree.Tree, opts ...Option) error {
	o := newReadOptions(opts)
	text, err := textio.ReadAll(r, o.encoding)
	if err != nil {
		return &types.ParseError{Format: FormatName, Source: sourceName(o.source), Msg: "read failed", Err: err}
	}
	return parseInto(text, t, o)
}

// ReadString parses INI text from s into t.
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
	src := sourceName(o.source)
	return ptree.ReadInto(t, func(scratch *ptree.Tree) error {
		return parse(text, scratch, src)
	})
}

func parse(text string, root *ptree.Tree, src string) error {
	errorf := func(line int, format string, args ...any) error {
		return &types.ParseError{Format: FormatName, Source: src, Line: line, Msg: fmt.Sprintf(format, args...)}
	}

	section := root
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}

		if line[0] == '[' {
			end := strings.IndexByte(line, ']')
			if end < 0 {
				return errorf(lineNo, "unmatched '['")
			}
			if rest := strings.TrimSpace(line[end+1:]); rest != "" && rest[0] != ';' && rest[0] != '#' {
				return errorf(lineNo, "unexpected text after section name")
			}
			name := strings.TrimSpace(line[1:end])
			if name == "" {
				return errorf(lineNo, "empty section name")
			}
			section = root.Find(name)
			switch {
			case section == nil:
				section = root.Append(name)
			case section.HasValue():
				return errorf(lineNo, "section %q conflicts with a key of the same name", name)
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return errorf(lineNo, "'=' character not found in line")
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return errorf(lineNo, "key expected")
		}
		if semi := strings.IndexByte(value, ';'); semi >= 0 {
			value = value[:semi]
		}
		if section.Find(key) != nil {
			return errorf(lineNo, "duplicate key %q", key)
		}
		section.Append(key).SetValue(strings.TrimSpace(value))
	}
	return nil
}
