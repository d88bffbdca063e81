package yamlfmt

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Write renders t as YAML. A nil s uses DefaultWriterSettings.
// Nodes holding both a value and children, and mappings with repeated
// keys, are rejected with a *types.WriteError.
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
	if t.Empty() && !t.HasValue() {
		return "{}\n", s, nil
	}
	v, err := plain(t, ptree.Path{})
	if err != nil {
		return "", s, err
	}
	indent := s.Indent
	if indent <= 0 {
		indent = 2
	}
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(indent), yaml.IndentSequence(s.IndentSequence))
	if err != nil {
		return "", s, &types.WriteError{Format: FormatName, Msg: err.Error()}
	}
	return string(data), s, nil
}

// plain converts n into strings, []any and yaml.MapSlice.
func plain(n *ptree.Tree, p ptree.Path) (any, error) {
	if n.Empty() {
		return n.Value(), nil
	}
	if n.HasValue() {
		return nil, &types.WriteError{Format: FormatName, Path: p.String(), Msg: "node has both a value and children"}
	}

	if n.IsList() {
		items := make([]any, 0, n.Len())
		for key, child := range n.All() {
			v, err := plain(child, p.Child(key))
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}

	m := make(yaml.MapSlice, 0, n.Len())
	for key, child := range n.All() {
		cp := p.Child(key)
		if n.Count(key) > 1 {
			return nil, &types.WriteError{Format: FormatName, Path: cp.String(), Msg: "duplicate key"}
		}
		v, err := plain(child, cp)
		if err != nil {
			return nil, err
		}
		m = append(m, yaml.MapItem{Key: key, Value: v})
	}
	return m, nil
}
