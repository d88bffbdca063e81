package yamlfmt

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Read parses YAML from r into t. On error t is left unchanged.
func Read(r io.Reader, t *ptree.Tree, opts ...Option) error {
	o := newReadOptions(opts)
	text, err := textio.ReadAll(r, o.encoding)
	if err != nil {
		return &types.ParseError{Format: FormatName, Source: sourceName(o.source), Msg: "read failed", Err: err}
	}
	return parseInto(text, t, o)
}

// ReadString parses YAML from s into t.
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
	p := &parser{
		source:    sourceName(o.source),
		anchors:   make(map[string]ast.Node),
		expanding: make(map[string]bool),
	}
	return ptree.ReadInto(t, func(scratch *ptree.Tree) error {
		return p.parse(text, scratch)
	})
}

// maxNodes bounds the number of nodes a document may expand to once
// aliases are resolved.
const maxNodes = 1 << 20

type parser struct {
	source    string
	anchors   map[string]ast.Node
	expanding map[string]bool
	nodes     int
}

func lineOf(tk *token.Token) int {
	if tk == nil || tk.Position == nil {
		return 0
	}
	return tk.Position.Line
}

func (p *parser) errorAt(tk *token.Token, format string, args ...any) error {
	return &types.ParseError{Format: FormatName, Source: p.source, Line: lineOf(tk), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse(text string, root *ptree.Tree) error {
	f, err := yamlparser.ParseBytes([]byte(text), 0)
	if err != nil {
		var yerr yaml.Error
		if errors.As(err, &yerr) {
			return p.errorAt(yerr.GetToken(), "%s", yerr.GetMessage())
		}
		return &types.ParseError{Format: FormatName, Source: p.source, Msg: "syntax error", Err: err}
	}

	p.nodes = 0
	seen := false
	for _, doc := range f.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}
		if seen {
			tk := doc.Start
			if tk == nil {
				tk = doc.Body.GetToken()
			}
			return p.errorAt(tk, "multiple documents are not supported")
		}
		seen = true
		if err := p.fill(root, doc.Body); err != nil {
			return err
		}
	}
	return nil
}

// fill stores node into n.
func (p *parser) fill(n *ptree.Tree, node ast.Node) error {
	if p.nodes++; p.nodes > maxNodes {
		return p.errorAt(node.GetToken(), "document expands to more than %d nodes", maxNodes)
	}
	switch v := node.(type) {
	case *ast.MappingNode:
		for _, mv := range v.Values {
			if err := p.pair(n, mv); err != nil {
				return err
			}
		}
	case *ast.MappingValueNode:
		return p.pair(n, v)
	case *ast.SequenceNode:
		for _, item := range v.Values {
			if err := p.fill(n.Append(""), item); err != nil {
				return err
			}
		}
	case *ast.AnchorNode:
		name := v.Name.GetToken().Value
		p.anchors[name] = v.Value
		return p.expand(n, name, v.Value)
	case *ast.AliasNode:
		name := v.Value.GetToken().Value
		target, ok := p.anchors[name]
		if !ok {
			return p.errorAt(v.GetToken(), "unknown alias %q", name)
		}
		if p.expanding[name] {
			return p.errorAt(v.GetToken(), "recursive alias %q", name)
		}
		return p.expand(n, name, target)
	case *ast.TagNode:
		return p.fill(n, v.Value)
	case *ast.StringNode:
		n.SetValue(v.Value)
	case *ast.LiteralNode:
		n.SetValue(v.Value.Value)
	case *ast.NullNode, *ast.CommentGroupNode:
	default:
		// Numbers, booleans, infinities and NaN keep their source text.
		n.SetValue(node.GetToken().Value)
	}
	return nil
}

// expand fills the value of anchor name into n. An alias to name met
// while its value is being filled is recursive.
func (p *parser) expand(n *ptree.Tree, name string, value ast.Node) error {
	p.expanding[name] = true
	defer delete(p.expanding, name)
	return p.fill(n, value)
}

func (p *parser) pair(n *ptree.Tree, mv *ast.MappingValueNode) error {
	if _, ok := ast.Node(mv.Key).(*ast.MergeKeyNode); ok {
		return p.merge(n, mv.Value)
	}
	return p.fill(n.Append(keyText(mv.Key)), mv.Value)
}

// merge copies the entries of a "<<" value into n.
func (p *parser) merge(n *ptree.Tree, value ast.Node) error {
	if seq, ok := value.(*ast.SequenceNode); ok {
		for _, item := range seq.Values {
			if err := p.fill(n, item); err != nil {
				return err
			}
		}
		return nil
	}
	return p.fill(n, value)
}

func keyText(k ast.Node) string {
	switch k := k.(type) {
	case *ast.StringNode:
		return k.Value
	case *ast.MappingKeyNode:
		return keyText(k.Value)
	case *ast.NullNode:
		return ""
	}
	return k.GetToken().Value
}
