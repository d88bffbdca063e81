package regfmt

import (
	"io"
	"strings"

	"github.com/joshuapare/ptreekit/internal/regtext"
	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Read parses a .reg export from r into t. Every [key] becomes a node at
// its full path below the root, so an export of HKEY_CURRENT_USER\Software
// yields the nodes HKEY_CURRENT_USER and HKEY_CURRENT_USER\Software.
// On error t is left unchanged.
func Read(r io.Reader, t *ptree.Tree, opts ...Option) error {
	o := newReadOptions(opts)
	doc, err := regtext.ReadReg(r, o.source)
	if err != nil {
		return err
	}
	return ReadKey(documentKey(doc), t)
}

// ReadString parses .reg text from s into t.
func ReadString(s string, t *ptree.Tree, opts ...Option) error {
	o := newReadOptions(opts)
	doc, err := regtext.Parse(s, o.source)
	if err != nil {
		return err
	}
	return ReadKey(documentKey(doc), t)
}

// ReadFile parses the named .reg file into t.
func ReadFile(name string, t *ptree.Tree, opts ...Option) error {
	doc, err := regtext.ReadRegFile(name)
	if err != nil {
		return err
	}
	return ReadKey(documentKey(doc), t)
}

// ReadFileOr is ReadFile, except that a missing file makes t a copy of def
// instead of failing.
func ReadFileOr(name string, t, def *ptree.Tree, opts ...Option) error {
	err := ReadFile(name, t, opts...)
	if textio.IsNotFound(err) {
		t.Assign(def)
		return nil
	}
	return err
}

// Write renders t as a .reg export. A nil s uses DefaultWriterSettings.
// The root stands for no key at all, so it cannot hold values.
func Write(w io.Writer, t *ptree.Tree, s *WriterSettings) error {
	doc, s, err := render(t, s)
	if err != nil {
		return err
	}
	return regtext.WriteReg(w, doc, s.Encoding)
}

// WriteFile renders t and atomically replaces the named file.
func WriteFile(name string, t *ptree.Tree, s *WriterSettings) error {
	doc, s, err := render(t, s)
	if err != nil {
		return err
	}
	return regtext.WriteRegFile(name, doc, s.Encoding)
}

// String renders t as .reg text with default limits.
func String(t *ptree.Tree) (string, error) {
	doc, _, err := render(t, nil)
	if err != nil {
		return "", err
	}
	return regtext.Format(doc), nil
}

func render(t *ptree.Tree, s *WriterSettings) (*regtext.Document, *WriterSettings, error) {
	if s == nil {
		s = DefaultWriterSettings()
	}
	root := NewMemKey()
	if err := WriteKey(root, t, s.Limits); err != nil {
		return nil, s, err
	}
	if len(root.values) > 0 {
		return nil, s, &types.WriteError{Format: FormatName, Msg: "root node cannot hold registry values"}
	}
	return keyDocument(root), s, nil
}

// documentKey loads every section of doc into a MemKey tree.
func documentKey(doc *regtext.Document) *MemKey {
	root := NewMemKey()
	for _, dk := range doc.Keys {
		k := root
		for seg := range strings.SplitSeq(dk.Path, `\`) {
			if seg != "" {
				k = k.create(seg)
			}
		}
		for _, v := range dk.Values {
			_ = k.SetValue(Value(v))
		}
	}
	return root
}

// keyDocument lists every key below root in pre-order.
func keyDocument(root *MemKey) *regtext.Document {
	doc := &regtext.Document{}
	var visit func(k *MemKey, path string)
	visit = func(k *MemKey, path string) {
		if path != "" {
			dk := &regtext.Key{Path: path}
			for _, v := range k.values {
				dk.Values = append(dk.Values, regtext.Value(v))
			}
			doc.Keys = append(doc.Keys, dk)
		}
		for _, s := range k.subkeys {
			visit(s, joinKey(path, s.name))
		}
	}
	visit(root, "")
	return doc
}
