package regfmt

import (
	"fmt"
	"strings"

	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Reserved child keys. Registry key names cannot contain a backslash, so
// these never collide with a subkey.
const (
	ValuesKey = `\values`
	TypesKey  = `\types`
)

func joinKey(path, name string) string {
	if path == "" {
		return name
	}
	return path + `\` + name
}

// ReadKey replaces t with the content of k and its subkeys. On error t is
// left unchanged.
func ReadKey(k Key, t *ptree.Tree) error {
	return ptree.ReadInto(t, func(scratch *ptree.Tree) error {
		return readKey(k, scratch, "")
	})
}

func readKey(k Key, n *ptree.Tree, path string) error {
	values, err := k.Values()
	if err != nil {
		return fmt.Errorf("regfmt: read values of %q: %w", path, err)
	}

	var named, typeNames []ptree.Entry
	for _, v := range values {
		text, err := DecodeValue(v.Type, v.Data)
		if err != nil {
			return fmt.Errorf("regfmt: value %q of %q: %w", v.Name, path, err)
		}
		if v.Name == "" {
			n.SetValue(text)
			if v.Type != types.REG_SZ {
				typeNames = append(typeNames, ptree.Entry{Key: "", Tree: ptree.NewValue(v.Type.String())})
			}
			continue
		}
		named = append(named, ptree.Entry{Key: v.Name, Tree: ptree.NewValue(text)})
		typeNames = append(typeNames, ptree.Entry{Key: v.Name, Tree: ptree.NewValue(v.Type.String())})
	}
	if len(named) > 0 {
		vals := n.Append(ValuesKey)
		for _, e := range named {
			vals.PushBack(e.Key, e.Tree)
		}
	}
	if len(typeNames) > 0 {
		typs := n.Append(TypesKey)
		for _, e := range typeNames {
			typs.PushBack(e.Key, e.Tree)
		}
	}

	names, err := k.SubKeys()
	if err != nil {
		return fmt.Errorf("regfmt: list subkeys of %q: %w", path, err)
	}
	for _, name := range names {
		sub, err := k.OpenSubKey(name)
		if err != nil {
			return fmt.Errorf("regfmt: open %q: %w", joinKey(path, name), err)
		}
		err = readKey(sub, n.Append(name), joinKey(path, name))
		if cerr := closeKey(sub); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteKey stores t into k: values first, then subkeys in order. A nil
// limits uses DefaultLimits. Structural problems and limit violations are
// reported as *types.WriteError; k may be partially written by then.
func WriteKey(k WritableKey, t *ptree.Tree, limits *Limits) error {
	l := DefaultLimits()
	if limits != nil {
		l = *limits
	}
	w := &keyWriter{limits: l}
	return w.write(k, t, "", 0)
}

type keyWriter struct {
	limits Limits
}

func writeErr(path, format string, args ...any) error {
	return &types.WriteError{Format: FormatName, Path: path, Msg: fmt.Sprintf(format, args...)}
}

func (w *keyWriter) write(k WritableKey, n *ptree.Tree, path string, depth int) error {
	if depth > w.limits.MaxTreeDepth {
		return limitErr(path, "MaxTreeDepth", depth, w.limits.MaxTreeDepth)
	}
	values, err := w.values(n, path)
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := k.SetValue(v); err != nil {
			return fmt.Errorf("regfmt: set value %q of %q: %w", v.Name, path, err)
		}
	}

	for name, child := range n.All() {
		if name == ValuesKey || name == TypesKey {
			continue
		}
		sub := joinKey(path, name)
		if name == "" || strings.Contains(name, `\`) {
			return writeErr(sub, "invalid key name %q", name)
		}
		if err := w.limits.checkKeyName(sub, name); err != nil {
			return err
		}
		sk, err := k.CreateSubKey(name)
		if err != nil {
			return fmt.Errorf("regfmt: create %q: %w", sub, err)
		}
		err = w.write(sk, child, sub, depth+1)
		if cerr := closeKey(sk); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// values collects the registry values n describes.
func (w *keyWriter) values(n *ptree.Tree, path string) ([]Value, error) {
	typs := n.Find(TypesKey)
	if typs != nil && typs.HasValue() {
		return nil, writeErr(joinKey(path, TypesKey), "reserved node cannot hold a value")
	}
	typeOf := func(name string) (types.RegType, error) {
		if typs == nil {
			return types.REG_SZ, nil
		}
		tn := typs.Find(name)
		if tn == nil {
			return types.REG_SZ, nil
		}
		if !tn.Empty() {
			return 0, writeErr(joinKey(path, TypesKey), "type entry %q cannot have children", name)
		}
		typ, err := types.ParseRegType(tn.Value())
		if err != nil {
			return 0, writeErr(joinKey(path, TypesKey), "value %q: %v", name, err)
		}
		return typ, nil
	}
	encode := func(name, text string) (Value, error) {
		typ, err := typeOf(name)
		if err != nil {
			return Value{}, err
		}
		data, err := EncodeValue(typ, text)
		if err != nil {
			return Value{}, writeErr(path, "value %q: %v", name, err)
		}
		v := Value{Name: name, Type: typ, Data: data}
		return v, w.limits.checkValue(path, v)
	}

	var out []Value
	if n.HasValue() || (typs != nil && typs.Find("") != nil) {
		v, err := encode("", n.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if vals := n.Find(ValuesKey); vals != nil {
		if vals.HasValue() {
			return nil, writeErr(joinKey(path, ValuesKey), "reserved node cannot hold a value")
		}
		for name, vn := range vals.All() {
			if name == "" {
				return nil, writeErr(joinKey(path, ValuesKey), "named value with an empty name")
			}
			if !vn.Empty() {
				return nil, writeErr(joinKey(path, ValuesKey), "value %q cannot have children", name)
			}
			v, err := encode(name, vn.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	if len(out) > w.limits.MaxValues {
		return nil, limitErr(path, "MaxValues", len(out), w.limits.MaxValues)
	}
	return out, nil
}
