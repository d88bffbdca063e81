package regfmt

import (
	"fmt"
	"slices"

	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// MemKey is an in-memory registry key. Names compare case-insensitively,
// as in the registry; subkeys and values keep insertion order.
type MemKey struct {
	name    string
	subkeys []*MemKey
	values  []Value
}

// NewMemKey returns an empty root key.
func NewMemKey() *MemKey {
	return &MemKey{}
}

// Name returns the key's name; the root's is empty.
func (k *MemKey) Name() string { return k.name }

func sameName(a, b string) bool {
	return ptree.CaseInsensitiveKeys.Equal(a, b)
}

func (k *MemKey) find(name string) *MemKey {
	for _, s := range k.subkeys {
		if sameName(s.name, name) {
			return s
		}
	}
	return nil
}

// SubKeys returns the names of the direct subkeys.
func (k *MemKey) SubKeys() ([]string, error) {
	names := make([]string, len(k.subkeys))
	for i, s := range k.subkeys {
		names[i] = s.name
	}
	return names, nil
}

// OpenSubKey returns the direct subkey name.
func (k *MemKey) OpenSubKey(name string) (Key, error) {
	if s := k.find(name); s != nil {
		return s, nil
	}
	return nil, &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("subkey %q not found", name)}
}

// Values returns a copy of the key's values.
func (k *MemKey) Values() ([]Value, error) {
	return slices.Clone(k.values), nil
}

// CreateSubKey returns the subkey name, appending it when missing.
func (k *MemKey) CreateSubKey(name string) (WritableKey, error) {
	return k.create(name), nil
}

func (k *MemKey) create(name string) *MemKey {
	if s := k.find(name); s != nil {
		return s
	}
	s := &MemKey{name: name}
	k.subkeys = append(k.subkeys, s)
	return s
}

// SetValue replaces the value with the same name or appends v.
func (k *MemKey) SetValue(v Value) error {
	v.Data = slices.Clone(v.Data)
	for i := range k.values {
		if sameName(k.values[i].Name, v.Name) {
			k.values[i] = v
			return nil
		}
	}
	k.values = append(k.values, v)
	return nil
}
