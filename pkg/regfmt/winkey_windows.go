//go:build windows

package regfmt

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/ptreekit/pkg/types"
)

// WinKey is an open key of the live Windows registry. Close it when done.
type WinKey struct {
	k      registry.Key
	access uint32
}

// OpenKey opens path below one of the predefined roots, for example
// registry.CURRENT_USER. Subkeys are opened with the same access.
func OpenKey(root registry.Key, path string, access uint32) (*WinKey, error) {
	k, err := registry.OpenKey(root, path, access)
	if err != nil {
		return nil, fmt.Errorf("regfmt: open %q: %w", path, err)
	}
	return &WinKey{k: k, access: access}, nil
}

// CreateKey opens path below root, creating missing keys on the way.
func CreateKey(root registry.Key, path string, access uint32) (*WinKey, error) {
	k, _, err := registry.CreateKey(root, path, access)
	if err != nil {
		return nil, fmt.Errorf("regfmt: create %q: %w", path, err)
	}
	return &WinKey{k: k, access: access}, nil
}

// Close releases the key handle.
func (w *WinKey) Close() error { return w.k.Close() }

// SubKeys returns the names of the direct subkeys.
func (w *WinKey) SubKeys() ([]string, error) {
	return w.k.ReadSubKeyNames(-1)
}

// OpenSubKey opens the direct subkey name.
func (w *WinKey) OpenSubKey(name string) (Key, error) {
	k, err := registry.OpenKey(w.k, name, w.access)
	if errors.Is(err, registry.ErrNotExist) {
		return nil, &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("subkey %q not found", name), Err: err}
	}
	if err != nil {
		return nil, err
	}
	return &WinKey{k: k, access: w.access}, nil
}

// Values returns every value of the key with its raw data.
func (w *WinKey) Values() ([]Value, error) {
	names, err := w.k.ReadValueNames(-1)
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, len(names))
	for _, name := range names {
		n, _, err := w.k.GetValue(name, nil)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", name, err)
		}
		buf := make([]byte, n)
		n, typ, err := w.k.GetValue(name, buf)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", name, err)
		}
		out = append(out, Value{Name: name, Type: types.RegType(typ), Data: buf[:n]})
	}
	return out, nil
}

// CreateSubKey opens name, creating it when missing.
func (w *WinKey) CreateSubKey(name string) (WritableKey, error) {
	k, _, err := registry.CreateKey(w.k, name, w.access)
	if err != nil {
		return nil, err
	}
	return &WinKey{k: k, access: w.access}, nil
}

// SetValue stores v. REG_NONE cannot be written through this API.
func (w *WinKey) SetValue(v Value) error {
	switch v.Type {
	case types.REG_SZ, types.REG_EXPAND_SZ:
		s, err := DecodeValue(v.Type, v.Data)
		if err != nil {
			return err
		}
		if v.Type == types.REG_EXPAND_SZ {
			return w.k.SetExpandStringValue(v.Name, s)
		}
		return w.k.SetStringValue(v.Name, s)
	case types.REG_DWORD:
		if len(v.Data) != 4 {
			return &types.DataError{Value: fmt.Sprintf("% x", v.Data), Type: v.Type.String()}
		}
		return w.k.SetDWordValue(v.Name, binary.LittleEndian.Uint32(v.Data))
	case types.REG_QWORD:
		if len(v.Data) != 8 {
			return &types.DataError{Value: fmt.Sprintf("% x", v.Data), Type: v.Type.String()}
		}
		return w.k.SetQWordValue(v.Name, binary.LittleEndian.Uint64(v.Data))
	case types.REG_BINARY:
		return w.k.SetBinaryValue(v.Name, v.Data)
	}
	return &types.Error{Kind: types.ErrKindUnsupported, Msg: fmt.Sprintf("cannot store %s values", v.Type)}
}
