package regtext

import "github.com/joshuapare/ptreekit/pkg/types"

// Value is one value of a key. Name is empty for the default value (@).
type Value struct {
	Name string
	Type types.RegType
	Data []byte
}

// Key is one [section]: a backslash separated path and its values in
// file order.
type Key struct {
	Path   string
	Values []Value
}

// Document is the content of a .reg file.
type Document struct {
	Keys []*Key
}

// Key returns the section for path, appending a new one when the document
// has none. Paths compare case-insensitively.
func (d *Document) Key(path string) *Key {
	for _, k := range d.Keys {
		if equalFold(k.Path, path) {
			return k
		}
	}
	k := &Key{Path: path}
	d.Keys = append(d.Keys, k)
	return k
}
