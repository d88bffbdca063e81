package regfmt

import (
	"io"

	"github.com/joshuapare/ptreekit/pkg/types"
)

// Value is one registry value. Name is empty for the default value.
type Value struct {
	Name string
	Type types.RegType
	Data []byte
}

// Key is a readable registry key. Keys returned by OpenSubKey are closed
// after use when they implement io.Closer.
type Key interface {
	SubKeys() ([]string, error)
	OpenSubKey(name string) (Key, error)
	Values() ([]Value, error)
}

// WritableKey is a registry key that can be populated.
type WritableKey interface {
	Key
	// CreateSubKey opens name, creating it when missing.
	CreateSubKey(name string) (WritableKey, error)
	// SetValue creates or replaces the value named v.Name.
	SetValue(v Value) error
}

func closeKey(k any) error {
	if c, ok := k.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
