package regfmt

import (
	"fmt"
	"unicode/utf8"

	"github.com/joshuapare/ptreekit/pkg/types"
)

// Limits bounds what WriteKey will store.
type Limits struct {
	// MaxKeyNameLen is the maximum key name length in characters.
	MaxKeyNameLen int

	// MaxValueNameLen is the maximum value name length in characters.
	MaxValueNameLen int

	// MaxValueSize is the maximum size of a value's data in bytes.
	MaxValueSize int

	// MaxValues is the maximum number of values per key.
	MaxValues int

	// MaxTreeDepth is the maximum key nesting below the written root.
	MaxTreeDepth int
}

// DefaultLimits returns the documented Windows registry limits.
func DefaultLimits() Limits {
	return Limits{
		MaxKeyNameLen:   255,
		MaxValueNameLen: 16383,
		MaxValueSize:    1 << 20,
		MaxValues:       16384,
		MaxTreeDepth:    512,
	}
}

// StrictLimits returns conservative limits for untrusted input.
func StrictLimits() Limits {
	return Limits{
		MaxKeyNameLen:   128,
		MaxValueNameLen: 255,
		MaxValueSize:    64 << 10,
		MaxValues:       1024,
		MaxTreeDepth:    128,
	}
}

func limitErr(path, limit string, current, maximum int) error {
	return &types.WriteError{
		Format: FormatName,
		Path:   path,
		Msg:    fmt.Sprintf("registry limit exceeded: %s is %d (max %d)", limit, current, maximum),
	}
}

func (l Limits) checkKeyName(path, name string) error {
	if n := utf8.RuneCountInString(name); n > l.MaxKeyNameLen {
		return limitErr(path, "MaxKeyNameLen", n, l.MaxKeyNameLen)
	}
	return nil
}

func (l Limits) checkValue(path string, v Value) error {
	if n := utf8.RuneCountInString(v.Name); n > l.MaxValueNameLen {
		return limitErr(path, "MaxValueNameLen", n, l.MaxValueNameLen)
	}
	if len(v.Data) > l.MaxValueSize {
		return limitErr(path, "MaxValueSize", len(v.Data), l.MaxValueSize)
	}
	return nil
}
