package ptree

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Char is a single character value. Its codec requires exactly one rune and
// does not trim whitespace, so " " decodes to ' '.
type Char rune

type signedInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsignedInt interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type float interface {
	~float32 | ~float64
}

func init() {
	RegisterCodec[int](intCodec[int]{})
	RegisterCodec[int8](intCodec[int8]{})
	RegisterCodec[int16](intCodec[int16]{})
	RegisterCodec[int32](intCodec[int32]{})
	RegisterCodec[int64](intCodec[int64]{})
	RegisterCodec[uint](uintCodec[uint]{})
	RegisterCodec[uint8](uintCodec[uint8]{})
	RegisterCodec[uint16](uintCodec[uint16]{})
	RegisterCodec[uint32](uintCodec[uint32]{})
	RegisterCodec[uint64](uintCodec[uint64]{})
	RegisterCodec[uintptr](uintCodec[uintptr]{})
	RegisterCodec[float32](floatCodec[float32]{})
	RegisterCodec[float64](floatCodec[float64]{})
	RegisterCodec[bool](boolCodec{})
	RegisterCodec[string](stringCodec{})
	RegisterCodec[Char](charCodec{})
	RegisterCodec[time.Duration](durationCodec{})
	RegisterCodec[time.Time](timeCodec{})
}

func bitsOf[T any]() int {
	return reflect.TypeFor[T]().Bits()
}

type intCodec[T signedInt] struct{}

func (intCodec[T]) Encode(v T) (string, error) {
	return strconv.FormatInt(int64(v), 10), nil
}

func (intCodec[T]) Decode(s string) (T, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, bitsOf[T]())
	return T(n), err
}

type uintCodec[T unsignedInt] struct{}

func (uintCodec[T]) Encode(v T) (string, error) {
	return strconv.FormatUint(uint64(v), 10), nil
}

func (uintCodec[T]) Decode(s string) (T, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, bitsOf[T]())
	return T(n), err
}

// floatCodec formats with the shortest representation that parses back to
// the same value.
type floatCodec[T float] struct{}

func (floatCodec[T]) Encode(v T) (string, error) {
	return strconv.FormatFloat(float64(v), 'g', -1, bitsOf[T]()), nil
}

func (floatCodec[T]) Decode(s string) (T, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), bitsOf[T]())
	return T(f), err
}

var errBadBool = errors.New("expected 0, 1, true or false")

// boolCodec compares the words "true" and "false" under the tree's case mode.
type boolCodec struct {
	keys KeyComparator
}

func (boolCodec) ForCase(keys KeyComparator) any { return boolCodec{keys: keys} }

func (boolCodec) Encode(v bool) (string, error) {
	return strconv.FormatBool(v), nil
}

func (c boolCodec) Decode(s string) (bool, error) {
	keys := c.keys
	if keys == nil {
		keys = CaseSensitiveKeys
	}
	s = strings.TrimSpace(s)
	switch {
	case s == "1" || keys.Equal(s, "true"):
		return true, nil
	case s == "0" || keys.Equal(s, "false"):
		return false, nil
	}
	return false, errBadBool
}

type stringCodec struct{}

func (stringCodec) Encode(v string) (string, error) { return v, nil }
func (stringCodec) Decode(s string) (string, error) { return s, nil }

var errNotOneChar = errors.New("expected exactly one character")

type charCodec struct{}

func (charCodec) Encode(v Char) (string, error) {
	if !utf8.ValidRune(rune(v)) {
		return "", errNotOneChar
	}
	return string(rune(v)), nil
}

func (charCodec) Decode(s string) (Char, error) {
	r, n := utf8.DecodeRuneInString(s)
	if n != len(s) || (r == utf8.RuneError && n <= 1) {
		return 0, errNotOneChar
	}
	return Char(r), nil
}

// durationCodec accepts anything cast understands: "1h30m", or a bare
// number of nanoseconds.
type durationCodec struct{}

func (durationCodec) Encode(v time.Duration) (string, error) { return v.String(), nil }

func (durationCodec) Decode(s string) (time.Duration, error) {
	return cast.ToDurationE(strings.TrimSpace(s))
}

// timeCodec encodes RFC 3339 with nanoseconds and decodes the layouts cast
// recognizes.
type timeCodec struct{}

func (timeCodec) Encode(v time.Time) (string, error) { return v.Format(time.RFC3339Nano), nil }

func (timeCodec) Decode(s string) (time.Time, error) {
	return cast.ToTimeE(strings.TrimSpace(s))
}
