package ptree

import (
	"encoding"
	"fmt"
	"reflect"
	"sync"

	"github.com/joshuapare/ptreekit/pkg/types"
)

// Codec converts between a node's text value and a T.
type Codec[T any] interface {
	Encode(v T) (string, error)
	Decode(s string) (T, error)
}

// CaseAware is implemented by registered codecs whose decoding depends on
// the tree's case mode. ForCase must return a Codec of the same type
// parameter, specialized for keys.
type CaseAware interface {
	ForCase(keys KeyComparator) any
}

var registry = struct {
	sync.RWMutex
	codecs map[reflect.Type]any
}{codecs: make(map[reflect.Type]any)}

// RegisterCodec makes c the codec for T, replacing any earlier one
// (including the built-ins).
func RegisterCodec[T any](c Codec[T]) {
	registry.Lock()
	defer registry.Unlock()
	registry.codecs[reflect.TypeFor[T]()] = c
}

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// CodecFor returns the codec used for T by trees comparing keys with keys.
// Types without a registered codec fall back to encoding.TextMarshaler and
// encoding.TextUnmarshaler.
func CodecFor[T any](keys KeyComparator) (Codec[T], error) {
	typ := reflect.TypeFor[T]()

	registry.RLock()
	c, ok := registry.codecs[typ]
	registry.RUnlock()

	if ok {
		if ca, isCA := c.(CaseAware); isCA {
			c = ca.ForCase(keys)
		}
		if typed, isTyped := c.(Codec[T]); isTyped {
			return typed, nil
		}
		return nil, &types.Error{
			Kind: types.ErrKindUnsupported,
			Msg:  fmt.Sprintf("codec registered for %s has wrong type %T", typ, c),
		}
	}

	if typ.Kind() != reflect.Pointer {
		ptr := reflect.PointerTo(typ)
		if (typ.Implements(textMarshalerType) || ptr.Implements(textMarshalerType)) &&
			ptr.Implements(textUnmarshalerType) {
			return textCodec[T]{}, nil
		}
	}
	return nil, &types.Error{Kind: types.ErrKindUnsupported, Msg: "no codec for type " + typ.String()}
}

// textCodec adapts encoding.TextMarshaler / TextUnmarshaler.
type textCodec[T any] struct{}

func (textCodec[T]) Encode(v T) (string, error) {
	m, ok := any(v).(encoding.TextMarshaler)
	if !ok {
		m = any(&v).(encoding.TextMarshaler)
	}
	b, err := m.MarshalText()
	return string(b), err
}

func (textCodec[T]) Decode(s string) (T, error) {
	var v T
	err := any(&v).(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
	return v, err
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func decodeText[T any](keys KeyComparator, s string) (T, error) {
	var zero T
	c, err := CodecFor[T](keys)
	if err != nil {
		return zero, &types.DataError{Value: s, Type: typeName[T](), Err: err}
	}
	v, err := c.Decode(s)
	if err != nil {
		return zero, &types.DataError{Value: s, Type: typeName[T](), Err: err}
	}
	return v, nil
}

func encodeText[T any](keys KeyComparator, v T) (string, error) {
	c, err := CodecFor[T](keys)
	if err != nil {
		return "", &types.DataError{Value: fmt.Sprint(v), Type: typeName[T](), Err: err}
	}
	s, err := c.Encode(v)
	if err != nil {
		return "", &types.DataError{Value: fmt.Sprint(v), Type: typeName[T](), Err: err}
	}
	return s, nil
}

// -----------------------------------------------------------------------------
// Typed access
// -----------------------------------------------------------------------------

// Value decodes t's own value as T.
func Value[T any](t *Tree) (T, error) {
	return decodeText[T](t.comparator(), t.value)
}

// SetValue encodes v and stores it as t's own value. On error t is unchanged.
func SetValue[T any](t *Tree, v T) error {
	s, err := encodeText(t.comparator(), v)
	if err != nil {
		return err
	}
	t.value = s
	return nil
}

// Get decodes the value at path as T. A missing segment yields a
// *types.PathError, an undecodable value a *types.DataError.
func Get[T any](t *Tree, path string) (T, error) {
	return GetPath[T](t, t.parsePath(path))
}

// GetPath is Get for a parsed path.
func GetPath[T any](t *Tree, p Path) (T, error) {
	n, err := t.GetChildPath(p)
	if err != nil {
		var zero T
		return zero, err
	}
	return Value[T](n)
}

// GetOr is Get returning def on any error.
func GetOr[T any](t *Tree, path string, def T) T {
	if v, err := Get[T](t, path); err == nil {
		return v
	}
	return def
}

// GetOptional is Get reporting failure as false instead of an error.
func GetOptional[T any](t *Tree, path string) (T, bool) {
	v, err := Get[T](t, path)
	return v, err == nil
}

// Put encodes v and stores it at path with PutValue semantics.
// Nothing is modified when encoding fails.
func Put[T any](t *Tree, path string, v T) (*Tree, error) {
	return PutPath(t, t.parsePath(path), v)
}

// PutPath is Put for a parsed path.
func PutPath[T any](t *Tree, p Path, v T) (*Tree, error) {
	s, err := encodeText(t.comparator(), v)
	if err != nil {
		return nil, err
	}
	return t.PutValuePath(p, s), nil
}

// Add encodes v and appends it at path with AddValue semantics.
func Add[T any](t *Tree, path string, v T) (*Tree, error) {
	return AddPath(t, t.parsePath(path), v)
}

// AddPath is Add for a parsed path.
func AddPath[T any](t *Tree, p Path, v T) (*Tree, error) {
	s, err := encodeText(t.comparator(), v)
	if err != nil {
		return nil, err
	}
	return t.AddValuePath(p, s), nil
}
