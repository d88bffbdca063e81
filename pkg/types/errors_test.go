package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	var err error = &PathError{Path: "a.b"}
	assert.True(t, errors.Is(err, ErrPath))
	assert.False(t, errors.Is(err, ErrData))
	assert.Equal(t, "no such node (a.b)", err.Error())

	err = fmt.Errorf("lookup: %w", &DataError{Value: "abc", Type: "int"})
	assert.True(t, errors.Is(err, ErrData))
	var de *DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "abc", de.Value)

	err = &WriteError{Format: "ini", Path: "a.b.c", Msg: "ptree is too deep"}
	assert.True(t, errors.Is(err, ErrWrite))
	assert.Equal(t, "ini: ptree is too deep (at a.b.c)", err.Error())
}

func TestParseError(t *testing.T) {
	err := &ParseError{Format: "json", Line: 3, Msg: "expected '}'"}
	assert.Equal(t, "json: stream(3): expected '}'", err.Error())
	assert.True(t, errors.Is(err, ErrParse))
	assert.False(t, errors.Is(err, ErrNotFound))

	missing := &ParseError{Format: "info", Source: "x.info", Msg: "cannot open file", Err: &Error{Kind: ErrKindNotFound, Msg: "not found"}}
	assert.True(t, errors.Is(missing, ErrNotFound))
	assert.True(t, errors.Is(missing, ErrParse))
	assert.Equal(t, "info: x.info: cannot open file: not found", missing.Error())
}

func TestErrorIsByKind(t *testing.T) {
	e := &Error{Kind: ErrKindUnsupported, Msg: "unsupported data type"}
	assert.True(t, errors.Is(e, ErrUnsupported))
	assert.False(t, errors.Is(e, ErrNotFound))
	assert.Equal(t, "unsupported", ErrKindUnsupported.String())
}
