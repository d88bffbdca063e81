package textio

import (
	"errors"
	"io"
	"io/fs"

	"github.com/joshuapare/ptreekit/internal/mmfile"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// ReadAll reads r to the end and decodes it.
func ReadAll(r io.Reader, enc Encoding) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Decode(data, enc)
}

// Load reads and decodes the named file. Failures are reported as a
// *types.ParseError for format; a missing file additionally matches
// types.ErrNotFound and fs.ErrNotExist.
func Load(format, name string, enc Encoding) (string, error) {
	var text string
	err := mmfile.With(name, func(data []byte) error {
		var derr error
		text, derr = Decode(data, enc)
		return derr
	})
	if err != nil {
		return "", OpenError(format, name, err)
	}
	return text, nil
}

// OpenError wraps a failure to open or decode name.
func OpenError(format, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		err = &types.Error{Kind: types.ErrKindNotFound, Msg: "not found", Err: err}
	}
	return &types.ParseError{Format: format, Source: name, Msg: "cannot open file", Err: err}
}

// IsNotFound reports whether err came from Load on a missing file.
func IsNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}
