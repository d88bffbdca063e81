package types

import (
	"fmt"
	"strconv"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindPath        ErrKind = iota // path does not resolve to a node
	ErrKindData                       // value present but cannot be decoded
	ErrKindParse                      // malformed input text
	ErrKindWrite                      // tree cannot be represented in the target format
	ErrKindUnsupported                // valid feature we don't support
	ErrKindNotFound                   // missing file or include
)

// String returns a short lower-case name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindPath:
		return "path"
	case ErrKindData:
		return "data"
	case ErrKindParse:
		return "parse"
	case ErrKindWrite:
		return "write"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindNotFound:
		return "not found"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, types.ErrParse) matches every parse failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	// ErrPath matches every *PathError.
	ErrPath = &Error{Kind: ErrKindPath, Msg: "no such node"}
	// ErrData matches every *DataError.
	ErrData = &Error{Kind: ErrKindData, Msg: "conversion of data failed"}
	// ErrParse matches every *ParseError.
	ErrParse = &Error{Kind: ErrKindParse, Msg: "parse error"}
	// ErrWrite matches every *WriteError.
	ErrWrite = &Error{Kind: ErrKindWrite, Msg: "write error"}
	// ErrUnsupported indicates a recognized but unsupported feature/variant.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported"}
	// ErrNotFound indicates a missing file or include target.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
)

// -----------------------------------------------------------------------------
// Concrete error types
// -----------------------------------------------------------------------------

// PathError reports a path that does not resolve to an existing node.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("no such node (%s)", e.Path)
}

// Is matches ErrPath.
func (e *PathError) Is(target error) bool { return target == ErrPath }

// DataError reports a value that exists but cannot be decoded as Type.
type DataError struct {
	Value string // raw node value
	Type  string // requested Go type
	Err   error  // optional codec failure
}

func (e *DataError) Error() string {
	msg := fmt.Sprintf("conversion of data %q to type %s failed", e.Value, e.Type)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *DataError) Unwrap() error { return e.Err }

// Is matches ErrData.
func (e *DataError) Is(target error) bool { return target == ErrData }

// StreamSource is the Source of a ParseError raised while reading from an
// unnamed reader or string.
const StreamSource = "stream"

// ParseError reports malformed input. Line is 1-based; 0 means the error
// is not tied to a line (e.g. the file could not be opened).
type ParseError struct {
	Format string // "info", "ini", "json", "xml", "yaml", "reg"
	Source string // file name or StreamSource
	Line   int
	Msg    string
	Err    error // optional underlying cause (fs.ErrNotExist, ...)
}

func (e *ParseError) Error() string {
	src := e.Source
	if src == "" {
		src = StreamSource
	}
	var msg string
	if e.Line > 0 {
		msg = fmt.Sprintf("%s(%d): %s", src, e.Line, e.Msg)
	} else {
		msg = fmt.Sprintf("%s: %s", src, e.Msg)
	}
	if e.Format != "" {
		msg = e.Format + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse. Missing-file causes are matched through Unwrap.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// WriteError reports a tree that violates the target format's structure.
type WriteError struct {
	Format string
	Path   string // offending node, "" for the root
	Msg    string
}

func (e *WriteError) Error() string {
	msg := e.Msg
	if e.Path != "" {
		msg = fmt.Sprintf("%s (at %s)", e.Msg, e.Path)
	}
	if e.Format != "" {
		return e.Format + ": " + msg
	}
	return msg
}

// Is matches ErrWrite.
func (e *WriteError) Is(target error) bool { return target == ErrWrite }
