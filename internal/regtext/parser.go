package regtext

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// ReadRegFile parses the named file. A UTF-16LE or UTF-8 byte order mark
// selects the encoding; without one the file is read as UTF-8.
func ReadRegFile(name string) (*Document, error) {
	text, err := textio.Load(FormatName, name, textio.Auto)
	if err != nil {
		return nil, err
	}
	return Parse(text, name)
}

// ReadReg parses .reg text from r. source names the input in errors.
func ReadReg(r io.Reader, source string) (*Document, error) {
	text, err := textio.ReadAll(r, textio.Auto)
	if err != nil {
		return nil, &types.ParseError{Format: FormatName, Source: source, Msg: "read failed", Err: err}
	}
	return Parse(text, source)
}

type parser struct {
	source string
	line   int
}

func (p *parser) errorf(format string, args ...any) error {
	return &types.ParseError{Format: FormatName, Source: p.source, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// Parse parses decoded .reg text. The header must be the first non-blank
// line. Keys repeated in the file are merged.
func Parse(text, source string) (*Document, error) {
	if source == "" {
		source = types.StreamSource
	}
	p := &parser{source: source}
	doc := &Document{}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	seenHeader := false
	var cur *Key

	for i := 0; i < len(lines); i++ {
		p.line = i + 1
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		if !seenHeader {
			if line != Header && line != HeaderV4 {
				return nil, p.errorf("missing header %q", Header)
			}
			seenHeader = true
			continue
		}

		if strings.HasPrefix(line, keyOpen) {
			if !strings.HasSuffix(line, keyClose) {
				return nil, p.errorf("malformed key %q", line)
			}
			path := line[1 : len(line)-1]
			switch {
			case strings.HasPrefix(path, deletePrefix):
				return nil, p.errorf("key deletion is not supported")
			case strings.Trim(path, backslash) == "" && path != backslash:
				return nil, p.errorf("empty key path")
			}
			cur = doc.Key(path)
			continue
		}
		if cur == nil {
			return nil, p.errorf("value outside of any key")
		}

		// Hex data continues on the next line after a trailing backslash.
		for strings.HasSuffix(line, backslash) && i+1 < len(lines) {
			i++
			line = line[:len(line)-1] + strings.TrimSpace(lines[i])
		}
		v, err := p.parseValue(line)
		if err != nil {
			return nil, err
		}
		cur.Values = append(cur.Values, v)
	}
	if !seenHeader {
		p.line = len(lines)
		return nil, p.errorf("missing header %q", Header)
	}
	return doc, nil
}

func (p *parser) parseValue(line string) (Value, error) {
	var v Value
	var payload string
	switch {
	case strings.HasPrefix(line, defaultValuePrefix):
		payload = line[len(defaultValuePrefix):]
	case strings.HasPrefix(line, quote):
		end := findClosingQuote(line)
		if end < 0 {
			return v, p.errorf("unterminated value name")
		}
		v.Name = unescapeString(line[1:end])
		rest := strings.TrimSpace(line[end+1:])
		if !strings.HasPrefix(rest, "=") {
			return v, p.errorf("'=' expected after value name")
		}
		payload = rest[1:]
	default:
		return v, p.errorf("malformed value line")
	}

	payload = strings.TrimSpace(payload)
	var err error
	switch {
	case payload == deletePrefix:
		return v, p.errorf("value deletion is not supported")
	case strings.HasPrefix(payload, quote):
		if len(payload) < 2 || findClosingQuote(payload) != len(payload)-1 {
			return v, p.errorf("unterminated string")
		}
		v.Type = types.REG_SZ
		v.Data, err = encodeSZ(unescapeString(payload[1 : len(payload)-1]))
	case strings.HasPrefix(payload, dwordPrefix):
		var n uint64
		n, err = strconv.ParseUint(payload[len(dwordPrefix):], 16, 32)
		if err != nil {
			return v, p.errorf("invalid dword %q", payload)
		}
		v.Type = types.REG_DWORD
		v.Data = binary.LittleEndian.AppendUint32(nil, uint32(n))
	case strings.HasPrefix(payload, hexPrefix):
		v.Type = types.REG_BINARY
		v.Data, err = parseHexBytes(payload[len(hexPrefix):])
	case strings.HasPrefix(payload, hexTypedPrefix):
		typ, data, ok := strings.Cut(payload[len(hexTypedPrefix):], "):")
		if !ok {
			return v, p.errorf("malformed hex type in %q", payload)
		}
		n, perr := strconv.ParseUint(typ, 16, 32)
		if perr != nil {
			return v, p.errorf("invalid hex type %q", typ)
		}
		v.Type = types.RegType(n)
		v.Data, err = parseHexBytes(data)
	default:
		return v, p.errorf("unsupported value data %q", payload)
	}
	if err != nil {
		return v, p.errorf("%v", err)
	}
	if want := fixedSize(v.Type); want > 0 && len(v.Data) != want {
		return v, p.errorf("%s data must be %d bytes, got %d", v.Type, want, len(v.Data))
	}
	return v, nil
}

// fixedSize is the data length a type requires, or 0 when any length is valid.
func fixedSize(t types.RegType) int {
	switch t {
	case types.REG_DWORD, types.REG_DWORD_BE:
		return 4
	case types.REG_QWORD:
		return 8
	}
	return 0
}
