package textio

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/ptreekit/pkg/types"
)

// Encoding names a source character encoding.
type Encoding string

const (
	// Auto sniffs a UTF-8 or UTF-16 byte order mark and falls back to UTF-8.
	Auto        Encoding = ""
	UTF8        Encoding = "UTF-8"
	UTF16LE     Encoding = "UTF-16LE"
	UTF16BE     Encoding = "UTF-16BE"
	Windows1252 Encoding = "WINDOWS-1252"
)

// ParseEncoding accepts the constant names case-insensitively, plus the
// common aliases "utf8", "utf16le", "utf16be" and "cp1252".
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToUpper(strings.ReplaceAll(s, "_", "-")) {
	case "", "AUTO":
		return Auto, nil
	case "UTF-8", "UTF8":
		return UTF8, nil
	case "UTF-16LE", "UTF16LE", "UTF-16":
		return UTF16LE, nil
	case "UTF-16BE", "UTF16BE":
		return UTF16BE, nil
	case "WINDOWS-1252", "CP1252":
		return Windows1252, nil
	}
	return "", &types.Error{Kind: types.ErrKindUnsupported, Msg: fmt.Sprintf("unsupported encoding %q", s)}
}

func (e Encoding) codec() (encoding.Encoding, error) {
	switch e {
	case Auto, UTF8:
		return unicode.UTF8, nil
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case Windows1252:
		return charmap.Windows1252, nil
	}
	return nil, &types.Error{Kind: types.ErrKindUnsupported, Msg: fmt.Sprintf("unsupported encoding %q", string(e))}
}

// Decode converts data in enc to UTF-8 text. A byte order mark always wins
// over enc and is stripped.
func Decode(data []byte, enc Encoding) (string, error) {
	c, err := enc.codec()
	if err != nil {
		return "", err
	}
	dec := unicode.BOMOverride(c.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("textio: decode %s: %w", enc, err)
	}
	return string(out), nil
}

// Encode converts UTF-8 text to enc, prefixed with a byte order mark when
// bom is set and enc is a Unicode encoding.
func Encode(s string, enc Encoding, bom bool) ([]byte, error) {
	var c encoding.Encoding
	switch {
	case bom && (enc == Auto || enc == UTF8):
		c = unicode.UTF8BOM
	case bom && enc == UTF16LE:
		c = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case bom && enc == UTF16BE:
		c = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		var err error
		if c, err = enc.codec(); err != nil {
			return nil, err
		}
	}
	out, _, err := transform.Bytes(c.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("textio: encode %s: %w", enc, err)
	}
	return out, nil
}
