package regtext

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/ptreekit/pkg/ptree"
)

// equalFold compares key paths the way the registry does.
func equalFold(a, b string) bool {
	return ptree.CaseInsensitiveKeys.Equal(a, b)
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encodeSZ returns s as NUL-terminated UTF-16LE.
func encodeSZ(s string) ([]byte, error) {
	data, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return append(data, 0, 0), nil
}

// decodeSZ returns the text of NUL-terminated UTF-16LE data. ok is false
// when the data would not be reproduced by writing the text back as a
// quoted string.
func decodeSZ(data []byte) (s string, ok bool) {
	if len(data) < 2 || len(data)%2 != 0 {
		return "", false
	}
	out, err := utf16le.NewDecoder().Bytes(data[:len(data)-2])
	if err != nil {
		return "", false
	}
	s = string(out)
	if strings.ContainsAny(s, "\x00\r\n") {
		return "", false
	}
	back, err := encodeSZ(s)
	if err != nil || !bytes.Equal(back, data) {
		return "", false
	}
	return s, true
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, backslash, `\\`)
	return strings.ReplaceAll(s, quote, `\"`)
}

// unescapeString reverses escapeString. Other backslashes are kept.
func unescapeString(s string) string {
	if !strings.Contains(s, backslash) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// findClosingQuote returns the index of the quote closing the string that
// opens at line[0], skipping escaped quotes, or -1.
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// parseHexBytes parses comma separated hex bytes. Blanks and line
// continuations between bytes are ignored; a single digit is one byte.
func parseHexBytes(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)/3+1)
	for _, part := range strings.Split(s, ",") {
		part = strings.Trim(part, " \t\r\n\\")
		if part == "" {
			continue
		}
		if len(part) > 2 {
			return nil, errBadHex(part)
		}
		var b byte
		for i := 0; i < len(part); i++ {
			n := hexNibble(part[i])
			if n > 0xf {
				return nil, errBadHex(part)
			}
			b = b<<4 | n
		}
		out = append(out, b)
	}
	return out, nil
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0xff
}

type errBadHex string

func (e errBadHex) Error() string { return "invalid hex byte " + strconv.Quote(string(e)) }
