package regfmt

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/ptreekit/pkg/types"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Supported reports whether DecodeValue and EncodeValue handle typ.
func Supported(typ types.RegType) bool {
	switch typ {
	case types.REG_NONE, types.REG_BINARY, types.REG_DWORD, types.REG_QWORD,
		types.REG_SZ, types.REG_EXPAND_SZ:
		return true
	}
	return false
}

func unsupported(typ types.RegType) error {
	return &types.Error{Kind: types.ErrKindUnsupported, Msg: fmt.Sprintf("registry type %s is not supported", typ)}
}

func dataErr(value string, typ types.RegType, err error) error {
	return &types.DataError{Value: value, Type: typ.String(), Err: err}
}

// DecodeValue translates raw value data of type typ into text.
func DecodeValue(typ types.RegType, data []byte) (string, error) {
	switch typ {
	case types.REG_NONE, types.REG_BINARY:
		pairs := make([]string, len(data))
		for i, b := range data {
			pairs[i] = hex.EncodeToString([]byte{b})
		}
		return strings.Join(pairs, " "), nil
	case types.REG_DWORD:
		if len(data) != 4 {
			return "", dataErr(hex.EncodeToString(data), typ, fmt.Errorf("want 4 bytes, have %d", len(data)))
		}
		return strconv.FormatUint(uint64(binary.LittleEndian.Uint32(data)), 10), nil
	case types.REG_QWORD:
		if len(data) != 8 {
			return "", dataErr(hex.EncodeToString(data), typ, fmt.Errorf("want 8 bytes, have %d", len(data)))
		}
		return strconv.FormatUint(binary.LittleEndian.Uint64(data), 10), nil
	case types.REG_SZ, types.REG_EXPAND_SZ:
		out, err := utf16le.NewDecoder().Bytes(data)
		if err != nil {
			return "", dataErr(hex.EncodeToString(data), typ, err)
		}
		s, _, _ := strings.Cut(string(out), "\x00")
		return s, nil
	}
	return "", unsupported(typ)
}

// EncodeValue translates text into raw value data of type typ.
func EncodeValue(typ types.RegType, text string) ([]byte, error) {
	switch typ {
	case types.REG_NONE, types.REG_BINARY:
		fields := strings.Fields(text)
		data := make([]byte, len(fields))
		for i, f := range fields {
			if len(f) != 2 {
				return nil, dataErr(text, typ, fmt.Errorf("%q is not a hex byte pair", f))
			}
			b, err := hex.DecodeString(f)
			if err != nil {
				return nil, dataErr(text, typ, err)
			}
			data[i] = b[0]
		}
		return data, nil
	case types.REG_DWORD:
		n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
		if err != nil {
			return nil, dataErr(text, typ, err)
		}
		return binary.LittleEndian.AppendUint32(nil, uint32(n)), nil
	case types.REG_QWORD:
		n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, dataErr(text, typ, err)
		}
		return binary.LittleEndian.AppendUint64(nil, n), nil
	case types.REG_SZ, types.REG_EXPAND_SZ:
		data, err := utf16le.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, dataErr(text, typ, err)
		}
		return append(data, 0, 0), nil
	}
	return nil, unsupported(typ)
}
