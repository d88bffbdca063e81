package regtext

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/types"
)

// Format renders doc as .reg text with CRLF line ends.
func Format(doc *Document) string {
	var b strings.Builder
	b.WriteString(Header + crlf + crlf)
	for _, k := range doc.Keys {
		b.WriteString(keyOpen + k.Path + keyClose + crlf)
		for _, v := range k.Values {
			writeValue(&b, v)
		}
		b.WriteString(crlf)
	}
	return b.String()
}

// WriteReg writes doc to w. Unicode encodings get a byte order mark; the
// default is UTF-16LE, as regedit writes.
func WriteReg(w io.Writer, doc *Document, enc textio.Encoding) error {
	return textio.WriteStringBOM(w, Format(doc), outputEncoding(enc))
}

// WriteRegFile atomically replaces name with doc.
func WriteRegFile(name string, doc *Document, enc textio.Encoding) error {
	return textio.WriteFileBOM(name, Format(doc), outputEncoding(enc))
}

func outputEncoding(enc textio.Encoding) textio.Encoding {
	if enc == textio.Auto {
		return textio.UTF16LE
	}
	return enc
}

func writeValue(b *strings.Builder, v Value) {
	start := b.Len()
	if v.Name == "" {
		b.WriteString(defaultValuePrefix)
	} else {
		b.WriteString(quote + escapeString(v.Name) + quote + "=")
	}

	switch {
	case v.Type == types.REG_SZ:
		if s, ok := decodeSZ(v.Data); ok {
			b.WriteString(quote + escapeString(s) + quote)
			break
		}
		writeHex(b, start, fmt.Sprintf("hex(%x):", uint32(v.Type)), v.Data)
	case v.Type == types.REG_DWORD && len(v.Data) == 4:
		fmt.Fprintf(b, "%s%08x", dwordPrefix, binary.LittleEndian.Uint32(v.Data))
	case v.Type == types.REG_BINARY:
		writeHex(b, start, hexPrefix, v.Data)
	default:
		writeHex(b, start, fmt.Sprintf("hex(%x):", uint32(v.Type)), v.Data)
	}
	b.WriteString(crlf)
}

// writeHex writes prefix and data as comma separated bytes, wrapping long
// lines the way regedit does. start is the offset of the current line.
func writeHex(b *strings.Builder, start int, prefix string, data []byte) {
	b.WriteString(prefix)
	col := b.Len() - start
	for i, c := range data {
		item := fmt.Sprintf("%02x", c)
		if i < len(data)-1 {
			item += ","
		}
		if col+len(item) > hexLineWidth {
			b.WriteString(backslash + crlf + hexIndent)
			col = len(hexIndent)
		}
		b.WriteString(item)
		col += len(item)
	}
}
