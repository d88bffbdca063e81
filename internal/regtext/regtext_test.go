package regtext

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/ptreekit/internal/textio"
	"github.com/joshuapare/ptreekit/pkg/types"
)

const sample = "Windows Registry Editor Version 5.00\r\n" +
	"\r\n" +
	"; exported\r\n" +
	"[HKEY_CURRENT_USER\\Software\\Demo]\r\n" +
	"@=\"default\"\r\n" +
	"\"Path\"=\"C:\\\\Program Files\\\\\\\"Demo\\\"\"\r\n" +
	"\"Count\"=dword:0000002a\r\n" +
	"\"Blob\"=hex:de,ad,\\\r\n" +
	"  be,ef\r\n" +
	"\"Expand\"=hex(2):25,00,00,00\r\n" +
	"\"Big\"=hex(b):01,00,00,00,00,00,00,00\r\n" +
	"\"Nothing\"=hex(0):\r\n" +
	"\r\n" +
	"[HKEY_CURRENT_USER\\Software\\Demo\\Sub]\r\n"

func TestParse(t *testing.T) {
	doc, err := Parse(sample, "")
	require.NoError(t, err)
	require.Len(t, doc.Keys, 2)

	k := doc.Keys[0]
	assert.Equal(t, `HKEY_CURRENT_USER\Software\Demo`, k.Path)
	require.Len(t, k.Values, 7)

	assert.Equal(t, Value{Name: "", Type: types.REG_SZ, Data: []byte{'d', 0, 'e', 0, 'f', 0, 'a', 0, 'u', 0, 'l', 0, 't', 0, 0, 0}}, k.Values[0])
	path, ok := decodeSZ(k.Values[1].Data)
	require.True(t, ok)
	assert.Equal(t, `C:\Program Files\"Demo"`, path)
	assert.Equal(t, Value{Name: "Count", Type: types.REG_DWORD, Data: []byte{0x2a, 0, 0, 0}}, k.Values[2])
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, k.Values[3].Data)
	assert.Equal(t, types.REG_BINARY, k.Values[3].Type)
	assert.Equal(t, types.REG_EXPAND_SZ, k.Values[4].Type)
	assert.Equal(t, types.REG_QWORD, k.Values[5].Type)
	assert.Equal(t, types.REG_NONE, k.Values[6].Type)
	assert.Empty(t, k.Values[6].Data)

	assert.Empty(t, doc.Keys[1].Values)
}

func TestParseMergesRepeatedKeys(t *testing.T) {
	doc, err := Parse(Header+"\n[A]\n\"x\"=\"1\"\n[B]\n[a]\n\"y\"=\"2\"\n", "")
	require.NoError(t, err)
	require.Len(t, doc.Keys, 2)
	assert.Len(t, doc.Keys[0].Values, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"no header", "[A]\n", 1},
		{"empty", "", 1},
		{"value before key", Header + "\n\"x\"=\"1\"\n", 2},
		{"unclosed key", Header + "\n\n[A\n", 3},
		{"delete key", Header + "\n[-A]\n", 2},
		{"delete value", Header + "\n[A]\n\"x\"=-\n", 3},
		{"bad dword", Header + "\n[A]\n\"x\"=dword:xyz\n", 3},
		{"bad hex", Header + "\n[A]\n\"x\"=hex:0g\n", 3},
		{"unterminated string", Header + "\n[A]\n\"x\"=\"abc\n", 3},
		{"missing equals", Header + "\n[A]\n\"x\" \"1\"\n", 3},
		{"short dword", Header + "\n[A]\n\"x\"=hex(4):01,02,03\n", 3},
		{"long qword", Header + "\n[A]\n\n\"x\"=hex(b):01,02,03,04,05,06,07,08,09\n", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, "")
			var perr *types.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			assert.Equal(t, FormatName, perr.Format)
			assert.Equal(t, types.StreamSource, perr.Source)
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	doc, err := Parse(sample, "")
	require.NoError(t, err)

	out := Format(doc)
	assert.True(t, strings.HasPrefix(out, Header+"\r\n\r\n"))
	assert.Contains(t, out, "\"Count\"=dword:0000002a\r\n")
	assert.Contains(t, out, "\"Blob\"=hex:de,ad,be,ef\r\n")
	assert.Contains(t, out, "\"Nothing\"=hex(0):\r\n")
	assert.Contains(t, out, `"Path"="C:\\Program Files\\\"Demo\""`)

	back, err := Parse(out, "")
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestFormatWrapsLongHex(t *testing.T) {
	doc := &Document{}
	doc.Key("K").Values = append(doc.Key("K").Values, Value{Name: "long", Type: types.REG_BINARY, Data: bytes.Repeat([]byte{0xab}, 100)})

	out := Format(doc)
	for _, line := range strings.Split(out, "\r\n") {
		assert.LessOrEqual(t, len(line), 80, line)
	}
	back, err := Parse(out, "")
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestFormatOddStringAsHex(t *testing.T) {
	doc := &Document{}
	k := doc.Key("K")
	k.Values = append(k.Values,
		Value{Name: "odd", Type: types.REG_SZ, Data: []byte{'a'}},
		Value{Name: "multiline", Type: types.REG_SZ, Data: []byte{'a', 0, '\n', 0, 0, 0}},
		Value{Name: "short", Type: types.REG_DWORD, Data: []byte{1, 2}},
	)
	out := Format(doc)
	assert.Contains(t, out, "\"odd\"=hex(1):61\r\n")
	assert.Contains(t, out, "\"multiline\"=hex(1):61,00,0a,00,00,00\r\n")
	assert.Contains(t, out, "\"short\"=hex(4):01,02\r\n")
}

func TestWriteAndReadFile(t *testing.T) {
	doc, err := Parse(sample, "")
	require.NoError(t, err)

	name := filepath.Join(t.TempDir(), "out.reg")
	require.NoError(t, WriteRegFile(name, doc, textio.Auto))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xfe}, data[:2], "UTF-16LE byte order mark")

	back, err := ReadRegFile(name)
	require.NoError(t, err)
	assert.Equal(t, doc, back)

	var buf bytes.Buffer
	require.NoError(t, WriteReg(&buf, doc, textio.UTF8))
	back, err = ReadReg(&buf, "buf")
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}
