package infofmt

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/ptreekit/internal/testutil"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

const sample = `; leading comment
key1 value1
key2
{
    key3 "value 3" ; trailing comment
    key4 "data" "4"
    "quoted key" "esc\t\"x\"\\"
}
key5 "first " \
     "second"
key6 { inner v ; braces on one line
}
empty
`

func TestReadSample(t *testing.T) {
	tree := ptree.New()
	require.NoError(t, ReadString(sample, tree))

	want := testutil.Build(
		"key1", "value1",
		"key2.key3", "value 3",
		"key2.key4", "data4",
	)
	want.Find("key2").Append("quoted key").SetValue("esc\t\"x\"\\")
	want.PutValue("key5", "first second")
	want.PutValue("key6.inner", "v")
	want.Append("empty")

	testutil.RequireEqualTrees(t, want, tree)
}

func TestBraceOnNextLineAndSiblings(t *testing.T) {
	tree := ptree.New()
	require.NoError(t, ReadString("a 1\n{\n b 2\n}\nc\nd 4\n", tree))
	assert.Equal(t, "2", ptree.GetOr(tree, "a.b", ""))
	assert.Equal(t, 3, tree.Len())
	assert.False(t, tree.Find("c").HasValue())
}

func TestRepeatedKeys(t *testing.T) {
	tree := ptree.New()
	require.NoError(t, ReadString("k 1\nk 2\nk 3\n", tree))
	assert.Equal(t, 3, tree.Count("k"))
	all := tree.FindAll("k")
	assert.Equal(t, "3", all[2].Value())
}

func TestEscapes(t *testing.T) {
	tree := ptree.New()
	require.NoError(t, ReadString(`k "\0\a\b\f\n\r\t\v\'\"\\"`, tree))
	assert.Equal(t, "\x00\a\b\f\n\r\t\v'\"\\", tree.Find("k").Value())
}

func TestHashInsideLine(t *testing.T) {
	tree := ptree.New()
	require.NoError(t, ReadString("a 1 #b 2\n", tree))
	assert.Equal(t, []string{"a", "#b"}, tree.Keys())
	assert.Equal(t, "2", tree.Find("#b").Value())
}

func TestContinuationComment(t *testing.T) {
	tree := ptree.New()
	require.NoError(t, ReadString("a \"x\" \\ ; more below\n  \"y\"\n", tree))
	assert.Equal(t, "xy", tree.Find("a").Value())
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		line int
	}{
		{"lone open brace", "{\n", 1},
		{"brace after close", "a {\n}\n{\n}", 3},
		{"unmatched close", "a 1\n}\n", 2},
		{"unknown escape", "a 1\nb \"x\\q\"\n", 2},
		{"unterminated string", "a \"abc\n", 1},
		{"unclosed scope", "a\n{\n  b 1\n", 3},
		{"unclosed scope no newline", "a {\n  b 1", 2},
		{"continuation without string", "a \"x\" \\\nb\n", 2},
		{"continuation at eof", "a \"x\" \\\n", 1},
		{"unknown directive", "#define x\n", 1},
		{"text after include", "a 1\n#include \"x.info\" b\n", 2},
		{"text after continuation", "a \"x\" \\ \"y\"\n", 1},
		{"backslash as value", "\"a\" \\\n\"b\"\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := ptree.New()
			err := ReadString(tt.doc, tree)
			var perr *types.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			assert.Equal(t, types.StreamSource, perr.Source)
			assert.Equal(t, FormatName, perr.Format)
		})
	}
}

func TestFailedReadKeepsTree(t *testing.T) {
	tree := ptree.New()
	tree.PutValue("keep", "me")
	require.Error(t, ReadString("a 1\nb {\n", tree))
	assert.Equal(t, "me", ptree.GetOr(tree, "keep", ""))
	assert.Equal(t, 1, tree.Len())
}

func TestInclude(t *testing.T) {
	fsys := fstest.MapFS{
		"conf/main.info":     {Data: []byte("a 1\n#include \"inc/part.info\"\nsec\n{\n\t#\t include \"inc/part.info\"\n}\nb 2\n")},
		"conf/inc/part.info": {Data: []byte("x 9\ny { z 1 }\n")},
		"conf/broken.info":   {Data: []byte("a 1\n#include \"bad.info\"\n")},
		"conf/bad.info":      {Data: []byte("ok 1\n}\n")},
		"conf/missing.info":  {Data: []byte("a 1\n\n#include \"nope.info\"\n")},
		"conf/loop.info":     {Data: []byte("#include \"loop.info\"\n")},
		"conf/unclosed.info": {Data: []byte("#include \"open.info\"\n")},
		"conf/open.info":     {Data: []byte("a {\n")},
	}
	opts := func(src string) []Option {
		return []Option{WithResolver(FSResolver{FS: fsys}), WithSource(src)}
	}

	tree := ptree.New()
	require.NoError(t, ReadString(string(fsys["conf/main.info"].Data), tree, opts("conf/main.info")...))
	assert.Equal(t, []string{"a", "x", "y", "sec", "b"}, tree.Keys())
	assert.Equal(t, "1", ptree.GetOr(tree, "y.z", ""))
	assert.Equal(t, "1", ptree.GetOr(tree, "sec.y.z", ""))

	err := ReadString(string(fsys["conf/broken.info"].Data), ptree.New(), opts("conf/broken.info")...)
	var perr *types.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "conf/bad.info", perr.Source)
	assert.Equal(t, 2, perr.Line)

	err = ReadString(string(fsys["conf/missing.info"].Data), ptree.New(), opts("conf/missing.info")...)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "conf/missing.info", perr.Source)
	assert.Equal(t, 3, perr.Line)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	err = ReadString(string(fsys["conf/loop.info"].Data), ptree.New(), opts("conf/loop.info")...)
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Msg, "nesting")

	err = ReadString(string(fsys["conf/unclosed.info"].Data), ptree.New(), opts("conf/unclosed.info")...)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "conf/open.info", perr.Source)
	assert.Equal(t, 1, perr.Line)
}

func TestReadFileIncludeRelative(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.info")
	require.NoError(t, writeFile(filepath.Join(dir, "sub", "inc.info"), "inc yes\n"))
	require.NoError(t, writeFile(main, "#include \"sub/inc.info\"\n"))

	tree := ptree.New()
	require.NoError(t, ReadFile(main, tree))
	assert.Equal(t, "yes", ptree.GetOr(tree, "inc", ""))
}

func TestReadFileOrDefault(t *testing.T) {
	def := ptree.New()
	def.PutValue("fallback.value", "1")

	missing := filepath.Join(t.TempDir(), "nonexistent.info")

	tree := ptree.New()
	tree.PutValue("old", "x")
	require.NoError(t, ReadFileOr(missing, tree, def))
	assert.True(t, tree.Equal(def))

	err := ReadFile(missing, ptree.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)

	bad := testutil.WriteTemp(t, "bad.info", "a {\n")
	err = ReadFileOr(bad, ptree.New(), def)
	assert.ErrorIs(t, err, types.ErrParse)
	assert.False(t, errors.Is(err, types.ErrNotFound))
}

func TestReadCaseInsensitiveTree(t *testing.T) {
	tree := ptree.New(ptree.CaseInsensitive())
	require.NoError(t, Read(strings.NewReader("Key1 a\nKEY2 b\n"), tree))
	assert.Equal(t, 1, tree.Count("key1"))
	assert.Equal(t, 1, tree.Count("Key2"))
	assert.True(t, tree.Find("KEY1").IsCaseInsensitive())
}
