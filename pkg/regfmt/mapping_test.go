package regfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/ptreekit/internal/testutil"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/types"
)

func mustEncode(t *testing.T, typ types.RegType, text string) []byte {
	t.Helper()
	data, err := EncodeValue(typ, text)
	require.NoError(t, err)
	return data
}

func demoKey(t *testing.T) *MemKey {
	root := NewMemKey()
	demo := root.create("Demo")
	require.NoError(t, demo.SetValue(Value{Type: types.REG_SZ, Data: mustEncode(t, types.REG_SZ, "hello")}))
	require.NoError(t, demo.SetValue(Value{Name: "Count", Type: types.REG_DWORD, Data: mustEncode(t, types.REG_DWORD, "42")}))
	require.NoError(t, demo.SetValue(Value{Name: "Blob", Type: types.REG_BINARY, Data: []byte{0xde, 0xad}}))
	sub := demo.create("Sub")
	require.NoError(t, sub.SetValue(Value{Type: types.REG_DWORD, Data: mustEncode(t, types.REG_DWORD, "7")}))
	return root
}

func demoTree() *ptree.Tree {
	want := ptree.New()
	demo := want.Append("Demo")
	demo.SetValue("hello")
	vals := demo.Append(ValuesKey)
	vals.Append("Count").SetValue("42")
	vals.Append("Blob").SetValue("de ad")
	typs := demo.Append(TypesKey)
	typs.Append("Count").SetValue("REG_DWORD")
	typs.Append("Blob").SetValue("REG_BINARY")
	sub := demo.Append("Sub")
	sub.SetValue("7")
	sub.Append(TypesKey).Append("").SetValue("REG_DWORD")
	return want
}

func TestReadKey(t *testing.T) {
	got := ptree.New()
	require.NoError(t, ReadKey(demoKey(t), got))
	testutil.RequireEqualTrees(t, demoTree(), got)
}

func TestWriteKeyRoundTrip(t *testing.T) {
	want := demoKey(t)
	got := NewMemKey()
	require.NoError(t, WriteKey(got, demoTree(), nil))
	assert.Equal(t, want, got)
}

func TestWriteKeyDefaultsToString(t *testing.T) {
	tr := ptree.New()
	app := tr.Append("App")
	app.Append(ValuesKey).Append("Name").SetValue("demo")

	k := NewMemKey()
	require.NoError(t, WriteKey(k, tr, nil))
	values, err := k.find("app").Values()
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, Value{Name: "Name", Type: types.REG_SZ, Data: mustEncode(t, types.REG_SZ, "demo")}, values[0])
}

func TestReadKeyUnsupportedLeavesTree(t *testing.T) {
	root := NewMemKey()
	require.NoError(t, root.create("A").SetValue(Value{Name: "multi", Type: types.REG_MULTI_SZ, Data: []byte{0, 0}}))

	got := testutil.Build("keep", "me")
	err := ReadKey(root, got)
	require.ErrorIs(t, err, types.ErrUnsupported)
	assert.Equal(t, "me", got.Find("keep").Value())
}

func TestWriteKeyErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(tr *ptree.Tree)
		path  string
	}{
		{"nested value", func(tr *ptree.Tree) {
			tr.Append("A").Append(ValuesKey).Append("v").Append("x")
		}, `A\` + ValuesKey},
		{"unknown type", func(tr *ptree.Tree) {
			a := tr.Append("A")
			a.Append(ValuesKey).Append("v").SetValue("1")
			a.Append(TypesKey).Append("v").SetValue("REG_FANCY")
		}, `A\` + TypesKey},
		{"bad data", func(tr *ptree.Tree) {
			a := tr.Append("A")
			a.Append(ValuesKey).Append("v").SetValue("abc")
			a.Append(TypesKey).Append("v").SetValue("REG_DWORD")
		}, "A"},
		{"backslash in name", func(tr *ptree.Tree) {
			tr.Append("A").Append(`b\c`)
		}, `A\b\c`},
		{"empty key name", func(tr *ptree.Tree) {
			tr.Append("A").Append("")
		}, `A\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := ptree.New()
			tt.build(tr)
			err := WriteKey(NewMemKey(), tr, nil)
			require.ErrorIs(t, err, types.ErrWrite)
			var we *types.WriteError
			require.ErrorAs(t, err, &we)
			assert.Equal(t, tt.path, we.Path)
		})
	}
}

func TestWriteKeyLimits(t *testing.T) {
	deep := ptree.New()
	deep.Append("a").Append("b").Append("c")

	long := ptree.New()
	long.Append("toolong")

	many := ptree.New()
	vals := many.Append("k").Append(ValuesKey)
	vals.Append("x").SetValue("1")
	vals.Append("y").SetValue("2")

	big := ptree.New()
	big.Append("k").SetValue("0123456789")

	l := Limits{MaxKeyNameLen: 4, MaxValueNameLen: 8, MaxValueSize: 16, MaxValues: 1, MaxTreeDepth: 2}
	for name, tr := range map[string]*ptree.Tree{"depth": deep, "key name": long, "values": many, "size": big} {
		t.Run(name, func(t *testing.T) {
			err := WriteKey(NewMemKey(), tr, &l)
			require.ErrorIs(t, err, types.ErrWrite)
			assert.Contains(t, err.Error(), "registry limit exceeded")
		})
	}

	ok := ptree.New()
	ok.Append("a").Append("b").SetValue("short")
	require.NoError(t, WriteKey(NewMemKey(), ok, &l))
}
