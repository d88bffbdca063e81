package ptree

import (
	"errors"
	"testing"

	"github.com/joshuapare/ptreekit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutPreservesChildren(t *testing.T) {
	tree := New()
	_, err := Put(tree, "a", 1)
	require.NoError(t, err)
	_, err = Put(tree, "a.b", 2)
	require.NoError(t, err)
	_, err = Put(tree, "a", 3)
	require.NoError(t, err)

	a, err := Get[int](tree, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, a)

	b, err := Get[int](tree, "a.b")
	require.NoError(t, err)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, tree.Len())
}

func TestAddAppendsSiblings(t *testing.T) {
	tree := New()
	for _, v := range []string{"x", "y", "z"} {
		_, err := Add(tree, "key.key.key", v)
		require.NoError(t, err)
	}
	key := tree.Find("key")
	require.NotNil(t, key)
	inner := key.Find("key")
	require.NotNil(t, inner)
	assert.Equal(t, 3, inner.Count("key"))

	got, err := Get[string](tree, "key.key.key")
	require.NoError(t, err)
	assert.Equal(t, "x", got, "lookup takes the first match")
}

func TestDataErrorVersusPathError(t *testing.T) {
	tree := New()
	tree.PutValue("existing.path.with.non.numeric.value", "abc")

	_, err := Get[int](tree, "existing.path.with.non.numeric.value")
	var dataErr *types.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "abc", dataErr.Value)
	assert.Equal(t, "int", dataErr.Type)
	assert.True(t, errors.Is(err, types.ErrData))
	assert.False(t, errors.Is(err, types.ErrPath))

	_, err = Get[int](tree, "nonexistent.path")
	var pathErr *types.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "nonexistent.path", pathErr.Path)
	assert.True(t, errors.Is(err, types.ErrPath))
}

func TestLookupThroughLeaf(t *testing.T) {
	tree := New()
	tree.PutValue("leaf", "v")
	_, err := tree.GetChild("leaf.below")
	assert.ErrorIs(t, err, types.ErrPath)
	assert.Nil(t, tree.GetChildOptional("leaf.below"))
}

func TestEmptyPathIsSelf(t *testing.T) {
	tree := NewValue("42")
	n, err := tree.GetChild("")
	require.NoError(t, err)
	assert.Same(t, tree, n)

	v, err := Get[int](tree, "")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Put(tree, "", 7)
	require.NoError(t, err)
	assert.Equal(t, "7", tree.Value())
}

func TestGetOrAndOptional(t *testing.T) {
	tree := New()
	tree.PutValue("port", "8080")
	tree.PutValue("name", "svc")

	assert.Equal(t, 8080, GetOr(tree, "port", 1))
	assert.Equal(t, 1, GetOr(tree, "name", 1))
	assert.Equal(t, 1, GetOr(tree, "missing", 1))

	v, ok := GetOptional[int](tree, "port")
	assert.True(t, ok)
	assert.Equal(t, 8080, v)

	_, ok = GetOptional[int](tree, "name")
	assert.False(t, ok)
	_, ok = GetOptional[int](tree, "missing")
	assert.False(t, ok)
}

func TestPutChildAndAddChild(t *testing.T) {
	sub := New()
	sub.PutValue("x", "1")

	tree := New()
	tree.PutValue("a.b", "old").Append("keep")
	stored := tree.PutChild("a.b", sub)
	assert.Equal(t, "", stored.Value())
	assert.Nil(t, stored.Find("keep"), "PutChild replaces the whole subtree")
	assert.Equal(t, "1", GetOr(tree, "a.b.x", ""))

	tree.AddChild("a.b", sub)
	assert.Equal(t, 2, tree.Find("a").Count("b"))

	sub.PutValue("x", "2")
	assert.Equal(t, "1", GetOr(tree, "a.b.x", ""), "stored copies are independent")
}

func TestCustomSeparator(t *testing.T) {
	tree := New(WithSeparator('/'))
	_, err := Put(tree, "a.b/c", 5)
	require.NoError(t, err)

	assert.NotNil(t, tree.Find("a.b"))
	v, err := Get[int](tree, "a.b/c")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	assert.Equal(t, '/', tree.Find("a.b").Separator(), "children inherit the separator")
}

func TestCaseInsensitivePaths(t *testing.T) {
	tree := New(CaseInsensitive())
	tree.PutValue("Server.Port", "80")
	tree.PutValue("SERVER.port", "81")

	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 81, GetOr(tree, "server.PORT", 0))
}

func TestPutEncodeFailureLeavesTree(t *testing.T) {
	tree := New()
	_, err := Put(tree, "a.b", Char(-1))
	require.ErrorIs(t, err, types.ErrData)
	assert.True(t, tree.Empty())
}
