package ptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		sep  rune
		want []string
	}{
		{"", '.', nil},
		{"a", '.', []string{"a"}},
		{"a.b.c", '.', []string{"a", "b", "c"}},
		{"a..b", '.', []string{"a", "", "b"}},
		{"a.b/c", '/', []string{"a.b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := ParsePathSep(tt.in, tt.sep)
			assert.Equal(t, len(tt.want), p.Len())
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, p.Segments())
			}
			assert.Equal(t, tt.in, p.String())
		})
	}
}

func TestPathJoinAppend(t *testing.T) {
	p := ParsePath("a.b")
	q := p.Join(ParsePath("c"))
	assert.Equal(t, "a.b.c", q.String())
	assert.Equal(t, "a.b", p.String(), "Join must not modify the receiver")

	r := q.Append("d.e")
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, r.Segments())

	slash := ParsePathSep("x", '/').Append("y.z/w")
	assert.Equal(t, []string{"x", "y.z", "w"}, slash.Segments())
	assert.Equal(t, "x/y.z/w", slash.String())
}

func TestPathReduce(t *testing.T) {
	head, rest := ParsePath("a.b.c").Reduce()
	assert.Equal(t, "a", head)
	assert.Equal(t, "b.c", rest.String())

	head, rest = Path{}.Reduce()
	assert.Equal(t, "", head)
	assert.True(t, rest.Empty())
}

func TestPathOfKeepsSeparators(t *testing.T) {
	tree := New()
	tree.Append("a.b").SetValue("dotted")
	n, err := tree.GetChildPath(PathOf("a.b"))
	assert.NoError(t, err)
	assert.Equal(t, "dotted", n.Value())

	_, err = tree.GetChild("a.b")
	assert.Error(t, err)
}

func TestPathParentLast(t *testing.T) {
	p := ParsePath("a.b.c")
	assert.Equal(t, "c", p.Last())
	assert.Equal(t, "a.b", p.Parent().String())
	assert.True(t, Path{}.Parent().Empty())
}
