package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/ptreekit/pkg/ptree"
)

func TestMeasure(t *testing.T) {
	assert.Equal(t, Metrics{Nodes: 1}, Measure(ptree.New()))

	tree := Build("Key1", "Data1", "Key2", "Data2")
	assert.Equal(t, Metrics{Nodes: 3, ValueChars: 10, KeyChars: 8}, Measure(tree))
}

func TestDiff(t *testing.T) {
	a := Build("a.b", "1", "a.b", "2")
	b := Build("a.b", "1", "a.b", "3")

	assert.Empty(t, Diff(a, a.Clone()))
	d := Diff(a, b)
	assert.True(t, strings.Contains(d, `"2"`), d)
	assert.True(t, strings.Contains(d, `"3"`), d)
}
