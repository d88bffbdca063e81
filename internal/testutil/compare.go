package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joshuapare/ptreekit/pkg/ptree"
)

// Node is a plain snapshot of a tree used for readable diffs.
type Node struct {
	Key      string
	Value    string
	Children []Node
}

// Snapshot converts t into a Node tree. The root's key is empty.
func Snapshot(t *ptree.Tree) Node {
	return snapshot("", t)
}

func snapshot(key string, t *ptree.Tree) Node {
	n := Node{Key: key, Value: t.Value()}
	for k, child := range t.All() {
		n.Children = append(n.Children, snapshot(k, child))
	}
	return n
}

// Diff returns a human-readable diff of two trees, or "" if they are equal
// under want's comparator.
func Diff(want, got *ptree.Tree) string {
	if want.Equal(got) {
		return ""
	}
	return cmp.Diff(Snapshot(want), Snapshot(got))
}

// RequireEqualTrees fails the test with a structural diff when the trees
// differ.
func RequireEqualTrees(t testing.TB, want, got *ptree.Tree) {
	t.Helper()
	if d := Diff(want, got); d != "" {
		t.Fatalf("trees differ (-want +got):\n%s", d)
	}
}

// Build creates a tree from alternating path/value pairs using AddValue,
// so repeated paths produce repeated keys.
func Build(pairs ...string) *ptree.Tree {
	t := ptree.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		t.AddValue(pairs[i], pairs[i+1])
	}
	return t
}
