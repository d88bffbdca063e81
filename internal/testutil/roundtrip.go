package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/ptreekit/pkg/ptree"
)

// ReadFunc parses text into a tree.
type ReadFunc func(text string, t *ptree.Tree) error

// WriteFunc renders a tree.
type WriteFunc func(t *ptree.Tree) (string, error)

// RoundTrip reads doc, writes it back, reads the output again and requires
// both trees to be equal. It returns the first tree and the written text.
func RoundTrip(t testing.TB, read ReadFunc, write WriteFunc, doc string) (*ptree.Tree, string) {
	t.Helper()

	first := ptree.New()
	if err := read(doc, first); err != nil {
		t.Fatalf("read original: %v", err)
	}
	out, err := write(first)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	second := ptree.New()
	if err := read(out, second); err != nil {
		t.Fatalf("read written output: %v\n%s", err, out)
	}
	RequireEqualTrees(t, first, second)
	return first, out
}

// WriteTemp writes content to name inside a fresh temp directory and
// returns the full path.
func WriteTemp(t testing.TB, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}
