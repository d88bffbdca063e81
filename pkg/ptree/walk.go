package ptree

import "errors"

// SkipChildren can be returned by a WalkFunc to skip the children of the
// node just visited.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk. p is the node's path
// relative to the walk root; the root itself has the empty path.
type WalkFunc func(p Path, n *Tree) error

// Walk visits t and its descendants depth-first in child order. Any error
// other than SkipChildren stops the walk and is returned.
func (t *Tree) Walk(fn WalkFunc) error {
	err := t.walk(Path{sep: t.sep}, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func (t *Tree) walk(p Path, fn WalkFunc) error {
	if err := fn(p, t); err != nil {
		return err
	}
	for _, e := range t.children {
		err := e.Tree.walk(p.Child(e.Key), fn)
		if err != nil && !errors.Is(err, SkipChildren) {
			return err
		}
	}
	return nil
}

// Size returns the number of nodes in t, counting t itself.
func (t *Tree) Size() int {
	n := 1
	for _, e := range t.children {
		n += e.Tree.Size()
	}
	return n
}

// ReadInto runs parse against an empty tree configured like dst and swaps
// the result into dst only if parse succeeds. A failed read leaves dst
// untouched.
func ReadInto(dst *Tree, parse func(scratch *Tree) error) error {
	scratch := NewLike(dst)
	if err := parse(scratch); err != nil {
		return err
	}
	dst.Swap(scratch)
	return nil
}
