package ptree

import (
	"github.com/joshuapare/ptreekit/pkg/types"
)

// parsePath splits s with the tree's separator.
func (t *Tree) parsePath(s string) Path {
	return ParsePathSep(s, t.Separator())
}

// lookup follows the first matching child per segment. It returns nil as
// soon as a segment is missing.
func (t *Tree) lookup(p Path) *Tree {
	cur := t
	for _, seg := range p.segs {
		if cur = cur.Find(seg); cur == nil {
			return nil
		}
	}
	return cur
}

// force follows p like lookup but appends missing nodes on the way.
func (t *Tree) force(p Path) *Tree {
	cur := t
	for _, seg := range p.segs {
		next := cur.Find(seg)
		if next == nil {
			next = cur.Append(seg)
		}
		cur = next
	}
	return cur
}

// GetChild returns the node at path. The empty path is t itself.
func (t *Tree) GetChild(path string) (*Tree, error) {
	return t.GetChildPath(t.parsePath(path))
}

// GetChildPath is GetChild for a parsed path.
func (t *Tree) GetChildPath(p Path) (*Tree, error) {
	if n := t.lookup(p); n != nil {
		return n, nil
	}
	return nil, &types.PathError{Path: p.String()}
}

// GetChildOptional returns the node at path, or nil.
func (t *Tree) GetChildOptional(path string) *Tree {
	return t.lookup(t.parsePath(path))
}

// GetChildOptionalPath is GetChildOptional for a parsed path.
func (t *Tree) GetChildOptionalPath(p Path) *Tree {
	return t.lookup(p)
}

// PutChild stores a copy of sub at path. If a node already exists there its
// value and children are replaced; otherwise it is created along with any
// missing intermediate nodes. The stored node is returned.
func (t *Tree) PutChild(path string, sub *Tree) *Tree {
	return t.PutChildPath(t.parsePath(path), sub)
}

// PutChildPath is PutChild for a parsed path.
func (t *Tree) PutChildPath(p Path, sub *Tree) *Tree {
	if p.Empty() {
		t.Assign(sub)
		return t
	}
	parent := t.force(p.Parent())
	if n := parent.Find(p.Last()); n != nil {
		n.Assign(sub)
		return n
	}
	return parent.PushBack(p.Last(), sub)
}

// AddChild appends a copy of sub as a new node at path, even if a node with
// the same key exists. Missing intermediate nodes are created.
func (t *Tree) AddChild(path string, sub *Tree) *Tree {
	return t.AddChildPath(t.parsePath(path), sub)
}

// AddChildPath is AddChild for a parsed path.
func (t *Tree) AddChildPath(p Path, sub *Tree) *Tree {
	if p.Empty() {
		t.Assign(sub)
		return t
	}
	return t.force(p.Parent()).PushBack(p.Last(), sub)
}

// PutValue sets the value of the node at path, creating it if needed.
// Existing children of that node are kept.
func (t *Tree) PutValue(path, value string) *Tree {
	return t.PutValuePath(t.parsePath(path), value)
}

// PutValuePath is PutValue for a parsed path.
func (t *Tree) PutValuePath(p Path, value string) *Tree {
	n := t.force(p)
	n.value = value
	return n
}

// AddValue appends a new node holding value at path.
func (t *Tree) AddValue(path, value string) *Tree {
	return t.AddValuePath(t.parsePath(path), value)
}

// AddValuePath is AddValue for a parsed path.
func (t *Tree) AddValuePath(p Path, value string) *Tree {
	if p.Empty() {
		t.value = value
		return t
	}
	n := t.force(p.Parent()).Append(p.Last())
	n.value = value
	return n
}
