package ptree

import (
	"iter"
	"slices"
	"strings"
)

// DefaultSeparator separates path segments unless WithSeparator says otherwise.
const DefaultSeparator = '.'

// Tree is a node of an ordered property tree.
// The zero value is an empty, case-sensitive tree using DefaultSeparator.
type Tree struct {
	value    string
	children []Entry
	keys     KeyComparator
	sep      rune
}

// Entry is one (key, child) pair of a tree.
type Entry struct {
	Key  string
	Tree *Tree
}

// Option configures a tree at construction.
type Option func(*Tree)

// CaseInsensitive makes key comparison ignore case.
func CaseInsensitive() Option {
	return WithComparator(CaseInsensitiveKeys)
}

// WithComparator selects the key comparator.
func WithComparator(c KeyComparator) Option {
	return func(t *Tree) { t.keys = c }
}

// WithSeparator selects the separator used to split string paths.
func WithSeparator(sep rune) Option {
	return func(t *Tree) { t.sep = sep }
}

// New creates an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewValue creates a leaf holding value.
func NewValue(value string, opts ...Option) *Tree {
	t := New(opts...)
	t.value = value
	return t
}

// NewLike creates an empty tree with the same comparator and separator as t.
func NewLike(t *Tree) *Tree {
	return &Tree{keys: t.keys, sep: t.sep}
}

func (t *Tree) comparator() KeyComparator {
	if t.keys == nil {
		return CaseSensitiveKeys
	}
	return t.keys
}

// Comparator returns the key comparator used by t.
func (t *Tree) Comparator() KeyComparator { return t.comparator() }

// Separator returns the rune used to split string paths.
func (t *Tree) Separator() rune {
	if t.sep == 0 {
		return DefaultSeparator
	}
	return t.sep
}

func (t *Tree) newChild() *Tree {
	return &Tree{keys: t.keys, sep: t.sep}
}

// -----------------------------------------------------------------------------
// Value
// -----------------------------------------------------------------------------

// Value returns the node's own text value ("" when it has none).
func (t *Tree) Value() string { return t.value }

// SetValue replaces the node's own value. Children are untouched.
func (t *Tree) SetValue(v string) { t.value = v }

// HasValue reports whether the node carries a non-empty value.
func (t *Tree) HasValue() bool { return t.value != "" }

// -----------------------------------------------------------------------------
// Sequence access
// -----------------------------------------------------------------------------

// Len returns the number of direct children.
func (t *Tree) Len() int { return len(t.children) }

// Empty reports whether t has no children.
func (t *Tree) Empty() bool { return len(t.children) == 0 }

// At returns the i-th child. It panics if i is out of range, like a slice.
func (t *Tree) At(i int) (string, *Tree) {
	e := t.children[i]
	return e.Key, e.Tree
}

// All iterates over the direct children in order.
func (t *Tree) All() iter.Seq2[string, *Tree] {
	return func(yield func(string, *Tree) bool) {
		for _, e := range t.children {
			if !yield(e.Key, e.Tree) {
				return
			}
		}
	}
}

// Entries returns a copy of the child list.
func (t *Tree) Entries() []Entry {
	return slices.Clone(t.children)
}

// Keys returns the keys of the direct children in order.
func (t *Tree) Keys() []string {
	keys := make([]string, len(t.children))
	for i, e := range t.children {
		keys[i] = e.Key
	}
	return keys
}

// Front returns the first child, or ("", nil) when there is none.
func (t *Tree) Front() (string, *Tree) {
	if len(t.children) == 0 {
		return "", nil
	}
	return t.At(0)
}

// Back returns the last child, or ("", nil) when there is none.
func (t *Tree) Back() (string, *Tree) {
	if len(t.children) == 0 {
		return "", nil
	}
	return t.At(len(t.children) - 1)
}

// Append adds a new empty child at the end and returns it.
func (t *Tree) Append(key string) *Tree {
	child := t.newChild()
	t.children = append(t.children, Entry{Key: key, Tree: child})
	return child
}

// PushBack appends a copy of sub under key and returns the copy.
func (t *Tree) PushBack(key string, sub *Tree) *Tree {
	return t.Insert(len(t.children), key, sub)
}

// PushFront prepends a copy of sub under key and returns the copy.
func (t *Tree) PushFront(key string, sub *Tree) *Tree {
	return t.Insert(0, key, sub)
}

// Insert places a copy of sub under key at position i (0 <= i <= Len) and
// returns the copy. The copy adopts t's comparator and separator.
func (t *Tree) Insert(i int, key string, sub *Tree) *Tree {
	child := t.adopt(sub)
	t.children = slices.Insert(t.children, i, Entry{Key: key, Tree: child})
	return child
}

// PopFront removes and returns the first child.
func (t *Tree) PopFront() (string, *Tree) {
	if len(t.children) == 0 {
		return "", nil
	}
	return t.EraseAt(0)
}

// PopBack removes and returns the last child.
func (t *Tree) PopBack() (string, *Tree) {
	if len(t.children) == 0 {
		return "", nil
	}
	return t.EraseAt(len(t.children) - 1)
}

// EraseAt removes the i-th child and returns it.
func (t *Tree) EraseAt(i int) (string, *Tree) {
	e := t.children[i]
	t.children = slices.Delete(t.children, i, i+1)
	return e.Key, e.Tree
}

// Erase removes every direct child whose key matches and returns how many
// were removed.
func (t *Tree) Erase(key string) int {
	keys := t.comparator()
	before := len(t.children)
	t.children = slices.DeleteFunc(t.children, func(e Entry) bool {
		return keys.Equal(e.Key, key)
	})
	return before - len(t.children)
}

// Clear removes the value and all children.
func (t *Tree) Clear() {
	t.value = ""
	t.children = nil
}

// Swap exchanges the value and children of t and o. Comparator and
// separator stay with their trees.
func (t *Tree) Swap(o *Tree) {
	t.value, o.value = o.value, t.value
	t.children, o.children = o.children, t.children
}

// -----------------------------------------------------------------------------
// Key lookup (direct children only)
// -----------------------------------------------------------------------------

// Count returns the number of direct children with key.
func (t *Tree) Count(key string) int {
	keys := t.comparator()
	n := 0
	for _, e := range t.children {
		if keys.Equal(e.Key, key) {
			n++
		}
	}
	return n
}

// Index returns the position of the first direct child with key, or -1.
func (t *Tree) Index(key string) int {
	keys := t.comparator()
	for i, e := range t.children {
		if keys.Equal(e.Key, key) {
			return i
		}
	}
	return -1
}

// Find returns the first direct child with key, or nil.
func (t *Tree) Find(key string) *Tree {
	if i := t.Index(key); i >= 0 {
		return t.children[i].Tree
	}
	return nil
}

// FindAll returns every direct child with key, in order.
func (t *Tree) FindAll(key string) []*Tree {
	keys := t.comparator()
	var res []*Tree
	for _, e := range t.children {
		if keys.Equal(e.Key, key) {
			res = append(res, e.Tree)
		}
	}
	return res
}

// -----------------------------------------------------------------------------
// Ordering
// -----------------------------------------------------------------------------

// Sort reorders the direct children with a stable sort using cmp.
func (t *Tree) Sort(cmp func(a, b Entry) int) {
	slices.SortStableFunc(t.children, cmp)
}

// SortByKey stably orders the direct children by key under t's comparator.
func (t *Tree) SortByKey() {
	compare := keyCompare(t.comparator())
	t.Sort(func(a, b Entry) int { return compare(a.Key, b.Key) })
}

// Reverse reverses the order of the direct children.
func (t *Tree) Reverse() {
	slices.Reverse(t.children)
}

func keyCompare(keys KeyComparator) func(a, b string) int {
	if o, ok := keys.(KeyOrderer); ok {
		return o.Compare
	}
	return strings.Compare
}

// -----------------------------------------------------------------------------
// Copy & compare
// -----------------------------------------------------------------------------

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	return t.cloneWith(t.keys, t.sep)
}

func (t *Tree) cloneWith(keys KeyComparator, sep rune) *Tree {
	res := &Tree{value: t.value, keys: keys, sep: sep}
	if len(t.children) > 0 {
		res.children = make([]Entry, len(t.children))
		for i, e := range t.children {
			res.children[i] = Entry{Key: e.Key, Tree: e.Tree.cloneWith(keys, sep)}
		}
	}
	return res
}

// adopt copies sub so that it is owned by t.
func (t *Tree) adopt(sub *Tree) *Tree {
	if sub == nil {
		return t.newChild()
	}
	return sub.cloneWith(t.keys, t.sep)
}

// Assign replaces t's value and children with a copy of o's.
func (t *Tree) Assign(o *Tree) {
	c := t.adopt(o)
	t.value = c.value
	t.children = c.children
}

// Equal reports whether t and o hold the same value and pairwise-equal
// children in the same order. Keys are compared with t's comparator.
func (t *Tree) Equal(o *Tree) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	return equalWith(t, o, t.comparator())
}

func equalWith(a, b *Tree, keys KeyComparator) bool {
	if a.value != b.value || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		ea, eb := a.children[i], b.children[i]
		if !keys.Equal(ea.Key, eb.Key) {
			return false
		}
		if !equalWith(ea.Tree, eb.Tree, keys) {
			return false
		}
	}
	return true
}
