package ptree

import (
	"strings"
	"testing"
)

func TestNewTree(t *testing.T) {
	tree := New()
	if !tree.Empty() {
		t.Fatal("new tree should be empty")
	}
	if tree.HasValue() {
		t.Errorf("new tree should have no value, got %q", tree.Value())
	}
	if tree.Separator() != '.' {
		t.Errorf("default separator should be '.', got %q", tree.Separator())
	}
	if tree.IsCaseInsensitive() {
		t.Error("default tree should be case-sensitive")
	}
	if tree.Size() != 1 {
		t.Errorf("Size() = %d, want 1", tree.Size())
	}
}

func TestSequenceOps(t *testing.T) {
	tree := New()
	tree.Append("b").SetValue("2")
	tree.PushBack("c", NewValue("3"))
	tree.PushFront("a", NewValue("1"))

	if got := strings.Join(tree.Keys(), ","); got != "a,b,c" {
		t.Fatalf("Keys() = %q, want a,b,c", got)
	}
	if k, n := tree.Front(); k != "a" || n.Value() != "1" {
		t.Errorf("Front() = %q/%q", k, n.Value())
	}
	if k, n := tree.Back(); k != "c" || n.Value() != "3" {
		t.Errorf("Back() = %q/%q", k, n.Value())
	}

	tree.Insert(1, "x", NewValue("9"))
	if k, _ := tree.At(1); k != "x" {
		t.Errorf("At(1) key = %q, want x", k)
	}

	if k, _ := tree.PopFront(); k != "a" {
		t.Errorf("PopFront() = %q, want a", k)
	}
	if k, _ := tree.PopBack(); k != "c" {
		t.Errorf("PopBack() = %q, want c", k)
	}
	if k, _ := tree.EraseAt(0); k != "x" {
		t.Errorf("EraseAt(0) = %q, want x", k)
	}
	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}

	tree.Clear()
	if k, n := tree.PopBack(); k != "" || n != nil {
		t.Error("PopBack on empty tree should return nothing")
	}
}

func TestInsertCopiesSubtree(t *testing.T) {
	sub := NewValue("v")
	sub.Append("inner").SetValue("i")

	tree := New(CaseInsensitive())
	stored := tree.PushBack("k", sub)
	sub.SetValue("changed")
	sub.Append("more")

	if stored.Value() != "v" || stored.Len() != 1 {
		t.Fatal("stored subtree should be independent of the original")
	}
	if !stored.IsCaseInsensitive() {
		t.Error("stored subtree should take the receiver's case mode")
	}
	if !stored.Find("INNER").IsCaseInsensitive() {
		t.Error("grandchildren should take the receiver's case mode")
	}
}

func TestCaseModeCounts(t *testing.T) {
	ci := New(CaseInsensitive())
	ci.Append("key1")
	ci.Append("KEY2")
	for _, k := range []string{"KEY1", "key1", "key2", "KEY2"} {
		if got := ci.Count(k); got != 1 {
			t.Errorf("case-insensitive Count(%q) = %d, want 1", k, got)
		}
	}

	cs := New()
	cs.Append("key1")
	cs.Append("KEY2")
	if got := cs.Count("KEY1"); got != 0 {
		t.Errorf("case-sensitive Count(KEY1) = %d, want 0", got)
	}
	if got := cs.Count("key1"); got != 1 {
		t.Errorf("case-sensitive Count(key1) = %d, want 1", got)
	}
}

func TestCaseInsensitiveUnicode(t *testing.T) {
	tree := New(CaseInsensitive())
	tree.Append("Straße")
	tree.Append("ΣΊΣΥΦΟΣ")
	if tree.Find("STRASSE") == nil {
		t.Error("full case folding should match ß against SS")
	}
	if tree.Find("σίσυφος") == nil {
		t.Error("Greek keys should match regardless of case")
	}
}

func TestFindAllAndErase(t *testing.T) {
	tree := New()
	tree.Append("k").SetValue("1")
	tree.Append("other")
	tree.Append("k").SetValue("2")

	all := tree.FindAll("k")
	if len(all) != 2 || all[0].Value() != "1" || all[1].Value() != "2" {
		t.Fatalf("FindAll(k) returned %d nodes in wrong order", len(all))
	}
	if tree.Index("other") != 1 {
		t.Errorf("Index(other) = %d, want 1", tree.Index("other"))
	}
	if n := tree.Erase("k"); n != 2 {
		t.Errorf("Erase(k) = %d, want 2", n)
	}
	if tree.Len() != 1 || tree.Find("k") != nil {
		t.Error("Erase should remove every matching child")
	}
}

func TestSortAndReverse(t *testing.T) {
	tree := New()
	for _, k := range []string{"c", "a", "b", "a"} {
		tree.Append(k).SetValue(k + "v")
	}
	tree.Find("a").SetValue("first")

	tree.SortByKey()
	if got := strings.Join(tree.Keys(), ""); got != "aabc" {
		t.Fatalf("SortByKey order = %q, want aabc", got)
	}
	if _, n := tree.At(0); n.Value() != "first" {
		t.Error("SortByKey should be stable")
	}

	tree.Reverse()
	if got := strings.Join(tree.Keys(), ""); got != "cbaa" {
		t.Errorf("Reverse order = %q, want cbaa", got)
	}

	tree.Sort(func(a, b Entry) int { return strings.Compare(a.Tree.Value(), b.Tree.Value()) })
	if k, _ := tree.Front(); k != "a" {
		t.Errorf("custom Sort front = %q, want a (value av)", k)
	}
}

func TestSortByKeyCaseInsensitive(t *testing.T) {
	tree := New(CaseInsensitive())
	for _, k := range []string{"b", "A", "C"} {
		tree.Append(k)
	}
	tree.SortByKey()
	if got := strings.Join(tree.Keys(), ""); got != "AbC" {
		t.Errorf("SortByKey = %q, want AbC", got)
	}
}

func TestEqual(t *testing.T) {
	build := func(opts ...Option) *Tree {
		tree := New(opts...)
		tree.Append("Key").SetValue("v")
		tree.Append("Sub").Append("x").SetValue("1")
		return tree
	}

	a, b := build(), build()
	if !a.Equal(b) {
		t.Fatal("identical trees should be equal")
	}

	b.Find("Sub").Find("x").SetValue("2")
	if a.Equal(b) {
		t.Error("trees with different nested values should differ")
	}

	c := New()
	c.Append("Sub").Append("x").SetValue("1")
	c.Append("Key").SetValue("v")
	if a.Equal(c) {
		t.Error("child order is part of equality")
	}

	lower := New(CaseInsensitive())
	lower.Append("key").SetValue("v")
	lower.Append("sub").Append("X").SetValue("1")
	if !lower.Equal(build()) {
		t.Error("case-insensitive receiver should ignore key case")
	}
	if build().Equal(lower) {
		t.Error("case-sensitive receiver should respect key case")
	}
}

func TestCloneAndSwap(t *testing.T) {
	a := New()
	a.SetValue("root")
	a.Append("k").SetValue("v")

	c := a.Clone()
	if !c.Equal(a) {
		t.Fatal("clone should equal original")
	}
	c.Find("k").SetValue("changed")
	if a.Find("k").Value() != "v" {
		t.Error("clone should be deep")
	}

	b := New(CaseInsensitive())
	b.Append("other")
	a.Swap(b)
	if a.Find("other") == nil || b.Find("k") == nil {
		t.Error("Swap should exchange children")
	}
	if a.IsCaseInsensitive() || !b.IsCaseInsensitive() {
		t.Error("Swap should not exchange case mode")
	}
	if b.Value() != "root" || a.HasValue() {
		t.Error("Swap should exchange values")
	}
}

func TestAllStopsEarly(t *testing.T) {
	tree := New()
	for _, k := range []string{"a", "b", "c"} {
		tree.Append(k)
	}
	var seen []string
	for k := range tree.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	if strings.Join(seen, "") != "ab" {
		t.Errorf("iteration = %v, want [a b]", seen)
	}
}
