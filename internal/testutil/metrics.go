package testutil

import "github.com/joshuapare/ptreekit/pkg/ptree"

// Metrics summarizes a tree's size.
type Metrics struct {
	Nodes      int // including the root
	ValueChars int // bytes of all values
	KeyChars   int // bytes of all keys
}

// Measure walks t and totals its metrics.
func Measure(t *ptree.Tree) Metrics {
	var m Metrics
	_ = t.Walk(func(p ptree.Path, n *ptree.Tree) error {
		m.Nodes++
		m.ValueChars += len(n.Value())
		m.KeyChars += len(p.Last())
		return nil
	})
	return m
}
