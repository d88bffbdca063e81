package ptree

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// KeyComparator decides whether two keys name the same child.
type KeyComparator interface {
	Equal(a, b string) bool
}

// KeyOrderer is implemented by comparators that also define an ordering.
// SortByKey falls back to strings.Compare for comparators that don't.
type KeyOrderer interface {
	Compare(a, b string) int
}

var (
	// CaseSensitiveKeys compares keys byte for byte.
	CaseSensitiveKeys KeyComparator = caseSensitive{}

	// CaseInsensitiveKeys compares keys under Unicode case folding.
	CaseInsensitiveKeys KeyComparator = caseInsensitive{}
)

type caseSensitive struct{}

func (caseSensitive) Equal(a, b string) bool { return a == b }
func (caseSensitive) Compare(a, b string) int { return strings.Compare(a, b) }
func (caseSensitive) String() string { return "case-sensitive" }

type caseInsensitive struct{}

func (caseInsensitive) Equal(a, b string) bool {
	if a == b {
		return true
	}
	if isASCII(a) && isASCII(b) {
		return strings.EqualFold(a, b)
	}
	return foldKey(a) == foldKey(b)
}

func (caseInsensitive) Compare(a, b string) int {
	if isASCII(a) && isASCII(b) {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}
	return strings.Compare(foldKey(a), foldKey(b))
}

func (caseInsensitive) String() string { return "case-insensitive" }

// foldKey applies full Unicode case folding. A Caser is stateful, so each
// call gets its own.
func foldKey(s string) string {
	return cases.Fold().String(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsCaseInsensitive reports whether t compares keys case-insensitively.
func (t *Tree) IsCaseInsensitive() bool {
	return t.comparator().Equal("A", "a")
}
