package ptree

import (
	"slices"
	"strings"
)

// Path is an ordered sequence of key segments.
// The zero value is the empty path, which resolves to the tree itself.
type Path struct {
	segs []string
	sep  rune
}

// ParsePath splits s on DefaultSeparator.
func ParsePath(s string) Path {
	return ParsePathSep(s, DefaultSeparator)
}

// ParsePathSep splits s on sep. The empty string yields the empty path.
// Empty segments are kept: "a..b" names a child with an empty key.
func ParsePathSep(s string, sep rune) Path {
	if s == "" {
		return Path{sep: sep}
	}
	return Path{segs: strings.Split(s, string(sep)), sep: sep}
}

// PathOf builds a path from literal segments. Segments may contain the
// separator character.
func PathOf(segs ...string) Path {
	return Path{segs: slices.Clone(segs)}
}

// Separator returns the separator used by String and Append.
func (p Path) Separator() rune {
	if p.sep == 0 {
		return DefaultSeparator
	}
	return p.sep
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string { return slices.Clone(p.segs) }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// Empty reports whether p has no segments.
func (p Path) Empty() bool { return len(p.segs) == 0 }

// Join returns p followed by the segments of o.
func (p Path) Join(o Path) Path {
	segs := make([]string, 0, len(p.segs)+len(o.segs))
	segs = append(segs, p.segs...)
	segs = append(segs, o.segs...)
	return Path{segs: segs, sep: p.sep}
}

// Append splits s with p's separator and appends the result.
func (p Path) Append(s string) Path {
	return p.Join(ParsePathSep(s, p.Separator()))
}

// Child appends a single literal segment.
func (p Path) Child(key string) Path {
	return p.Join(Path{segs: []string{key}})
}

// Reduce splits off the first segment. It returns ("", p) for an empty path.
func (p Path) Reduce() (string, Path) {
	if len(p.segs) == 0 {
		return "", p
	}
	return p.segs[0], Path{segs: p.segs[1:], sep: p.sep}
}

// Last returns the final segment, or "" for the empty path.
func (p Path) Last() string {
	if len(p.segs) == 0 {
		return ""
	}
	return p.segs[len(p.segs)-1]
}

// Parent returns p without its final segment.
func (p Path) Parent() Path {
	if len(p.segs) == 0 {
		return p
	}
	return Path{segs: p.segs[:len(p.segs)-1], sep: p.sep}
}

// String joins the segments with the path's separator.
func (p Path) String() string {
	return strings.Join(p.segs, string(p.Separator()))
}
