// Package xmlfmt reads and writes XML property trees.
//
// Elements map to children keyed by their tag name, including any
// namespace prefix as written. Attributes are collected under a child
// named AttrKey and comments become children named CommentKey. How text is
// stored depends on the read flags:
//
//   - by default the text runs of an element are concatenated into its
//     value and whitespace-only runs between markup are dropped;
//   - TrimWhitespace also trims each run and collapses inner whitespace;
//   - NoConcatText keeps every run, whitespace included, as its own
//     TextKey child.
//
// The writer emits an XML declaration followed by the elements, indented
// per WriterSettings. Elements holding text next to child elements are
// written without indentation so that their content reads back unchanged.
package xmlfmt
