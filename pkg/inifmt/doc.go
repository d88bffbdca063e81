// Package inifmt reads and writes two-level INI files.
//
//	; comment
//	# also a comment
//	rootkey = value
//	[section]        ; trailing comment
//	key = value      ; trailing comment
//
// Keys before the first section belong to the root. Every [section]
// becomes a top-level node and its keys become that node's children, so a
// tree read from INI is at most two levels deep. Re-opening a section
// continues it.
//
// Unlike INFO, INI has no way to express repeated keys, deeper nesting or a
// section that carries a value, and Write reports such trees as
// *types.WriteError.
package inifmt
