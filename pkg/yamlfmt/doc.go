// Package yamlfmt reads and writes YAML property trees.
//
// Mappings become named children in document order and sequences become
// children with empty keys. Scalars keep their literal text, so 0x1F or
// 1.5e3 are stored as written; null becomes the empty value. Anchors,
// aliases and merge keys are expanded while reading.
//
// The writer follows the same shape rule as jsonfmt: a node whose
// children all have empty keys becomes a sequence, any other node with
// children a mapping. Values are always written as strings.
package yamlfmt
