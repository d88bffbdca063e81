// Package jsonfmt reads and writes JSON property trees.
//
// Objects become named children and arrays become children with empty
// keys, in order. Scalars keep their literal text: numbers are not
// renormalized, true and false are stored as written, and null becomes the
// empty value.
//
// The reader is permissive: it accepts // and /* */ comments wherever
// whitespace is allowed, any value (not only an object) at the top level,
// and adjacent string literals, which concatenate.
//
// The writer emits every value as a JSON string. A node whose children all
// have empty keys becomes an array, any other node with children an
// object. Nodes holding both a value and children cannot be written.
package jsonfmt
