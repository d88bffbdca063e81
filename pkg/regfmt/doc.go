// Package regfmt maps Windows registry keys onto property trees.
//
// A key's subkeys become children named after them and its default value
// becomes the node's value. Named values are stored as children of a
// reserved ValuesKey child, and their registry types, by name, under a
// reserved TypesKey child. The default value's type is recorded under the
// empty name when it is not REG_SZ; a named value without a recorded type
// is written as REG_SZ.
//
// Value data is translated to text per type: REG_NONE and REG_BINARY as
// space separated hex byte pairs, REG_DWORD and REG_QWORD as decimal
// numbers, REG_SZ and REG_EXPAND_SZ as the string itself.
//
// The registry is reached through the Key and WritableKey interfaces.
// MemKey keeps keys in memory, the Read and Write families go through
// .reg export files, and on Windows OpenKey reaches the live registry.
package regfmt
