// Package ptree provides an ordered, hierarchical key/value tree.
//
// Every node is a *Tree holding an optional text value and an ordered
// sequence of (key, child) pairs. Keys need not be unique: a tree is a
// multimap whose iteration order is always insertion order.
//
// # Core Types
//
// Tree is the only entity. A KeyComparator chosen once at construction
// decides whether keys compare case-sensitively, and every node created
// beneath a tree inherits it. Path is a separator-delimited sequence of keys
// used to navigate a tree; the default separator is '.'.
//
// # Typed Access
//
// Values are stored as text and converted on access through a Codec looked up
// by the requested Go type. Built-in codecs cover integers, floats, bool,
// string, Char, time.Duration and time.Time; RegisterCodec adds more, and any
// type implementing encoding.TextMarshaler/TextUnmarshaler works without
// registration.
//
//	t := ptree.New()
//	ptree.Put(t, "server.port", 8080)
//	port, err := ptree.Get[int](t, "server.port")
//	host := ptree.GetOr(t, "server.host", "localhost")
//
// Get fails with *types.PathError when a segment is missing and with
// *types.DataError when the value cannot be decoded. GetOr and GetOptional
// turn both into a default.
//
// # Put vs Add
//
// Put replaces the value of the first node at a path (creating it and any
// intermediate nodes if needed) and leaves its children alone. Add always
// appends a new node at the last segment, even if one with that key exists.
//
// Trees are not safe for concurrent mutation.
package ptree
