// Package infofmt reads and writes the INFO property-tree format.
//
// INFO is a brace-nested key/value text format:
//
//	; comment
//	key1 value1
//	key2 "quoted value" ; trailing comment
//	key3
//	{
//	    child "con" "catenated"
//	    long "first half" \
//	         "second half"
//	}
//	#include "other.info"
//
// Keys and values are bare words or double-quoted strings. Adjacent quoted
// strings concatenate, and a backslash after a quoted string continues it on
// the next line. Quoted strings understand the escapes \0 \a \b \f \n \r \t
// \v \' \" and \\.
//
// An #include directive splices the top-level entries of another file into
// the current scope. Files are located through a Resolver; the default
// resolves names relative to the including file.
package infofmt
