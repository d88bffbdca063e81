// Package regtext reads and writes Windows .reg export files.
//
// A Document lists keys in file order, each with its values as raw typed
// data. Key deletion ([-path]) and value deletion ("name"=-) lines are
// rejected: a document describes content, not edits.
package regtext

const (
	// Header is the first line of a version 5 .reg file.
	Header = "Windows Registry Editor Version 5.00"

	// HeaderV4 is the header of the older ANSI format, accepted on read.
	HeaderV4 = "REGEDIT4"

	// FormatName identifies .reg text in errors.
	FormatName = "reg"
)

const (
	keyOpen            = "["
	keyClose           = "]"
	deletePrefix       = "-"
	defaultValuePrefix = "@="
	commentPrefix      = ";"
	quote              = `"`
	backslash          = `\`
	crlf               = "\r\n"

	dwordPrefix    = "dword:"
	hexPrefix      = "hex:"
	hexTypedPrefix = "hex("

	// hexLineWidth is the column after which regedit continues hex data on
	// the next line.
	hexLineWidth = 77
	// hexIndent starts continuation lines.
	hexIndent = "  "
)
