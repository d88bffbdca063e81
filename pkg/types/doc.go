// Package types defines the shared, dependency-free vocabulary of ptreekit:
// the classified error types returned by the tree core and every format
// adapter, and the Windows registry value types used by the registry mapping.
//
// Design goals:
//   - Typed errors with stable categories (path/data/parse/write/...).
//   - Errors carry enough context (line, source, path, raw value) to build
//     an actionable message without string matching.
//   - errors.Is works against the category sentinels; errors.As against the
//     concrete types.
//
// This package has no dependencies beyond the standard library.
package types
