// Package testutil holds helpers shared by the adapter tests: structural
// tree comparison, size metrics, round-trip checks and temp files.
package testutil
