//go:build !windows

package textio

import "github.com/google/renameio/v2"

// writeFileAtomic writes to a temp file next to name, fsyncs and renames it
// into place, so readers never see a partial file.
func writeFileAtomic(name string, data []byte) error {
	pending, err := renameio.NewPendingFile(name, renameio.WithPermissions(0o644))
	if err != nil {
		return err
	}
	defer pending.Cleanup() //nolint:errcheck // no-op after a successful replace

	if _, err := pending.Write(data); err != nil {
		return err
	}
	return pending.CloseAtomicallyReplace()
}
