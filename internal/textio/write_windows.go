//go:build windows

package textio

import "os"

// renameio has no atomic replace on Windows.
func writeFileAtomic(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644)
}
