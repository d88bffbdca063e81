// Package mmfile maps input files read-only so the text readers can decode
// them without an intermediate copy.
package mmfile

func noop() error { return nil }

// With maps path, hands the bytes to fn and unmaps afterwards. fn must not
// retain data.
func With(path string, fn func(data []byte) error) error {
	data, unmap, err := Map(path)
	if err != nil {
		return err
	}
	err = fn(data)
	if uerr := unmap(); err == nil {
		err = uerr
	}
	return err
}
