package textio

import (
	"fmt"
	"io"
)

// WriteString writes s to w in enc.
func WriteString(w io.Writer, s string, enc Encoding) error {
	return writeTo(w, s, enc, false)
}

// WriteStringBOM is WriteString with a leading byte order mark when enc is
// a Unicode encoding.
func WriteStringBOM(w io.Writer, s string, enc Encoding) error {
	return writeTo(w, s, enc, true)
}

func writeTo(w io.Writer, s string, enc Encoding, bom bool) error {
	data, err := Encode(s, enc, bom)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile encodes s and atomically replaces name with it.
func WriteFile(name, s string, enc Encoding) error {
	return writeFile(name, s, enc, false)
}

// WriteFileBOM is WriteFile with a leading byte order mark when enc is a
// Unicode encoding.
func WriteFileBOM(name, s string, enc Encoding) error {
	return writeFile(name, s, enc, true)
}

func writeFile(name, s string, enc Encoding, bom bool) error {
	data, err := Encode(s, enc, bom)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(name, data); err != nil {
		return fmt.Errorf("textio: write %s: %w", name, err)
	}
	return nil
}
