package infofmt

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/joshuapare/ptreekit/pkg/types"
)

// Resolver locates the file named by an #include directive. from is the
// source name of the including input (types.StreamSource for unnamed
// input). It returns the file content and the source name to report for it.
type Resolver interface {
	Resolve(name, from string) (data []byte, source string, err error)
}

// FileResolver reads includes from the OS filesystem, relative to the
// directory of the including file.
type FileResolver struct{}

func (FileResolver) Resolve(name, from string) ([]byte, string, error) {
	p := name
	if !filepath.IsAbs(p) && from != "" && from != types.StreamSource {
		p = filepath.Join(filepath.Dir(from), p)
	}
	data, err := os.ReadFile(p)
	return data, p, err
}

// FSResolver reads includes from an fs.FS using slash-separated paths
// relative to the including file.
type FSResolver struct {
	FS fs.FS
}

func (r FSResolver) Resolve(name, from string) ([]byte, string, error) {
	p := name
	if from != "" && from != types.StreamSource {
		p = path.Join(path.Dir(from), name)
	}
	p = path.Clean(p)
	data, err := fs.ReadFile(r.FS, p)
	return data, p, err
}
