package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshuapare/ptreekit/cmd/ptreectl/logger"
	"github.com/joshuapare/ptreekit/pkg/infofmt"
	"github.com/joshuapare/ptreekit/pkg/inifmt"
	"github.com/joshuapare/ptreekit/pkg/jsonfmt"
	"github.com/joshuapare/ptreekit/pkg/ptree"
	"github.com/joshuapare/ptreekit/pkg/regfmt"
	"github.com/joshuapare/ptreekit/pkg/xmlfmt"
	"github.com/joshuapare/ptreekit/pkg/yamlfmt"
)

// format binds one adapter package to the CLI.
type format struct {
	name      string
	exts      []string
	read      func(r io.Reader, t *ptree.Tree, source string) error
	readFile  func(name string, t *ptree.Tree) error
	write     func(w io.Writer, t *ptree.Tree) error
	writeFile func(name string, t *ptree.Tree) error
}

// adapter wraps the Read/Write family every format package exports.
func adapter[O, S any](
	name string,
	exts []string,
	read func(io.Reader, *ptree.Tree, ...O) error,
	readFile func(string, *ptree.Tree, ...O) error,
	withSource func(string) O,
	write func(io.Writer, *ptree.Tree, *S) error,
	writeFile func(string, *ptree.Tree, *S) error,
) *format {
	return &format{
		name: name,
		exts: exts,
		read: func(r io.Reader, t *ptree.Tree, source string) error {
			return read(r, t, withSource(source))
		},
		readFile:  func(n string, t *ptree.Tree) error { return readFile(n, t) },
		write:     func(w io.Writer, t *ptree.Tree) error { return write(w, t, nil) },
		writeFile: func(n string, t *ptree.Tree) error { return writeFile(n, t, nil) },
	}
}

var formats = []*format{
	adapter("info", []string{".info"},
		infofmt.Read, infofmt.ReadFile, infofmt.WithSource, infofmt.Write, infofmt.WriteFile),
	adapter("ini", []string{".ini", ".cfg", ".conf"},
		inifmt.Read, inifmt.ReadFile, inifmt.WithSource, inifmt.Write, inifmt.WriteFile),
	adapter("json", []string{".json"},
		jsonfmt.Read, jsonfmt.ReadFile, jsonfmt.WithSource, jsonfmt.Write, jsonfmt.WriteFile),
	adapter("xml", []string{".xml"},
		xmlfmt.Read, xmlfmt.ReadFile, xmlfmt.WithSource, xmlfmt.Write, xmlfmt.WriteFile),
	adapter("yaml", []string{".yaml", ".yml"},
		yamlfmt.Read, yamlfmt.ReadFile, yamlfmt.WithSource, yamlfmt.Write, yamlfmt.WriteFile),
	adapter("reg", []string{".reg"},
		regfmt.Read, regfmt.ReadFile, regfmt.WithSource, regfmt.Write, regfmt.WriteFile),
}

func formatNames() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.name
	}
	return strings.Join(names, ", ")
}

// lookupFormat resolves an explicit format name, or else the extension of
// path. "-" stands for stdin or stdout and needs an explicit name.
func lookupFormat(explicit, path string) (*format, error) {
	if explicit != "" {
		for _, f := range formats {
			if strings.EqualFold(f.name, explicit) {
				return f, nil
			}
		}
		return nil, fmt.Errorf("unknown format %q (must be one of %s)", explicit, formatNames())
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		for _, e := range f.exts {
			if e == ext {
				return f, nil
			}
		}
	}
	if path == "-" {
		return nil, fmt.Errorf("a format flag is required for stdin and stdout")
	}
	return nil, fmt.Errorf("cannot tell the format of %q; use --from or --to", path)
}

func newTree() *ptree.Tree {
	if caseInsensitive {
		return ptree.New(ptree.CaseInsensitive())
	}
	return ptree.New()
}

// loadTree reads path, or stdin for "-", in the format given by explicit
// or the file extension.
func loadTree(path, explicit string) (*ptree.Tree, error) {
	f, err := lookupFormat(explicit, path)
	if err != nil {
		return nil, err
	}
	printVerbose("Reading %s as %s\n", path, f.name)

	t := newTree()
	if path == "-" {
		err = f.read(os.Stdin, t, "")
	} else {
		err = f.readFile(path, t)
	}
	if err != nil {
		logger.Warn("read failed", "file", path, "format", f.name, "err", err)
		return nil, err
	}
	logger.Debug("read", "file", path, "format", f.name, "nodes", t.Size())
	return t, nil
}

// storeTree writes t to path, or stdout for "-".
func storeTree(t *ptree.Tree, path, explicit string) error {
	f, err := lookupFormat(explicit, path)
	if err != nil {
		return err
	}
	printVerbose("Writing %s as %s\n", path, f.name)
	if path == "-" {
		err = f.write(os.Stdout, t)
	} else {
		err = f.writeFile(path, t)
	}
	if err != nil {
		logger.Warn("write failed", "file", path, "format", f.name, "err", err)
		return err
	}
	logger.Debug("wrote", "file", path, "format", f.name)
	return nil
}
