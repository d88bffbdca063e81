package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/ptreekit/pkg/ptree"
)

var (
	treeDepth int
	treeASCII bool
	treeSort  bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 for no limit)")
	cmd.Flags().BoolVar(&treeASCII, "ascii", false, "ASCII-only characters")
	cmd.Flags().BoolVar(&treeSort, "sort", false, "Sort keys at every level")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file> [path]",
		Short: "Display tree structure",
		Long: `The tree command draws the nodes of a file with their values. Colors
are used when stdout is a terminal and --no-color is not set.

Example:
  ptreectl tree app.info
  ptreectl tree app.json server --depth 1
  ptreectl tree settings.reg --ascii --sort`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	t, err := loadTree(args[0], fromFormat)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		if t, err = t.GetChild(args[1]); err != nil {
			return err
		}
	}
	if treeSort {
		t = t.Clone()
		sortDeep(t)
	}
	p := newTreePrinter(os.Stdout, treeASCII, treeDepth)
	p.print(t)
	return nil
}

// sortDeep sorts the keys of every node below t.
func sortDeep(t *ptree.Tree) {
	t.SortByKey()
	for _, child := range t.All() {
		sortDeep(child)
	}
}

type treePrinter struct {
	w        io.Writer
	maxDepth int
	branch   string
	last     string
	pipe     string
	key      func(a ...any) string
	value    func(a ...any) string
	dim      func(a ...any) string
}

func newTreePrinter(w io.Writer, ascii bool, maxDepth int) *treePrinter {
	p := &treePrinter{
		w:        w,
		maxDepth: maxDepth,
		branch:   "├── ",
		last:     "└── ",
		pipe:     "│   ",
		key:      color.New(color.FgCyan, color.Bold).SprintFunc(),
		value:    color.New(color.FgGreen).SprintFunc(),
		dim:      color.New(color.Faint).SprintFunc(),
	}
	if ascii {
		p.branch, p.last, p.pipe = "|-- ", "`-- ", "|   "
	}
	return p
}

func (p *treePrinter) print(t *ptree.Tree) {
	if t.HasValue() {
		fmt.Fprintln(p.w, p.value(strconv.Quote(t.Value())))
	} else {
		fmt.Fprintln(p.w, p.dim("."))
	}
	p.children(t, "", 1)
}

func (p *treePrinter) children(t *ptree.Tree, prefix string, depth int) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		if !t.Empty() {
			fmt.Fprintf(p.w, "%s%s%s\n", prefix, p.last, p.dim(fmt.Sprintf("... %d more", t.Len())))
		}
		return
	}
	n := t.Len()
	i := 0
	for key, child := range t.All() {
		i++
		connector, next := p.branch, p.pipe
		if i == n {
			connector, next = p.last, "    "
		}
		label := p.key(key)
		if key == "" {
			label = p.dim("(empty)")
		}
		if child.HasValue() {
			label += " " + p.value(strconv.Quote(child.Value()))
		}
		fmt.Fprintf(p.w, "%s%s%s\n", prefix, connector, label)
		p.children(child, prefix+next, depth+1)
	}
}
