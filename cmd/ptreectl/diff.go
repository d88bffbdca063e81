package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/joshuapare/ptreekit/pkg/infofmt"
	"github.com/joshuapare/ptreekit/pkg/ptree"
)

var diffSort bool

func init() {
	cmd := newDiffCmd()
	cmd.Flags().BoolVar(&diffSort, "sort", false, "Sort keys at every level before comparing")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare two files and show differences",
		Long: `The diff command loads two files, which may be in different formats,
and compares the trees. Differences are shown as a line diff of both trees
rendered as INFO. The exit status is 1 when the trees differ.

Example:
  ptreectl diff before.ini after.ini
  ptreectl diff app.json app.yaml --sort
  ptreectl diff -i old.reg new.reg`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

func runDiff(args []string) error {
	a, err := loadTree(args[0], fromFormat)
	if err != nil {
		return err
	}
	b, err := loadTree(args[1], fromFormat)
	if err != nil {
		return err
	}
	if diffSort {
		sortDeep(a)
		sortDeep(b)
	}
	if a.Equal(b) {
		printInfo("No differences\n")
		return nil
	}

	textA, err := diffText(a)
	if err != nil {
		return fmt.Errorf("render %s: %w", args[0], err)
	}
	textB, err := diffText(b)
	if err != nil {
		return fmt.Errorf("render %s: %w", args[1], err)
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "--- %s\n+++ %s\n", args[0], args[1])
		fmt.Fprint(os.Stdout, lineDiff(textA, textB))
	}
	return errSilent
}

// diffText renders t as INFO. A root value, which INFO cannot hold, is
// moved into a leading "(root)" node.
func diffText(t *ptree.Tree) (string, error) {
	if t.HasValue() {
		c := t.Clone()
		c.PushFront("(root)", ptree.NewValue(t.Value()))
		c.SetValue("")
		t = c
	}
	return infofmt.String(t)
}

// lineDiff returns a +/- prefixed line diff of a and b.
func lineDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	add := color.New(color.FgGreen).SprintFunc()
	del := color.New(color.FgRed).SprintFunc()
	var out strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				out.WriteString(add("+" + line))
			case diffmatchpatch.DiffDelete:
				out.WriteString(del("-" + line))
			default:
				out.WriteString(" " + line)
			}
		}
	}
	return out.String()
}
