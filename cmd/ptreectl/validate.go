package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/ptreekit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that files parse",
		Long: `The validate command parses each file and reports the first error with
its line number. The exit status is 1 when any file fails.

Example:
  ptreectl validate app.info
  ptreectl validate conf/*.ini --from ini`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	failed := 0
	for _, name := range args {
		t, err := loadTree(name, fromFormat)
		if err == nil {
			printInfo("%s: %s (%d nodes)\n", name, ok("ok"), t.Size())
			continue
		}
		failed++
		var pe *types.ParseError
		if errors.As(err, &pe) && pe.Line > 0 {
			fmt.Printf("%s:%d: %s %s\n", name, pe.Line, bad("invalid"), pe.Msg)
		} else {
			fmt.Printf("%s: %s %v\n", name, bad("invalid"), err)
		}
	}
	if failed > 0 {
		return errSilent
	}
	return nil
}
