package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newConvertCmd())
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a file from one format to another",
		Long: `The convert command reads a file and writes the same tree in another
format. Formats follow the file extensions; --from and --to override them
and are required when "-" stands for stdin or stdout. The output file is
replaced atomically and left alone when the tree cannot be represented in
the target format.

Example:
  ptreectl convert app.ini app.json
  ptreectl convert settings.reg settings.yaml
  cat app.info | ptreectl convert --from info --to xml - -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
	return cmd
}

func runConvert(args []string) error {
	t, err := loadTree(args[0], fromFormat)
	if err != nil {
		return err
	}
	if err := storeTree(t, args[1], toFormat); err != nil {
		return err
	}
	if args[1] != "-" {
		printInfo("Converted %s to %s (%d nodes)\n", args[0], args[1], t.Size())
	}
	return nil
}
