package main

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/joshuapare/ptreekit/pkg/ptree"
)

var (
	getAs      string
	getDefault string
	getSep     string
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().StringVar(&getAs, "as", "", "Decode the value as string, int, uint, float, bool or duration")
	cmd.Flags().StringVar(&getDefault, "default", "", "Print this instead of failing when the path is missing")
	cmd.Flags().StringVar(&getSep, "sep", ".", "Path separator")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Print the value or subtree at a path",
		Long: `The get command prints the value stored at a path. A node with children
is printed as a subtree in the --to format, INFO by default.

Example:
  ptreectl get app.info server.port
  ptreectl get app.info server.port --as int
  ptreectl get settings.reg 'HKEY_CURRENT_USER/Software/Demo' --sep /
  ptreectl get app.json missing.key --default 8080`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args, cmd.Flags().Changed("default"))
		},
	}
	return cmd
}

func runGet(args []string, hasDefault bool) error {
	sep, size := utf8.DecodeRuneInString(getSep)
	if size == 0 || size != len(getSep) {
		return fmt.Errorf("separator must be a single character, got %q", getSep)
	}

	t, err := loadTree(args[0], fromFormat)
	if err != nil {
		return err
	}
	n, err := t.GetChildPath(ptree.ParsePathSep(args[1], sep))
	if err != nil {
		if hasDefault {
			fmt.Println(getDefault)
			return nil
		}
		return err
	}

	if !n.Empty() && getAs == "" {
		name := toFormat
		if name == "" {
			name = "info"
		}
		f, err := lookupFormat(name, "")
		if err != nil {
			return err
		}
		return f.write(os.Stdout, n)
	}
	s, err := typedValue(n, getAs)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

// typedValue decodes n's value through the tree's codecs and formats it
// back in canonical form.
func typedValue(n *ptree.Tree, as string) (string, error) {
	switch as {
	case "", "string":
		return n.Value(), nil
	case "int":
		v, err := ptree.Value[int64](n)
		return fmt.Sprint(v), err
	case "uint":
		v, err := ptree.Value[uint64](n)
		return fmt.Sprint(v), err
	case "float":
		v, err := ptree.Value[float64](n)
		return fmt.Sprint(v), err
	case "bool":
		v, err := ptree.Value[bool](n)
		return fmt.Sprint(v), err
	case "duration":
		v, err := ptree.Value[time.Duration](n)
		return v.String(), err
	}
	return "", fmt.Errorf("unknown type %q for --as", as)
}
