package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joshuapare/ptreekit/cmd/ptreectl/logger"
)

var (
	// Global flags
	verbose         bool
	quiet           bool
	noColor         bool
	caseInsensitive bool
	fromFormat      string
	toFormat        string
	logLevel        string
	logFile         string
)

// errSilent makes the process exit non-zero without printing anything
// more; the command already reported the problem.
var errSilent = errors.New("silent failure")

var rootCmd = &cobra.Command{
	Use:   "ptreectl",
	Short: "Read, convert and compare property tree files",
	Long: `ptreectl works with hierarchical configuration files in the INFO, INI,
JSON, XML, YAML and Windows .reg formats. Files are loaded into an ordered
property tree, so any supported format can be converted into any other that
can represent the data.

The format of a file is taken from its extension unless --from or --to
names it.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { logger.Close() },
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		BoolVarP(&caseInsensitive, "case-insensitive", "i", false, "Compare keys case-insensitively")
	rootCmd.PersistentFlags().StringVar(&fromFormat, "from", "", "Input format ("+formatNames()+")")
	rootCmd.PersistentFlags().StringVar(&toFormat, "to", "", "Output format ("+formatNames()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if noColor || (!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)) {
		color.NoColor = true
	}
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	return logger.Init(logger.Options{
		Enabled: logLevel != "" || logFile != "",
		File:    logFile,
		Level:   level,
	})
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			printError("%v\n", err)
		}
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("Error: ")+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
