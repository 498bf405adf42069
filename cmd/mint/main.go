// Command mint is Mint's build tool entry point: init, options, config,
// and build subcommands layered over a cobra.Command tree. Grounded on
// the teacher's cmd/ailang/main.go for the overall command-dispatch
// shape and fatih/color usage, but built on spf13/cobra+pflag instead
// of the teacher's stdlib flag package.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mint.build/mint/internal/diagnostics"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// buildRoot, when empty, defaults to the current working directory;
// every subcommand resolves it the same way so `mint build` run from a
// build directory behaves the same as one given --build-dir explicitly.
var buildRoot string

var rootCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint is a build configuration and scheduling tool",
	Long: `Mint evaluates a project's module.mint build configuration,
resolves its declared targets and options, and drives a bounded-
parallelism scheduler over whichever targets are out of date.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&buildRoot, "build-dir", "", "build root directory (default: current directory)")
}

func resolveBuildRoot() (string, error) {
	if buildRoot != "" {
		return buildRoot, nil
	}
	return os.Getwd()
}

func newDiagSink() *diagnostics.Sink {
	return diagnostics.NewSink(os.Stderr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
}
