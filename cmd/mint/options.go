package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mint.build/mint/internal/config"
)

var optionsCmd = &cobra.Command{
	Use:   "options [<source-dir>]",
	Short: "Print the project's declared options and their current values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveBuildRoot()
		if err != nil {
			return err
		}
		diags := newDiagSink()
		bc := config.New(diags, nil, false)
		if err := bc.SetBuildRoot(root); err != nil {
			return err
		}

		if len(args) == 1 {
			if _, err := bc.AddSourceProject(args[0], true); err != nil {
				return err
			}
		} else {
			found, err := bc.ReadConfig()
			if err != nil {
				return err
			}
			if !found || bc.MainProject() == nil {
				return fmt.Errorf("no build.mint in %s; pass a source directory or run 'mint init' first", root)
			}
		}

		bc.MainProject().ShowOptions(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	optionsCmd.FParseErrWhitelist.UnknownFlags = true
	rootCmd.AddCommand(optionsCmd)
}
