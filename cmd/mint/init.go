package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mint.build/mint/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init <source-dir>",
	Short: "Register a source directory as this build root's main project",
	Args:  cobra.ExactArgs(1),
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
		if _, err := bc.ReadConfig(); err != nil {
			return err
		}
		if _, err := bc.AddSourceProject(args[0], true); err != nil {
			return err
		}
		if err := bc.Initialize(); err != nil {
			return err
		}
		fmt.Printf("%s initialized build root %s from %s\n", green("ok"), root, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
