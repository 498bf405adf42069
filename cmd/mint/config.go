package main

import (
	"fmt"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"mint.build/mint/internal/config"
)

var configInteractive bool

var configCmd = &cobra.Command{
	Use:   "config [--name=value ...]",
	Short: "Apply option overrides and persist them to build.mint",
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
		found, err := bc.ReadConfig()
		if err != nil {
			return err
		}
		if !found || bc.MainProject() == nil {
			return fmt.Errorf("no build.mint in %s; run 'mint init <source-dir>' first", root)
		}
		proj := bc.MainProject()

		overrides, _ := splitBuildArgs(args)
		for _, kv := range overrides {
			if err := proj.SetOption(kv[0], kv[1]); err != nil {
				return err
			}
		}

		if configInteractive {
			if err := runInteractivePrompt(proj); err != nil {
				return err
			}
		}

		if err := bc.Initialize(); err != nil {
			return err
		}
		proj.ShowOptions(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	configCmd.FParseErrWhitelist.UnknownFlags = true
	configCmd.Flags().BoolVar(&configInteractive, "interactive", false, "prompt for any option left at its default")
	rootCmd.AddCommand(configCmd)
}

// runInteractivePrompt walks every declared option that has no current
// value and prompts for one on the terminal, via peterh/liner the same
// way a REPL line-reader would.
func runInteractivePrompt(proj *config.Project) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for _, opt := range proj.FindOptions() {
		if def, _, ok := opt.FindAttr("value"); ok && def.Value != nil {
			continue
		}
		name := opt.Name
		prompt := fmt.Sprintf("%s: ", name)
		if def, _, ok := opt.FindAttr("default"); ok && def.Value != nil {
			prompt = fmt.Sprintf("%s [%s]: ", name, def.Value)
		}
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			return fmt.Errorf("configuration aborted")
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if err := proj.SetOption(name, input); err != nil {
			return err
		}
		line.AppendHistory(input)
	}
	return nil
}
