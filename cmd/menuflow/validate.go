package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"menuflow/pkg/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Check the screen manifest for consistency",
	Long:  `Loads the manifest and reports dangling navigation targets, broken back paths, and unreachable screens.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Manifest is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.Manifest.Path
	if len(args) > 0 {
		path = args[0]
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	if err := manifest.Validate(m, cfg.Manifest.RootScreen); err != nil {
		return err
	}

	for _, id := range manifest.Unreachable(m, cfg.Manifest.RootScreen) {
		fmt.Printf("warning: screen %q is unreachable from %q\n", id, cfg.Manifest.RootScreen)
	}
	return nil
}
