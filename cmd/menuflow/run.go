package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"menuflow/internal/cli"
	"menuflow/internal/tui"
)

// runCmd starts the interactive terminal front-end.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive menu in the terminal",
	Long:  `Starts the engine in interactive mode: plain numbered menus by default, or a full-screen TUI with --tui.`,
	Run: func(cmd *cobra.Command, args []string) {
		app, _, err := buildApp(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		userID, _ := cmd.Flags().GetString("user")
		useTUI, _ := cmd.Flags().GetBool("tui")

		if useTUI {
			if err := tui.Run(cmd.Context(), app, userID); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		cli.PrintBanner(os.Stdout)
		loop := cli.New(app, userID, cli.WithIO(os.Stdin, os.Stdout))
		if err := loop.Run(cmd.Context()); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("user", "u", "local", "User id for the interactive session")
	runCmd.Flags().Bool("tui", false, "Use the full-screen TUI front-end")

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
}
