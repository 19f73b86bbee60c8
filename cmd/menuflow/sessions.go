package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage persistent sessions",
	Long:  `List, inspect, reset, and remove user sessions in the configured store.`,
}

var sessionsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	Run: func(cmd *cobra.Command, args []string) {
		app, _, err := buildApp(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		users, err := app.Sessions().List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(users) == 0 {
			fmt.Println("No active sessions found.")
			return
		}
		fmt.Println("Active sessions:")
		for _, u := range users {
			fmt.Println("- " + u)
		}
	},
}

var sessionsInspectCmd = &cobra.Command{
	Use:   "inspect <user-id>",
	Short: "Inspect the state of a user's session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, _, err := buildApp(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		sess, err := app.Sessions().Store().Load(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", args[0], err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling session: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var sessionsResetCmd = &cobra.Command{
	Use:   "reset <user-id>...",
	Short: "Reset one or more sessions to the root screen",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, _, err := buildApp(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		for _, userID := range args {
			if _, err := app.Reset(cmd.Context(), userID); err != nil {
				fmt.Printf("Error resetting '%s': %v\n", userID, err)
				os.Exit(1)
			}
			fmt.Printf("Reset session '%s'\n", userID)
		}
	},
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm <user-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, _, err := buildApp(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		hasError := false
		for _, userID := range args {
			if err := app.Sessions().Delete(cmd.Context(), userID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", userID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", userID)
			}
		}
		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsLsCmd)
	sessionsCmd.AddCommand(sessionsInspectCmd)
	sessionsCmd.AddCommand(sessionsResetCmd)
	sessionsCmd.AddCommand(sessionsRmCmd)
}
