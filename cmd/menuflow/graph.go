package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"menuflow/internal/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the navigation graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the screen manifest. With --user, overlays that session's return stack and current screen.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGraph(cmd, args); err != nil {
			fmt.Printf("Error generating graph: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	graphCmd.Flags().String("user", "", "Session to overlay on the graph")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	app, _, err := buildApp(cmd)
	if err != nil {
		return err
	}

	var overlay *graph.Overlay
	if userID, _ := cmd.Flags().GetString("user"); userID != "" {
		sess, err := app.Session(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to load session %q: %w", userID, err)
		}
		overlay = &graph.Overlay{
			VisitedScreens: sess.ReturnStack,
			CurrentScreen:  sess.CurrentScreen,
		}
	}

	fmt.Print(graph.GenerateMermaid(app.Manifest(), overlay))
	return nil
}
