/*
Package menuflow is a manifest-driven navigation engine for menu-based
conversational interfaces: chat bots, terminal front-ends, and thin HTTP
clients that present a screen of buttons and react to taps.

The whole interface is declared in a single manifest of screens. Static
screens carry a fixed button list; dynamic screens materialize their buttons
from an external data source; paginated screens window a fixed item list; and
chat panes hand the interaction over to free-text input. The engine owns the
per-user session (current screen, accumulated context, return stack,
pagination cursors, recorded selections) and exposes exactly three
operations: render the current view, apply a tapped action, and submit text.

# Usage

Load a manifest, then drive the render/apply loop with the actions the engine
itself produced:

	package main

	import (
		"context"
		"fmt"
		"log"

		"menuflow"
	)

	func main() {
		app, err := menuflow.New("menu-manifest.json")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		view, err := app.Render(ctx, "user-1")
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(view.Text)
		for i, action := range view.Actions {
			fmt.Printf("%d. %s\n", i+1, action.Label)
		}

		// Feed a rendered action back to move the session forward.
		if err := app.Apply(ctx, "user-1", view.Actions[0]); err != nil {
			log.Fatal(err)
		}
	}

Sessions persist through a pluggable store: in-memory for a single process,
Redis for shared deployments. Data-backed screens fetch through the Fetcher
port, so tests and demos can run against canned data while production talks
to a real backend.
*/
package menuflow
