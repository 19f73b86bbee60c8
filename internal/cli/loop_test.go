package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuflow"
	"menuflow/pkg/adapters/memory"
	"menuflow/pkg/domain"
	"menuflow/pkg/manifest"
)

func newTestApp(t *testing.T) *menuflow.App {
	t.Helper()

	m := manifest.New(map[string]domain.Screen{
		"main": {
			Kind:  domain.KindStatic,
			Title: "Main menu",
			Buttons: []domain.Button{
				{Label: "Tracks", Target: "tracks"},
				{Label: "Chat", Target: "chat"},
			},
		},
		"tracks": {
			Kind:     domain.KindDynamic,
			Title:    "Pick a track",
			BackPath: "main",
			Source:   &domain.DataSource{URL: "/api/tracks", Method: "GET"},
			Template: &domain.ButtonTemplate{
				LabelField:    "name",
				TargetScreen:  "detail",
				ContextFields: map[string]string{"track_id": "id"},
			},
		},
		"detail": {Kind: domain.KindStatic, Title: "Detail of {{track_id}}", BackPath: "tracks"},
		"chat":   {Kind: domain.KindChatInput, Title: "Chat away", BackPath: "main"},
	}, manifest.Defaults{
		BackButtonLabel: "< Back",
		ChatMode:        manifest.ChatModeDefaults{FinishCommands: []string{"/done"}},
	})

	fetcher := memory.NewFetcher()
	fetcher.Register("/api/tracks", []map[string]any{{"id": "a", "name": "Track A"}})

	app, err := menuflow.New("", menuflow.WithManifest(m), menuflow.WithFetcher(fetcher))
	require.NoError(t, err)
	return app
}

func runLoop(t *testing.T, app *menuflow.App, input string) string {
	t.Helper()
	var out bytes.Buffer
	loop := New(app, "u1", WithIO(strings.NewReader(input), &out), WithPlainText())
	require.NoError(t, loop.Run(context.Background()))
	return out.String()
}

func TestLoop_NavigatesByNumber(t *testing.T) {
	app := newTestApp(t)

	out := runLoop(t, app, "1\n1\n")

	assert.Contains(t, out, "Main menu")
	assert.Contains(t, out, "1. Tracks")
	assert.Contains(t, out, "Pick a track")
	assert.Contains(t, out, "1. Track A")
	assert.Contains(t, out, "Detail of a")

	sess, err := app.Session(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "detail", sess.CurrentScreen)
}

func TestLoop_RejectsInvalidChoice(t *testing.T) {
	app := newTestApp(t)

	out := runLoop(t, app, "99\n")
	assert.Contains(t, out, "pick a number")
}

func TestLoop_ChatModeForwardsText(t *testing.T) {
	app := newTestApp(t)

	out := runLoop(t, app, "2\nhello there\n/done\n")

	assert.Contains(t, out, "chat mode")
	// The finish command lands back on the root menu.
	assert.Equal(t, "main", mustSession(t, app).CurrentScreen)
	_ = out
}

func TestLoop_QuitStopsImmediately(t *testing.T) {
	app := newTestApp(t)

	out := runLoop(t, app, "/quit\n1\n")
	assert.NotContains(t, out, "Pick a track")
}

func TestLoop_ResetReturnsToRoot(t *testing.T) {
	app := newTestApp(t)

	runLoop(t, app, "1\n/reset\n")
	assert.Equal(t, "main", mustSession(t, app).CurrentScreen)
}

func mustSession(t *testing.T, app *menuflow.App) *domain.Session {
	t.Helper()
	sess, err := app.Session(context.Background(), "u1")
	require.NoError(t, err)
	return sess
}
