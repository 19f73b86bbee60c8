package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuflow/pkg/domain"
)

const sampleJSON = `{
  "screens": {
    "main": {
      "type": "static",
      "title": "You are in the main menu",
      "layout": "grid",
      "columns": 2,
      "buttons": [
        {"label": "Tracks", "target": "tracks"},
        {"label": "Submit", "action": "submit_mark", "payload": "p1"}
      ]
    },
    "tracks": {
      "type": "dynamic",
      "title": "Pick a track",
      "back_path": "main",
      "data_source": {"url": "/api/tracks", "method": "GET"},
      "button_template": {
        "label_field": "name",
        "target_screen": "track_detail",
        "context_fields": {"track_id": "id", "track_name": "name"}
      }
    },
    "track_detail": {
      "type": "paginated",
      "title": "Track: {{track_name}}",
      "back_path": "CONTEXTUAL",
      "supports_multi_select": true,
      "items": ["a", "b", "c"],
      "target": "main"
    },
    "chat": {
      "type": "chat_input",
      "title": "Talk to me"
    }
  },
  "defaults": {
    "back_button_label": "< Back",
    "pagination": {"page_size": 2, "next_label": "Next >", "prev_label": "< Prev"},
    "chat_mode": {"finish_commands": ["/done", "/exit"]}
  }
}`

func TestParse_FullManifest(t *testing.T) {
	m, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	main, ok := m.Screen("main")
	require.True(t, ok)
	assert.Equal(t, "main", main.ID)
	assert.Equal(t, domain.KindStatic, main.Kind)
	assert.True(t, main.HasGrid())
	assert.Equal(t, 2, main.Columns)
	require.Len(t, main.Buttons, 2)
	assert.Equal(t, "tracks", main.Buttons[0].Target)
	assert.Equal(t, "submit_mark", main.Buttons[1].Action)
	assert.Equal(t, "p1", main.Buttons[1].Payload)

	tracks, ok := m.Screen("tracks")
	require.True(t, ok)
	require.NotNil(t, tracks.Source)
	assert.Equal(t, "/api/tracks", tracks.Source.URL)
	require.NotNil(t, tracks.Template)
	assert.Equal(t, "id", tracks.Template.ContextFields["track_id"])

	detail, ok := m.Screen("track_detail")
	require.True(t, ok)
	assert.Equal(t, domain.BackContextual, detail.BackPath)
	assert.Equal(t, domain.SelectMulti, detail.SelectionMode())
	assert.Equal(t, []string{"a", "b", "c"}, detail.Items)

	d := m.Defaults()
	assert.Equal(t, "< Back", d.BackButtonLabel)
	assert.Equal(t, 2, d.MustPageSize())
	assert.True(t, d.IsFinishCommand("  /done "))
	assert.False(t, d.IsFinishCommand("hello"))
}

func TestParse_MissingScreens(t *testing.T) {
	_, err := Parse([]byte(`{"defaults": {}}`))
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{`))
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
}

func TestParse_MissingDefaultsTolerated(t *testing.T) {
	m, err := Parse([]byte(`{"screens": {"main": {"type": "static", "title": "hi", "buttons": []}}}`))
	require.NoError(t, err)
	assert.Equal(t, "", m.Defaults().BackButtonLabel)
	assert.Panics(t, func() { m.Defaults().MustPageSize() })
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := Parse([]byte(`{"screens": {"x": {"type": "carousel", "title": "?"}}}`))
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
}

func TestParse_DynamicMissingSource(t *testing.T) {
	_, err := Parse([]byte(`{"screens": {"x": {"type": "dynamic", "title": "?"}}}`))
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := `
screens:
  main:
    type: static
    title: hello
    buttons:
      - label: Go
        target: main
defaults:
  back_button_label: Back
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	main, ok := m.Screen("main")
	require.True(t, ok)
	assert.Equal(t, "Go", main.Buttons[0].Label)
	assert.Equal(t, "Back", m.Defaults().BackButtonLabel)
}

func TestNew_AssignsIDs(t *testing.T) {
	m := New(map[string]domain.Screen{
		"main": {Kind: domain.KindStatic, Title: "t"},
	}, Defaults{})
	s, ok := m.Screen("main")
	require.True(t, ok)
	assert.Equal(t, "main", s.ID)
}
