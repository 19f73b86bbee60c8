package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuflow/pkg/adapters/memory"
	"menuflow/pkg/domain"
	"menuflow/pkg/manifest"
	"menuflow/pkg/ports"
	"menuflow/pkg/session"
)

func TestRender_StaticMalformedButtonDegrades(t *testing.T) {
	m := manifest.New(map[string]domain.Screen{
		"main": {
			Kind:  domain.KindStatic,
			Title: "t",
			Buttons: []domain.Button{
				{Label: "Fine", Target: "main"},
				{Label: "Broken"},
			},
		},
	}, manifest.Defaults{})
	sink := &recordingSink{}
	e := New(m, session.NewManager(memory.NewStore(), "main"), WithAudit(sink))

	view := mustRender(t, e, "u1")
	require.Len(t, view.Actions, 2)
	assert.Equal(t, domain.ActionUnknown, view.Actions[1].Type)
	assert.NotEmpty(t, sink.errors)
}

func TestRender_DynamicMissingTemplateDegrades(t *testing.T) {
	m := manifest.New(map[string]domain.Screen{
		"dyn": {
			Kind:     domain.KindDynamic,
			Title:    "t",
			BackPath: "dyn",
		},
	}, manifest.Defaults{})
	sink := &recordingSink{}
	e := New(m, session.NewManager(memory.NewStore(), "dyn"), WithAudit(sink))

	view := mustRender(t, e, "u1")
	assert.Equal(t, domain.KindDynamic, view.ScreenType)

	// No fetch happens; the screen degrades to just its back button.
	require.Len(t, view.Actions, 1)
	assert.Equal(t, domain.ActionBack, view.Actions[0].Type)
	assert.Empty(t, sink.apiCalls)
	assert.NotEmpty(t, sink.errors)
}

func TestRender_DynamicBuildsButtonsFromRecords(t *testing.T) {
	e, sink := newTestEngine(t)
	mustApply(t, e, "u1", domain.Action{Type: domain.ActionNavigate, Target: "tracks"})

	view := mustRender(t, e, "u1")
	assert.Equal(t, domain.KindDynamic, view.ScreenType)

	// Two tracks plus the back button.
	require.Len(t, view.Actions, 3)
	first := view.Actions[0]
	assert.Equal(t, "dynamic_0", first.ID)
	assert.Equal(t, "Game Design", first.Label)
	assert.Equal(t, domain.ActionNavigate, first.Type)
	assert.Equal(t, "track_detail", first.Target)
	assert.Equal(t, "game-design", first.Context["track_id"])

	back := view.Actions[2]
	assert.Equal(t, domain.ActionBack, back.Type)
	assert.Equal(t, "< Back", back.Label)

	assert.Contains(t, sink.apiCalls, "GET /api/teacher/tracks")
}

func TestRender_DynamicURLInterpolatesContext(t *testing.T) {
	e, sink := newTestEngine(t)
	mustApply(t, e, "u1", domain.Action{
		Type:    domain.ActionNavigate,
		Target:  "students",
		Context: map[string]any{"track_id": "game-design", "track_name": "Game Design"},
	})

	view := mustRender(t, e, "u1")
	assert.Equal(t, "Students of Game Design", view.Text)
	assert.Contains(t, sink.apiCalls, "GET /api/tracks/game-design/students")
}

func TestRender_DynamicLabelFallback(t *testing.T) {
	m := manifest.New(map[string]domain.Screen{
		"main": {
			Kind:     domain.KindDynamic,
			Title:    "t",
			Source:   &domain.DataSource{URL: "/api/things", Method: "GET"},
			Template: &domain.ButtonTemplate{LabelField: "name", TargetScreen: "main", ContextFields: map[string]string{"thing": "missing_key"}},
		},
	}, manifest.Defaults{})
	f := memory.NewFetcher()
	f.Register("/api/things", []map[string]any{{"id": "only-an-id"}})
	e := New(m, session.NewManager(memory.NewStore(), "main"), WithFetcher(f))

	view := mustRender(t, e, "u1")
	require.Len(t, view.Actions, 1)
	assert.Equal(t, "Item 0", view.Actions[0].Label)
	// Missing record key yields an empty string, never a failure.
	assert.Equal(t, "", view.Actions[0].Context["thing"])
}

func TestRender_DynamicEmptyResultIsValid(t *testing.T) {
	m := manifest.New(map[string]domain.Screen{
		"main": {
			Kind:     domain.KindDynamic,
			Title:    "t",
			Source:   &domain.DataSource{URL: "/api/none", Method: "GET"},
			Template: &domain.ButtonTemplate{LabelField: "name", TargetScreen: "main"},
		},
	}, manifest.Defaults{})
	e := New(m, session.NewManager(memory.NewStore(), "main"), WithFetcher(memory.NewFetcher()))

	view := mustRender(t, e, "u1")
	assert.Empty(t, view.Actions)
}

func TestRender_DynamicFetchFailurePropagates(t *testing.T) {
	m := manifest.New(map[string]domain.Screen{
		"main": {
			Kind:     domain.KindDynamic,
			Title:    "t",
			Source:   &domain.DataSource{URL: "/api/broken", Method: "GET"},
			Template: &domain.ButtonTemplate{LabelField: "name", TargetScreen: "main"},
		},
	}, manifest.Defaults{})
	failing := ports.FetcherFunc(func(context.Context, string, string) ([]map[string]any, error) {
		return nil, assert.AnError
	})
	e := New(m, session.NewManager(memory.NewStore(), "main"), WithFetcher(failing))

	_, err := e.Render(context.Background(), "u1")
	require.Error(t, err)
}

func TestRender_PaginatedFirstPage(t *testing.T) {
	e, _ := newTestEngine(t)
	mustApply(t, e, "u1", domain.Action{Type: domain.ActionNavigate, Target: "long_list"})

	view := mustRender(t, e, "u1")
	assert.Equal(t, domain.KindPaginated, view.ScreenType)
	assert.Equal(t, "grid", view.Layout)
	assert.Equal(t, 2, view.Columns)

	// Two items, a next action, the back button; no prev on page 0.
	require.Len(t, view.Actions, 4)
	assert.Equal(t, "paginated_0", view.Actions[0].ID)
	assert.Equal(t, "alpha", view.Actions[0].Label)
	assert.Equal(t, "alpha", view.Actions[0].Payload)
	assert.Equal(t, "item_selected", view.Actions[0].Target)
	assert.Equal(t, "next_page", view.Actions[2].ID)
	assert.Equal(t, domain.ActionBack, view.Actions[3].Type)
}

func TestRender_PaginatedLastPageHasNoNext(t *testing.T) {
	e, _ := newTestEngine(t)
	mustApply(t, e, "u1", domain.Action{Type: domain.ActionNavigate, Target: "long_list"})
	mustApply(t, e, "u1", domain.Action{Type: domain.ActionPaginate, ScreenID: "long_list", Direction: domain.DirectionNext})
	mustApply(t, e, "u1", domain.Action{Type: domain.ActionPaginate, ScreenID: "long_list", Direction: domain.DirectionNext})

	view := mustRender(t, e, "u1")
	// Page 2 of 5 items at size 2: one item, prev, back — no next.
	require.Len(t, view.Actions, 3)
	assert.Equal(t, "epsilon", view.Actions[0].Label)
	assert.Equal(t, "prev_page", view.Actions[1].ID)
}

func TestRender_PaginatedOutOfRangeClampsOnRead(t *testing.T) {
	e, _ := newTestEngine(t)
	mustApply(t, e, "u1", domain.Action{Type: domain.ActionNavigate, Target: "long_list"})
	for i := 0; i < 10; i++ {
		mustApply(t, e, "u1", domain.Action{Type: domain.ActionPaginate, ScreenID: "long_list", Direction: domain.DirectionNext})
	}

	view := mustRender(t, e, "u1")
	// The displayed page is never empty while items exist.
	assert.Equal(t, "epsilon", view.Actions[0].Label)
	// The stored cursor is untouched by the read.
	assert.Equal(t, 10, currentSession(t, e, "u1").Page("long_list"))
}

func TestRender_ChatPaneHasNoActions(t *testing.T) {
	e, _ := newTestEngine(t)
	mustApply(t, e, "u1", domain.Action{Type: domain.ActionNavigate, Target: "chat"})

	view := mustRender(t, e, "u1")
	assert.Equal(t, domain.KindChatInput, view.ScreenType)
	assert.NotNil(t, view.Actions)
	assert.Empty(t, view.Actions)
}

func TestRender_UnknownScreenYieldsErrorViewWithoutHealing(t *testing.T) {
	e, sink := newTestEngine(t)

	// Corrupt the stored session directly; render must not repair it.
	sess := currentSession(t, e, "u1")
	sess.CurrentScreen = "vanished"
	require.NoError(t, e.Sessions().Store().Save(context.Background(), sess))

	view := mustRender(t, e, "u1")
	assert.Equal(t, domain.ScreenTypeError, view.ScreenType)
	require.Len(t, view.Actions, 1)
	assert.Equal(t, domain.ActionBack, view.Actions[0].Type)
	assert.NotEmpty(t, sink.errors)

	assert.Equal(t, "vanished", currentSession(t, e, "u1").CurrentScreen)
}

func TestRender_TitleTemplateLeavesUnresolvedVerbatim(t *testing.T) {
	e, _ := newTestEngine(t)
	mustApply(t, e, "u1", domain.Action{Type: domain.ActionNavigate, Target: "track_detail"})

	view := mustRender(t, e, "u1")
	assert.Equal(t, "Track: {{track_name}}", view.Text)
}

func TestRender_CustomBackLabel(t *testing.T) {
	e, _ := newTestEngine(t)
	mustApply(t, e, "u1", domain.Action{
		Type:    domain.ActionNavigate,
		Target:  "confirm_mark",
		Context: map[string]any{"student_name": "Morgan Reyes", "metric_name": "Creativity"},
	})

	view := mustRender(t, e, "u1")
	assert.Equal(t, "Confirm: mark Morgan Reyes on Creativity?", view.Text)
	back := view.Actions[len(view.Actions)-1]
	assert.Equal(t, domain.ActionBack, back.Type)
	assert.Equal(t, "No", back.Label)
}
