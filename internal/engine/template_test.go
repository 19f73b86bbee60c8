package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	ctx := map[string]any{
		"track_name": "Game Design",
		"count":      3,
		"missing":    nil,
	}

	assert.Equal(t, "Track: Game Design", RenderTemplate("Track: {{track_name}}", ctx))
	assert.Equal(t, "3 students", RenderTemplate("{{count}} students", ctx))
	assert.Equal(t, "", RenderTemplate("{{missing}}", ctx), "nil values render empty")
	assert.Equal(t, "{{unknown}}", RenderTemplate("{{unknown}}", ctx), "unresolved keys stay verbatim")
	assert.Equal(t, "plain text", RenderTemplate("plain text", ctx))
}

func TestRenderTemplate_RepeatedPlaceholder(t *testing.T) {
	got := RenderTemplate("{{name}} and {{name}}", map[string]any{"name": "x"})
	assert.Equal(t, "x and x", got)
}

func TestRenderTemplate_EmptyContext(t *testing.T) {
	assert.Equal(t, "/api/tracks/{{track_id}}/students",
		RenderTemplate("/api/tracks/{{track_id}}/students", nil))
}
