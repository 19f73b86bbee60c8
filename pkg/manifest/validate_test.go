package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuflow/pkg/domain"
)

func validManifest() *Manifest {
	return New(map[string]domain.Screen{
		"main": {
			Kind:  domain.KindStatic,
			Title: "main",
			Buttons: []domain.Button{
				{Label: "Tracks", Target: "tracks"},
				{Label: "Chat", Target: "chat"},
			},
		},
		"tracks": {
			Kind:     domain.KindDynamic,
			Title:    "tracks",
			BackPath: "main",
			Source:   &domain.DataSource{URL: "/api/tracks", Method: "GET"},
			Template: &domain.ButtonTemplate{LabelField: "name", TargetScreen: "detail"},
		},
		"detail": {
			Kind:     domain.KindPaginated,
			Title:    "detail",
			BackPath: domain.BackContextual,
			Items:    []string{"a"},
			Target:   "main",
		},
		"chat": {Kind: domain.KindChatInput, Title: "chat", BackPath: "main"},
	}, Defaults{})
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(validManifest(), "main"))
}

func TestValidate_MissingRoot(t *testing.T) {
	err := Validate(validManifest(), "lobby")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `root screen "lobby"`)
}

func TestValidate_DanglingReferences(t *testing.T) {
	m := New(map[string]domain.Screen{
		"main": {
			Kind:  domain.KindStatic,
			Title: "main",
			Buttons: []domain.Button{
				{Label: "Ghost", Target: "ghost"},
				{Label: "Broken"},
				{Label: "Both", Target: "main", Action: "submit_mark"},
			},
		},
		"list": {
			Kind:     domain.KindDynamic,
			Title:    "list",
			BackPath: "nowhere",
			Source:   &domain.DataSource{URL: "/api/x", Method: "GET"},
			Template: &domain.ButtonTemplate{LabelField: "name", TargetScreen: "missing"},
		},
	}, Defaults{})

	err := Validate(m, "main")
	require.Error(t, err)

	var aggr *AggregateError
	require.ErrorAs(t, err, &aggr)
	assert.Len(t, aggr.Errors, 5)
}

func TestValidate_DynamicMissingParts(t *testing.T) {
	m := New(map[string]domain.Screen{
		"main": {Kind: domain.KindChatInput, Title: "main"},
		"dyn":  {Kind: domain.KindDynamic, Title: "dyn"},
	}, Defaults{})

	err := Validate(m, "main")
	require.Error(t, err)

	var aggr *AggregateError
	require.ErrorAs(t, err, &aggr)
	assert.Len(t, aggr.Errors, 2)
	assert.Contains(t, err.Error(), "missing data_source")
	assert.Contains(t, err.Error(), "missing button_template")
}

func TestUnreachable(t *testing.T) {
	m := New(map[string]domain.Screen{
		"main":   {Kind: domain.KindStatic, Title: "m", Buttons: []domain.Button{{Label: "c", Target: "child"}}},
		"child":  {Kind: domain.KindChatInput, Title: "c", BackPath: "main"},
		"orphan": {Kind: domain.KindChatInput, Title: "o"},
	}, Defaults{})

	assert.Equal(t, []string{"orphan"}, Unreachable(m, "main"))
	assert.Empty(t, Unreachable(validManifest(), "main"))
}

func TestUnreachable_DynamicWithoutTemplate(t *testing.T) {
	m := New(map[string]domain.Screen{
		"main": {Kind: domain.KindStatic, Title: "m", Buttons: []domain.Button{{Label: "d", Target: "dyn"}}},
		"dyn":  {Kind: domain.KindDynamic, Title: "d", BackPath: "main"},
		"lost": {Kind: domain.KindChatInput, Title: "l"},
	}, Defaults{})

	assert.Equal(t, []string{"lost"}, Unreachable(m, "main"))
}
