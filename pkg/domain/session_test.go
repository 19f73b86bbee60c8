package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_SeedsUserID(t *testing.T) {
	s := NewSession("u1", "main")
	assert.Equal(t, "main", s.CurrentScreen)
	assert.Equal(t, "u1", s.Context[ContextKeyUserID])
	assert.Empty(t, s.ReturnStack)
	assert.Empty(t, s.Selections)
}

func TestReturnStack_LIFO(t *testing.T) {
	s := NewSession("u1", "main")
	s.PushReturn("a")
	s.PushReturn("b")

	id, ok := s.PopReturn()
	require.True(t, ok)
	assert.Equal(t, "b", id)

	id, ok = s.PopReturn()
	require.True(t, ok)
	assert.Equal(t, "a", id)

	_, ok = s.PopReturn()
	assert.False(t, ok)
}

func TestTurn_ClampsAtZero(t *testing.T) {
	s := NewSession("u1", "main")
	s.Turn("list", -1)
	assert.Equal(t, 0, s.Page("list"))

	s.Turn("list", 1)
	s.Turn("list", 1)
	assert.Equal(t, 2, s.Page("list"))

	// Cursors are per screen, not per user-global.
	assert.Equal(t, 0, s.Page("other_list"))
}

func TestRecordSelection_SingleReplaces(t *testing.T) {
	s := NewSession("u1", "main")
	s.RecordSelection("tracks", SelectSingle, map[string]any{"target": "a"})
	s.RecordSelection("tracks", SelectSingle, map[string]any{"target": "b"})

	got := s.SelectionsFor("tracks")
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Item["target"])
}

func TestRecordSelection_MultiAccumulates(t *testing.T) {
	s := NewSession("u1", "main")
	s.RecordSelection("metrics", SelectMulti, map[string]any{"target": "a"})
	s.RecordSelection("metrics", SelectMulti, map[string]any{"target": "b"})

	got := s.SelectionsFor("metrics")
	require.Len(t, got, 2)
	assert.False(t, got[1].Timestamp.Before(got[0].Timestamp))
}

func TestRecordSelection_SingleLeavesOtherScreensAlone(t *testing.T) {
	s := NewSession("u1", "main")
	s.RecordSelection("tracks", SelectSingle, map[string]any{"target": "a"})
	s.RecordSelection("metrics", SelectSingle, map[string]any{"target": "m"})
	s.RecordSelection("tracks", SelectSingle, map[string]any{"target": "b"})

	assert.Len(t, s.SelectionsFor("metrics"), 1)
	assert.Len(t, s.SelectionsFor("tracks"), 1)
	assert.Len(t, s.Selections, 2)
}

func TestClone_Isolated(t *testing.T) {
	s := NewSession("u1", "main")
	s.MergeContext(map[string]any{"track_id": "a"})
	s.PushReturn("main")
	s.RecordSelection("tracks", SelectSingle, map[string]any{"target": "a"})

	c := s.Clone()
	c.Context["track_id"] = "b"
	c.PushReturn("other")
	c.Selections[0].Item["target"] = "x"
	c.Turn("list", 1)

	assert.Equal(t, "a", s.Context["track_id"])
	assert.Len(t, s.ReturnStack, 1)
	assert.Equal(t, "a", s.Selections[0].Item["target"])
	assert.Equal(t, 0, s.Page("list"))
}
