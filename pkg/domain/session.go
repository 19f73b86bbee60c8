package domain

import "time"

// ContextKeyUserID is always present in a fresh session context.
const ContextKeyUserID = "user_id"

// SelectionMode controls how RecordSelection treats prior entries for a screen.
type SelectionMode string

const (
	// SelectSingle replaces any prior selection on the same screen.
	SelectSingle SelectionMode = "single"
	// SelectMulti accumulates selections on the same screen.
	SelectMulti SelectionMode = "multi"
)

// Selection is one recorded user choice, tagged with the screen it was made on.
type Selection struct {
	ScreenID  string         `json:"screen_id"`
	Item      map[string]any `json:"selected_item"`
	Timestamp time.Time      `json:"timestamp"`
}

// Session is the mutable navigation state of a single user. It is created on
// first touch and lives for the process lifetime (or until an explicit reset);
// it is not safe for concurrent mutation by multiple callers.
type Session struct {
	UserID        string         `json:"user_id"`
	CurrentScreen string         `json:"current_screen"`
	Context       map[string]any `json:"context"`
	ReturnStack   []string       `json:"return_stack"`
	Pagination    map[string]int `json:"pagination"`
	Selections    []Selection    `json:"selections"`
}

// NewSession creates a fresh session positioned at the root screen, with the
// user id pre-seeded into the context.
func NewSession(userID, rootScreen string) *Session {
	return &Session{
		UserID:        userID,
		CurrentScreen: rootScreen,
		Context:       map[string]any{ContextKeyUserID: userID},
		ReturnStack:   []string{},
		Pagination:    map[string]int{},
		Selections:    []Selection{},
	}
}

// MergeContext overwrites session context keys with the given values.
// Context accumulates across navigations and never shrinks.
func (s *Session) MergeContext(ctx map[string]any) {
	if s.Context == nil {
		s.Context = make(map[string]any)
	}
	for k, v := range ctx {
		s.Context[k] = v
	}
}

// PushReturn records the screen to come back to on a CONTEXTUAL back.
func (s *Session) PushReturn(screenID string) {
	s.ReturnStack = append(s.ReturnStack, screenID)
}

// PopReturn pops the most recent return target. ok is false on an empty stack.
func (s *Session) PopReturn() (id string, ok bool) {
	if len(s.ReturnStack) == 0 {
		return "", false
	}
	id = s.ReturnStack[len(s.ReturnStack)-1]
	s.ReturnStack = s.ReturnStack[:len(s.ReturnStack)-1]
	return id, true
}

// ClearReturnStack drops all pending return targets. Used by workflow returns
// that are not stack-driven.
func (s *Session) ClearReturnStack() {
	s.ReturnStack = s.ReturnStack[:0]
}

// Page returns the stored page index for a screen, zero if untouched.
func (s *Session) Page(screenID string) int {
	return s.Pagination[screenID]
}

// Turn adjusts the stored page index by delta, clamped at zero. There is no
// upper clamp: an out-of-range page renders as an empty slice.
func (s *Session) Turn(screenID string, delta int) {
	if s.Pagination == nil {
		s.Pagination = make(map[string]int)
	}
	next := s.Pagination[screenID] + delta
	if next < 0 {
		next = 0
	}
	s.Pagination[screenID] = next
}

// RecordSelection appends a selection entry for the given screen. In single
// mode all prior entries for that screen are removed first, so a screen
// without multi-select support holds at most one entry at any time.
// Timestamps are monotonically non-decreasing within a session.
func (s *Session) RecordSelection(screenID string, mode SelectionMode, item map[string]any) {
	if mode == SelectSingle {
		kept := s.Selections[:0]
		for _, sel := range s.Selections {
			if sel.ScreenID != screenID {
				kept = append(kept, sel)
			}
		}
		s.Selections = kept
	}

	now := time.Now()
	if n := len(s.Selections); n > 0 && s.Selections[n-1].Timestamp.After(now) {
		now = s.Selections[n-1].Timestamp
	}
	s.Selections = append(s.Selections, Selection{
		ScreenID:  screenID,
		Item:      item,
		Timestamp: now,
	})
}

// SelectionsFor returns the recorded selections for one screen, in order.
func (s *Session) SelectionsFor(screenID string) []Selection {
	var out []Selection
	for _, sel := range s.Selections {
		if sel.ScreenID == screenID {
			out = append(out, sel)
		}
	}
	return out
}

// Clone returns a deep copy, so stores can hand out isolated snapshots.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := &Session{
		UserID:        s.UserID,
		CurrentScreen: s.CurrentScreen,
		Context:       make(map[string]any, len(s.Context)),
		ReturnStack:   append([]string{}, s.ReturnStack...),
		Pagination:    make(map[string]int, len(s.Pagination)),
		Selections:    make([]Selection, len(s.Selections)),
	}
	for k, v := range s.Context {
		out.Context[k] = v
	}
	for k, v := range s.Pagination {
		out.Pagination[k] = v
	}
	for i, sel := range s.Selections {
		item := make(map[string]any, len(sel.Item))
		for k, v := range sel.Item {
			item[k] = v
		}
		out.Selections[i] = Selection{ScreenID: sel.ScreenID, Item: item, Timestamp: sel.Timestamp}
	}
	return out
}
