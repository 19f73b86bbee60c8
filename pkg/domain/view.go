package domain

// Action types carried on the wire between the engine and front-ends.
const (
	// ActionNavigate jumps to Target, merging Context into the session.
	ActionNavigate = "navigate"
	// ActionInvoke runs a named imperative action (Action field).
	ActionInvoke = "action"
	// ActionBack resolves the current screen's back path.
	ActionBack = "back"
	// ActionPaginate turns the page cursor of ScreenID by Direction.
	ActionPaginate = "paginate"
	// ActionUnknown marks a malformed manifest button; applying it is a no-op.
	ActionUnknown = "unknown"
)

// Paginate directions.
const (
	DirectionNext = "next"
	DirectionPrev = "prev"
)

// ScreenTypeError is the screen_type of the error view emitted when the
// current screen cannot be resolved on the read path.
const ScreenTypeError = "error"

// Named workflow actions recognized by the engine.
const (
	// WorkflowSubmitMark completes the mark-entry workflow: it records the
	// submission and returns to the designated screen with whitelisted
	// context keys preserved.
	WorkflowSubmitMark = "submit_mark"
)

// Action is one selectable entry of a view. Type decides which of the
// type-specific fields are meaningful; a front-end must echo the structure
// back to the engine unchanged when the user picks it.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`

	// navigate
	Target  string         `json:"target,omitempty"`
	Context map[string]any `json:"context,omitempty"`

	// action
	Action string `json:"action,omitempty"`

	// navigate (paginated item) / static button payload
	Payload string `json:"payload,omitempty"`

	// paginate
	ScreenID  string `json:"screen_id,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// View is the renderable projection of (manifest, session) at the moment of a
// read. It is derived, never stored.
type View struct {
	Text       string   `json:"text"`
	Actions    []Action `json:"actions"`
	ScreenType string   `json:"screen_type"`

	// Grid hints for the renderer; the engine does not row-wrap itself.
	Layout  string `json:"layout,omitempty"`
	Columns int    `json:"columns,omitempty"`
}
