package domain

// Screen kinds define the content behavior of a screen.
const (
	// KindStatic displays a fixed, ordered list of buttons.
	KindStatic = "static"
	// KindDynamic builds its buttons from records returned by the data-fetch port.
	KindDynamic = "dynamic"
	// KindPaginated displays a materialized item list one page at a time.
	KindPaginated = "paginated"
	// KindChatInput accepts free text instead of button presses.
	KindChatInput = "chat_input"
)

// BackContextual is the back_path sentinel that resolves the back target from
// the session's return stack instead of a fixed screen id.
const BackContextual = "CONTEXTUAL"

// Button is one entry of a static screen. Exactly one of Target or Action is
// expected; a button with neither degrades to an inert "unknown" action.
type Button struct {
	Label   string `json:"label" yaml:"label" mapstructure:"label"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`
	Action  string `json:"action,omitempty" yaml:"action,omitempty" mapstructure:"action"`
	Payload string `json:"payload,omitempty" yaml:"payload,omitempty" mapstructure:"payload"`
}

// DataSource describes where a dynamic screen fetches its records from.
// URL may contain {{key}} placeholders resolved against the session context.
type DataSource struct {
	URL    string `json:"url" yaml:"url" mapstructure:"url"`
	Method string `json:"method" yaml:"method" mapstructure:"method"`
}

// ButtonTemplate describes how a dynamic screen turns fetched records into
// buttons. ContextFields maps context keys to record keys: on selection,
// record[recordKey] is carried into the session context under contextKey.
type ButtonTemplate struct {
	LabelField    string            `json:"label_field" yaml:"label_field" mapstructure:"label_field"`
	TargetScreen  string            `json:"target_screen" yaml:"target_screen" mapstructure:"target_screen"`
	ContextFields map[string]string `json:"context_fields,omitempty" yaml:"context_fields,omitempty" mapstructure:"context_fields"`
}

// Screen is one named node of the navigation graph. Kind selects the variant;
// the kind-specific fields below the shared block are only populated for the
// matching kind (Buttons for static, Source/Template for dynamic, Items and
// Target for paginated).
type Screen struct {
	ID   string `json:"id" yaml:"id" mapstructure:"id"`
	Kind string `json:"type" yaml:"type" mapstructure:"type"`

	// Title is a template string; {{key}} placeholders are substituted from
	// the session context at render time.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// BackPath is a literal screen id, BackContextual, or empty (no back button).
	BackPath    string `json:"back_path,omitempty" yaml:"back_path,omitempty" mapstructure:"back_path"`
	BackLabel   string `json:"back_label,omitempty" yaml:"back_label,omitempty" mapstructure:"back_label"`
	Layout      string `json:"layout,omitempty" yaml:"layout,omitempty" mapstructure:"layout"`
	Columns     int    `json:"columns,omitempty" yaml:"columns,omitempty" mapstructure:"columns"`
	MultiSelect bool   `json:"supports_multi_select,omitempty" yaml:"supports_multi_select,omitempty" mapstructure:"supports_multi_select"`

	// Static.
	Buttons []Button `json:"buttons,omitempty" yaml:"buttons,omitempty" mapstructure:"buttons"`

	// Dynamic.
	Source   *DataSource     `json:"data_source,omitempty" yaml:"data_source,omitempty" mapstructure:"data_source"`
	Template *ButtonTemplate `json:"button_template,omitempty" yaml:"button_template,omitempty" mapstructure:"button_template"`

	// Paginated.
	Items  []string `json:"items,omitempty" yaml:"items,omitempty" mapstructure:"items"`
	Target string   `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`
}

// SelectionMode resolves once from the screen definition how selections on
// this screen are recorded.
func (s Screen) SelectionMode() SelectionMode {
	if s.MultiSelect {
		return SelectMulti
	}
	return SelectSingle
}

// HasGrid reports whether the view should be annotated with grid layout hints.
func (s Screen) HasGrid() bool {
	return s.Layout == "grid"
}
