package manifest

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// PaginationDefaults configures paginated screens.
type PaginationDefaults struct {
	PageSize  int    `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
	NextLabel string `json:"next_label" yaml:"next_label" mapstructure:"next_label"`
	PrevLabel string `json:"prev_label" yaml:"prev_label" mapstructure:"prev_label"`
}

// ChatModeDefaults configures chat_input screens.
type ChatModeDefaults struct {
	FinishCommands []string `json:"finish_commands" yaml:"finish_commands" mapstructure:"finish_commands"`
}

// WorkflowDefaults configures the scripted workflow-completion action.
// PreserveKeys are the context keys carried across the workflow return;
// ReturnScreen is the back_path value recognized as the designated return
// target. Both have engine-level fallbacks matching the original deployment.
type WorkflowDefaults struct {
	PreserveKeys []string `json:"preserve_keys" yaml:"preserve_keys" mapstructure:"preserve_keys"`
	ReturnScreen string   `json:"return_screen" yaml:"return_screen" mapstructure:"return_screen"`
}

// Defaults is the optional shared configuration block of the manifest.
// A missing block decodes to the zero value; an engine needing a default that
// was never supplied (pagination page size) is a programming-contract
// violation, not a recoverable runtime condition.
type Defaults struct {
	BackButtonLabel string             `json:"back_button_label" yaml:"back_button_label" mapstructure:"back_button_label"`
	Pagination      PaginationDefaults `json:"pagination" yaml:"pagination" mapstructure:"pagination"`
	ChatMode        ChatModeDefaults   `json:"chat_mode" yaml:"chat_mode" mapstructure:"chat_mode"`
	Workflow        WorkflowDefaults   `json:"workflow" yaml:"workflow" mapstructure:"workflow"`
}

// MustPageSize returns the configured page size. It panics when pagination
// defaults were never supplied: a manifest with paginated screens and no
// page_size is a deployment bug that must not limp along.
func (d Defaults) MustPageSize() int {
	if d.Pagination.PageSize <= 0 {
		panic("manifest defaults: pagination.page_size is required by a paginated screen but was not supplied")
	}
	return d.Pagination.PageSize
}

// IsFinishCommand reports whether the trimmed text matches one of the
// configured chat finish commands.
func (d Defaults) IsFinishCommand(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, cmd := range d.ChatMode.FinishCommands {
		if trimmed == cmd {
			return true
		}
	}
	return false
}

func decodeDefaults(raw any) (Defaults, error) {
	var defaults Defaults
	if raw == nil {
		return defaults, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &defaults,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return defaults, fmt.Errorf("failed to build defaults decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return defaults, &InvalidError{Reason: "'defaults' has malformed structure", Err: err}
	}
	return defaults, nil
}
