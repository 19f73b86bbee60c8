// Package engine implements the navigation state machine: it computes the
// renderable view for a user's current screen and applies discrete actions to
// transition the session state.
package engine

import (
	"context"
	"log/slog"

	"menuflow/internal/logging"
	"menuflow/pkg/domain"
	"menuflow/pkg/manifest"
	"menuflow/pkg/ports"
	"menuflow/pkg/session"
)

// Fallback target for paginated item selection when the screen does not name one.
const defaultPaginatedTarget = "item_selected"

// Fallbacks for the submit_mark workflow when defaults.workflow is absent.
// These match the original deployment of the manifest format.
var fallbackPreserveKeys = []string{"student_id", "student_name"}

const fallbackWorkflowReturn = "select_metric"

// Engine is the core state machine. All reference errors (unknown screens,
// dangling targets, malformed buttons) are absorbed: they are audited and the
// state degrades to an error view or a root reset, never a returned error.
// Returned errors are store or data-fetch failures only.
type Engine struct {
	manifest *manifest.Manifest
	sessions *session.Manager
	fetcher  ports.Fetcher
	audit    ports.AuditSink
	logger   *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithFetcher sets the data-fetch port used by dynamic screens.
func WithFetcher(f ports.Fetcher) Option {
	return func(e *Engine) {
		e.fetcher = f
	}
}

// WithAudit sets the audit sink.
func WithAudit(a ports.AuditSink) Option {
	return func(e *Engine) {
		e.audit = a
	}
}

// WithLogger sets a structured logger for internal diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine over a loaded manifest and a session manager.
func New(m *manifest.Manifest, sessions *session.Manager, opts ...Option) *Engine {
	e := &Engine{
		manifest: m,
		sessions: sessions,
		fetcher: ports.FetcherFunc(func(context.Context, string, string) ([]map[string]any, error) {
			return nil, nil
		}),
		audit:  ports.NopSink{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sessions returns the session manager the engine drives.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Manifest returns the manifest the engine interprets.
func (e *Engine) Manifest() *manifest.Manifest {
	return e.manifest
}

// root returns the designated root screen id.
func (e *Engine) root() string {
	return e.sessions.Root()
}

// screenMode resolves the selection mode of a screen id; unknown screens
// default to single (the departure screen may have vanished from the manifest
// mid-flight, and single is the conservative mode).
func (e *Engine) screenMode(screenID string) domain.SelectionMode {
	if screen, ok := e.manifest.Screen(screenID); ok {
		return screen.SelectionMode()
	}
	return domain.SelectSingle
}
