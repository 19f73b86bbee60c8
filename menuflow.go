package menuflow

import (
	"context"
	"fmt"
	"log/slog"

	"menuflow/internal/engine"
	"menuflow/internal/logging"
	"menuflow/pkg/adapters/memory"
	"menuflow/pkg/domain"
	"menuflow/pkg/manifest"
	"menuflow/pkg/ports"
	"menuflow/pkg/session"
)

// DefaultRootScreen is where fresh sessions start unless configured otherwise.
const DefaultRootScreen = "main"

// Version is the release version, overridable at build time via -ldflags.
var Version = "0.1.0"

// App is the high-level entry point for the menuflow library. It wraps the
// navigation engine, the session manager and the manifest behind a small API
// that front-ends (CLI, TUI, HTTP) drive.
type App struct {
	engine   *engine.Engine
	sessions *session.Manager
	manifest *manifest.Manifest

	store   ports.SessionStore
	fetcher ports.Fetcher
	audit   ports.AuditSink
	locker  ports.DistributedLocker
	logger  *slog.Logger
	root    string
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithManifest injects an already-built manifest, bypassing file loading.
func WithManifest(m *manifest.Manifest) Option {
	return func(a *App) {
		a.manifest = m
	}
}

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithFetcher sets the data-fetch port used by dynamic screens. Defaults to
// the built-in sample data set.
func WithFetcher(f ports.Fetcher) Option {
	return func(a *App) {
		a.fetcher = f
	}
}

// WithAudit sets the audit sink notified of views, actions and API calls.
func WithAudit(sink ports.AuditSink) Option {
	return func(a *App) {
		a.audit = sink
	}
}

// WithLocker enables distributed locking for multi-process deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(a *App) {
		a.locker = locker
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithRootScreen overrides the root screen id.
func WithRootScreen(id string) Option {
	return func(a *App) {
		a.root = id
	}
}

// New builds an App from the manifest at manifestPath. The path may be empty
// when WithManifest supplies the manifest directly. The manifest is validated
// against the root screen before the app is handed out.
func New(manifestPath string, opts ...Option) (*App, error) {
	a := &App{root: DefaultRootScreen}
	for _, opt := range opts {
		opt(a)
	}

	if a.manifest == nil {
		if manifestPath == "" {
			return nil, fmt.Errorf("manifest path is required when no manifest is injected")
		}
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, err
		}
		a.manifest = m
	}

	if err := manifest.Validate(a.manifest, a.root); err != nil {
		return nil, fmt.Errorf("manifest rejected: %w", err)
	}

	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.fetcher == nil {
		a.fetcher = memory.NewSampleFetcher()
	}
	if a.audit == nil {
		a.audit = ports.NopSink{}
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}

	sessionOpts := []session.Option{
		session.WithLogger(a.logger),
		session.WithAudit(a.audit),
	}
	if a.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(a.locker))
	}
	a.sessions = session.NewManager(a.store, a.root, sessionOpts...)

	a.engine = engine.New(a.manifest, a.sessions,
		engine.WithFetcher(a.fetcher),
		engine.WithAudit(a.audit),
		engine.WithLogger(a.logger),
	)
	return a, nil
}

// Render computes the current view for a user, creating the session on first
// touch.
func (a *App) Render(ctx context.Context, userID string) (domain.View, error) {
	return a.engine.Render(ctx, userID)
}

// Apply processes one user action and persists the resulting session state.
func (a *App) Apply(ctx context.Context, userID string, action domain.Action) error {
	return a.engine.Apply(ctx, userID, action)
}

// SubmitText processes free-text input while the user is on a chat pane.
func (a *App) SubmitText(ctx context.Context, userID, text string) error {
	return a.engine.SubmitText(ctx, userID, text)
}

// Reset re-initializes a user's session at the root screen.
func (a *App) Reset(ctx context.Context, userID string) (*domain.Session, error) {
	return a.sessions.Reset(ctx, userID)
}

// Session returns the user's session, creating it on first touch.
func (a *App) Session(ctx context.Context, userID string) (*domain.Session, error) {
	return a.sessions.GetOrCreate(ctx, userID)
}

// Sessions returns the session manager.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// Manifest returns the loaded screen manifest.
func (a *App) Manifest() *manifest.Manifest {
	return a.manifest
}
