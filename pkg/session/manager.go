package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"menuflow/internal/logging"
	"menuflow/pkg/domain"
	"menuflow/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager owns session lifecycle on top of a SessionStore. It uses reference
// counting to garbage collect unused per-user locks.
type Manager struct {
	store ports.SessionStore
	root  string

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	audit  ports.AuditSink
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithAudit configures the audit sink notified on session initialization.
func WithAudit(audit ports.AuditSink) Option {
	return func(m *Manager) {
		m.audit = audit
	}
}

// NewManager creates a session Manager. rootScreen is the screen fresh and
// reset sessions start at.
func NewManager(store ports.SessionStore, rootScreen string, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		root:   rootScreen,
		locks:  make(map[string]*lockEntry),
		audit:  ports.NopSink{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Root returns the designated root screen id.
func (m *Manager) Root() string {
	return m.root
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(userID) after unlocking.
func (m *Manager) acquire(userID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		entry = &lockEntry{}
		m.locks[userID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, userID)
	}
}

// WithLock executes fn while holding the per-user lock.
func (m *Manager) WithLock(ctx context.Context, userID string, fn func(context.Context) error) error {
	entry := m.acquire(userID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(userID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, userID, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"user_id", userID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// GetOrCreate returns the user's session, initializing and persisting a fresh
// one at the root screen on first touch. Idempotent.
func (m *Manager) GetOrCreate(ctx context.Context, userID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, userID, func(ctx context.Context) error {
		var err error
		sess, err = m.getOrCreateLocked(ctx, userID)
		return err
	})
	return sess, err
}

// getOrCreateLocked is the lock-free body of GetOrCreate, for callers already
// inside WithLock.
func (m *Manager) getOrCreateLocked(ctx context.Context, userID string) (*domain.Session, error) {
	sess, err := m.store.Load(ctx, userID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}

	sess = domain.NewSession(userID, m.root)
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	m.audit.ViewRendered(userID, m.root, "session initialized")
	m.logger.Debug("session initialized", "user_id", userID, "screen", m.root)
	return sess, nil
}

// Update runs a read-modify-write cycle for one user under the lock: fn
// receives the current (or freshly created) session, and the mutated session
// is persisted afterwards.
func (m *Manager) Update(ctx context.Context, userID string, fn func(*domain.Session) error) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		sess, err := m.getOrCreateLocked(ctx, userID)
		if err != nil {
			return err
		}
		if err := fn(sess); err != nil {
			return err
		}
		return m.store.Save(ctx, sess)
	})
}

// Reset re-initializes the user's session at the root screen.
func (m *Manager) Reset(ctx context.Context, userID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, userID, func(ctx context.Context) error {
		sess = domain.NewSession(userID, m.root)
		if err := m.store.Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
		m.audit.ViewRendered(userID, m.root, "session initialized")
		return nil
	})
	return sess, err
}

// Delete removes the user's session from the store.
func (m *Manager) Delete(ctx context.Context, userID string) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		return m.store.Delete(ctx, userID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}
