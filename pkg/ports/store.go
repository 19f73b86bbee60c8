package ports

import (
	"context"

	"menuflow/pkg/domain"
)

// SessionStore defines the interface for persisting per-user navigation state.
// Implementations must hand out isolated copies: a caller mutating a returned
// session must not affect the stored one until Save.
type SessionStore interface {
	// Load retrieves the session for a user id.
	// Returns domain.ErrSessionNotFound if the user has no session.
	Load(ctx context.Context, userID string) (*domain.Session, error)

	// Save persists the session under its user id.
	Save(ctx context.Context, session *domain.Session) error

	// Delete removes the session for a user id. Deleting a missing session
	// is not an error.
	Delete(ctx context.Context, userID string) error

	// List returns the user ids with an active session.
	List(ctx context.Context) ([]string, error)
}
