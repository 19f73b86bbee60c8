// Package file implements ports.SessionStore on the local filesystem, one
// JSON file per user. Suited to single-process deployments that need to
// survive restarts without a Redis.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"menuflow/pkg/domain"
)

// Store persists sessions as JSON files in a configured directory.
type Store struct {
	basePath string
}

// NewStore creates a file store rooted at basePath. An empty basePath
// defaults to ".menuflow/sessions".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".menuflow", "sessions")
	}
	return &Store{basePath: basePath}
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.basePath, userID+".json")
}

// Save persists the session to its JSON file.
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	if sess.UserID == "" {
		return fmt.Errorf("user id cannot be empty")
	}

	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path(sess.UserID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads the session back. Returns domain.ErrSessionNotFound when no
// file exists for the user.
func (s *Store) Load(ctx context.Context, userID string) (*domain.Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}

	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session file. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user id cannot be empty")
	}

	if err := os.Remove(s.path(userID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns the user ids with a stored session.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var users []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		users = append(users, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return users, nil
}
