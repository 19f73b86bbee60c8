// Package redis provides Redis-backed implementations of the session ports:
// a SessionStore for shared state across processes and a DistributedLocker
// for serializing updates to one user's session.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"menuflow/pkg/domain"
)

// farFuture is the index score for sessions without expiration.
const farFuture = 4102444800 // 2100-01-01

// Store implements ports.SessionStore on Redis. Sessions are stored as JSON
// under a prefixed key, and a ZSET index (scored by expiry) backs List with
// lazy pruning of expired entries.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for sessions. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store connecting to the given address.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "menuflow:session:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the session as JSON and refreshes its index entry.
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	score := float64(farFuture)
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sess.UserID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sess.UserID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Load retrieves the session for a user. Returns domain.ErrSessionNotFound
// when the key is absent or has expired.
func (s *Store) Load(ctx context.Context, userID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session and its index entry. Deleting a missing session
// is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(userID))
	pipe.ZRem(ctx, s.indexKey(), userID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the user ids of live sessions. Entries whose TTL has passed
// are pruned from the index first; Redis expires the session keys themselves.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	users, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return users, nil
}

// Client exposes the underlying redis client, so a Locker can share the
// connection pool.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Close closes the underlying redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
