package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks live session ids in Redis so logout can revoke a
// token before its signature expires.
// Key format: session:<session_id>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Mark records a session as live for ttl.
func (s *SessionStore) Mark(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(sessionID), "1", ttl).Err()
}

// IsLive reports whether the session has been marked and not yet revoked.
func (s *SessionStore) IsLive(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

// Revoke removes the session mark. Revoking an unknown session is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}
