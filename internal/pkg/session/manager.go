// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Data is the server-side session record stored in Redis, keyed by
// identity id + token JTI. Logout deletes it, which revokes the token
// before its JWT expiry.
type Data struct {
	JTI        string    `json:"jti"`
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	LoginAt    time.Time `json:"login_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// Create stores a new session in Redis with a TTL matching the token.
func (m *Manager) Create(ctx context.Context, s *Data) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := m.client.Set(ctx, m.key(s.IdentityID, s.JTI), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}

	return nil
}

// Get retrieves a session; redis.Nil maps to a plain not-found error so
// callers treat a revoked token the same as an expired one.
func (m *Manager) Get(ctx context.Context, identityID, jti string) (*Data, error) {
	raw, err := m.client.Get(ctx, m.key(identityID, jti)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Data
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &s, nil
}

// Delete revokes a single session.
func (m *Manager) Delete(ctx context.Context, identityID, jti string) error {
	return m.client.Del(ctx, m.key(identityID, jti)).Err()
}

func (m *Manager) key(identityID, jti string) string {
	return fmt.Sprintf("session:%s:%s", identityID, jti)
}
