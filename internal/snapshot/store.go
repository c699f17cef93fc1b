// internal/snapshot/store.go
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store holds the local fallback snapshot consulted when the primary
// record store errors or returns nothing. One JSON blob per collection.
// The snapshot predates the record store and is eventually stale: readers
// must prefer primary-store data whenever present and never merge snapshot
// fields over fresher rows.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save replaces a collection's snapshot. Used by the legacy mirror-write
// path; when mirroring is off the snapshot is read-only.
func (s *Store) Save(ctx context.Context, collection string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

// Load reads a collection's snapshot into dest. A missing snapshot leaves
// dest untouched and returns no error; an empty fallback is a valid
// outcome.
func (s *Store) Load(ctx context.Context, collection string, dest interface{}) error {
	raw, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return nil
}

func (s *Store) key(collection string) string {
	return "snapshot:" + collection
}
