package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so that a retried mutation is applied at most once
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL
	// Returns true if the key was newly marked, false if it was already processed
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Forget releases a key so the request can be retried under it
	Forget(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
