package store

import "context"

// DurableStore is the durable cache tier's capability surface: a plain
// byte-oriented key-value store. Payload serialization is the caller's
// job, never the store's. Implementations must be safe for concurrent
// use.
type DurableStore interface {
	// Get returns the stored payload, or ok=false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes or replaces the payload for a key.
	Set(ctx context.Context, key string, payload []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Close releases underlying resources.
	Close() error
}
