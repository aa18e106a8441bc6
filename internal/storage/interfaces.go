package storage

import "context"

// Store defines the interface for a scoped key/value storage area. The
// tracker uses two of them: a transient store holding the live session and a
// durable store holding history and the first-visit flag.
type Store interface {
	// Get returns the value for key and whether the key was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value
	Set(ctx context.Context, key string, value string) error

	// Delete removes key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}
