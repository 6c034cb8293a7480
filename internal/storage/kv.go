// Package storage provides the shared key/value medium behind the cache
// store and the settings facade. Both live in one table, separated by
// key prefix, so a cache sweep can never disturb settings.
package storage

import "context"

// KV is the persistence medium contract. Implementations must treat
// keys as opaque strings; namespacing is the caller's concern.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put writes or replaces the value for key.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys starting with prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// DeletePrefix removes every key starting with prefix and returns
	// the number of rows removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
