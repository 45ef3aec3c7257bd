package storage

import (
	"context"
	"errors"
)

// Entry describes a stored key and the bytes it accounts for.
type Entry struct {
	Key  string
	Size int64
}

// Area is a flat, persistent key/value area with byte accounting and no TTL.
// Keys remember their insertion order; overwriting a key makes it the newest.
type Area interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Entries lists keys starting with prefix, oldest first.
	Entries(ctx context.Context, prefix string) ([]Entry, error)

	// BytesInUse reports usage of the whole area, keys included.
	BytesInUse(ctx context.Context) (int64, error)
}

// EntrySize is the number of bytes a key/value pair accounts for.
func EntrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrQuotaExceeded  = errors.New("storage quota exceeded")
	ErrUnknownBackend = errors.New("unknown storage backend")
)
