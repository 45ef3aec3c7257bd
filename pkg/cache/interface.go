package cache

import (
	"context"
	"errors"

	"github.com/thebartekbanach/tryon/pkg/artifact"
)

// CacheService stores artifacts by cache key in a size bounded area. Recency
// is approximated by insertion order; entries never expire by time.
type CacheService interface {
	Get(ctx context.Context, key string) (artifact.Artifact, error)

	// Put stores the artifact when it fits the budget, evicting the oldest
	// entries first if needed. Storage problems are logged and reported as
	// false, never returned.
	Put(ctx context.Context, key string, a artifact.Artifact) bool

	// EvictOldest removes the oldest entries until excess bytes are reclaimed
	// or only the retention floor is left. It returns the removed keys.
	EvictOldest(ctx context.Context, excess int64) ([]string, error)

	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) ([]string, error)
}

var (
	ErrEntryNotFound  = errors.New("entry not found")
	ErrEntryCorrupted = errors.New("cache entry cannot be decoded")
)
