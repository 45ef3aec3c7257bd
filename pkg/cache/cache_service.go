package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/thebartekbanach/tryon/pkg/artifact"
	"github.com/thebartekbanach/tryon/pkg/metrics"
	"github.com/thebartekbanach/tryon/pkg/storage"
)

type cacheService struct {
	config Config
	area   storage.Area
	locks  *keyLocks

	// writeLock spans the budget check, eviction and write of a Put.
	writeLock sync.Mutex
}

var _ CacheService = (*cacheService)(nil)

func NewCacheService(config Config, area storage.Area) CacheService {
	return &cacheService{
		config: config.withDefaults(),
		area:   area,
		locks:  newKeyLocks(),
	}
}

func (s *cacheService) Get(ctx context.Context, key string) (artifact.Artifact, error) {
	storageKey := s.storageKey(key)
	s.locks.acquire(storageKey)
	defer s.locks.release(storageKey)

	data, err := s.area.Get(ctx, storageKey)
	if err == storage.ErrKeyNotFound {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return artifact.Artifact{}, ErrEntryNotFound
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return artifact.Artifact{}, err
	}

	var a artifact.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return artifact.Artifact{}, fmt.Errorf("%w: %v", ErrEntryCorrupted, err)
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return a, nil
}

func (s *cacheService) Put(ctx context.Context, key string, a artifact.Artifact) bool {
	data, err := json.Marshal(a)
	if err != nil {
		log.Printf("warning: cannot encode artifact %s, not caching: %v", key, err)
		metrics.CacheWrites.WithLabelValues("failed").Inc()
		return false
	}

	storageKey := s.storageKey(key)
	size := storage.EntrySize(storageKey, data)

	s.locks.acquire(storageKey)
	defer s.locks.release(storageKey)

	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	replaced, err := s.storedSize(ctx, storageKey)
	if err != nil {
		log.Printf("warning: cannot read current entry %s, not caching: %v", key, err)
		metrics.CacheWrites.WithLabelValues("failed").Inc()
		return false
	}

	usage, err := s.usageWithout(ctx, replaced)
	if err != nil {
		log.Printf("warning: cannot read storage usage, not caching %s: %v", key, err)
		metrics.CacheWrites.WithLabelValues("failed").Inc()
		return false
	}

	if usage+size >= s.config.Budget {
		if _, err := s.EvictOldest(ctx, usage+size-s.config.Budget+1); err != nil {
			log.Printf("warning: eviction before writing %s failed: %v", key, err)
		}

		usage, err = s.usageWithout(ctx, replaced)
		if err != nil {
			log.Printf("warning: cannot read storage usage, not caching %s: %v", key, err)
			metrics.CacheWrites.WithLabelValues("failed").Inc()
			return false
		}

		if usage+size >= s.config.Budget {
			log.Printf("warning: artifact %s (%d bytes) does not fit budget of %d bytes with %d bytes in use, not caching", key, size, s.config.Budget, usage)
			metrics.CacheWrites.WithLabelValues("skipped").Inc()
			return false
		}
	}

	if err := s.area.Set(ctx, storageKey, data); err != nil {
		log.Printf("warning: cannot write artifact %s: %v", key, err)
		metrics.CacheWrites.WithLabelValues("failed").Inc()
		return false
	}

	metrics.CacheWrites.WithLabelValues("stored").Inc()
	return true
}

// EvictOldest skips entries locked by other operations, including the
// entry a concurrent Put is writing.
func (s *cacheService) EvictOldest(ctx context.Context, excess int64) ([]string, error) {
	evicted := []string{}
	if excess <= 0 {
		return evicted, nil
	}

	entries, err := s.area.Entries(ctx, s.config.KeyPrefix)
	if err != nil {
		return evicted, err
	}

	removable := len(entries) - s.config.RetentionFloor
	reclaimed := int64(0)

	for _, entry := range entries {
		if reclaimed >= excess || len(evicted) >= removable {
			break
		}

		if !s.locks.tryAcquire(entry.Key) {
			continue
		}

		err := s.area.Delete(ctx, entry.Key)
		s.locks.release(entry.Key)

		if err == storage.ErrKeyNotFound {
			continue
		}
		if err != nil {
			return evicted, err
		}

		reclaimed += entry.Size
		evicted = append(evicted, s.cacheKey(entry.Key))
		metrics.CacheEvictions.Inc()
	}

	if len(evicted) > 0 {
		log.Printf("evicted %d cache entries, %d bytes reclaimed", len(evicted), reclaimed)
	}

	return evicted, nil
}

func (s *cacheService) Remove(ctx context.Context, key string) error {
	storageKey := s.storageKey(key)
	s.locks.acquire(storageKey)
	defer s.locks.release(storageKey)

	err := s.area.Delete(ctx, storageKey)
	if err == storage.ErrKeyNotFound {
		return ErrEntryNotFound
	}

	return err
}

func (s *cacheService) Clear(ctx context.Context) ([]string, error) {
	removed := []string{}

	entries, err := s.area.Entries(ctx, s.config.KeyPrefix)
	if err != nil {
		return removed, err
	}

	for _, entry := range entries {
		key := s.cacheKey(entry.Key)
		if err := s.Remove(ctx, key); err != nil && err != ErrEntryNotFound {
			return removed, err
		}

		removed = append(removed, key)
	}

	return removed, nil
}

// storedSize is the size of the entry a write to storageKey replaces, zero
// when there is none.
func (s *cacheService) storedSize(ctx context.Context, storageKey string) (int64, error) {
	data, err := s.area.Get(ctx, storageKey)
	if err == storage.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return storage.EntrySize(storageKey, data), nil
}

func (s *cacheService) usageWithout(ctx context.Context, replaced int64) (int64, error) {
	usage, err := s.area.BytesInUse(ctx)
	if err != nil {
		return 0, err
	}

	return usage - replaced, nil
}

func (s *cacheService) storageKey(key string) string {
	return s.config.KeyPrefix + key
}

func (s *cacheService) cacheKey(storageKey string) string {
	return strings.TrimPrefix(storageKey, s.config.KeyPrefix)
}
