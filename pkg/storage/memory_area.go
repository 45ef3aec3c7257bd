package storage

import (
	"context"
	"strings"
	"sync"
)

type memoryArea struct {
	lock   sync.Mutex
	values map[string][]byte
	order  []string
	usage  int64
	quota  int64
}

var _ Area = (*memoryArea)(nil)

// NewMemoryArea returns a process-local area. A positive quota makes writes
// beyond it fail with ErrQuotaExceeded.
func NewMemoryArea(quota int64) Area {
	return &memoryArea{
		values: make(map[string][]byte),
		quota:  quota,
	}
}

func (a *memoryArea) Get(ctx context.Context, key string) ([]byte, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	value, exists := a.values[key]
	if !exists {
		return nil, ErrKeyNotFound
	}

	return append([]byte(nil), value...), nil
}

func (a *memoryArea) Set(ctx context.Context, key string, value []byte) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	usage := a.usage + EntrySize(key, value)
	if previous, exists := a.values[key]; exists {
		usage -= EntrySize(key, previous)
	}

	if a.quota > 0 && usage > a.quota {
		return ErrQuotaExceeded
	}

	a.remove(key)
	a.values[key] = append([]byte(nil), value...)
	a.order = append(a.order, key)
	a.usage = usage
	return nil
}

func (a *memoryArea) Delete(ctx context.Context, key string) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if _, exists := a.values[key]; !exists {
		return ErrKeyNotFound
	}

	a.usage -= EntrySize(key, a.values[key])
	a.remove(key)
	return nil
}

func (a *memoryArea) Entries(ctx context.Context, prefix string) ([]Entry, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	entries := []Entry{}
	for _, key := range a.order {
		if strings.HasPrefix(key, prefix) {
			entries = append(entries, Entry{key, EntrySize(key, a.values[key])})
		}
	}

	return entries, nil
}

func (a *memoryArea) BytesInUse(ctx context.Context) (int64, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.usage, nil
}

func (a *memoryArea) remove(key string) {
	if _, exists := a.values[key]; !exists {
		return
	}

	delete(a.values, key)
	for i, existing := range a.order {
		if existing == key {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}
