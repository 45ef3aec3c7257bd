package settings

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/thebartekbanach/tryon/pkg/storage"
)

const (
	readCacheTTL             = 30 * time.Second
	readCacheCleanupInterval = time.Minute
)

type areaStore struct {
	area  storage.Area
	reads *gocache.Cache
}

var _ Store = (*areaStore)(nil)

// NewStore keeps settings as JSON strings in area. Reads are served from a
// short lived in-process cache; writes made through the store refresh it.
func NewStore(area storage.Area) Store {
	return &areaStore{
		area:  area,
		reads: gocache.New(readCacheTTL, readCacheCleanupInterval),
	}
}

func (s *areaStore) GetCredential(ctx context.Context) (string, error) {
	return s.getString(ctx, CredentialKey)
}

func (s *areaStore) SetCredential(ctx context.Context, credential string) error {
	return s.setString(ctx, CredentialKey, credential)
}

func (s *areaStore) GetUserPhoto(ctx context.Context) (string, error) {
	return s.getString(ctx, UserPhotoKey)
}

func (s *areaStore) SetUserPhoto(ctx context.Context, photo string) error {
	return s.setString(ctx, UserPhotoKey, photo)
}

func (s *areaStore) MarkFirstRun(ctx context.Context) (bool, error) {
	if _, err := s.area.Get(ctx, FirstRunKey); err != storage.ErrKeyNotFound {
		return false, err
	}

	if err := s.area.Set(ctx, FirstRunKey, []byte("false")); err != nil {
		return false, err
	}

	return true, nil
}

func (s *areaStore) getString(ctx context.Context, key string) (string, error) {
	if cached, found := s.reads.Get(key); found {
		return cached.(string), nil
	}

	data, err := s.area.Get(ctx, key)
	if err == storage.ErrKeyNotFound {
		return "", ErrNotConfigured
	}
	if err != nil {
		return "", err
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return "", err
	}

	if value == "" {
		return "", ErrNotConfigured
	}

	s.reads.SetDefault(key, value)
	return value, nil
}

// an empty value removes the setting
func (s *areaStore) setString(ctx context.Context, key, value string) error {
	s.reads.Delete(key)

	if value == "" {
		if err := s.area.Delete(ctx, key); err != nil && err != storage.ErrKeyNotFound {
			return err
		}

		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := s.area.Set(ctx, key, data); err != nil {
		return err
	}

	s.reads.SetDefault(key, value)
	return nil
}
