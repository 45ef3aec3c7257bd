package settings

import (
	"context"
	"testing"

	"github.com/thebartekbanach/tryon/pkg/storage"
)

func TestStore_ShouldReturnNotConfiguredForMissingSettings(t *testing.T) {
	store := NewStore(storage.NewMemoryArea(0))

	if _, err := store.GetCredential(context.Background()); err != ErrNotConfigured {
		t.Errorf("Expected ErrNotConfigured for credential, got %v", err)
	}

	if _, err := store.GetUserPhoto(context.Background()); err != ErrNotConfigured {
		t.Errorf("Expected ErrNotConfigured for user photo, got %v", err)
	}
}

func TestStore_ShouldPersistSettingsInArea(t *testing.T) {
	ctx := context.Background()
	area := storage.NewMemoryArea(0)

	store := NewStore(area)
	store.SetCredential(ctx, "secret")
	store.SetUserPhoto(ctx, "data:image/png;base64,AAAA")

	// fresh store bypasses read cache of the first one
	reopened := NewStore(area)

	credential, err := reopened.GetCredential(ctx)
	if err != nil || credential != "secret" {
		t.Errorf("Expected stored credential, got %q (%v)", credential, err)
	}

	photo, err := reopened.GetUserPhoto(ctx)
	if err != nil || photo != "data:image/png;base64,AAAA" {
		t.Errorf("Expected stored photo, got %q (%v)", photo, err)
	}

	raw, _ := area.Get(ctx, CredentialKey)
	if string(raw) != `"secret"` {
		t.Errorf("Expected credential to be stored as JSON string, got %s", raw)
	}
}

func TestStore_ShouldServeUpdatedValueAfterWrite(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryArea(0))

	store.SetCredential(ctx, "first")
	store.GetCredential(ctx)
	store.SetCredential(ctx, "second")

	if credential, _ := store.GetCredential(ctx); credential != "second" {
		t.Errorf("Expected updated credential, got %q", credential)
	}
}

func TestStore_ShouldRemoveSettingWhenSetToEmptyValue(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryArea(0))

	store.SetUserPhoto(ctx, "data:image/png;base64,AAAA")
	if err := store.SetUserPhoto(ctx, ""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := store.GetUserPhoto(ctx); err != ErrNotConfigured {
		t.Errorf("Expected ErrNotConfigured after removal, got %v", err)
	}
}

func TestStore_ShouldReportFirstRunOnlyOnce(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryArea(0))

	if first, err := store.MarkFirstRun(ctx); err != nil || !first {
		t.Errorf("Expected first call to report first run, got %v (%v)", first, err)
	}

	if first, err := store.MarkFirstRun(ctx); err != nil || first {
		t.Errorf("Expected second call not to report first run, got %v (%v)", first, err)
	}
}
