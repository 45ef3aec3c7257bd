package settings

import (
	"context"
	"errors"
)

const (
	CredentialKey = "credential"
	UserPhotoKey  = "userPhoto"
	FirstRunKey   = "firstRun"
)

// Store persists the setup of the engine next to the cached artifacts.
type Store interface {
	GetCredential(ctx context.Context) (string, error)
	SetCredential(ctx context.Context, credential string) error

	// GetUserPhoto returns the stored photo, usually a data URL.
	GetUserPhoto(ctx context.Context) (string, error)
	SetUserPhoto(ctx context.Context, photo string) error

	// MarkFirstRun reports true exactly once, on the first call ever made
	// against the underlying area.
	MarkFirstRun(ctx context.Context) (bool, error)
}

var ErrNotConfigured = errors.New("setting not configured")
