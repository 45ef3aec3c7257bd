package tryon

import (
	"context"
	"errors"
	"fmt"

	"github.com/thebartekbanach/tryon/pkg/artifact"
	"github.com/thebartekbanach/tryon/pkg/upstream"
)

type Stage string

const (
	StageIdle          Stage = "IDLE"
	StageCheckCache    Stage = "CHECK_CACHE"
	StageDetectProduct Stage = "DETECT_PRODUCT"
	StageDetectUser    Stage = "DETECT_USER"
	StageGenerate      Stage = "GENERATE"
	StageCache         Stage = "CACHE"
	StageDone          Stage = "DONE"
	StageError         Stage = "ERROR"
)

// Observer is notified of every stage a run enters.
type Observer func(stage Stage)

type SetupStatus struct {
	IsSetup       bool `json:"isSetup"`
	HasCredential bool `json:"hasCredential"`
	HasUserPhoto  bool `json:"hasUserPhoto"`
}

type Service interface {
	// RunTryOn returns the artifact of the product image worn by the stored
	// user photo, from cache when possible. An artifact without generated
	// image is a valid result and carries the generation error.
	RunTryOn(ctx context.Context, productImage artifact.ImageRef) (artifact.Artifact, error)
	RunTryOnWithObserver(ctx context.Context, productImage artifact.ImageRef, observer Observer) (artifact.Artifact, error)

	Invalidate(ctx context.Context, cacheKey string) error
	ClearCache(ctx context.Context) ([]string, error)
	CheckSetupComplete(ctx context.Context) (SetupStatus, error)
}

var (
	ErrUserPhotoMissing = fmt.Errorf("no user photo configured: %w", upstream.ErrAuthMissing)
	ErrImageUnavailable = errors.New("image cannot be loaded")
)
