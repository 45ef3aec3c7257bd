package tryon

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/thebartekbanach/tryon/pkg/artifact"
	"github.com/thebartekbanach/tryon/pkg/cache"
	"github.com/thebartekbanach/tryon/pkg/composite"
	"github.com/thebartekbanach/tryon/pkg/detection"
	"github.com/thebartekbanach/tryon/pkg/hasher"
	"github.com/thebartekbanach/tryon/pkg/imagefetch"
	"github.com/thebartekbanach/tryon/pkg/metrics"
	"github.com/thebartekbanach/tryon/pkg/prompt"
	"github.com/thebartekbanach/tryon/pkg/settings"
	"github.com/thebartekbanach/tryon/pkg/upstream"
)

type orchestrator struct {
	settings  settings.Store
	cache     cache.CacheService
	images    imagefetch.Resolver
	detector  detection.Detector
	generator composite.Generator
}

var _ Service = (*orchestrator)(nil)

func NewService(
	settingsStore settings.Store,
	cacheService cache.CacheService,
	images imagefetch.Resolver,
	detector detection.Detector,
	generator composite.Generator,
) Service {
	return &orchestrator{
		settingsStore,
		cacheService,
		images,
		detector,
		generator,
	}
}

func (o *orchestrator) RunTryOn(ctx context.Context, productImage artifact.ImageRef) (artifact.Artifact, error) {
	return o.RunTryOnWithObserver(ctx, productImage, nil)
}

func (o *orchestrator) RunTryOnWithObserver(ctx context.Context, productImage artifact.ImageRef, observer Observer) (artifact.Artifact, error) {
	r := run{
		orchestrator: o,
		id:           uuid.NewString(),
		observer:     observer,
	}

	return r.execute(ctx, productImage)
}

func (o *orchestrator) Invalidate(ctx context.Context, cacheKey string) error {
	if err := o.cache.Remove(ctx, cacheKey); err != nil {
		return err
	}

	log.Printf("invalidated artifact %s", cacheKey)
	return nil
}

func (o *orchestrator) ClearCache(ctx context.Context) ([]string, error) {
	removed, err := o.cache.Clear(ctx)
	log.Printf("cleared %d artifacts", len(removed))
	return removed, err
}

func (o *orchestrator) CheckSetupComplete(ctx context.Context) (SetupStatus, error) {
	status := SetupStatus{}

	if _, err := o.settings.GetCredential(ctx); err == nil {
		status.HasCredential = true
	} else if err != settings.ErrNotConfigured {
		return status, err
	}

	if _, err := o.settings.GetUserPhoto(ctx); err == nil {
		status.HasUserPhoto = true
	} else if err != settings.ErrNotConfigured {
		return status, err
	}

	status.IsSetup = status.HasCredential && status.HasUserPhoto
	return status, nil
}

// run is the state of a single try-on request.
type run struct {
	*orchestrator
	id       string
	observer Observer
	stage    Stage
}

func (r *run) execute(ctx context.Context, productImage artifact.ImageRef) (artifact.Artifact, error) {
	r.enter(StageIdle)

	userPhoto, err := r.settings.GetUserPhoto(ctx)
	if err == settings.ErrNotConfigured {
		return r.fail(ErrUserPhotoMissing)
	}
	if err != nil {
		return r.fail(fmt.Errorf("error ocurred when reading user photo: %w", err))
	}

	r.enter(StageCheckCache)
	key := hasher.CacheKey(string(productImage), userPhoto)

	cached, err := r.cache.Get(ctx, key)
	if err == nil {
		if ctx.Err() != nil {
			return r.fail(ctx.Err())
		}

		r.logf("serving artifact %s from cache", key)
		metrics.TryOnRuns.WithLabelValues("cached").Inc()
		r.enter(StageDone)
		return cached, nil
	}
	if err != cache.ErrEntryNotFound {
		r.logf("warning: cache lookup of %s failed, generating again: %v", key, err)
	}

	if _, err := r.settings.GetCredential(ctx); err == settings.ErrNotConfigured {
		return r.fail(upstream.ErrAuthMissing)
	} else if err != nil {
		return r.fail(fmt.Errorf("error ocurred when reading credential: %w", err))
	}

	r.enter(StageDetectProduct)
	product, err := r.images.Resolve(ctx, productImage)
	if err != nil {
		return r.fail(fmt.Errorf("%w: product image: %v", ErrImageUnavailable, err))
	}

	productGarment, err := r.detector.Detect(ctx, product, prompt.DetectionPrompt())
	if err != nil {
		return r.fail(err)
	}
	r.logf("product garment: %s", productGarment)

	r.enter(StageDetectUser)
	user, err := r.images.Resolve(ctx, artifact.ImageRef(userPhoto))
	if err != nil {
		return r.fail(fmt.Errorf("%w: user photo: %v", ErrImageUnavailable, err))
	}

	userGarment, err := r.detector.Detect(ctx, user, prompt.UserDetectionPrompt(productGarment))
	if err != nil {
		return r.fail(err)
	}
	r.logf("user garment: %s", userGarment)

	r.enter(StageGenerate)
	source := artifact.Source{
		CacheKey:       key,
		UserPhoto:      artifact.ImageRef(userPhoto),
		ProductImage:   productImage,
		ProductGarment: productGarment,
		UserGarment:    userGarment,
	}

	outcome := "generated"
	var result artifact.Artifact

	generatedImage, err := r.generator.Generate(ctx, user, product, productGarment, userGarment)
	if errors.Is(err, composite.ErrNoImageInResponse) {
		r.logf("generation failed, caching failure: %v", err)
		outcome = "degraded"
		result = artifact.NewFailed(source, err)
	} else if err != nil {
		return r.fail(err)
	} else {
		result = artifact.NewGenerated(source, generatedImage)
	}

	if ctx.Err() != nil {
		return r.fail(ctx.Err())
	}

	r.enter(StageCache)
	if !r.cache.Put(ctx, key, result) {
		r.logf("artifact %s returned without caching", key)
	}

	if ctx.Err() != nil {
		return r.fail(ctx.Err())
	}

	metrics.TryOnRuns.WithLabelValues(outcome).Inc()
	r.enter(StageDone)
	return result, nil
}

func (r *run) enter(stage Stage) {
	r.stage = stage
	if r.observer != nil {
		r.observer(stage)
	}
}

func (r *run) fail(err error) (artifact.Artifact, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.logf("abandoned in stage %s", r.stage)
		metrics.TryOnRuns.WithLabelValues("canceled").Inc()
	} else {
		r.logf("failed in stage %s: %v", r.stage, err)
		metrics.TryOnRuns.WithLabelValues("failed").Inc()
	}

	r.enter(StageError)
	return artifact.Artifact{}, err
}

func (r *run) logf(format string, args ...interface{}) {
	log.Printf("tryon %s: "+format, append([]interface{}{r.id}, args...)...)
}
