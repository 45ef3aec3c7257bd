//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/thebartekbanach/tryon/pkg/cache"
	"github.com/thebartekbanach/tryon/pkg/composite"
	"github.com/thebartekbanach/tryon/pkg/detection"
	"github.com/thebartekbanach/tryon/pkg/imagefetch"
	"github.com/thebartekbanach/tryon/pkg/settings"
	"github.com/thebartekbanach/tryon/pkg/tryon"
)

func InitializeApplication(ctx context.Context) *application {
	wire.Build(
		InitializeStorageArea,
		settings.NewStore,

		InitializeUpstreamConfig,
		InitializeUpstreamClient,
		detection.NewDetector,
		composite.NewGenerator,

		InitializeImageFetchConfig,
		imagefetch.NewResolver,

		InitializeCacheConfig,
		cache.NewCacheService,

		tryon.NewService,
		InitializeServerConfig,
		wire.Struct(new(application), "*"),
	)

	return nil
}
