package detection

import (
	"context"

	"github.com/thebartekbanach/tryon/pkg/garment"
	"github.com/thebartekbanach/tryon/pkg/imagefetch"
)

type Detector interface {
	// Detect classifies the garment of image as instructed by prompt. Output
	// that cannot be parsed degrades to garment.Unknown(); only configuration
	// and transport problems are returned as errors.
	Detect(ctx context.Context, image imagefetch.Image, prompt string) (garment.Descriptor, error)
}
