package composite

import (
	"context"
	"errors"

	"github.com/thebartekbanach/tryon/pkg/artifact"
	"github.com/thebartekbanach/tryon/pkg/garment"
	"github.com/thebartekbanach/tryon/pkg/imagefetch"
)

type Generator interface {
	// Generate renders the person of userPhoto wearing the garment of
	// productImage. A response without a usable image fails with an error
	// matching ErrNoImageInResponse.
	Generate(ctx context.Context, userPhoto, productImage imagefetch.Image, productGarment, userGarment garment.Descriptor) (artifact.ImageRef, error)
}

// NoImageError wraps the extraction failure behind ErrNoImageInResponse.
type NoImageError struct {
	Cause error
}

func (e *NoImageError) Error() string {
	return ErrNoImageInResponse.Error() + ": " + e.Cause.Error()
}

func (e *NoImageError) Is(target error) bool {
	return target == ErrNoImageInResponse
}

func (e *NoImageError) Unwrap() error {
	return e.Cause
}

var ErrNoImageInResponse = errors.New("no image in response")
