package imagefetch

import (
	"context"
	"errors"

	"github.com/thebartekbanach/tryon/pkg/artifact"
)

// Image is an inline image ready to be sent upstream.
type Image struct {
	Data     string
	MimeType string
}

type Resolver interface {
	// Resolve turns a reference into inline image data. Data URLs and bare
	// base64 payloads are decoded locally, http(s) URLs are downloaded.
	Resolve(ctx context.Context, ref artifact.ImageRef) (Image, error)
}

var (
	ErrResponseStatusNotOK = errors.New("response returned non-200 status code")
	ErrResponseStatus404   = errors.New("response returned 404 status code")
	ErrDomainNotAllowed    = errors.New("image domain is not allowed")
	ErrEmptyReference      = errors.New("image reference is empty")
	ErrMalformedDataURL    = errors.New("malformed data URL")
	ErrImageTooLarge       = errors.New("image exceeds size limit")
)
