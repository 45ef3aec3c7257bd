package artifact

import (
	"strings"

	"github.com/thebartekbanach/tryon/pkg/garment"
)

// ImageRef references image bytes: a fetchable URL, a data URL or a bare
// base64 payload.
type ImageRef string

func (ref ImageRef) IsDataURL() bool {
	return strings.HasPrefix(string(ref), "data:")
}

// DataURL wraps a base64 payload into a data URL of the given mime type.
func DataURL(mimeType, base64Data string) ImageRef {
	return ImageRef("data:" + mimeType + ";base64," + base64Data)
}

// Artifact is the outcome of a single try-on request and the unit of caching.
// GeneratedImage is set if and only if Error is nil.
type Artifact struct {
	SourceUserPhoto    ImageRef           `json:"sourceUserPhoto" bson:"sourceUserPhoto"`
	SourceProductImage ImageRef           `json:"sourceProductImage" bson:"sourceProductImage"`
	ProductGarment     garment.Descriptor `json:"productGarment" bson:"productGarment"`
	UserGarment        garment.Descriptor `json:"userGarment" bson:"userGarment"`
	GeneratedImage     *ImageRef          `json:"generatedImage" bson:"generatedImage"`
	CacheKey           string             `json:"cacheKey" bson:"cacheKey"`
	Error              *string            `json:"error" bson:"error"`
}

// Source groups the inputs every artifact of a request shares.
type Source struct {
	CacheKey       string
	UserPhoto      ImageRef
	ProductImage   ImageRef
	ProductGarment garment.Descriptor
	UserGarment    garment.Descriptor
}

func NewGenerated(source Source, generatedImage ImageRef) Artifact {
	a := source.artifact()
	a.GeneratedImage = &generatedImage
	return a
}

// NewFailed records a generation failure that happened after detection succeeded.
func NewFailed(source Source, generationError error) Artifact {
	a := source.artifact()
	message := generationError.Error()
	a.Error = &message
	return a
}

func (a Artifact) Succeeded() bool {
	return a.GeneratedImage != nil && a.Error == nil
}

func (s Source) artifact() Artifact {
	return Artifact{
		SourceUserPhoto:    s.UserPhoto,
		SourceProductImage: s.ProductImage,
		ProductGarment:     s.ProductGarment,
		UserGarment:        s.UserGarment,
		CacheKey:           s.CacheKey,
	}
}
