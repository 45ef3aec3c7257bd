package composite

import (
	"context"
	"log"

	"github.com/thebartekbanach/tryon/pkg/artifact"
	"github.com/thebartekbanach/tryon/pkg/extractor"
	"github.com/thebartekbanach/tryon/pkg/garment"
	"github.com/thebartekbanach/tryon/pkg/imagefetch"
	"github.com/thebartekbanach/tryon/pkg/prompt"
	"github.com/thebartekbanach/tryon/pkg/upstream"
)

// GeneratedMimeType is the type generated payloads are labelled with.
const GeneratedMimeType = "image/png"

type generator struct {
	upstream  upstream.ContentGenerator
	extractor *extractor.Extractor
}

var _ Generator = (*generator)(nil)

func NewGenerator(upstreamGenerator upstream.ContentGenerator) Generator {
	return &generator{upstreamGenerator, extractor.NewExtractor()}
}

func (g *generator) Generate(ctx context.Context, userPhoto, productImage imagefetch.Image, productGarment, userGarment garment.Descriptor) (artifact.ImageRef, error) {
	request := upstream.GenerateContentRequest{
		Contents: []upstream.Content{{
			Parts: []upstream.Part{
				upstream.ImagePart(productImage.MimeType, productImage.Data),
				upstream.ImagePart(userPhoto.MimeType, userPhoto.Data),
				upstream.TextPart(prompt.ReplacementPrompt(productGarment, userGarment)),
			},
		}},
	}

	body, err := g.upstream.GenerateContent(ctx, g.upstream.ImageModel(), request)
	if err != nil {
		return "", err
	}

	data, err := g.extractor.Extract(body)
	if err != nil {
		log.Printf("no image found in %d bytes long generation response: %v", len(body), err)
		return "", &NoImageError{Cause: err}
	}

	return artifact.DataURL(GeneratedMimeType, data), nil
}
