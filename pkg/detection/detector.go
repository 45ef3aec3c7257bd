package detection

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"github.com/thebartekbanach/tryon/pkg/garment"
	"github.com/thebartekbanach/tryon/pkg/imagefetch"
	"github.com/thebartekbanach/tryon/pkg/metrics"
	"github.com/thebartekbanach/tryon/pkg/upstream"
)

const (
	temperature     = 0.1
	maxOutputTokens = 100
)

var (
	categoryPattern = regexp.MustCompile(`"(?:category|clothes)":\s*"([^"]+)"`)
	colorPattern    = regexp.MustCompile(`"color":\s*"([^"]+)"`)
)

type detector struct {
	generator upstream.ContentGenerator
}

var _ Detector = (*detector)(nil)

func NewDetector(generator upstream.ContentGenerator) Detector {
	return &detector{generator}
}

func (d *detector) Detect(ctx context.Context, image imagefetch.Image, prompt string) (garment.Descriptor, error) {
	request := upstream.GenerateContentRequest{
		Contents: []upstream.Content{{
			Parts: []upstream.Part{
				upstream.TextPart(prompt),
				upstream.ImagePart(image.MimeType, image.Data),
			},
		}},
		GenerationConfig: &upstream.GenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	body, err := d.generator.GenerateContent(ctx, d.generator.DetectionModel(), request)
	if err != nil {
		return garment.Descriptor{}, err
	}

	var response upstream.GenerateContentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		log.Printf("detection response is not valid JSON, using generic descriptor: %v", err)
		metrics.DetectionFallbacks.WithLabelValues("sentinel").Inc()
		return garment.Unknown(), nil
	}

	return ParseDescriptor(response.Text()), nil
}

// ParseDescriptor reads a descriptor from model text. Strict JSON is tried
// first, then the category and color fields are matched independently. Text
// carrying neither, including JSON without either field, yields
// garment.Unknown().
func ParseDescriptor(text string) garment.Descriptor {
	var parsed struct {
		Category string `json:"category"`
		Clothes  string `json:"clothes"`
		Color    string `json:"color"`
	}

	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err == nil {
		category := parsed.Category
		if category == "" {
			category = parsed.Clothes
		}

		if category != "" || parsed.Color != "" {
			return garment.New(category, parsed.Color)
		}
	}

	category, color := "", ""
	if match := categoryPattern.FindStringSubmatch(text); match != nil {
		category = match[1]
	}
	if match := colorPattern.FindStringSubmatch(text); match != nil {
		color = match[1]
	}

	if category == "" && color == "" {
		log.Printf("could not parse detection output %q, using generic descriptor", text)
		metrics.DetectionFallbacks.WithLabelValues("sentinel").Inc()
		return garment.Unknown()
	}

	metrics.DetectionFallbacks.WithLabelValues("regex").Inc()
	return garment.New(category, color)
}
