package upstream

import "context"

// ContentGenerator is the part of the provider API the pipeline stages use.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, request GenerateContentRequest) ([]byte, error)
	DetectionModel() string
	ImageModel() string
}

var _ ContentGenerator = (*Client)(nil)
