package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// MinPayloadLength is the length a candidate must exceed to be taken for image
// data rather than text that happens to sit in a data field.
const MinPayloadLength = 1000

type Extractor struct {
	strategies []Strategy
}

// NewExtractor returns an extractor trying strategies in the given order, or
// DefaultStrategies when none are given.
func NewExtractor(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}

	return &Extractor{strategies}
}

var defaultExtractor = NewExtractor()

// Extract runs the default strategies over raw.
func Extract(raw []byte) (string, error) {
	return defaultExtractor.Extract(raw)
}

// Extract locates a base64 image payload in a raw generateContent response.
func (e *Extractor) Extract(raw []byte) (string, error) {
	var response Response
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrExtractionFailed, err)
	}

	if len(response.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	dataFieldsFound := false
	for _, strategy := range e.strategies {
		for _, candidate := range strategy.Find(raw, response.Candidates) {
			dataFieldsFound = true

			if len(candidate) > MinPayloadLength {
				return candidate, nil
			}

			log.Printf("extractor %s: rejecting %d characters long payload", strategy.Name, len(candidate))
		}
	}

	return "", &ExtractionError{DataFieldsFound: dataFieldsFound}
}

// ExtractionError reports that no strategy produced a valid payload.
type ExtractionError struct {
	// DataFieldsFound distinguishes a response with data fields that were all
	// too short (likely a text-only reply) from one without any.
	DataFieldsFound bool
}

func (e *ExtractionError) Error() string {
	if e.DataFieldsFound {
		return ErrExtractionFailed.Error() + ": data fields found but all too short, likely text-only reply"
	}

	return ErrExtractionFailed.Error() + ": no data fields in response"
}

func (e *ExtractionError) Unwrap() error {
	return ErrExtractionFailed
}

var (
	ErrNoCandidates     = errors.New("no candidates in response")
	ErrExtractionFailed = errors.New("no image payload found in response")
)
