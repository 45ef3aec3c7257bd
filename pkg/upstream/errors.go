package upstream

import (
	"errors"
	"fmt"
)

// UpstreamError carries a non-success response, or a transport failure when
// StatusCode is zero. Body is kept verbatim for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream request failed: %s", e.Body)
	}

	return fmt.Sprintf("upstream responded with status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

var (
	ErrAuthMissing     = errors.New("no API credential configured")
	ErrUpstream        = errors.New("upstream error")
	ErrUpstreamTimeout = errors.New("upstream request timed out")
)
