package upstream

import "time"

const (
	DefaultBaseURL        = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultDetectionModel = "gemini-2.0-flash-exp"
	DefaultImageModel     = "gemini-2.5-flash-image-preview"
	DefaultTimeout        = 60 * time.Second
)

type Config struct {
	BaseURL        string
	DetectionModel string
	ImageModel     string

	// Timeout bounds a single generateContent call.
	Timeout time.Duration

	// RequestsPerMinute limits calls made by the client, zero disables limiting.
	RequestsPerMinute int
}
