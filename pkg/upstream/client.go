package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thebartekbanach/tryon/pkg/metrics"
	"github.com/thebartekbanach/tryon/pkg/settings"
	"golang.org/x/time/rate"
)

// CredentialSource provides the API credential, settings.ErrNotConfigured
// when there is none.
type CredentialSource interface {
	GetCredential(ctx context.Context) (string, error)
}

type httpRequestFunc func(req *http.Request) (*http.Response, error)

// a single try-on spends three calls
const defaultRateBurst = 3

type Client struct {
	config      Config
	credentials CredentialSource
	limiter     *rate.Limiter
	makeRequest httpRequestFunc
}

func NewClient(config Config, credentials CredentialSource) *Client {
	return newClient(config, credentials, http.DefaultClient.Do)
}

func newClient(config Config, credentials CredentialSource, makeRequest httpRequestFunc) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.DetectionModel == "" {
		config.DetectionModel = DefaultDetectionModel
	}
	if config.ImageModel == "" {
		config.ImageModel = DefaultImageModel
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if config.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), defaultRateBurst)
	}

	return &Client{config, credentials, limiter, makeRequest}
}

func (c *Client) Config() Config {
	return c.config
}

// GenerateContent posts request to the given model and returns the raw
// response body. The credential is checked before any network activity.
func (c *Client) GenerateContent(ctx context.Context, model string, request GenerateContentRequest) ([]byte, error) {
	credential, err := c.credentials.GetCredential(ctx)
	if errors.Is(err, settings.ErrNotConfigured) || (err == nil && credential == "") {
		return nil, ErrAuthMissing
	}
	if err != nil {
		return nil, fmt.Errorf("error ocurred when reading credential: %w", err)
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			// the next slot lies past the caller's deadline
			metrics.UpstreamCalls.WithLabelValues(model, "timeout").Inc()
			log.Printf("upstream %s: no request slot before deadline: %v", model, err)
			return nil, ErrUpstreamTimeout
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.endpoint(model, credential), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	response, err := c.makeRequest(req)
	if err != nil {
		return nil, c.recordFailure(ctx, callCtx, model, err)
	}
	defer response.Body.Close()

	responseBody, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, c.recordFailure(ctx, callCtx, model, err)
	}
	metrics.UpstreamDuration.WithLabelValues(model).Observe(time.Since(started).Seconds())

	if response.StatusCode < 200 || response.StatusCode > 299 {
		metrics.UpstreamCalls.WithLabelValues(model, "status_"+fmt.Sprint(response.StatusCode)).Inc()
		log.Printf("upstream %s responded with status %d", model, response.StatusCode)
		return nil, &UpstreamError{StatusCode: response.StatusCode, Body: string(responseBody)}
	}

	metrics.UpstreamCalls.WithLabelValues(model, "ok").Inc()
	c.recordUsage(model, responseBody)

	return responseBody, nil
}

// DetectionModel and ImageModel name the two endpoints of the provider.
func (c *Client) DetectionModel() string {
	return c.config.DetectionModel
}

func (c *Client) ImageModel() string {
	return c.config.ImageModel
}

func (c *Client) endpoint(model, credential string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + "/" + model + ":generateContent?key=" + url.QueryEscape(credential)
}

func (c *Client) recordFailure(ctx, callCtx context.Context, model string, err error) error {
	if ctx.Err() != nil {
		metrics.UpstreamCalls.WithLabelValues(model, "canceled").Inc()
		return ctx.Err()
	}

	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		metrics.UpstreamCalls.WithLabelValues(model, "timeout").Inc()
		log.Printf("upstream %s did not respond within %s", model, c.config.Timeout)
		return ErrUpstreamTimeout
	}

	metrics.UpstreamCalls.WithLabelValues(model, "transport_error").Inc()
	return &UpstreamError{Body: stripCredential(err.Error())}
}

func (c *Client) recordUsage(model string, responseBody []byte) {
	var usage struct {
		UsageMetadata UsageMetadata `json:"usageMetadata"`
	}
	if err := json.Unmarshal(responseBody, &usage); err != nil {
		return
	}

	metrics.UpstreamTokens.WithLabelValues(model, "prompt").Add(float64(usage.UsageMetadata.PromptTokenCount))
	metrics.UpstreamTokens.WithLabelValues(model, "candidates").Add(float64(usage.UsageMetadata.CandidatesTokenCount))
	log.Printf(
		"upstream %s usage: %d input tokens, %d output tokens",
		model, usage.UsageMetadata.PromptTokenCount, usage.UsageMetadata.CandidatesTokenCount,
	)
}

// transport errors quote the request URL, which carries the key
func stripCredential(message string) string {
	if i := strings.Index(message, "key="); i >= 0 {
		end := strings.IndexAny(message[i:], "\" &")
		if end < 0 {
			return message[:i] + "key=REDACTED"
		}

		return message[:i] + "key=REDACTED" + message[i+end:]
	}

	return message
}
