package imagefetch

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/thebartekbanach/tryon/pkg/artifact"
)

const (
	// DefaultMimeType is assumed for bare base64 payloads.
	DefaultMimeType = "image/jpeg"

	maxImageSize = 20 << 20
)

type httpGetFunc func(ctx context.Context, url string) (resp *http.Response, err error)

type Config struct {
	// AllowedDomains are glob patterns matched against the host of fetched
	// URLs. Empty list allows every domain.
	AllowedDomains []string
}

type resolver struct {
	config Config
	getter httpGetFunc
}

var _ Resolver = (*resolver)(nil)

func NewResolver(config Config) Resolver {
	getFunc := func(ctx context.Context, url string) (resp *http.Response, err error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		return http.DefaultClient.Do(req)
	}

	return &resolver{config, getFunc}
}

func (r *resolver) Resolve(ctx context.Context, ref artifact.ImageRef) (Image, error) {
	value := strings.TrimSpace(string(ref))

	switch {
	case value == "":
		return Image{}, ErrEmptyReference
	case ref.IsDataURL():
		return parseDataURL(value)
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return r.fetch(ctx, value)
	default:
		return Image{Data: value, MimeType: DefaultMimeType}, nil
	}
}

func (r *resolver) fetch(ctx context.Context, imageURL string) (Image, error) {
	if !r.isAllowedDomain(imageURL) {
		return Image{}, ErrDomainNotAllowed
	}

	response, err := r.getter(ctx, imageURL)
	if err != nil {
		return Image{}, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return Image{}, ErrResponseStatus404
	} else if response.StatusCode != http.StatusOK {
		return Image{}, ErrResponseStatusNotOK
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, maxImageSize+1))
	if err != nil {
		return Image{}, err
	}

	if len(data) > maxImageSize {
		return Image{}, ErrImageTooLarge
	}

	mimeType := response.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return Image{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}, nil
}

func (r *resolver) isAllowedDomain(imageURL string) bool {
	if len(r.config.AllowedDomains) == 0 {
		return true
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		return false
	}

	domain := parsed.Hostname()
	for _, allowedDomain := range r.config.AllowedDomains {
		if glob.Glob(allowedDomain, domain) {
			return true
		}
	}

	return false
}

// parseDataURL accepts data:<mime>;base64,<payload>
func parseDataURL(value string) (Image, error) {
	header, payload, found := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
	if !found || payload == "" {
		return Image{}, ErrMalformedDataURL
	}

	mimeType, encoding, found := strings.Cut(header, ";")
	if !found || encoding != "base64" {
		return Image{}, ErrMalformedDataURL
	}

	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	return Image{Data: payload, MimeType: mimeType}, nil
}
