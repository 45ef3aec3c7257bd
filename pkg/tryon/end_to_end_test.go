package tryon_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/thebartekbanach/tryon/pkg/artifact"
	"github.com/thebartekbanach/tryon/pkg/cache"
	"github.com/thebartekbanach/tryon/pkg/composite"
	"github.com/thebartekbanach/tryon/pkg/detection"
	"github.com/thebartekbanach/tryon/pkg/garment"
	"github.com/thebartekbanach/tryon/pkg/imagefetch"
	"github.com/thebartekbanach/tryon/pkg/settings"
	"github.com/thebartekbanach/tryon/pkg/storage"
	"github.com/thebartekbanach/tryon/pkg/tryon"
	"github.com/thebartekbanach/tryon/pkg/upstream"
	testutils "github.com/thebartekbanach/tryon/test/utils"
)

// countingArea counts cache writes reaching the underlying area.
type countingArea struct {
	storage.Area
	lock        sync.Mutex
	cacheWrites int
}

func (a *countingArea) Set(ctx context.Context, key string, value []byte) error {
	if strings.HasPrefix(key, cache.DefaultKeyPrefix) {
		a.lock.Lock()
		a.cacheWrites++
		a.lock.Unlock()
	}

	return a.Area.Set(ctx, key, value)
}

func (a *countingArea) writes() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.cacheWrites
}

// fakeProvider answers generateContent calls the way the provider does.
type fakeProvider struct {
	lock           sync.Mutex
	detectionCalls int
	imageCalls     int
	imageResponse  string
}

func (p *fakeProvider) calls() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.detectionCalls + p.imageCalls
}

func (p *fakeProvider) register(server *testutils.TestHttpServer) {
	server.HandleFunc("/detection-model:generateContent", func(w http.ResponseWriter, r *http.Request) {
		p.lock.Lock()
		p.detectionCalls++
		call := p.detectionCalls
		p.lock.Unlock()

		io.Copy(io.Discard, r.Body)
		answer := `{"category": "jacket", "color": "red"}`
		if call%2 == 0 {
			answer = `The person wears "category": "hoodie", "color": "grey"`
		}

		encoded, _ := json.Marshal(answer)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + string(encoded) + `}]}}],"usageMetadata":{"promptTokenCount":258,"candidatesTokenCount":12}}`))
	})

	server.HandleFunc("/image-model:generateContent", func(w http.ResponseWriter, r *http.Request) {
		p.lock.Lock()
		p.imageCalls++
		p.lock.Unlock()

		if r.URL.Query().Get("key") != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
			return
		}

		w.Write([]byte(p.imageResponse))
	})
}

type endToEndEnv struct {
	service  tryon.Service
	provider *fakeProvider
	area     *countingArea
	product  artifact.ImageRef
}

func newEndToEndEnv(t *testing.T, imageResponse string) endToEndEnv {
	ctx := context.Background()
	provider := &fakeProvider{imageResponse: imageResponse}

	server := testutils.NewTestHttpServer()
	provider.register(server)
	server.ServeBytes("/products/jacket.png", "image/png", []byte("\x89PNG\r\n\x1a\nproduct"))
	baseURL := server.Start(t)

	area := &countingArea{Area: storage.NewMemoryArea(0)}
	settingsStore := settings.NewStore(area)
	settingsStore.SetCredential(ctx, "secret")
	settingsStore.SetUserPhoto(ctx, "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ")

	client := upstream.NewClient(upstream.Config{
		BaseURL:        baseURL,
		DetectionModel: "detection-model",
		ImageModel:     "image-model",
	}, settingsStore)

	service := tryon.NewService(
		settingsStore,
		cache.NewCacheService(cache.Config{}, area),
		imagefetch.NewResolver(imagefetch.Config{AllowedDomains: []string{"127.0.0.1"}}),
		detection.NewDetector(client),
		composite.NewGenerator(client),
	)

	return endToEndEnv{service, provider, area, artifact.ImageRef(baseURL + "/products/jacket.png")}
}

func TestEndToEnd_ShouldGenerateOnceAndServeRepeatedRequestFromCache(t *testing.T) {
	payload := strings.Repeat("iVBORw0KGgo", 200)
	env := newEndToEndEnv(t, `{"candidates":[{"content":{"parts":[{"text":"Here is the image"},{"inlineData":{"mimeType":"image/png","data":"`+payload+`"}}]}}],"usageMetadata":{"promptTokenCount":1290,"candidatesTokenCount":1290}}`)

	first, err := env.service.RunTryOn(context.Background(), env.product)
	if err != nil {
		t.Fatalf("Error ocurred when running try-on: %v", err)
	}

	if env.provider.calls() != 3 {
		t.Errorf("Expected 3 upstream calls, got %d", env.provider.calls())
	}

	if env.area.writes() != 1 {
		t.Errorf("Expected 1 cache write, got %d", env.area.writes())
	}

	if !first.Succeeded() || *first.GeneratedImage != artifact.DataURL("image/png", payload) {
		t.Errorf("Expected generated png data URL, got %+v", first)
	}

	if first.ProductGarment != garment.New("jacket", "red") || first.UserGarment != garment.New("hoodie", "grey") {
		t.Errorf("Expected detected garments, got %+v and %+v", first.ProductGarment, first.UserGarment)
	}

	second, err := env.service.RunTryOn(context.Background(), env.product)
	if err != nil {
		t.Fatalf("Error ocurred when running try-on again: %v", err)
	}

	if env.provider.calls() != 3 {
		t.Errorf("Expected no additional upstream calls, got %d in total", env.provider.calls())
	}

	if env.area.writes() != 1 {
		t.Errorf("Expected no additional cache writes, got %d in total", env.area.writes())
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical artifact from cache, got %+v and %+v", first, second)
	}
}

func TestEndToEnd_ShouldReplayCachedGenerationFailure(t *testing.T) {
	env := newEndToEndEnv(t, `{"candidates":[{"content":{"parts":[{"text":"sorry, no image"}]}}]}`)

	first, err := env.service.RunTryOn(context.Background(), env.product)
	if err != nil {
		t.Fatalf("Expected degraded artifact, got error %v", err)
	}

	if first.Succeeded() || first.Error == nil || !strings.Contains(*first.Error, composite.ErrNoImageInResponse.Error()) {
		t.Errorf("Expected failed artifact with diagnostic, got %+v", first)
	}

	second, _ := env.service.RunTryOn(context.Background(), env.product)

	if env.provider.calls() != 3 || !reflect.DeepEqual(first, second) {
		t.Errorf("Expected failure to be replayed from cache, got %d calls and %+v", env.provider.calls(), second)
	}
}

func TestEndToEnd_ShouldRegenerateAfterInvalidation(t *testing.T) {
	payload := strings.Repeat("A", 1200)
	env := newEndToEndEnv(t, `{"candidates":[{"content":{"parts":[{"inline_data":{"mime_type":"image/png","data":"`+payload+`"}}]}}]}`)

	first, _ := env.service.RunTryOn(context.Background(), env.product)
	if err := env.service.Invalidate(context.Background(), first.CacheKey); err != nil {
		t.Fatalf("Error ocurred when invalidating: %v", err)
	}

	env.service.RunTryOn(context.Background(), env.product)

	if env.provider.calls() != 6 {
		t.Errorf("Expected full pipeline to run again, got %d upstream calls", env.provider.calls())
	}
}
