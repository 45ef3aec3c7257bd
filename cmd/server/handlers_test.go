package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/thebartekbanach/tryon/pkg/artifact"
	"github.com/thebartekbanach/tryon/pkg/cache"
	mock_settings "github.com/thebartekbanach/tryon/pkg/settings/mocks"
	"github.com/thebartekbanach/tryon/pkg/tryon"
	mock_tryon "github.com/thebartekbanach/tryon/pkg/tryon/mocks"
	"github.com/thebartekbanach/tryon/pkg/upstream"
)

var testConfig = ServerConfig{
	AllowedOrigins: []string{"https://*.zalando.de", "https://www.aboutyou.de"},
	AdminToken:     "admin",
	RunTimeout:     time.Minute,
}

func newTestRouter(t *testing.T) (*http.ServeMux, *mock_tryon.MockService, *mock_settings.MockStore) {
	mockCtrl := gomock.NewController(t)
	service := mock_tryon.NewMockService(mockCtrl)
	settingsStore := mock_settings.NewMockStore(mockCtrl)

	return newRouter(testConfig, service, settingsStore), service, settingsStore
}

func serve(router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	for name, value := range headers {
		request.Header.Set(name, value)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandlers_TryOnReturnsArtifact(t *testing.T) {
	router, service, _ := newTestRouter(t)
	generated := artifact.DataURL("image/png", "AAAA")
	result := artifact.Artifact{CacheKey: "a_b", GeneratedImage: &generated}

	service.EXPECT().RunTryOn(gomock.Any(), artifact.ImageRef("https://img01.ztat.net/jacket.jpg")).Return(result, nil)

	response := serve(router, http.MethodPost, "/tryon", `{"productImage":"https://img01.ztat.net/jacket.jpg"}`, map[string]string{
		"Origin": "https://en.zalando.de",
	})

	if response.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", response.Code, response.Body.String())
	}

	if response.Header().Get("Access-Control-Allow-Origin") != "https://en.zalando.de" {
		t.Errorf("Expected origin to be allowed, got %q", response.Header().Get("Access-Control-Allow-Origin"))
	}

	var decoded artifact.Artifact
	json.Unmarshal(response.Body.Bytes(), &decoded)
	if decoded.CacheKey != "a_b" || decoded.GeneratedImage == nil || *decoded.GeneratedImage != generated {
		t.Errorf("Expected artifact in response, got %s", response.Body.String())
	}
}

func TestHandlers_TryOnRejectsUnknownOrigin(t *testing.T) {
	router, service, _ := newTestRouter(t)
	service.EXPECT().RunTryOn(gomock.Any(), gomock.Any()).Times(0)

	response := serve(router, http.MethodPost, "/tryon", `{"productImage":"x"}`, map[string]string{"Origin": "https://evil.org"})

	if response.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", response.Code)
	}
}

func TestHandlers_TryOnRequiresProductImage(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, body := range []string{`{}`, `not json`, `{"productImage":""}`} {
		if response := serve(router, http.MethodPost, "/tryon", body, nil); response.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %q, got %d", body, response.Code)
		}
	}

	if response := serve(router, http.MethodGet, "/tryon", "", nil); response.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405 for GET, got %d", response.Code)
	}
}

func TestHandlers_TryOnMapsErrorsToStatusCodes(t *testing.T) {
	cases := map[error]int{
		upstream.ErrAuthMissing:                                  http.StatusPreconditionFailed,
		tryon.ErrUserPhotoMissing:                                http.StatusPreconditionFailed,
		upstream.ErrUpstreamTimeout:                              http.StatusGatewayTimeout,
		&upstream.UpstreamError{StatusCode: 400, Body: "bad key"}: http.StatusBadGateway,
		tryon.ErrImageUnavailable:                                http.StatusUnprocessableEntity,
		context.DeadlineExceeded:                                 http.StatusGatewayTimeout,
	}

	for err, expected := range cases {
		router, service, _ := newTestRouter(t)
		service.EXPECT().RunTryOn(gomock.Any(), gomock.Any()).Return(artifact.Artifact{}, err)

		response := serve(router, http.MethodPost, "/tryon", `{"productImage":"x"}`, nil)
		if response.Code != expected {
			t.Errorf("Expected status %d for %v, got %d", expected, err, response.Code)
		}
	}
}

func TestHandlers_UpstreamErrorBodyIsPassedToCaller(t *testing.T) {
	router, service, _ := newTestRouter(t)
	service.EXPECT().RunTryOn(gomock.Any(), gomock.Any()).
		Return(artifact.Artifact{}, &upstream.UpstreamError{StatusCode: 400, Body: `{"error":{"message":"API key not valid"}}`})

	response := serve(router, http.MethodPost, "/tryon", `{"productImage":"x"}`, nil)

	if !strings.Contains(response.Body.String(), "API key not valid") {
		t.Errorf("Expected provider diagnostic in response, got %s", response.Body.String())
	}
}

func TestHandlers_SetupReportsStatus(t *testing.T) {
	router, service, _ := newTestRouter(t)
	service.EXPECT().CheckSetupComplete(gomock.Any()).Return(tryon.SetupStatus{HasCredential: true}, nil)

	response := serve(router, http.MethodGet, "/setup", "", nil)

	if response.Code != http.StatusOK || strings.TrimSpace(response.Body.String()) != `{"isSetup":false,"hasCredential":true,"hasUserPhoto":false}` {
		t.Errorf("Expected setup status, got %d: %s", response.Code, response.Body.String())
	}
}

func TestHandlers_CacheEndpointsRequireAdminToken(t *testing.T) {
	router, service, settingsStore := newTestRouter(t)
	service.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Times(0)
	settingsStore.EXPECT().SetCredential(gomock.Any(), gomock.Any()).Times(0)

	if response := serve(router, http.MethodDelete, "/cache?key=a_b", "", nil); response.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for cache invalidation, got %d", response.Code)
	}

	if response := serve(router, http.MethodPut, "/settings/credential", "secret", map[string]string{"Authorization": "Bearer wrong"}); response.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for settings, got %d", response.Code)
	}
}

func TestHandlers_CacheInvalidation(t *testing.T) {
	router, service, _ := newTestRouter(t)
	admin := map[string]string{"Authorization": "Bearer admin"}

	service.EXPECT().Invalidate(gomock.Any(), "a_b").Return(nil)
	service.EXPECT().Invalidate(gomock.Any(), "missing").Return(cache.ErrEntryNotFound)
	service.EXPECT().ClearCache(gomock.Any()).Return([]string{"a_b", "c_d"}, nil)

	if response := serve(router, http.MethodDelete, "/cache?key=a_b", "", admin); response.Code != http.StatusOK {
		t.Errorf("Expected status 200 for invalidation, got %d", response.Code)
	}

	if response := serve(router, http.MethodDelete, "/cache?key=missing", "", admin); response.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown key, got %d", response.Code)
	}

	response := serve(router, http.MethodDelete, "/cache", "", admin)
	if response.Code != http.StatusOK || strings.TrimSpace(response.Body.String()) != `["a_b","c_d"]` {
		t.Errorf("Expected removed keys, got %d: %s", response.Code, response.Body.String())
	}
}

func TestHandlers_SettingsAreSaved(t *testing.T) {
	router, _, settingsStore := newTestRouter(t)
	admin := map[string]string{"Authorization": "Bearer admin"}

	settingsStore.EXPECT().SetCredential(gomock.Any(), "secret").Return(nil)
	settingsStore.EXPECT().SetUserPhoto(gomock.Any(), "data:image/png;base64,AAAA").Return(nil)

	if response := serve(router, http.MethodPut, "/settings/credential", "secret\n", admin); response.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for credential, got %d", response.Code)
	}

	if response := serve(router, http.MethodPut, "/settings/photo", "data:image/png;base64,AAAA", admin); response.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for photo, got %d", response.Code)
	}
}

func TestHandlers_StatusExposesMetrics(t *testing.T) {
	router, _, _ := newTestRouter(t)

	response := serve(router, http.MethodGet, "/status", "", nil)

	if response.Code != http.StatusOK || !strings.Contains(response.Body.String(), "go_goroutines") {
		t.Errorf("Expected prometheus metrics, got %d", response.Code)
	}
}
