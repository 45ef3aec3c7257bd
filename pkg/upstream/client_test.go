package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/thebartekbanach/tryon/pkg/settings"
	testutils "github.com/thebartekbanach/tryon/test/utils"
)

type staticCredentials struct {
	credential string
	err        error
}

func (c staticCredentials) GetCredential(ctx context.Context) (string, error) {
	return c.credential, c.err
}

func testReqFunc(statusCode int, response []byte, callError error, requestAssert func(req *http.Request)) (httpRequestFunc, *int) {
	calls := 0
	return func(req *http.Request) (*http.Response, error) {
		calls++
		requestAssert(req)

		if callError != nil {
			return nil, callError
		}

		return &http.Response{
			StatusCode: statusCode,
			Body:       ioutil.NopCloser(bytes.NewReader(response)),
		}, nil
	}, &calls
}

func noAssertions(req *http.Request) {}

func testRequest() GenerateContentRequest {
	return GenerateContentRequest{
		Contents: []Content{{Parts: []Part{TextPart("describe"), ImagePart("image/jpeg", "AAAA")}}},
		GenerationConfig: &GenerationConfig{
			Temperature:     0.1,
			MaxOutputTokens: 100,
		},
	}
}

func TestClient_ShouldPostRequestToModelEndpoint(t *testing.T) {
	makeRequest, _ := testReqFunc(200, []byte(`{"candidates":[]}`), nil, func(req *http.Request) {
		if req.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", req.Method)
		}

		if req.URL.Path != "/v1beta/models/detector:generateContent" {
			t.Errorf("Unexpected request path: %s", req.URL.Path)
		}

		if req.URL.Query().Get("key") != "secret" {
			t.Errorf("Expected credential in key query param, got %q", req.URL.Query().Get("key"))
		}

		var body map[string]interface{}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("Request body is not valid JSON: %s", err)
		}

		config := body["generationConfig"].(map[string]interface{})
		if config["temperature"] != 0.1 || config["maxOutputTokens"] != float64(100) {
			t.Errorf("Unexpected generation config: %v", config)
		}

		parts := body["contents"].([]interface{})[0].(map[string]interface{})["parts"].([]interface{})
		inline := parts[1].(map[string]interface{})["inline_data"].(map[string]interface{})
		if inline["mime_type"] != "image/jpeg" || inline["data"] != "AAAA" {
			t.Errorf("Unexpected inline data part: %v", inline)
		}
	})

	client := newClient(Config{BaseURL: "http://upstream.local/v1beta/models/"}, staticCredentials{credential: "secret"}, makeRequest)
	body, err := client.GenerateContent(context.Background(), "detector", testRequest())

	if err != nil {
		t.Fatalf("Expected no error, got %s", err)
	}

	if string(body) != `{"candidates":[]}` {
		t.Errorf("Expected raw response body, got %s", body)
	}
}

func TestClient_ShouldReturnAuthMissingBeforeAnyNetworkCall(t *testing.T) {
	makeRequest, calls := testReqFunc(200, nil, nil, noAssertions)

	for _, credentials := range []staticCredentials{{}, {err: settings.ErrNotConfigured}} {
		client := newClient(Config{}, credentials, makeRequest)
		_, err := client.GenerateContent(context.Background(), "detector", testRequest())

		if err != ErrAuthMissing {
			t.Errorf("Expected ErrAuthMissing, got %v", err)
		}
	}

	if *calls != 0 {
		t.Errorf("Expected no upstream calls, got %d", *calls)
	}
}

func TestClient_ShouldReturnUpstreamErrorWithVerbatimBody(t *testing.T) {
	errorBody := `{"error":{"code":400,"message":"API key not valid."}}`
	makeRequest, _ := testReqFunc(400, []byte(errorBody), nil, noAssertions)

	client := newClient(Config{}, staticCredentials{credential: "secret"}, makeRequest)
	_, err := client.GenerateContent(context.Background(), "detector", testRequest())

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}

	if upstreamErr.StatusCode != 400 || upstreamErr.Body != errorBody {
		t.Errorf("Unexpected upstream error: %+v", upstreamErr)
	}

	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected error to match ErrUpstream")
	}
}

func TestClient_ShouldMapTransportErrorToUpstreamError(t *testing.T) {
	makeRequest, _ := testReqFunc(0, nil, io.ErrUnexpectedEOF, noAssertions)

	client := newClient(Config{}, staticCredentials{credential: "secret"}, makeRequest)
	_, err := client.GenerateContent(context.Background(), "detector", testRequest())

	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected ErrUpstream, got %v", err)
	}
}

func TestClient_ShouldReturnTimeoutWhenCallExceedsDeadline(t *testing.T) {
	blockingRequest := func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	}

	client := newClient(Config{Timeout: 10 * time.Millisecond}, staticCredentials{credential: "secret"}, blockingRequest)
	_, err := client.GenerateContent(context.Background(), "detector", testRequest())

	if err != ErrUpstreamTimeout {
		t.Errorf("Expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestClient_ShouldReturnContextErrorWhenCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	blockingRequest := func(req *http.Request) (*http.Response, error) {
		cancel()
		<-req.Context().Done()
		return nil, req.Context().Err()
	}

	client := newClient(Config{}, staticCredentials{credential: "secret"}, blockingRequest)
	_, err := client.GenerateContent(ctx, "detector", testRequest())

	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestClient_ShouldReturnTimeoutWhenRequestSlotIsPastDeadline(t *testing.T) {
	makeRequest, calls := testReqFunc(200, []byte(`{"candidates":[]}`), nil, noAssertions)
	client := newClient(Config{RequestsPerMinute: 1}, staticCredentials{credential: "secret"}, makeRequest)

	for i := 0; i < defaultRateBurst; i++ {
		if _, err := client.GenerateContent(context.Background(), "detector", testRequest()); err != nil {
			t.Fatalf("Expected request %d within burst to pass, got %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := client.GenerateContent(ctx, "detector", testRequest())
	if err != ErrUpstreamTimeout {
		t.Errorf("Expected ErrUpstreamTimeout, got %v", err)
	}

	if *calls != defaultRateBurst {
		t.Errorf("Expected %d requests to be sent, got %d", defaultRateBurst, *calls)
	}
}

func TestClient_ShouldNotLeakCredentialInTransportErrors(t *testing.T) {
	if msg := stripCredential(`Post "http://upstream/m:generateContent?key=secret": EOF`); strings.Contains(msg, "secret") {
		t.Errorf("Credential leaked into error message: %s", msg)
	}
}

func TestClientIntegration_ShouldTalkToRealHTTPServer(t *testing.T) {
	server := testutils.NewTestHttpServer()
	server.HandleFunc("/models/image-model:generateContent", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("bad key"))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}],"usageMetadata":{"promptTokenCount":12,"candidatesTokenCount":3}}`))
	})
	baseURL := server.Start(t)

	client := NewClient(Config{BaseURL: baseURL + "/models", RequestsPerMinute: 600}, staticCredentials{credential: "secret"})
	body, err := client.GenerateContent(context.Background(), "image-model", testRequest())
	if err != nil {
		t.Fatalf("Expected no error, got %s", err)
	}

	var response GenerateContentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		t.Fatalf("Error ocurred when decoding response: %s", err)
	}

	if response.Text() != "ok" || response.UsageMetadata.PromptTokenCount != 12 {
		t.Errorf("Unexpected response: %+v", response)
	}
}
