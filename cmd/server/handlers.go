package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ryanuber/go-glob"
	"github.com/thebartekbanach/tryon/pkg/artifact"
	"github.com/thebartekbanach/tryon/pkg/cache"
	"github.com/thebartekbanach/tryon/pkg/settings"
	"github.com/thebartekbanach/tryon/pkg/tryon"
	"github.com/thebartekbanach/tryon/pkg/upstream"
)

const maxSettingSize = 20 << 20

type tryOnRequest struct {
	ProductImage artifact.ImageRef `json:"productImage"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newRouter(config ServerConfig, tryOnService tryon.Service, settingsStore settings.Store) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/tryon", handleTryOnRequest(config, tryOnService))
	mux.HandleFunc("/setup", handleSetupRequest(config, tryOnService))
	mux.HandleFunc("/cache", handleCacheInvalidationRequest(config, tryOnService))
	mux.HandleFunc("/settings/credential", handleSettingRequest(config, settingsStore.SetCredential))
	mux.HandleFunc("/settings/photo", handleSettingRequest(config, settingsStore.SetUserPhoto))
	mux.Handle("/status", promhttp.Handler())
	return mux
}

func handleTryOnRequest(config ServerConfig, tryOnService tryon.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowOrigin(config, w, r) {
			return
		}

		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "only POST method is allowed")
			return
		}

		var request tryOnRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ProductImage == "" {
			writeError(w, http.StatusBadRequest, "productImage is required")
			return
		}

		// the request context is canceled when the caller goes away
		ctx, cancel := context.WithTimeout(r.Context(), config.RunTimeout)
		defer cancel()

		result, err := tryOnService.RunTryOn(ctx, request.ProductImage)
		if r.Context().Err() != nil {
			log.Printf("caller abandoned try-on of %s", request.ProductImage)
			return
		}

		if err != nil {
			status, message := errorStatus(err)
			writeError(w, status, message)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleSetupRequest(config ServerConfig, tryOnService tryon.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowOrigin(config, w, r) {
			return
		}

		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "only GET method is allowed")
			return
		}

		status, err := tryOnService.CheckSetupComplete(r.Context())
		if err != nil {
			log.Printf("error ocurred when checking setup: %s", err)
			writeError(w, http.StatusInternalServerError, "error ocurred when checking setup")
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func handleCacheInvalidationRequest(config ServerConfig, tryOnService tryon.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "only DELETE method is allowed")
			return
		}

		if !authorizeAdmin(config, w, r) {
			return
		}

		key := r.URL.Query().Get("key")
		if key == "" {
			removed, err := tryOnService.ClearCache(r.Context())
			if err != nil {
				log.Printf("error ocurred when clearing cache: %s", err)
				writeError(w, http.StatusInternalServerError, "error ocurred when clearing cache")
				return
			}

			writeJSON(w, http.StatusOK, removed)
			return
		}

		err := tryOnService.Invalidate(r.Context(), key)
		if err == cache.ErrEntryNotFound {
			writeError(w, http.StatusNotFound, "entry not found")
			return
		}

		if err != nil {
			log.Printf("error ocurred when invalidating %s: %s", key, err)
			writeError(w, http.StatusInternalServerError, "error ocurred when invalidating entry")
			return
		}

		writeJSON(w, http.StatusOK, []string{key})
	}
}

func handleSettingRequest(config ServerConfig, set func(ctx context.Context, value string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "only PUT method is allowed")
			return
		}

		if !authorizeAdmin(config, w, r) {
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingSize))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "setting value is too large")
			return
		}

		if err := set(r.Context(), strings.TrimSpace(string(body))); err != nil {
			log.Printf("error ocurred when saving setting %s: %s", r.URL.Path, err)
			writeError(w, http.StatusInternalServerError, "error ocurred when saving setting")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// errorStatus maps a failed run to a response. Upstream bodies are passed
// through so the caller can show the provider's diagnostic.
func errorStatus(err error) (int, string) {
	var upstreamErr *upstream.UpstreamError

	switch {
	case errors.Is(err, upstream.ErrAuthMissing):
		return http.StatusPreconditionFailed, err.Error()
	case errors.Is(err, upstream.ErrUpstreamTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, err.Error()
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, tryon.ErrImageUnavailable):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		log.Printf("error ocurred when running try-on: %s", err)
		return http.StatusInternalServerError, "error ocurred when running try-on"
	}
}

func allowOrigin(config ServerConfig, w http.ResponseWriter, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if !isAllowedOrigin(config, origin) {
		writeError(w, http.StatusForbidden, "request origin not allowed")
		return false
	}

	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
	}

	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusNoContent)
		return false
	}

	return true
}

func isAllowedOrigin(config ServerConfig, origin string) bool {
	if len(config.AllowedOrigins) == 0 || origin == "" {
		return true
	}

	for _, allowedOrigin := range config.AllowedOrigins {
		if glob.Glob(allowedOrigin, origin) {
			return true
		}
	}

	return false
}

func authorizeAdmin(config ServerConfig, w http.ResponseWriter, r *http.Request) bool {
	if config.AdminToken == "" || r.Header.Get("Authorization") == fmt.Sprintf("Bearer %s", config.AdminToken) {
		return true
	}

	writeError(w, http.StatusUnauthorized, "access token authorization failed")
	return false
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	body, err := json.Marshal(value)
	if err != nil {
		log.Printf("error ocurred when marshalling response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{message})
}
