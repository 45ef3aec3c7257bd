package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tryon",
		Name:      "upstream_calls_total",
		Help:      "Calls made to the generative API by model and outcome.",
	}, []string{"model", "outcome"})

	UpstreamTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tryon",
		Name:      "upstream_tokens_total",
		Help:      "Tokens reported in usage metadata by model and kind (prompt, candidates).",
	}, []string{"model", "kind"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tryon",
		Name:      "upstream_call_duration_seconds",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"model"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tryon",
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	CacheWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tryon",
		Name:      "cache_writes_total",
		Help:      "Cache writes by result (stored, skipped, failed).",
	}, []string{"result"})

	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tryon",
		Name:      "cache_evictions_total",
	})

	DetectionFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tryon",
		Name:      "detection_fallbacks_total",
		Help:      "Detections that were not parsed as strict JSON, by fallback used (regex, sentinel).",
	}, []string{"fallback"})

	TryOnRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tryon",
		Name:      "runs_total",
		Help:      "Try-on runs by outcome (cached, generated, degraded, failed, canceled).",
	}, []string{"outcome"})
)
