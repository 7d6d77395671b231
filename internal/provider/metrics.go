package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeNoKey        = "no_key"
	outcomeSuccess      = "success"
	outcomeBackendError = "backend_error"
	outcomeParseError   = "parse_error"
	outcomeInvalid      = "invalid"
	outcomeTimeout      = "timeout"
)

var (
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fate_provider_requests_total",
			Help: "Scenario provider requests by backend and outcome.",
		},
		[]string{"backend", "outcome"},
	)
	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fate_provider_request_duration_seconds",
			Help:    "Duration of scenario generation calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
	providerPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fate_provider_prompt_tokens",
			Help:    "Estimated prompt token count per generation request.",
			Buckets: prometheus.LinearBuckets(100, 100, 10), // 100, 200, ..., 1000
		},
		[]string{"backend", "model"},
	)
)
