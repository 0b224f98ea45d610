// Package observability provides Prometheus metrics for monitoring strom
// chat streams, model catalog fetches, and OAuth calls.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// StreamRequestsTotal counts chat streaming calls by provider and outcome
	// (done or error).
	StreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strom_stream_requests_total",
			Help: "Chat streaming calls",
		},
		[]string{"provider", "outcome"},
	)

	// StreamDuration records full stream duration in seconds by provider.
	StreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strom_stream_duration_seconds",
			Help:    "Chat stream duration",
			Buckets: LLMBuckets,
		},
		[]string{"provider"},
	)

	// StreamDeltasTotal counts normalized Delta events by provider.
	StreamDeltasTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strom_stream_deltas_total",
			Help: "Delta events emitted",
		},
		[]string{"provider"},
	)

	// StreamTokensTotal counts tokens reported by upstream usage accounting.
	StreamTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strom_stream_tokens_total",
			Help: "Tokens reported by providers",
		},
		[]string{"provider"},
	)

	// StreamsActive tracks the number of in-flight chat streams.
	StreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "strom_streams_active",
			Help: "Active chat streams",
		},
	)

	// ModelListRequestsTotal counts model catalog fetches by provider and outcome.
	ModelListRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strom_model_list_requests_total",
			Help: "Model catalog fetches",
		},
		[]string{"provider", "outcome"},
	)

	// OAuthRequestsTotal counts OAuth device-flow calls by step (start, poll,
	// exchange) and outcome.
	OAuthRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strom_oauth_requests_total",
			Help: "OAuth device-flow calls",
		},
		[]string{"step", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		StreamRequestsTotal,
		StreamDuration,
		StreamDeltasTotal,
		StreamTokensTotal,
		StreamsActive,
		ModelListRequestsTotal,
		OAuthRequestsTotal,
	)
}
