package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Upstream AI calls are slow, so the
	// tail goes to a minute.
	latencyBuckets = []float64{
		10, 25, 50,
		100, 250, 500,
		1000, 2500, 5000,
		10000, 30000, 60000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safeprompt_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "method", "status", "device"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "safeprompt_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	UpstreamLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "safeprompt_upstream_latency_ms",
			Help:    "Latency of calls to external AI services in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"service", "outcome"},
	)

	PromptOutcomes = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safeprompt_prompt_outcomes_total",
			Help: "Processed prompts by safety verdict and sentiment",
		},
		[]string{"safe", "sentiment"},
	)

	FlaggedTerms = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "safeprompt_flagged_terms_total",
			Help: "Harmful terms reported by the moderation service",
		},
	)
)

type MetricsConfig struct {
	EnableLatency         bool
	EnableUpstreamLatency bool
}

var Config MetricsConfig

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

// Gatherer exposes the private registry to the /metrics handler.
func Gatherer() prometheus.Gatherer {
	return registry
}

// ObserveUpstream records the latency of one external call started at start.
func ObserveUpstream(service string, start time.Time, err error) {
	if !Config.EnableUpstreamLatency {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamLatency.WithLabelValues(service, outcome).Observe(float64(time.Since(start).Milliseconds()))
}
