package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_request_latency_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method"},
	)

	RateLimitDecisions = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_rate_limit_decisions_total",
			Help: "Rate limit decisions by scope",
		},
		[]string{"scope", "decision"},
	)

	WebhookQueue = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_webhook_jobs_total",
			Help: "Webhook delivery jobs by enqueue result",
		},
		[]string{"result"},
	)

	WebhookDeliveries = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_webhook_deliveries_total",
			Help: "Webhook delivery attempts by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	WebhookDeliveryLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_webhook_delivery_latency_ms",
			Help:    "Webhook delivery latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"event"},
	)

	WebhooksDeactivated = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "folio_webhooks_deactivated_total",
			Help: "Webhooks deactivated after repeated delivery failures",
		},
	)

	SearchQueries = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_search_queries_total",
			Help: "Search queries by kind and cache result",
		},
		[]string{"kind", "cache"},
	)

	SearchIndexItems = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_search_index_items",
			Help: "Items in the current search index snapshot",
		},
	)

	ChatRequests = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_chat_requests_total",
			Help: "Chat completions by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	// BreakerState is 0 closed, 1 half-open, 2 open.
	BreakerState = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "folio_circuit_breaker_state",
			Help: "Current state of each circuit breaker",
		},
		[]string{"name"},
	)
)

var initOnce sync.Once

// Initialize registers the process and runtime collectors.
func Initialize() {
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	})
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

func Gatherer() prometheus.Gatherer {
	return registry
}
