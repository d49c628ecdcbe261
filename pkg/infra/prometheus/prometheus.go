package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		1, 5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	ScansTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustscan_scans_total",
			Help: "Total number of scanned URLs by verdict",
		},
		[]string{"prediction", "mode"},
	)

	ScanLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustscan_scan_latency_ms",
			Help:    "Single URL pipeline latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"mode"},
	)

	ScanErrorsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustscan_scan_errors_total",
			Help: "URLs rejected before scoring",
		},
		[]string{"reason"},
	)

	EnrichmentTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustscan_enrichment_total",
			Help: "Domain enrichment lookups by outcome",
		},
		[]string{"outcome"}, // hit, fetched, unavailable, skipped
	)

	EnrichmentLatency = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trustscan_enrichment_latency_ms",
			Help:    "Domain enrichment latency in milliseconds",
			Buckets: latencyBuckets,
		},
	)

	BatchItemsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustscan_batch_items_total",
			Help: "Batch items by outcome",
		},
		[]string{"outcome"}, // scored, error, timeout
	)

	BatchLatency = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trustscan_batch_latency_ms",
			Help:    "Batch latency in milliseconds",
			Buckets: latencyBuckets,
		},
	)

	HTTPRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustscan_http_requests_total",
			Help: "API requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustscan_http_request_latency_ms",
			Help:    "API request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route"},
	)

	ModelFaultsTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "trustscan_model_faults_total",
			Help: "Scorer faults that switched the service to rule-based scoring",
		},
	)

	ModelServing = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "trustscan_model_serving",
			Help: "1 while predictions come from the model artifact, 0 under rule fallback",
		},
	)
)

type MetricsConfig struct {
	EnableLatency    bool // Scan and batch latency histograms
	EnableEnrichment bool // Enrichment outcome counters
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:    true,
		EnableEnrichment: true,
	}
}

var Config = DefaultMetricsConfig()

var initOnce sync.Once

func Initialize(cfg MetricsConfig) {
	Config = cfg
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

// Gatherer exposes the private registry to the metrics endpoint and tests.
func Gatherer() prometheus.Gatherer {
	return registry
}
