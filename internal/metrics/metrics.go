package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Catalog Metrics
var (
	CatalogFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogFetches,
			Help: HelpTextCatalogFetches,
		},
		[]string{LabelResult},
	)

	CatalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCatalogFetchDuration,
			Help:    HelpTextCatalogFetchDuration,
			Buckets: FetchLatencyBuckets,
		},
	)

	CatalogCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheRequests,
			Help: HelpTextCatalogCacheRequests,
		},
		[]string{LabelOutcome},
	)

	CatalogEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogEntities,
			Help: HelpTextCatalogEntities,
		},
		[]string{LabelType},
	)

	CatalogNameCollisions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogNameCollisions,
			Help: HelpTextCatalogNameCollisions,
		},
	)

	CatalogLastFetch = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogLastFetch,
			Help: HelpTextCatalogLastFetch,
		},
	)

	SearchesPerformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSearchesPerformed,
			Help: HelpTextSearchesPerformed,
		},
	)
)

// Discord Metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsTotal,
			Help: HelpTextCommandsTotal,
		},
		[]string{LabelCommand},
	)

	CommandErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandErrors,
			Help: HelpTextCommandErrors,
		},
		[]string{LabelCommand},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameCommandDuration,
			Help:    HelpTextCommandDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelCommand},
	)

	CooldownRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCooldownRejections,
			Help: HelpTextCooldownRejections,
		},
		[]string{LabelCommand},
	)
)
