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

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimited,
			Help: HelpTextRateLimited,
		},
	)
)

// Business Metrics
var (
	ProductsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProductsAdded,
			Help: HelpTextProductsAdded,
		},
		[]string{LabelPlantType},
	)

	ProductsEdited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProductsEdited,
			Help: HelpTextProductsEdited,
		},
	)

	ProductsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProductsDeleted,
			Help: HelpTextProductsDeleted,
		},
	)

	CatalogFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogFallbacks,
			Help: HelpTextCatalogFallbacks,
		},
	)

	ReminderBucketSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameReminderBucketSize,
			Help: HelpTextReminderBucketSize,
		},
		[]string{LabelTier},
	)
)
