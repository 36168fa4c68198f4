package metrics

import (
	"time"

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

	HTTPRequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsRejected,
			Help: HelpTextHTTPRequestsRejected,
		},
		[]string{LabelReason},
	)
)

// Mining Metrics
var (
	ActiveMineSessions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameActiveMineSessions,
			Help: HelpTextActiveMineSessions,
		},
		[]string{LabelLocation},
	)

	ItemsMined = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsMined,
			Help: HelpTextItemsMined,
		},
		[]string{LabelLocation},
	)

	ItemValueMined = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemValueMined,
			Help: HelpTextItemValueMined,
		},
		[]string{LabelLocation},
	)

	MiningSessionsStopped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMiningSessionsStopped,
			Help: HelpTextMiningSessionsStopped,
		},
		[]string{LabelReason},
	)
)

// Inventory Writer Metrics
var (
	InventoryFlushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInventoryFlushes,
			Help: HelpTextInventoryFlushes,
		},
		[]string{LabelResult},
	)

	InventoryFlushSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameInventoryFlushSize,
			Help:    HelpTextInventoryFlushSize,
			Buckets: FlushSizeBuckets,
		},
	)

	InventoryWriterBuffered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameInventoryWriterBuffered,
			Help: HelpTextInventoryWriterBuffered,
		},
	)

	InventoryCapacityChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInventoryCapacityChecks,
			Help: HelpTextInventoryCapacityChecks,
		},
		[]string{LabelResult},
	)
)

// Storage Metrics
var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameDBQueryDuration,
			Help:    HelpTextDBQueryDuration,
			Buckets: DBLatencyBuckets,
		},
		[]string{LabelQuery},
	)

	StorageUpgrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStorageUpgrades,
			Help: HelpTextStorageUpgrades,
		},
		[]string{LabelResult},
	)
)

// ObserveQuery records the time elapsed since start for the named query.
//
//	defer metrics.ObserveQuery(metrics.QueryInventory, time.Now())
func ObserveQuery(query string, start time.Time) {
	DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}
