package filterstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "bloomfilter"
	metricsSubsystem = "store"

	statusSuccess = "success"
	statusFailure = "failure"
)

type storeMetrics struct {
	commits   *prometheus.CounterVec
	reads     *prometheus.CounterVec
	blobBytes *prometheus.CounterVec
	fillRatio prometheus.Histogram
}

func newStoreMetrics(registerer prometheus.Registerer) *storeMetrics {
	return &storeMetrics{
		commits: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "commits_total",
			Help:      "Total number of filter blobs written, by format and status",
		}, []string{"format", "status"}),
		reads: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "reads_total",
			Help:      "Total number of filter blobs read, by format and status",
		}, []string{"format", "status"}),
		blobBytes: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "blob_bytes_total",
			Help:      "Total number of encoded filter bytes moved, by direction",
		}, []string{"direction"}),
		fillRatio: promauto.With(registerer).NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "fill_ratio",
			Help:      "Fraction of set bits in filters committed or read",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}
}
