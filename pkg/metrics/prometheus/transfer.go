package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/stashfs/stashfs/pkg/metrics"
	"github.com/stashfs/stashfs/pkg/transfer"
)

// transferMetrics is the Prometheus implementation of transfer.Metrics.
type transferMetrics struct {
	operations *prometheus.CounterVec
	bytes      *prometheus.HistogramVec
	chunks     *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
	aborts     *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

// NewTransferMetrics creates a Prometheus-backed transfer.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called); the
// engine treats a nil sink as a no-op.
func NewTransferMetrics() transfer.Metrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	sizeBuckets := []float64{
		1024,    // 1KB
		16384,   // 16KB - one chunk
		81920,   // 80KB - chunking threshold
		262144,  // 256KB
		1048576, // 1MB
		4194304, // 4MB
	}

	return &transferMetrics{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stashfs_transfer_operations_total",
				Help: "Total number of completed transfers by operation",
			},
			[]string{"op"}, // "write", "read"
		),
		bytes: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stashfs_transfer_bytes",
				Help:    "Distribution of transferred payload sizes",
				Buckets: sizeBuckets,
			},
			[]string{"op"},
		),
		chunks: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stashfs_transfer_chunks",
				Help:    "Distribution of chunk counts per transfer",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
			},
			[]string{"op"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "stashfs_transfer_duration_milliseconds",
				Help: "Duration of completed transfers in milliseconds",
				Buckets: []float64{
					0.5,  // 500us - cached-size payloads
					1,    // 1ms
					5,    // 5ms
					10,   // 10ms
					50,   // 50ms
					100,  // 100ms
					500,  // 500ms - large chunked transfers
					1000, // 1s
				},
			},
			[]string{"op"},
		),
		aborts: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stashfs_transfer_aborts_total",
				Help: "Total number of transfers stopped by the abort signal",
			},
			[]string{"op"},
		),
		failures: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stashfs_transfer_failures_total",
				Help: "Total number of transfers failed with an I/O error",
			},
			[]string{"op"},
		),
	}
}

func (m *transferMetrics) observe(op string, bytes int64, chunks int, d time.Duration) {
	m.operations.WithLabelValues(op).Inc()
	m.bytes.WithLabelValues(op).Observe(float64(bytes))
	m.chunks.WithLabelValues(op).Observe(float64(chunks))
	m.duration.WithLabelValues(op).Observe(float64(d.Milliseconds()))
}

func (m *transferMetrics) ObserveWrite(bytes int64, chunks int, d time.Duration) {
	m.observe("write", bytes, chunks, d)
}

func (m *transferMetrics) ObserveRead(bytes int64, chunks int, d time.Duration) {
	m.observe("read", bytes, chunks, d)
}

func (m *transferMetrics) RecordAbort(op string) {
	m.aborts.WithLabelValues(op).Inc()
}

func (m *transferMetrics) RecordFailure(op string) {
	m.failures.WithLabelValues(op).Inc()
}
