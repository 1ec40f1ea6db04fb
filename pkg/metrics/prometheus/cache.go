package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/stashfs/stashfs/pkg/cache"
	"github.com/stashfs/stashfs/pkg/metrics"
)

// cacheMetrics is the Prometheus implementation of cache.Metrics.
type cacheMetrics struct {
	hits           prometheus.Counter
	misses         prometheus.Counter
	puts           prometheus.Counter
	putBytes       prometheus.Histogram
	evictedEntries prometheus.Counter
	evictedBytes   prometheus.Counter
	residentCount  prometheus.Gauge
	residentBytes  prometheus.Gauge
}

// NewCacheMetrics creates a Prometheus-backed cache.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called); the cache
// treats a nil sink as a no-op.
func NewCacheMetrics() cache.Metrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &cacheMetrics{
		hits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "stashfs_cache_hits_total",
			Help: "Total number of cache hits",
		}),
		misses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "stashfs_cache_misses_total",
			Help: "Total number of cache misses",
		}),
		puts: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "stashfs_cache_puts_total",
			Help: "Total number of cache inserts and overwrites",
		}),
		putBytes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name: "stashfs_cache_put_bytes",
			Help: "Distribution of content sizes inserted into the cache",
			Buckets: []float64{
				1024,    // 1KB - small saves
				16384,   // 16KB - one chunk
				81920,   // 80KB - chunking threshold
				262144,  // 256KB
				1048576, // 1MB
				4194304, // 4MB - very large saves
			},
		}),
		evictedEntries: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "stashfs_cache_evicted_entries_total",
			Help: "Total number of entries evicted to stay under the memory ceiling",
		}),
		evictedBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "stashfs_cache_evicted_bytes_total",
			Help: "Total estimated bytes reclaimed by eviction",
		}),
		residentCount: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "stashfs_cache_resident_entries",
			Help: "Current number of resident cache entries",
		}),
		residentBytes: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "stashfs_cache_resident_bytes",
			Help: "Current estimated memory held by the cache",
		}),
	}
}

func (m *cacheMetrics) RecordHit() {
	m.hits.Inc()
}

func (m *cacheMetrics) RecordMiss() {
	m.misses.Inc()
}

func (m *cacheMetrics) RecordPut(bytes int) {
	m.puts.Inc()
	m.putBytes.Observe(float64(bytes))
}

func (m *cacheMetrics) RecordEviction(entries int, bytes uint64) {
	m.evictedEntries.Add(float64(entries))
	m.evictedBytes.Add(float64(bytes))
}

func (m *cacheMetrics) RecordResident(entries int, bytes uint64) {
	m.residentCount.Set(float64(entries))
	m.residentBytes.Set(float64(bytes))
}
