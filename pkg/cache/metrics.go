package cache

// Metrics provides observability for cache operations.
//
// Implementations collect hit/miss ratios, insert volume, and eviction
// pressure. Optional: a nil Metrics skips collection with zero overhead.
// The Prometheus implementation lives in pkg/metrics/prometheus.
type Metrics interface {
	// RecordHit records a successful lookup.
	RecordHit()

	// RecordMiss records a failed lookup.
	RecordMiss()

	// RecordPut records an insert or overwrite of the given content length.
	RecordPut(bytes int)

	// RecordEviction records an eviction pass that removed entries freeing
	// the given estimated bytes.
	RecordEviction(entries int, bytes uint64)

	// RecordResident records current resident entry count and estimated
	// total bytes.
	RecordResident(entries int, bytes uint64)
}
