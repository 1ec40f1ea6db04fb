package transfer

import "time"

// Metrics provides observability for transfer operations.
//
// Optional: a nil Metrics skips collection. The Prometheus implementation
// lives in pkg/metrics/prometheus.
type Metrics interface {
	// ObserveWrite records a completed write with total bytes, chunk count,
	// and wall-clock duration.
	ObserveWrite(bytes int64, chunks int, d time.Duration)

	// ObserveRead records a completed read.
	ObserveRead(bytes int64, chunks int, d time.Duration)

	// RecordAbort records a transfer stopped by the abort signal.
	// op is "write" or "read".
	RecordAbort(op string)

	// RecordFailure records a transfer that failed with an I/O error.
	RecordFailure(op string)
}
