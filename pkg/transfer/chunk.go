// Package transfer streams file content to and from storage in fixed-size
// chunks.
//
// The engine chooses between a single-shot transfer and a chunked transfer by
// encoded size: payloads at or below the chunking threshold go in one I/O
// call, larger payloads are split into fixed-size chunks written or read
// strictly in order. One core step sequence drives three execution
// disciplines:
//
//   - Blocking: Write/Read run the sequence to exhaustion before returning.
//   - Cooperative: BeginWrite/BeginRead return a resumable operation whose
//     Resume consumes a bounded number of chunks per call, yielding control
//     back to a host scheduler between calls.
//   - Asynchronous: WriteAsync/ReadAsync run the sequence on a goroutine and
//     report completion through a future-like Handle.
//
// Chunk boundaries, thresholds, and ordering are identical across all three;
// the disciplines differ only in where control returns to the caller.
package transfer

// Default tuning constants.
const (
	// DefaultChunkThreshold is the encoded-size boundary (80KiB) above which
	// chunked transfer is used instead of single-shot.
	DefaultChunkThreshold = 80 << 10

	// DefaultChunkSize is the size of each streamed chunk (16KiB).
	DefaultChunkSize = 16 << 10

	// DefaultYieldEvery is how many chunks a cooperative operation processes
	// per Resume call before yielding back to the host scheduler.
	DefaultYieldEvery = 4
)

// Plan describes how a payload of a given size is transferred.
type Plan struct {
	// Size is the total payload size in bytes.
	Size int64

	// ChunkSize is the size of each streamed chunk.
	ChunkSize int

	// Threshold is the single-shot/chunked boundary.
	Threshold int
}

// PlanFor builds the transfer plan for a payload size using the engine
// configuration.
func PlanFor(size int64, chunkSize, threshold int) Plan {
	return Plan{Size: size, ChunkSize: chunkSize, Threshold: threshold}
}

// Chunked reports whether the payload exceeds the chunking threshold.
func (p Plan) Chunked() bool {
	return p.Size > int64(p.Threshold)
}

// NumChunks returns the number of transfer steps: 1 for single-shot payloads,
// ceil(Size/ChunkSize) for chunked payloads, and 0 for empty payloads.
func (p Plan) NumChunks() int {
	if p.Size == 0 {
		return 0
	}
	if !p.Chunked() {
		return 1
	}
	return int((p.Size + int64(p.ChunkSize) - 1) / int64(p.ChunkSize))
}

// Bounds returns the byte range [start, end) for chunk index i.
// For single-shot plans the only chunk spans the whole payload.
func (p Plan) Bounds(i int) (start, end int64) {
	if !p.Chunked() {
		return 0, p.Size
	}
	start = int64(i) * int64(p.ChunkSize)
	end = start + int64(p.ChunkSize)
	if end > p.Size {
		end = p.Size
	}
	return start, end
}
