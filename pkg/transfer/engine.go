package transfer

import (
	"github.com/stashfs/stashfs/pkg/bufpool"
)

// Config holds engine tuning. Zero values fall back to the defaults.
type Config struct {
	// ChunkSize is the size of each streamed chunk.
	ChunkSize int

	// ChunkThreshold is the encoded-size boundary above which transfers are
	// chunked.
	ChunkThreshold int

	// YieldEvery is the number of chunks a cooperative operation processes
	// per Resume call.
	YieldEvery int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:      DefaultChunkSize,
		ChunkThreshold: DefaultChunkThreshold,
		YieldEvery:     DefaultYieldEvery,
	}
}

// Engine executes file transfers under the blocking, cooperative, and
// asynchronous disciplines.
//
// An Engine is safe for concurrent use. It provides no mutual exclusion
// between transfers targeting the same path; concurrent writers to one path
// race at the storage layer and must be serialized by the caller.
type Engine struct {
	cfg     Config
	signal  *Signal
	pool    *bufpool.Pool
	metrics Metrics
}

// New creates an engine.
//
// signal may be nil when the host has no shutdown flow; transfers then never
// abort. metrics may be nil to skip collection.
func New(cfg Config, signal *Signal, metrics Metrics) *Engine {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkThreshold <= 0 {
		cfg.ChunkThreshold = DefaultChunkThreshold
	}
	if cfg.YieldEvery <= 0 {
		cfg.YieldEvery = DefaultYieldEvery
	}

	return &Engine{
		cfg:     cfg,
		signal:  signal,
		pool:    bufpool.New(cfg.ChunkSize),
		metrics: metrics,
	}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// planFor builds the transfer plan for a payload size.
func (e *Engine) planFor(size int64) Plan {
	return PlanFor(size, e.cfg.ChunkSize, e.cfg.ChunkThreshold)
}
