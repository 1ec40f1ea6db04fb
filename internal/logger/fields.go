package logger

import "log/slog"

// Standard field keys for structured logging. Use these consistently across
// log statements so aggregated logs stay queryable.
const (
	// Tracing
	KeyTraceID = "trace_id" // OpenTelemetry trace ID
	KeySpanID  = "span_id"  // OpenTelemetry span ID

	// Operations
	KeyOp       = "op"       // Operation name: save, load, stat
	KeyMode     = "mode"     // Execution discipline: blocking, cooperative, async
	KeyPath     = "path"     // Logical path
	KeyAbsPath  = "abs_path" // Resolved absolute storage path
	KeyCodec    = "codec"    // Codec name: json, yaml, text
	KeyOutcome  = "outcome"  // Outcome kind string

	// Transfers
	KeyTransferID  = "transfer_id"  // Unique transfer identifier
	KeySize        = "size"         // Payload size in bytes
	KeyChunk       = "chunk"        // Current chunk index
	KeyChunksTotal = "chunks_total" // Total chunks in the transfer
	KeyBytes       = "bytes"        // Bytes transferred so far
	KeyAborted     = "aborted"      // Transfer stopped by the abort signal

	// Cache
	KeyCacheHit      = "cache_hit"      // Cache hit indicator
	KeyCacheSize     = "cache_size"     // Resident entries
	KeyCacheCapacity = "cache_capacity" // Maximum entries
	KeyEvicted       = "evicted"        // Entries evicted

	// Metadata
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
)

// Field constructors for type safety.

// Op returns a slog.Attr for the operation name.
func Op(name string) slog.Attr {
	return slog.String(KeyOp, name)
}

// Mode returns a slog.Attr for the execution discipline.
func Mode(mode string) slog.Attr {
	return slog.String(KeyMode, mode)
}

// Path returns a slog.Attr for the logical path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// AbsPath returns a slog.Attr for the resolved absolute path.
func AbsPath(p string) slog.Attr {
	return slog.String(KeyAbsPath, p)
}

// Codec returns a slog.Attr for the codec name.
func Codec(name string) slog.Attr {
	return slog.String(KeyCodec, name)
}

// Outcome returns a slog.Attr for the outcome kind.
func Outcome(kind string) slog.Attr {
	return slog.String(KeyOutcome, kind)
}

// TransferID returns a slog.Attr for the transfer identifier.
func TransferID(id string) slog.Attr {
	return slog.String(KeyTransferID, id)
}

// Size returns a slog.Attr for a payload size.
func Size(n int) slog.Attr {
	return slog.Int(KeySize, n)
}

// Chunk returns a slog.Attr for the current chunk index.
func Chunk(idx int) slog.Attr {
	return slog.Int(KeyChunk, idx)
}

// ChunksTotal returns a slog.Attr for the total chunk count.
func ChunksTotal(n int) slog.Attr {
	return slog.Int(KeyChunksTotal, n)
}

// Bytes returns a slog.Attr for bytes transferred.
func Bytes(n int64) slog.Attr {
	return slog.Int64(KeyBytes, n)
}

// CacheHit returns a slog.Attr for a cache hit indicator.
func CacheHit(hit bool) slog.Attr {
	return slog.Bool(KeyCacheHit, hit)
}

// Evicted returns a slog.Attr for the number of entries evicted.
func Evicted(n int) slog.Attr {
	return slog.Int(KeyEvicted, n)
}

// DurationMs returns a slog.Attr for duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error, or an empty attr for nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
