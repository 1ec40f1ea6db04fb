package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used across StashFS spans. Keeping them centralized ensures
// consistent naming in the trace backend.
const (
	// Operation attributes
	AttrOp      = "stash.op"      // save, load, stat
	AttrMode    = "stash.mode"    // blocking, cooperative, async
	AttrPath    = "stash.path"    // logical path
	AttrAbsPath = "stash.abs_path"
	AttrCodec   = "stash.codec"
	AttrOutcome = "stash.outcome"

	// Transfer attributes
	AttrTransferID = "stash.transfer.id"
	AttrSize       = "stash.transfer.size"
	AttrChunks     = "stash.transfer.chunks"
	AttrChunkSize  = "stash.transfer.chunk_size"
	AttrAborted    = "stash.transfer.aborted"

	// Cache attributes
	AttrCacheHit     = "stash.cache.hit"
	AttrCacheEntries = "stash.cache.entries"
	AttrCacheEvicted = "stash.cache.evicted"
)

// Span names.
const (
	SpanSave     = "stash.save"
	SpanLoad     = "stash.load"
	SpanTransfer = "stash.transfer"
	SpanCache    = "stash.cache"
)

// Op returns an attribute for the operation name.
func Op(name string) attribute.KeyValue {
	return attribute.String(AttrOp, name)
}

// Mode returns an attribute for the execution discipline.
func Mode(mode string) attribute.KeyValue {
	return attribute.String(AttrMode, mode)
}

// Path returns an attribute for the logical path.
func Path(path string) attribute.KeyValue {
	return attribute.String(AttrPath, path)
}

// AbsPath returns an attribute for the resolved absolute path.
func AbsPath(path string) attribute.KeyValue {
	return attribute.String(AttrAbsPath, path)
}

// Codec returns an attribute for the codec name.
func Codec(name string) attribute.KeyValue {
	return attribute.String(AttrCodec, name)
}

// Outcome returns an attribute for the operation outcome kind.
func Outcome(kind string) attribute.KeyValue {
	return attribute.String(AttrOutcome, kind)
}

// TransferID returns an attribute for the transfer identifier.
func TransferID(id string) attribute.KeyValue {
	return attribute.String(AttrTransferID, id)
}

// Size returns an attribute for a payload size in bytes.
func Size(size int64) attribute.KeyValue {
	return attribute.Int64(AttrSize, size)
}

// Chunks returns an attribute for a transfer's chunk count.
func Chunks(n int) attribute.KeyValue {
	return attribute.Int(AttrChunks, n)
}

// ChunkSize returns an attribute for the engine chunk size.
func ChunkSize(size int) attribute.KeyValue {
	return attribute.Int(AttrChunkSize, size)
}

// Aborted returns an attribute marking a transfer stopped by the abort signal.
func Aborted(aborted bool) attribute.KeyValue {
	return attribute.Bool(AttrAborted, aborted)
}

// CacheHit returns an attribute for a cache hit indicator.
func CacheHit(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}

// CacheEntries returns an attribute for resident cache entries.
func CacheEntries(n int) attribute.KeyValue {
	return attribute.Int(AttrCacheEntries, n)
}

// CacheEvicted returns an attribute for the number of evicted entries.
func CacheEvicted(n int) attribute.KeyValue {
	return attribute.Int(AttrCacheEvicted, n)
}

// StartSaveSpan starts a span for a save operation.
func StartSaveSpan(ctx context.Context, logical string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{Op("save"), Path(logical)}, attrs...)
	return StartSpan(ctx, SpanSave, trace.WithAttributes(all...))
}

// StartLoadSpan starts a span for a load operation.
func StartLoadSpan(ctx context.Context, logical string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{Op("load"), Path(logical)}, attrs...)
	return StartSpan(ctx, SpanLoad, trace.WithAttributes(all...))
}

// StartTransferSpan starts a span for a single chunked transfer.
func StartTransferSpan(ctx context.Context, op, id string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{Op(op), TransferID(id)}, attrs...)
	return StartSpan(ctx, SpanTransfer, trace.WithAttributes(all...))
}

// StartCacheSpan starts a span for a cache operation.
func StartCacheSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{Op(operation)}, attrs...)
	return StartSpan(ctx, SpanCache, trace.WithAttributes(all...))
}
