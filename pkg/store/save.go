package store

import (
	"context"
	"fmt"

	"github.com/stashfs/stashfs/internal/logger"
	"github.com/stashfs/stashfs/internal/telemetry"
)

// Save encodes value with the store's codec and writes it to the logical
// path, blocking until the payload is on disk.
//
// Resolution failures report KindPathInvalid without touching storage. A
// value the codec cannot encode reports KindWrongDatatype. An empty encoding
// still succeeds and produces a zero-byte file.
func (s *Store) Save(ctx context.Context, logical string, value any, opts ...Option) (res WriteResult) {
	defer s.recoverWrite(&res, "save", logical)

	text, err := s.codec.Encode(value)
	if err != nil {
		res = WriteResult{Kind: KindWrongDatatype, Message: err.Error()}
		s.logSave(ctx, logical, "", res)
		return res
	}
	return s.SaveText(ctx, logical, text, opts...)
}

// SaveText writes pre-encoded text to the logical path, blocking until done.
func (s *Store) SaveText(ctx context.Context, logical, text string, opts ...Option) (res WriteResult) {
	defer s.recoverWrite(&res, "save", logical)

	ctx, span := telemetry.StartSaveSpan(ctx, logical,
		telemetry.Codec(s.codec.Name()),
		telemetry.Size(int64(len(text))))
	defer span.End()

	abs, ok := s.resolveForWrite(logical)
	if !ok {
		res = WriteResult{
			Kind:    KindPathInvalid,
			Message: fmt.Sprintf("cannot resolve path %q", logical),
		}
		telemetry.SetAttributes(ctx, telemetry.Outcome(res.Kind.String()))
		s.logSave(ctx, logical, abs, res)
		return res
	}

	if err := s.engine.Write(ctx, abs, text); err != nil {
		kind, msg := classify(err)
		res = WriteResult{Kind: kind, Message: msg}
		telemetry.RecordError(ctx, err)
		telemetry.SetAttributes(ctx, telemetry.Outcome(res.Kind.String()))
		s.logSave(ctx, logical, abs, res)
		return res
	}

	// The cache only learns about content that provably reached storage, so
	// a later cached load can never observe a failed write.
	if !applyOptions(opts).skipCache {
		s.cachePut(abs, text, len(text) > s.engine.Config().ChunkThreshold)
	}

	res = writeOK()
	s.logSave(ctx, logical, abs, res)
	return res
}

// resolveForWrite resolves the logical path and creates the parent directory.
func (s *Store) resolveForWrite(logical string) (string, bool) {
	abs, _, ok := s.resolver.ResolveDir(logical)
	return abs, ok
}

// logSave emits the save outcome log line.
func (s *Store) logSave(ctx context.Context, logical, abs string, res WriteResult) {
	if res.OK {
		logger.InfoCtx(ctx, "save completed",
			logger.Op("save"),
			logger.Path(logical),
			logger.AbsPath(abs),
			logger.Codec(s.codec.Name()),
			logger.Outcome(res.Kind.String()))
		return
	}
	logger.WarnCtx(ctx, "save failed",
		logger.Op("save"),
		logger.Path(logical),
		logger.Outcome(res.Kind.String()),
		logger.Err(fmt.Errorf("%s", res.Message)))
}

// recoverWrite converts a panic into a KindUndefined result. The facade must
// never take the host process down over a failed save.
func (s *Store) recoverWrite(res *WriteResult, op, logical string) {
	if r := recover(); r != nil {
		*res = WriteResult{
			Kind:    KindUndefined,
			Message: fmt.Sprintf("unexpected %s failure: %v", op, r),
		}
		logger.Error("unexpected failure",
			logger.Op(op),
			logger.Path(logical),
			logger.Outcome(KindUndefined.String()))
	}
}
