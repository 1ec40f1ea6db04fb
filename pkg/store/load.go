package store

import (
	"context"
	"fmt"

	"github.com/stashfs/stashfs/internal/logger"
	"github.com/stashfs/stashfs/internal/telemetry"
)

// LoadText reads the raw text content of the logical path, blocking until the
// full content is available.
//
// A cache hit short-circuits storage entirely. On a miss, concurrent loads of
// the same resolved path are coalesced into a single read. A zero-byte file
// reports KindEmptyContent with OK still true.
func (s *Store) LoadText(ctx context.Context, logical string, opts ...Option) (res ReadResult) {
	defer s.recoverRead(&res, logical)
	opt := applyOptions(opts)

	ctx, span := telemetry.StartLoadSpan(ctx, logical, telemetry.Codec(s.codec.Name()))
	defer span.End()

	abs, ok := s.resolver.Resolve(logical)
	if !ok {
		res = ReadResult{
			Kind:    KindPathInvalid,
			Message: fmt.Sprintf("cannot resolve path %q", logical),
		}
		s.logLoad(ctx, logical, abs, false, res)
		return res
	}

	if !opt.skipCache {
		if text, hit := s.cacheGet(abs); hit {
			res = readOutcome(text)
			telemetry.SetAttributes(ctx, telemetry.CacheHit(true))
			s.logLoad(ctx, logical, abs, true, res)
			return res
		}
	}

	telemetry.SetAttributes(ctx, telemetry.CacheHit(false))
	res = s.loadShared(ctx, abs, opt.skipCache)
	s.logLoad(ctx, logical, abs, false, res)
	return res
}

// Load reads and decodes the logical path into a value of type T.
//
// Content that does not decode as T reports KindWrongDatatype; the raw text
// stays in the result (and in the cache) so the caller can inspect it.
func Load[T any](ctx context.Context, s *Store, logical string, opts ...Option) (T, ReadResult) {
	var value T

	res := s.LoadText(ctx, logical, opts...)
	if !res.OK || res.Kind == KindEmptyContent {
		return value, res
	}

	if err := s.codec.Decode(res.Text, &value); err != nil {
		res.OK = false
		res.Kind = KindWrongDatatype
		res.Message = err.Error()
		logger.WarnCtx(ctx, "decode failed",
			logger.Op("load"),
			logger.Path(logical),
			logger.Codec(s.codec.Name()),
			logger.Outcome(KindWrongDatatype.String()))
		return value, res
	}
	return value, res
}

// loadShared performs the cache-miss read, deduplicating concurrent callers
// on the same absolute path. Cache-bypassing reads go straight to the engine
// so they cannot feed their result to coalesced cached callers.
func (s *Store) loadShared(ctx context.Context, abs string, skipCache bool) ReadResult {
	if skipCache {
		text, err := s.engine.Read(ctx, abs)
		if err != nil {
			kind, msg := classify(err)
			return ReadResult{Kind: kind, Message: msg}
		}
		return readOutcome(text)
	}

	v, _, _ := s.loads.Do(abs, func() (any, error) {
		text, err := s.engine.Read(ctx, abs)
		if err != nil {
			kind, msg := classify(err)
			return ReadResult{Kind: kind, Message: msg}, nil
		}

		s.cachePut(abs, text, len(text) > s.engine.Config().ChunkThreshold)
		return readOutcome(text), nil
	})
	return v.(ReadResult)
}

// readOutcome builds the result for successfully read content.
func readOutcome(text string) ReadResult {
	if text == "" {
		return ReadResult{OK: true, Kind: KindEmptyContent}
	}
	return ReadResult{OK: true, Kind: KindNone, Text: text}
}

// logLoad emits the load outcome log line.
func (s *Store) logLoad(ctx context.Context, logical, abs string, hit bool, res ReadResult) {
	if res.OK {
		logger.InfoCtx(ctx, "load completed",
			logger.Op("load"),
			logger.Path(logical),
			logger.AbsPath(abs),
			logger.CacheHit(hit),
			logger.Size(len(res.Text)),
			logger.Outcome(res.Kind.String()))
		return
	}
	logger.WarnCtx(ctx, "load failed",
		logger.Op("load"),
		logger.Path(logical),
		logger.Outcome(res.Kind.String()),
		logger.Err(fmt.Errorf("%s", res.Message)))
}

// recoverRead converts a panic into a KindUndefined result.
func (s *Store) recoverRead(res *ReadResult, logical string) {
	if r := recover(); r != nil {
		*res = ReadResult{
			Kind:    KindUndefined,
			Message: fmt.Sprintf("unexpected load failure: %v", r),
		}
		logger.Error("unexpected failure",
			logger.Op("load"),
			logger.Path(logical),
			logger.Outcome(KindUndefined.String()))
	}
}
