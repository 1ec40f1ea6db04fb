package store

import (
	"context"
	"fmt"

	"github.com/stashfs/stashfs/pkg/transfer"
)

// SaveOp is a cooperative save driven by a host scheduler. Each Resume call
// advances the underlying transfer by a bounded number of chunks.
//
// Not safe for concurrent use.
type SaveOp struct {
	store   *Store
	op      *transfer.WriteOp
	abs     string
	text    string
	logical string
	opt     callOptions

	done bool
	res  WriteResult
}

// BeginSave encodes value and prepares a cooperative save. Resolution and
// encoding failures complete the operation immediately; no Resume calls are
// needed to observe them.
func (s *Store) BeginSave(logical string, value any, opts ...Option) *SaveOp {
	op := &SaveOp{store: s, logical: logical}

	text, err := s.codec.Encode(value)
	if err != nil {
		op.complete(WriteResult{Kind: KindWrongDatatype, Message: err.Error()})
		return op
	}
	return s.beginSaveText(logical, text, opts)
}

// BeginSaveText prepares a cooperative save of pre-encoded text.
func (s *Store) BeginSaveText(logical, text string, opts ...Option) *SaveOp {
	return s.beginSaveText(logical, text, opts)
}

func (s *Store) beginSaveText(logical, text string, opts []Option) *SaveOp {
	op := &SaveOp{store: s, logical: logical, text: text, opt: applyOptions(opts)}

	abs, ok := s.resolveForWrite(logical)
	if !ok {
		op.complete(WriteResult{
			Kind:    KindPathInvalid,
			Message: fmt.Sprintf("cannot resolve path %q", logical),
		})
		return op
	}

	op.abs = abs
	op.op = s.engine.BeginWrite(abs, text)
	return op
}

// Resume advances the save and reports whether it finished.
func (op *SaveOp) Resume(ctx context.Context) bool {
	if op.done {
		return true
	}

	done, err := op.op.Resume(ctx)
	if !done {
		return false
	}

	if err != nil {
		kind, msg := classify(err)
		op.complete(WriteResult{Kind: kind, Message: msg})
		return true
	}

	if !op.opt.skipCache {
		op.store.cachePut(op.abs, op.text, len(op.text) > op.store.engine.Config().ChunkThreshold)
	}
	op.complete(writeOK())
	return true
}

// Done reports whether the save has finished.
func (op *SaveOp) Done() bool { return op.done }

// Result returns the outcome. Only valid once Done reports true.
func (op *SaveOp) Result() WriteResult { return op.res }

func (op *SaveOp) complete(res WriteResult) {
	op.done = true
	op.res = res
	op.store.logSave(context.Background(), op.logical, op.abs, res)
}

// LoadOp is a cooperative load driven by a host scheduler.
//
// Not safe for concurrent use.
type LoadOp struct {
	store   *Store
	op      *transfer.ReadOp
	abs     string
	logical string
	opt     callOptions

	done bool
	res  ReadResult
}

// BeginLoad prepares a cooperative raw-text load. Resolution failures, cache
// hits, and missing files complete the operation immediately.
func (s *Store) BeginLoad(logical string, opts ...Option) *LoadOp {
	op := &LoadOp{store: s, logical: logical, opt: applyOptions(opts)}

	abs, ok := s.resolver.Resolve(logical)
	if !ok {
		op.complete(false, ReadResult{
			Kind:    KindPathInvalid,
			Message: fmt.Sprintf("cannot resolve path %q", logical),
		})
		return op
	}
	op.abs = abs

	if !op.opt.skipCache {
		if text, hit := s.cacheGet(abs); hit {
			op.complete(true, readOutcome(text))
			return op
		}
	}

	rop, err := s.engine.BeginRead(abs)
	if err != nil {
		kind, msg := classify(err)
		op.complete(false, ReadResult{Kind: kind, Message: msg})
		return op
	}
	op.op = rop
	return op
}

// Resume advances the load and reports whether it finished.
func (op *LoadOp) Resume(ctx context.Context) bool {
	if op.done {
		return true
	}

	done, err := op.op.Resume(ctx)
	if !done {
		return false
	}

	if err != nil {
		kind, msg := classify(err)
		op.complete(false, ReadResult{Kind: kind, Message: msg})
		return true
	}

	text := op.op.Text()
	if !op.opt.skipCache {
		op.store.cachePut(op.abs, text, len(text) > op.store.engine.Config().ChunkThreshold)
	}
	op.complete(false, readOutcome(text))
	return true
}

// Done reports whether the load has finished.
func (op *LoadOp) Done() bool { return op.done }

// Result returns the outcome. Only valid once Done reports true.
func (op *LoadOp) Result() ReadResult { return op.res }

func (op *LoadOp) complete(hit bool, res ReadResult) {
	op.done = true
	op.res = res
	op.store.logLoad(context.Background(), op.logical, op.abs, hit, res)
}
