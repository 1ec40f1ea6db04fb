package transfer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/stashfs/stashfs/internal/logger"
)

// WriteOp is an in-flight write transfer. One WriteOp streams a single
// payload to a single destination file; it is not safe for concurrent use.
//
// The zero value is not usable; create a WriteOp with Engine.BeginWrite.
type WriteOp struct {
	engine *Engine
	id     string
	path   string
	data   []byte
	plan   Plan

	file    *os.File
	next    int
	written int64
	started time.Time

	done    bool
	aborted bool
	err     error
}

// BeginWrite starts a cooperative write of content to the absolute path.
// The destination file is created lazily on the first Resume call.
func (e *Engine) BeginWrite(path, content string) *WriteOp {
	op := &WriteOp{
		engine:  e,
		id:      uuid.NewString(),
		path:    path,
		data:    []byte(content),
		started: time.Now(),
	}
	op.plan = e.planFor(int64(len(op.data)))

	logger.Debug("write transfer started",
		logger.TransferID(op.id),
		logger.AbsPath(path),
		logger.Size(len(op.data)),
		logger.ChunksTotal(op.plan.NumChunks()))
	return op
}

// Write runs a blocking write of content to the absolute path, driving the
// chunk sequence to exhaustion before returning.
func (e *Engine) Write(ctx context.Context, path, content string) error {
	return e.BeginWrite(path, content).Run(ctx)
}

// ID returns the transfer's unique identifier.
func (op *WriteOp) ID() string { return op.id }

// Path returns the absolute destination path.
func (op *WriteOp) Path() string { return op.path }

// Done reports whether the transfer has finished, successfully or not.
func (op *WriteOp) Done() bool { return op.done }

// Err returns the terminal error, or nil while running or after success.
func (op *WriteOp) Err() error { return op.err }

// BytesWritten returns the number of bytes flushed to the file so far.
func (op *WriteOp) BytesWritten() int64 { return op.written }

// ChunksCompleted returns the number of chunks fully written.
func (op *WriteOp) ChunksCompleted() int { return op.next }

// TotalChunks returns the planned chunk count.
func (op *WriteOp) TotalChunks() int { return op.plan.NumChunks() }

// Run drives the transfer to completion. Blocks until every chunk is written,
// the abort signal fires, or an I/O error occurs.
func (op *WriteOp) Run(ctx context.Context) error {
	for !op.done {
		op.step(ctx)
	}
	return op.err
}

// Resume advances the transfer by up to YieldEvery chunks, then yields.
// It reports whether the transfer finished; once finished, further calls
// return ErrCompleted.
func (op *WriteOp) Resume(ctx context.Context) (bool, error) {
	if op.done {
		return true, ErrCompleted
	}

	for i := 0; i < op.engine.cfg.YieldEvery && !op.done; i++ {
		op.step(ctx)
	}
	return op.done, op.err
}

// step advances the transfer by one chunk. The lazy file open (and, for an
// empty payload, the finish) piggybacks on the first call, so a step writes
// at most one chunk but may also open or close the file.
func (op *WriteOp) step(ctx context.Context) {
	if op.done {
		return
	}

	if err := ctx.Err(); err != nil {
		op.fail(err)
		return
	}

	if op.file == nil {
		f, err := os.OpenFile(op.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			op.fail(fmt.Errorf("open destination: %w", err))
			return
		}
		op.file = f
	}

	// Empty payload: the truncating open already produced the zero-byte
	// file, nothing left to stream.
	if op.plan.NumChunks() == 0 {
		op.finish()
		return
	}

	// Only chunked transfers observe the abort signal; single-shot writes
	// are atomic from the engine's point of view.
	if op.plan.Chunked() && op.engine.signal.Aborting() {
		op.abort()
		return
	}

	start, end := op.plan.Bounds(op.next)
	n, err := op.file.Write(op.data[start:end])
	op.written += int64(n)
	if err != nil {
		op.fail(fmt.Errorf("write chunk: %w", err))
		return
	}

	op.next++
	if op.next >= op.plan.NumChunks() {
		op.finish()
	}
}

// finish flushes and closes the file and marks the transfer successful.
func (op *WriteOp) finish() {
	op.done = true

	if err := op.closeFile(); err != nil {
		op.err = &Error{Op: "write", Path: op.path, Chunk: -1, Err: err}
		if m := op.engine.metrics; m != nil {
			m.RecordFailure("write")
		}
		return
	}

	if m := op.engine.metrics; m != nil {
		m.ObserveWrite(op.written, op.next, time.Since(op.started))
	}
	logger.Debug("write transfer completed",
		logger.TransferID(op.id),
		logger.AbsPath(op.path),
		logger.Bytes(op.written),
		logger.ChunksTotal(op.plan.NumChunks()),
		logger.DurationMs(logger.Duration(op.started)))
}

// abort stops the transfer, leaving the partial file on disk.
func (op *WriteOp) abort() {
	op.done = true
	op.aborted = true
	_ = op.closeFile()
	op.err = &Error{Op: "write", Path: op.path, Chunk: op.next, Err: ErrAborted}

	if m := op.engine.metrics; m != nil {
		m.RecordAbort("write")
	}
	logger.Debug("write transfer aborted",
		logger.TransferID(op.id),
		logger.AbsPath(op.path),
		logger.Chunk(op.next),
		logger.Bytes(op.written))
}

// fail stops the transfer with an I/O error.
func (op *WriteOp) fail(cause error) {
	op.done = true

	chunk := op.next
	if op.file == nil {
		chunk = -1
	}
	_ = op.closeFile()
	op.err = &Error{Op: "write", Path: op.path, Chunk: chunk, Err: cause}

	if m := op.engine.metrics; m != nil {
		m.RecordFailure("write")
	}
	logger.Debug("write transfer failed",
		logger.TransferID(op.id),
		logger.AbsPath(op.path),
		logger.Err(op.err))
}

// closeFile flushes and closes the destination, at most once.
func (op *WriteOp) closeFile() error {
	if op.file == nil {
		return nil
	}
	f := op.file
	op.file = nil

	syncErr := f.Sync()
	closeErr := f.Close()
	if syncErr != nil {
		return syncErr
	}
	return closeErr
}
