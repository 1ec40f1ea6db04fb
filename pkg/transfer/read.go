package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/stashfs/stashfs/internal/logger"
)

// ReadOp is an in-flight read transfer. It accumulates raw bytes across
// chunks and converts to a string once at the end, so multi-byte characters
// split across a chunk boundary survive intact. Not safe for concurrent use.
type ReadOp struct {
	engine *Engine
	id     string
	path   string
	plan   Plan

	file    *os.File
	buf     bytes.Buffer
	chunks  int
	started time.Time

	done    bool
	aborted bool
	err     error
}

// BeginRead starts a cooperative read of the absolute path.
//
// The existence check happens here, before any chunk work: a missing file
// returns an error wrapping ErrNotFound and no operation.
func (e *Engine) BeginRead(path string) (*ReadOp, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Op: "read", Path: path, Chunk: -1, Err: ErrNotFound}
		}
		return nil, &Error{Op: "read", Path: path, Chunk: -1, Err: err}
	}

	op := &ReadOp{
		engine:  e,
		id:      uuid.NewString(),
		path:    path,
		plan:    e.planFor(info.Size()),
		started: time.Now(),
	}

	logger.Debug("read transfer started",
		logger.TransferID(op.id),
		logger.AbsPath(path),
		logger.Size(int(info.Size())),
		logger.ChunksTotal(op.plan.NumChunks()))
	return op, nil
}

// Read runs a blocking read of the absolute path and returns the file's full
// content. On abort the bytes accumulated so far are returned alongside an
// error wrapping ErrAborted.
func (e *Engine) Read(ctx context.Context, path string) (string, error) {
	op, err := e.BeginRead(path)
	if err != nil {
		return "", err
	}
	return op.Run(ctx)
}

// ID returns the transfer's unique identifier.
func (op *ReadOp) ID() string { return op.id }

// Path returns the absolute source path.
func (op *ReadOp) Path() string { return op.path }

// Done reports whether the transfer has finished, successfully or not.
func (op *ReadOp) Done() bool { return op.done }

// Err returns the terminal error, or nil while running or after success.
func (op *ReadOp) Err() error { return op.err }

// Text returns the content accumulated so far. After a successful transfer
// this is the full file content; after an abort it is the partial prefix.
func (op *ReadOp) Text() string { return op.buf.String() }

// BytesRead returns the number of bytes accumulated so far.
func (op *ReadOp) BytesRead() int64 { return int64(op.buf.Len()) }

// ChunksCompleted returns the number of chunks fully read.
func (op *ReadOp) ChunksCompleted() int { return op.chunks }

// TotalChunks returns the planned chunk count from the file's size at stat
// time.
func (op *ReadOp) TotalChunks() int { return op.plan.NumChunks() }

// Run drives the transfer to completion and returns the accumulated text.
func (op *ReadOp) Run(ctx context.Context) (string, error) {
	for !op.done {
		op.step(ctx)
	}
	return op.buf.String(), op.err
}

// Resume advances the transfer by up to YieldEvery chunks, then yields.
// It reports whether the transfer finished; once finished, further calls
// return ErrCompleted.
func (op *ReadOp) Resume(ctx context.Context) (bool, error) {
	if op.done {
		return true, ErrCompleted
	}

	for i := 0; i < op.engine.cfg.YieldEvery && !op.done; i++ {
		op.step(ctx)
	}
	return op.done, op.err
}

// step executes one unit of the transfer. Single-shot plans complete in one
// step; chunked plans read one fixed-size chunk per step and check the abort
// signal after each.
func (op *ReadOp) step(ctx context.Context) {
	if op.done {
		return
	}

	if err := ctx.Err(); err != nil {
		op.fail(err)
		return
	}

	if !op.plan.Chunked() {
		data, err := os.ReadFile(op.path)
		if err != nil {
			op.fail(fmt.Errorf("read file: %w", err))
			return
		}
		op.buf.Write(data)
		if op.plan.NumChunks() > 0 {
			op.chunks = 1
		}
		op.finish()
		return
	}

	if op.file == nil {
		f, err := os.Open(op.path)
		if err != nil {
			op.fail(fmt.Errorf("open source: %w", err))
			return
		}
		op.file = f
	}

	chunk := op.engine.pool.Get(op.engine.cfg.ChunkSize)
	n, err := op.file.Read(chunk)
	if n > 0 {
		op.buf.Write(chunk[:n])
		op.chunks++
	}
	op.engine.pool.Put(chunk)

	if err != nil {
		if errors.Is(err, io.EOF) {
			op.finish()
		} else {
			op.fail(fmt.Errorf("read chunk: %w", err))
		}
		return
	}

	// The abort check runs after the chunk lands, so an aborted read still
	// hands back every chunk it completed.
	if op.engine.signal.Aborting() {
		op.abort()
	}
}

// finish closes the file and marks the transfer successful.
func (op *ReadOp) finish() {
	op.done = true

	if err := op.closeFile(); err != nil {
		op.err = &Error{Op: "read", Path: op.path, Chunk: -1, Err: err}
		if m := op.engine.metrics; m != nil {
			m.RecordFailure("read")
		}
		return
	}

	if m := op.engine.metrics; m != nil {
		m.ObserveRead(int64(op.buf.Len()), op.chunks, time.Since(op.started))
	}
	logger.Debug("read transfer completed",
		logger.TransferID(op.id),
		logger.AbsPath(op.path),
		logger.Bytes(int64(op.buf.Len())),
		logger.ChunksTotal(op.plan.NumChunks()),
		logger.DurationMs(logger.Duration(op.started)))
}

// abort stops the transfer, keeping the chunks accumulated so far.
func (op *ReadOp) abort() {
	op.done = true
	op.aborted = true
	_ = op.closeFile()
	op.err = &Error{Op: "read", Path: op.path, Chunk: op.chunks, Err: ErrAborted}

	if m := op.engine.metrics; m != nil {
		m.RecordAbort("read")
	}
	logger.Debug("read transfer aborted",
		logger.TransferID(op.id),
		logger.AbsPath(op.path),
		logger.Chunk(op.chunks),
		logger.Bytes(int64(op.buf.Len())))
}

// fail stops the transfer with an I/O error.
func (op *ReadOp) fail(cause error) {
	op.done = true

	chunk := op.chunks
	if op.file == nil {
		chunk = -1
	}
	_ = op.closeFile()
	op.err = &Error{Op: "read", Path: op.path, Chunk: chunk, Err: cause}

	if m := op.engine.metrics; m != nil {
		m.RecordFailure("read")
	}
	logger.Debug("read transfer failed",
		logger.TransferID(op.id),
		logger.AbsPath(op.path),
		logger.Err(op.err))
}

// closeFile closes the source file, at most once.
func (op *ReadOp) closeFile() error {
	if op.file == nil {
		return nil
	}
	f := op.file
	op.file = nil
	return f.Close()
}
