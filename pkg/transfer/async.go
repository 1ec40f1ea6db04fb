package transfer

import (
	"context"
	"sync"
)

// Handle is the future-like result of an asynchronous transfer.
//
// The transfer runs on its own goroutine; callers observe completion via the
// Done channel or Wait. All methods are safe for concurrent use.
type Handle struct {
	id   string
	done chan struct{}

	mu   sync.Mutex
	text string
	err  error
}

func newHandle(id string) *Handle {
	return &Handle{id: id, done: make(chan struct{})}
}

// complete publishes the result and closes the done channel. Called exactly
// once by the transfer goroutine.
func (h *Handle) complete(text string, err error) {
	h.mu.Lock()
	h.text = text
	h.err = err
	h.mu.Unlock()
	close(h.done)
}

// ID returns the transfer's unique identifier.
func (h *Handle) ID() string { return h.id }

// Done returns a channel closed when the transfer finishes.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Finished reports whether the transfer has completed without blocking.
func (h *Handle) Finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the transfer finishes or ctx is cancelled. For reads the
// returned text is the file content (partial on abort); for writes it is
// empty.
func (h *Handle) Wait(ctx context.Context) (string, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.text, h.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// WriteAsync starts a write on a new goroutine and returns immediately.
// The chunk sequence is identical to the blocking discipline.
func (e *Engine) WriteAsync(ctx context.Context, path, content string) *Handle {
	op := e.BeginWrite(path, content)
	h := newHandle(op.ID())

	go func() {
		h.complete("", op.Run(ctx))
	}()
	return h
}

// ReadAsync starts a read on a new goroutine and returns immediately.
// A missing file is reported through the handle, not at call time.
func (e *Engine) ReadAsync(ctx context.Context, path string) *Handle {
	op, err := e.BeginRead(path)
	if err != nil {
		h := newHandle("")
		h.complete("", err)
		return h
	}

	h := newHandle(op.ID())
	go func() {
		h.complete(op.Run(ctx))
	}()
	return h
}
