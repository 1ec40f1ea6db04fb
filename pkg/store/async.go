package store

import (
	"context"
	"sync"
)

// SaveHandle is the future-like result of an asynchronous save.
type SaveHandle struct {
	done chan struct{}

	mu  sync.Mutex
	res WriteResult
}

// Done returns a channel closed when the save finishes.
func (h *SaveHandle) Done() <-chan struct{} { return h.done }

// Finished reports completion without blocking.
func (h *SaveHandle) Finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the save finishes or ctx is cancelled. On cancellation
// the result reports KindIO; the save itself keeps running.
func (h *SaveHandle) Wait(ctx context.Context) WriteResult {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.res
	case <-ctx.Done():
		return WriteResult{Kind: KindIO, Message: ctx.Err().Error()}
	}
}

// SaveAsync encodes and writes on a new goroutine, returning immediately.
func (s *Store) SaveAsync(ctx context.Context, logical string, value any, opts ...Option) *SaveHandle {
	h := &SaveHandle{done: make(chan struct{})}
	go func() {
		res := s.Save(ctx, logical, value, opts...)
		h.mu.Lock()
		h.res = res
		h.mu.Unlock()
		close(h.done)
	}()
	return h
}

// SaveTextAsync writes pre-encoded text on a new goroutine, returning
// immediately. The bytes written are exactly those SaveText would write;
// the discipline only changes where control returns.
func (s *Store) SaveTextAsync(ctx context.Context, logical, text string, opts ...Option) *SaveHandle {
	h := &SaveHandle{done: make(chan struct{})}
	go func() {
		res := s.SaveText(ctx, logical, text, opts...)
		h.mu.Lock()
		h.res = res
		h.mu.Unlock()
		close(h.done)
	}()
	return h
}

// LoadHandle is the future-like result of an asynchronous load.
type LoadHandle struct {
	done chan struct{}

	mu  sync.Mutex
	res ReadResult
}

// Done returns a channel closed when the load finishes.
func (h *LoadHandle) Done() <-chan struct{} { return h.done }

// Finished reports completion without blocking.
func (h *LoadHandle) Finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the load finishes or ctx is cancelled.
func (h *LoadHandle) Wait(ctx context.Context) ReadResult {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.res
	case <-ctx.Done():
		return ReadResult{Kind: KindIO, Message: ctx.Err().Error()}
	}
}

// LoadAsync reads raw text on a new goroutine, returning immediately.
func (s *Store) LoadAsync(ctx context.Context, logical string, opts ...Option) *LoadHandle {
	h := &LoadHandle{done: make(chan struct{})}
	go func() {
		res := s.LoadText(ctx, logical, opts...)
		h.mu.Lock()
		h.res = res
		h.mu.Unlock()
		close(h.done)
	}()
	return h
}
