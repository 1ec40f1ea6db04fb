// Package bufpool provides a pool of chunk-sized byte buffers for the
// transfer engine.
//
// Chunked reads reuse a fixed-size buffer per I/O call. Pooling those buffers
// avoids a fresh allocation for every chunk of every transfer, which matters
// when many transfers run concurrently under the async discipline.
//
// Buffers larger than the pool's chunk size (one-shot transfers below the
// chunking threshold) are allocated directly and never pooled, so occasional
// large buffers do not pin memory.
//
// All operations are safe for concurrent use via sync.Pool.
package bufpool

import "sync"

// DefaultChunkSize matches the transfer engine's default chunk size (16KiB).
const DefaultChunkSize = 16 << 10

// Pool hands out byte slices of a fixed chunk size.
type Pool struct {
	chunkSize int
	pool      sync.Pool
}

// New creates a buffer pool for the given chunk size.
// A non-positive size falls back to DefaultChunkSize.
func New(chunkSize int) *Pool {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	p := &Pool{chunkSize: chunkSize}
	p.pool = sync.Pool{
		New: func() any {
			buf := make([]byte, p.chunkSize)
			return &buf
		},
	}
	return p
}

// ChunkSize returns the size of pooled buffers.
func (p *Pool) ChunkSize() int {
	return p.chunkSize
}

// Get returns a byte slice of exactly the requested size.
//
// Requests up to the pool's chunk size are served from the pool; the slice is
// backed by a chunk-sized buffer and truncated to size. Larger requests are
// allocated directly and will not be pooled.
//
// The caller must call Put when finished with the buffer.
func (p *Pool) Get(size int) []byte {
	if size > p.chunkSize {
		return make([]byte, size)
	}

	bufPtr := p.pool.Get().(*[]byte)
	return (*bufPtr)[:size]
}

// Put returns a buffer to the pool for reuse. Buffers not backed by a
// chunk-sized allocation are left for the GC. The buffer must not be used
// after Put.
func (p *Pool) Put(buf []byte) {
	if buf == nil || cap(buf) != p.chunkSize {
		return
	}

	full := buf[:cap(buf)]
	p.pool.Put(&full)
}
