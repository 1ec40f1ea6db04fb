package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsync_WriteCompletesViaHandle(t *testing.T) {
	e, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "async.json")
	content := largeContent(200 << 10)

	h := e.WriteAsync(context.Background(), path, content)

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("async write did not complete")
	}

	_, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, h.Finished())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestAsync_ReadReturnsContent(t *testing.T) {
	e, _ := newTestEngine(t)
	content := largeContent(150 << 10)
	path := writeFixture(t, content)

	h := e.ReadAsync(context.Background(), path)

	text, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestAsync_MissingFileReportedThroughHandle(t *testing.T) {
	e, _ := newTestEngine(t)

	h := e.ReadAsync(context.Background(), filepath.Join(t.TempDir(), "nope.json"))

	_, err := h.Wait(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, h.Finished())
}

func TestAsync_WaitHonorsContext(t *testing.T) {
	h := newHandle("test")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, h.Finished())
}

func TestAsync_ConcurrentTransfers(t *testing.T) {
	e, _ := newTestEngine(t)
	dir := t.TempDir()

	const n = 16
	contents := make([]string, n)
	handles := make([]*Handle, n)
	for i := range contents {
		contents[i] = largeContent(100<<10 + i*1000)
		handles[i] = e.WriteAsync(context.Background(),
			filepath.Join(dir, fmt.Sprintf("slot-%d.json", i)), contents[i])
	}
	for _, h := range handles {
		_, err := h.Wait(context.Background())
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text, err := e.Read(context.Background(),
				filepath.Join(dir, fmt.Sprintf("slot-%d.json", i)))
			assert.NoError(t, err)
			results[i] = text
		}(i)
	}
	wg.Wait()

	for i := range results {
		assert.Equal(t, contents[i], results[i])
	}
}

func TestAsync_AbortStopsInFlightTransfers(t *testing.T) {
	e, sig := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "doomed.json")

	// Set before start: every chunked transfer aborts at its first chunk.
	sig.Set()

	h := e.WriteAsync(context.Background(), path, largeContent(200<<10))
	_, err := h.Wait(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
}
