package transfer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine returns an engine with default tuning and a fresh signal.
func newTestEngine(t *testing.T) (*Engine, *Signal) {
	t.Helper()
	sig := NewSignal()
	return New(DefaultConfig(), sig, nil), sig
}

// largeContent builds a payload of the given size that is guaranteed to
// exceed the chunking threshold with recognizable, position-dependent bytes.
func largeContent(size int) string {
	var b strings.Builder
	b.Grow(size)
	for b.Len() < size {
		b.WriteString("0123456789abcdef")
	}
	return b.String()[:size]
}

func TestWrite_EmptyContentCreatesZeroByteFile(t *testing.T) {
	e, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "empty.json")

	require.NoError(t, e.Write(context.Background(), path, ""))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestWrite_EmptyContentTruncatesExisting(t *testing.T) {
	e, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, e.Write(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWrite_SingleShot(t *testing.T) {
	e, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "small.json")
	content := `{"level":3,"name":"hero"}`

	require.NoError(t, e.Write(context.Background(), path, content))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestWrite_ChunkedRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "large.json")
	content := largeContent(200 << 10)

	require.NoError(t, e.Write(context.Background(), path, content))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestWrite_AbortLeavesPartialFile(t *testing.T) {
	e, sig := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "partial.json")
	content := largeContent(200 << 10)

	op := e.BeginWrite(path, content)

	// First Resume lands YieldEvery chunks, then the signal fires.
	done, err := op.Resume(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, DefaultYieldEvery, op.ChunksCompleted())

	sig.Set()
	err = op.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAborted)

	// The completed chunks are on disk, nothing more.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	wantBytes := DefaultYieldEvery * DefaultChunkSize
	assert.Len(t, data, wantBytes)
	assert.Equal(t, content[:wantBytes], string(data))
}

func TestWrite_SingleShotIgnoresAbortSignal(t *testing.T) {
	e, sig := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "small.json")
	sig.Set()

	// Below the threshold the transfer is one atomic step and does not
	// observe the signal.
	require.NoError(t, e.Write(context.Background(), path, "tiny"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", string(data))
}

func TestWrite_MissingDirectoryFails(t *testing.T) {
	e, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "f.json")

	err := e.Write(context.Background(), path, "data")
	require.Error(t, err)

	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "write", terr.Op)
	assert.Equal(t, path, terr.Path)
}

func TestWrite_CancelledContext(t *testing.T) {
	e, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "f.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Write(ctx, path, "data")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrite_NilSignalNeverAborts(t *testing.T) {
	e := New(DefaultConfig(), nil, nil)
	path := filepath.Join(t.TempDir(), "f.json")
	content := largeContent(100 << 10)

	require.NoError(t, e.Write(context.Background(), path, content))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
