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

// writeFixture puts content on disk without going through the engine.
func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_MissingFile(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Read(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRead_MissingFileReportedBeforeAnyWork(t *testing.T) {
	e, _ := newTestEngine(t)

	op, err := e.BeginRead(filepath.Join(t.TempDir(), "nope.json"))
	assert.Nil(t, op)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRead_EmptyFile(t *testing.T) {
	e, _ := newTestEngine(t)
	path := writeFixture(t, "")

	text, err := e.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestRead_SingleShot(t *testing.T) {
	e, _ := newTestEngine(t)
	content := `{"gold":500}`
	path := writeFixture(t, content)

	text, err := e.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestRead_ChunkedRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	content := largeContent(300 << 10)
	path := writeFixture(t, content)

	text, err := e.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestRead_MultiByteContentSurvivesChunkBoundaries(t *testing.T) {
	e, _ := newTestEngine(t)

	// 16KiB chunks will split these runes mid-sequence; accumulation is
	// byte-wise so the final string must still be intact.
	content := strings.Repeat("héllo wörld こんにちは ", 8<<10)
	require.Greater(t, len(content), DefaultChunkThreshold)
	path := writeFixture(t, content)

	text, err := e.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestRead_AbortReturnsPartialPrefix(t *testing.T) {
	e, sig := newTestEngine(t)
	content := largeContent(200 << 10)
	path := writeFixture(t, content)

	op, err := e.BeginRead(path)
	require.NoError(t, err)

	done, err := op.Resume(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, DefaultYieldEvery, op.ChunksCompleted())

	sig.Set()
	text, err := op.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAborted)

	// The signal is checked after each chunk lands, so everything read so
	// far is kept and is an exact prefix of the file.
	assert.NotEmpty(t, text)
	assert.Less(t, len(text), len(content))
	assert.Equal(t, content[:len(text)], text)
	assert.Equal(t, int64(len(text)), op.BytesRead())
}

func TestRead_SingleShotIgnoresAbortSignal(t *testing.T) {
	e, sig := newTestEngine(t)
	content := `{"gold":500}`
	path := writeFixture(t, content)
	sig.Set()

	text, err := e.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestRead_CancelledContext(t *testing.T) {
	e, _ := newTestEngine(t)
	path := writeFixture(t, largeContent(100<<10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Read(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRead_EngineRoundTrip(t *testing.T) {
	// What the engine writes, the engine reads back, across size classes.
	e, _ := newTestEngine(t)
	dir := t.TempDir()

	for _, size := range []int{0, 1, 1 << 10, DefaultChunkThreshold, DefaultChunkThreshold + 1, 500 << 10} {
		content := largeContent(size)
		path := filepath.Join(dir, "roundtrip.json")

		require.NoError(t, e.Write(context.Background(), path, content))
		text, err := e.Read(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, content, text, "size %d", size)
	}
}
