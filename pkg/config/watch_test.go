package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashfs/stashfs/internal/logger"
)

// syncBuffer guards the log buffer against the watcher goroutine writing
// concurrently with test assertions.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeLoggingConfig(t *testing.T, path, level string) {
	t.Helper()
	content := "logging:\n  level: " + level + "\n  format: text\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatchLogging_AppliesLevelChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeLoggingConfig(t, path, "INFO")

	out := &syncBuffer{}
	logger.InitWithWriter(out, "INFO", "text", false)
	t.Cleanup(func() {
		logger.InitWithWriter(os.Stderr, "INFO", "text", false)
	})

	stop, err := WatchLogging(path)
	require.NoError(t, err)
	defer stop()

	logger.Debug("before-reload-line")
	assert.NotContains(t, out.String(), "before-reload-line")

	writeLoggingConfig(t, path, "DEBUG")

	assert.Eventually(t, func() bool {
		logger.Debug("after-reload-line")
		return strings.Contains(out.String(), "after-reload-line")
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatchLogging_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeLoggingConfig(t, path, "INFO")

	out := &syncBuffer{}
	logger.InitWithWriter(out, "INFO", "text", false)
	t.Cleanup(func() {
		logger.InitWithWriter(os.Stderr, "INFO", "text", false)
	})

	stop, err := WatchLogging(path)
	require.NoError(t, err)
	defer stop()

	// A write to an unrelated file in the same directory must not trigger
	// a reload.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("logging:\n  level: DEBUG\n"), 0o644))
	time.Sleep(200 * time.Millisecond)

	logger.Debug("sibling-change-line")
	assert.NotContains(t, out.String(), "sibling-change-line")
}

func TestWatchLogging_MissingDirectory(t *testing.T) {
	_, err := WatchLogging(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	assert.Error(t, err)
}
