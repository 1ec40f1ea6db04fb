package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashfs/stashfs/internal/bytesize"
)

func TestLoad_NoConfigFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "json", cfg.Storage.Codec)
	assert.Equal(t, DefaultChunkSize, cfg.Transfer.ChunkSize)
	assert.Equal(t, DefaultChunkThreshold, cfg.Transfer.ChunkThreshold)
	assert.Equal(t, DefaultYieldEvery, cfg.Transfer.YieldEvery)
	assert.Equal(t, DefaultCacheCapacity, cfg.Cache.Capacity)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
  format: json
storage:
  base_dir: /tmp/stash-test
  codec: yaml
cache:
  enabled: true
  capacity: 64
  memory_budget_per_entry: 512Ki
transfer:
  chunk_size: 32Ki
  chunk_threshold: 128Ki
  yield_every: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level, "level is normalized to uppercase")
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/stash-test", cfg.Storage.BaseDir)
	assert.Equal(t, "yaml", cfg.Storage.Codec)
	assert.Equal(t, 64, cfg.Cache.Capacity)
	assert.Equal(t, bytesize.ByteSize(512<<10), cfg.Cache.MemoryBudgetPerEntry)
	assert.Equal(t, bytesize.ByteSize(32<<10), cfg.Transfer.ChunkSize)
	assert.Equal(t, bytesize.ByteSize(128<<10), cfg.Transfer.ChunkThreshold)
	assert.Equal(t, 8, cfg.Transfer.YieldEvery)
}

func TestLoad_NumericSizesAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
transfer:
  chunk_size: 16384
  chunk_threshold: 81920
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, bytesize.ByteSize(16384), cfg.Transfer.ChunkSize)
	assert.Equal(t, bytesize.ByteSize(81920), cfg.Transfer.ChunkThreshold)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [not: valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Storage.BaseDir = "/srv/stash"
	cfg.Transfer.ChunkSize = bytesize.ByteSize(64 << 10)
	require.NoError(t, SaveConfig(cfg, path))

	// Written with restricted permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/stash", loaded.Storage.BaseDir)
	assert.Equal(t, bytesize.ByteSize(64<<10), loaded.Transfer.ChunkSize)
}

func TestMustLoad_MissingExplicitFile(t *testing.T) {
	_, err := MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stash init")
}
