package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/stashfs/stashfs/internal/bytesize"
)

// Default values for the transfer engine and cache.
const (
	DefaultCacheCapacity        = 256
	DefaultMemoryBudgetPerEntry = bytesize.ByteSize(256 << 10)
	DefaultChunkSize            = bytesize.ByteSize(16 << 10)
	DefaultChunkThreshold       = bytesize.ByteSize(80 << 10)
	DefaultYieldEvery           = 4
	DefaultMetricsPort          = 9090
)

// GetDefaultConfig returns a fully populated default configuration.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Cache.Enabled = true
	cfg.Storage.CreateDirs = true
	return cfg
}

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and
// environment variables to fill in any missing values.
//
// Default strategy:
//   - Zero values (0, "", nil) are replaced with defaults
//   - Explicit values are preserved
//
// Boolean fields cannot distinguish "unset" from "false", so their defaults
// live in GetDefaultConfig and the sample config written by 'stash init'.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyStorageDefaults(&cfg.Storage)
	applyCacheDefaults(&cfg.Cache)
	applyTransferDefaults(&cfg.Transfer)
	applyMetricsDefaults(&cfg.Metrics)
	applyTelemetryDefaults(&cfg.Telemetry)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyStorageDefaults sets the storage layout defaults.
func applyStorageDefaults(cfg *StorageConfig) {
	if cfg.BaseDir == "" {
		cfg.BaseDir = getDataDir()
	}
	if cfg.Codec == "" {
		cfg.Codec = "json"
	}
}

// applyCacheDefaults sets cache sizing defaults.
// A capacity of 0 is treated as unset; use enabled=false to turn caching off
// in config files.
func applyCacheDefaults(cfg *CacheConfig) {
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCacheCapacity
	}
	if cfg.MemoryBudgetPerEntry == 0 {
		cfg.MemoryBudgetPerEntry = DefaultMemoryBudgetPerEntry
	}
}

// applyTransferDefaults sets transfer engine defaults.
func applyTransferDefaults(cfg *TransferConfig) {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkThreshold == 0 {
		cfg.ChunkThreshold = DefaultChunkThreshold
	}
	if cfg.YieldEvery == 0 {
		cfg.YieldEvery = DefaultYieldEvery
	}
}

// applyMetricsDefaults sets metrics server defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = DefaultMetricsPort
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	// Enabled defaults to false (opt-in for telemetry)

	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets Pyroscope profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}
	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

// getDataDir returns the default storage base directory.
//
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share, or falls back to the
// current directory if the home directory cannot be determined.
func getDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "stashfs")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "stashfs-data"
	}
	return filepath.Join(home, ".local", "share", "stashfs")
}
