package config

import (
	"strings"
	"testing"

	"github.com/stashfs/stashfs/internal/bytesize"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidCodec(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Codec = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for unsupported codec")
	}
}

func TestValidate_InvalidMetricsPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Metrics.Port = 70000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_ChunkSizeAboveThreshold(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Transfer.ChunkSize = bytesize.ByteSize(256 << 10)
	cfg.Transfer.ChunkThreshold = bytesize.ByteSize(80 << 10)

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error when chunk size exceeds threshold")
	}
	if !strings.Contains(err.Error(), "chunk_size") {
		t.Errorf("Expected chunk_size in error, got: %v", err)
	}
}

func TestValidate_SampleRateOutOfRange(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.SampleRate = 1.5

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for sample rate above 1.0")
	}
}

func TestValidate_NegativeCacheCapacity(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Cache.Capacity = -1

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for negative cache capacity")
	}
}
