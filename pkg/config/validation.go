package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against the struct validation tags plus
// cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	// The threshold must hold at least one chunk, otherwise a "chunked"
	// transfer would finish in a single step anyway.
	if cfg.Transfer.ChunkSize > cfg.Transfer.ChunkThreshold {
		return fmt.Errorf("transfer.chunk_size (%s) must not exceed transfer.chunk_threshold (%s)",
			cfg.Transfer.ChunkSize, cfg.Transfer.ChunkThreshold)
	}

	if cfg.Cache.Enabled && cfg.Cache.Capacity > 0 && cfg.Cache.MemoryBudgetPerEntry == 0 {
		return fmt.Errorf("cache.memory_budget_per_entry must be set when the cache is enabled")
	}

	return nil
}
