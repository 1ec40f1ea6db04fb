// Package commands implements the CLI commands for the stash tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	configcmd "github.com/stashfs/stashfs/cmd/stash/commands/config"
	"github.com/stashfs/stashfs/internal/logger"
	"github.com/stashfs/stashfs/internal/telemetry"
	"github.com/stashfs/stashfs/pkg/cache"
	"github.com/stashfs/stashfs/pkg/codec"
	"github.com/stashfs/stashfs/pkg/config"
	"github.com/stashfs/stashfs/pkg/metrics"
	promMetrics "github.com/stashfs/stashfs/pkg/metrics/prometheus"
	"github.com/stashfs/stashfs/pkg/pathres"
	"github.com/stashfs/stashfs/pkg/store"
	"github.com/stashfs/stashfs/pkg/transfer"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stash",
	Short: "StashFS - chunked save-data storage",
	Long: `StashFS stores serialized data files under a managed base directory,
streaming large payloads in fixed-size chunks and caching decoded content
in a bounded in-memory cache.

Use "stash [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/stashfs/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(configcmd.Cmd)
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// loadConfig loads the effective configuration, falling back to defaults
// when no config file exists yet.
func loadConfig() (*config.Config, error) {
	return config.Load(GetConfigFile())
}

// newStore builds the read/write facade from the loaded configuration and
// initializes logging, the config watcher, metrics, and telemetry. Commands
// that touch storage go through here. The returned shutdown function stops
// the watcher and metrics server and flushes telemetry exporters.
func newStore() (*store.Store, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	stopTelemetry := setupTelemetry(cfg)

	// Logging level and format follow config file edits for the lifetime of
	// the command; everything else is fixed at startup.
	stopWatch, err := config.WatchLogging(GetConfigFile())
	if err != nil {
		logger.Warn("config watcher unavailable", logger.Err(err))
		stopWatch = func() {}
	}

	stopMetrics := func() {}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		srvCtx, cancel := context.WithCancel(context.Background())
		stopMetrics = cancel
		go func() {
			if err := metrics.StartServer(srvCtx, cfg.Metrics.Port); err != nil {
				logger.Warn("metrics server failed", logger.Err(err))
			}
		}()
	}

	shutdown := func() {
		stopWatch()
		stopMetrics()
		stopTelemetry()
	}

	resolver, err := pathres.New(pathres.Config{
		BaseDir:   cfg.Storage.BaseDir,
		CreateDir: cfg.Storage.CreateDirs,
	})
	if err != nil {
		shutdown()
		return nil, nil, nil, fmt.Errorf("failed to open base directory: %w", err)
	}

	engine := transfer.New(transfer.Config{
		ChunkSize:      cfg.Transfer.ChunkSize.Int(),
		ChunkThreshold: cfg.Transfer.ChunkThreshold.Int(),
		YieldEvery:     cfg.Transfer.YieldEvery,
	}, transfer.NewSignal(), promMetrics.NewTransferMetrics())

	cacheStore := cache.New(cache.Config{
		Capacity:             cfg.Cache.Capacity,
		MemoryBudgetPerEntry: cfg.Cache.MemoryBudgetPerEntry.Uint64(),
		Enabled:              cfg.Cache.Enabled,
	}, promMetrics.NewCacheMetrics())

	s, err := store.New(resolver, codecFor(cfg.Storage.Codec), cacheStore, engine)
	if err != nil {
		shutdown()
		return nil, nil, nil, err
	}
	return s, cfg, shutdown, nil
}

// setupTelemetry starts tracing and profiling when enabled, returning a
// function that flushes and stops both.
func setupTelemetry(cfg *config.Config) func() {
	ctx := context.Background()

	traceShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "stashfs",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		logger.Warn("failed to initialize tracing", logger.Err(err))
		traceShutdown = func(context.Context) error { return nil }
	}

	profShutdown, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "stashfs",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	})
	if err != nil {
		logger.Warn("failed to initialize profiling", logger.Err(err))
		profShutdown = func() error { return nil }
	}

	return func() {
		if err := traceShutdown(ctx); err != nil {
			logger.Warn("tracing shutdown failed", logger.Err(err))
		}
		if err := profShutdown(); err != nil {
			logger.Warn("profiling shutdown failed", logger.Err(err))
		}
	}
}

// codecFor maps a codec name from config or flags to an implementation.
func codecFor(name string) codec.Codec {
	if name == "yaml" {
		return codec.YAML{}
	}
	return codec.JSON{}
}

// readInput reads command input from a file or stdin.
func readInput(filePath string) (string, error) {
	if filePath != "" && filePath != "-" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
