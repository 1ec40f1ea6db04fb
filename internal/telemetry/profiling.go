package telemetry

import (
	"fmt"

	"github.com/grafana/pyroscope-go"
)

// ProfilingConfig holds Pyroscope continuous profiling settings.
type ProfilingConfig struct {
	// Enabled turns continuous profiling on.
	Enabled bool

	// ServiceName is the application name shown in Pyroscope.
	ServiceName string

	// ServiceVersion is attached as a tag on every profile.
	ServiceVersion string

	// Endpoint is the Pyroscope server URL, e.g. "http://localhost:4040".
	Endpoint string

	// ProfileTypes selects what to collect. See profileTypes for the
	// accepted names; an unknown name fails InitProfiling.
	ProfileTypes []string
}

// profileTypes maps config names to Pyroscope profile types. CPU, allocation,
// and goroutine profiles cover what save/load workloads show; mutex and block
// profiling need runtime rate tuning and are deliberately not offered.
var profileTypes = map[string]pyroscope.ProfileType{
	"cpu":           pyroscope.ProfileCPU,
	"alloc_objects": pyroscope.ProfileAllocObjects,
	"alloc_space":   pyroscope.ProfileAllocSpace,
	"inuse_objects": pyroscope.ProfileInuseObjects,
	"inuse_space":   pyroscope.ProfileInuseSpace,
	"goroutines":    pyroscope.ProfileGoroutines,
}

var (
	profiler         *pyroscope.Profiler
	profilingEnabled bool
)

// InitProfiling starts Pyroscope continuous profiling. The returned shutdown
// function flushes and stops the profiler.
func InitProfiling(cfg ProfilingConfig) (shutdown func() error, err error) {
	if !cfg.Enabled {
		profilingEnabled = false
		return func() error { return nil }, nil
	}

	types := make([]pyroscope.ProfileType, 0, len(cfg.ProfileTypes))
	for _, name := range cfg.ProfileTypes {
		pt, ok := profileTypes[name]
		if !ok {
			return nil, fmt.Errorf("unknown profile type: %q", name)
		}
		types = append(types, pt)
	}

	profiler, err = pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.Endpoint,
		Tags: map[string]string{
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: types,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	profilingEnabled = true
	return func() error {
		if profiler != nil {
			return profiler.Stop()
		}
		return nil
	}, nil
}

// IsProfilingEnabled reports whether a profiler is running.
func IsProfilingEnabled() bool {
	return profilingEnabled
}
