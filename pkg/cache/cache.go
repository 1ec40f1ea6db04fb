// Package cache implements a bounded, access-ordered cache of decoded file
// content.
//
// The cache sits between the read/write facade and the transfer engine: a hit
// short-circuits storage I/O entirely. It is a buffer keyed by absolute
// storage path - it performs no I/O of its own and is never persisted across
// process restarts.
//
// Key design principles:
//   - Access order approximates LRU via a per-store monotonic counter, so no
//     wall-clock timestamps and no clock skew.
//   - Eviction keeps aggregate estimated memory under a budget derived from
//     capacity and an average per-entry allowance.
//   - Entries leave the cache only through eviction; there is no delete path.
//   - Safe for concurrent use from multiple goroutines.
package cache

import "sync"

// entryOverhead approximates the fixed per-entry bookkeeping cost in bytes.
// The estimate only needs to be monotonic in content length, not exact.
const entryOverhead = 64

// Entry is a cached file snapshot.
type Entry struct {
	// Path is the absolute storage path (unique key).
	Path string

	// Content is the full decoded text content of the file.
	Content string

	// Chunkable records whether the content exceeded the chunking threshold
	// when cached. Informational; does not gate reads.
	Chunkable bool

	// lastAccess is the store counter value at the last read or write.
	lastAccess uint64
}

// estimatedBytes approximates the entry's in-memory footprint.
func (e *Entry) estimatedBytes() uint64 {
	return uint64(len(e.Content))*2 + entryOverhead
}

// Config holds cache store configuration.
type Config struct {
	// Capacity is the maximum number of entries. 0 disables caching.
	Capacity int

	// MemoryBudgetPerEntry is the average per-entry byte allowance. The
	// aggregate memory ceiling is MemoryBudgetPerEntry * Capacity.
	MemoryBudgetPerEntry uint64

	// Enabled controls whether callers use the cache by default. Stored for
	// the facade to consult; the store itself only honors Capacity.
	Enabled bool
}

// Store is a bounded mapping from absolute path to cached content with
// access-order bookkeeping.
type Store struct {
	mu             sync.Mutex
	capacity       int
	budgetPerEntry uint64
	enabled        bool

	// counter is the store-wide access counter. Strictly increasing across
	// the store's lifetime; incremented on every hit or insert while holding
	// mu, so stamps are unique.
	counter uint64

	entries map[string]*Entry

	metrics Metrics
}

// New creates a cache store with the given configuration.
// Metrics may be nil, in which case collection is skipped.
func New(cfg Config, metrics Metrics) *Store {
	s := &Store{metrics: metrics}
	s.Configure(cfg)
	return s
}

// Configure (re)initializes the store. A capacity of 0 clears all entries and
// disables caching. Idempotent: configuring with the same values twice leaves
// the store unchanged apart from clearing on capacity 0.
func (s *Store) Configure(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.capacity = cfg.Capacity
	s.budgetPerEntry = cfg.MemoryBudgetPerEntry
	s.enabled = cfg.Enabled && cfg.Capacity > 0

	if cfg.Capacity == 0 {
		s.entries = nil
		s.enabled = false
		s.recordResidentLocked()
		return
	}

	if s.entries == nil {
		s.entries = make(map[string]*Entry, cfg.Capacity)
	}

	// A shrunk capacity lowers the memory ceiling; enforce it now rather
	// than waiting for the next Put.
	if len(s.entries) >= s.capacity {
		s.evictLocked()
	}
	s.recordResidentLocked()
}

// Enabled reports whether callers should use the cache by default.
func (s *Store) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Len returns the number of resident entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Put inserts or overwrites the entry for path, stamps it with the next
// access-order value, then runs the eviction check. A no-op when caching is
// disabled.
func (s *Store) Put(path, content string, chunkable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity == 0 || s.entries == nil {
		return
	}

	s.counter++
	s.entries[path] = &Entry{
		Path:       path,
		Content:    content,
		Chunkable:  chunkable,
		lastAccess: s.counter,
	}

	if s.metrics != nil {
		s.metrics.RecordPut(len(content))
	}

	if len(s.entries) >= s.capacity {
		s.evictLocked()
	}
	s.recordResidentLocked()
}

// Get returns the cached content for path. A hit counts as an access and
// restamps the entry; a miss has no side effects.
func (s *Store) Get(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[path]
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordMiss()
		}
		return "", false
	}

	s.counter++
	entry.lastAccess = s.counter

	if s.metrics != nil {
		s.metrics.RecordHit()
	}
	return entry.Content, true
}

// recordResidentLocked publishes resident totals to the metrics sink.
// Caller must hold mu.
func (s *Store) recordResidentLocked() {
	if s.metrics == nil {
		return
	}

	var total uint64
	for _, e := range s.entries {
		total += e.estimatedBytes()
	}
	s.metrics.RecordResident(len(s.entries), total)
}

// Stats describes the store's current occupancy.
type Stats struct {
	Entries        int
	EstimatedBytes uint64
	Capacity       int
	MemoryCeiling  uint64
}

// Stats returns a snapshot of the store's occupancy.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total uint64
	for _, e := range s.entries {
		total += e.estimatedBytes()
	}

	return Stats{
		Entries:        len(s.entries),
		EstimatedBytes: total,
		Capacity:       s.capacity,
		MemoryCeiling:  s.budgetPerEntry * uint64(s.capacity),
	}
}
