package cache

import (
	"sort"

	"github.com/stashfs/stashfs/internal/logger"
)

// Eviction keeps the store's aggregate estimated memory under the ceiling of
// MemoryBudgetPerEntry * Capacity.
//
// The ordering is rebuilt from scratch on every trigger rather than kept live
// in a priority structure. That costs a sort per eviction but cannot drift out
// of sync with the map when many entries are restamped between triggers.

// evictLocked removes oldest-accessed entries until aggregate estimated
// memory fits the ceiling, or the store is empty. Caller must hold mu.
func (s *Store) evictLocked() {
	ceiling := s.budgetPerEntry * uint64(s.capacity)

	var total uint64
	ordered := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		total += e.estimatedBytes()
		ordered = append(ordered, e)
	}

	if total <= ceiling {
		return
	}

	// Oldest access first. Stamps are unique, so the order is total.
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].lastAccess < ordered[j].lastAccess
	})

	evicted := 0
	var freed uint64
	for _, e := range ordered {
		if total <= ceiling {
			break
		}
		size := e.estimatedBytes()
		delete(s.entries, e.Path)
		total -= size
		freed += size
		evicted++
	}

	if evicted > 0 {
		if s.metrics != nil {
			s.metrics.RecordEviction(evicted, freed)
		}
		logger.Debug("cache eviction",
			logger.KeyEvicted, evicted,
			logger.KeyCacheSize, len(s.entries),
			logger.KeyCacheCapacity, s.capacity,
		)
	}
}
