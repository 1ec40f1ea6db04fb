package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(capacity int, budget uint64) *Store {
	return New(Config{
		Capacity:             capacity,
		MemoryBudgetPerEntry: budget,
		Enabled:              true,
	}, nil)
}

func TestPutGet(t *testing.T) {
	s := newTestStore(8, 1<<20)

	s.Put("/data/slot1.json", `{"a":1}`, false)

	content, ok := s.Get("/data/slot1.json")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, content)
}

func TestGet_Miss(t *testing.T) {
	s := newTestStore(8, 1<<20)

	_, ok := s.Get("/missing")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestPut_Overwrite(t *testing.T) {
	s := newTestStore(8, 1<<20)

	s.Put("/data/slot1.json", "old", false)
	s.Put("/data/slot1.json", "new", false)

	content, ok := s.Get("/data/slot1.json")
	require.True(t, ok)
	assert.Equal(t, "new", content)
	assert.Equal(t, 1, s.Len())
}

func TestAccessOrder_StrictlyIncreasing(t *testing.T) {
	s := newTestStore(8, 1<<20)

	s.Put("/a", "aa", false)
	first := s.entries["/a"].lastAccess

	// A hit restamps the entry with a strictly greater value.
	_, ok := s.Get("/a")
	require.True(t, ok)
	second := s.entries["/a"].lastAccess
	assert.Greater(t, second, first)

	s.Put("/b", "bb", false)
	assert.Greater(t, s.entries["/b"].lastAccess, second)
}

func TestConfigure_ZeroCapacityClearsAndDisables(t *testing.T) {
	s := newTestStore(8, 1<<20)
	s.Put("/a", "aa", false)
	require.Equal(t, 1, s.Len())

	s.Configure(Config{Capacity: 0, MemoryBudgetPerEntry: 1 << 20, Enabled: true})

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Enabled())

	// Puts are no-ops while disabled.
	s.Put("/a", "aa", false)
	assert.Equal(t, 0, s.Len())
}

func TestConfigure_Idempotent(t *testing.T) {
	s := newTestStore(8, 1<<20)
	s.Put("/a", "aa", false)

	s.Configure(Config{Capacity: 8, MemoryBudgetPerEntry: 1 << 20, Enabled: true})

	content, ok := s.Get("/a")
	require.True(t, ok)
	assert.Equal(t, "aa", content)
}

func TestConfigure_ShrinkEnforcesCeiling(t *testing.T) {
	s := newTestStore(16, 256)

	content := strings.Repeat("x", 200)
	for i := 0; i < 8; i++ {
		s.Put(fmt.Sprintf("/slot-%d", i), content, false)
	}
	require.Equal(t, 8, s.Len())

	// Refresh one entry so eviction order is observable after the shrink.
	_, ok := s.Get("/slot-7")
	require.True(t, ok)

	// The smaller capacity lowers the ceiling to 4*256 bytes; eviction runs
	// immediately instead of waiting for the next Put.
	s.Configure(Config{Capacity: 4, MemoryBudgetPerEntry: 256, Enabled: true})

	assert.Equal(t, 2, s.Len())
	_, ok = s.Get("/slot-7")
	assert.True(t, ok, "most recently accessed entry survives the shrink")
	_, ok = s.Get("/slot-0")
	assert.False(t, ok)
}

func TestEnabled_RequiresCapacity(t *testing.T) {
	s := New(Config{Capacity: 0, MemoryBudgetPerEntry: 1 << 20, Enabled: true}, nil)
	assert.False(t, s.Enabled())
}

func TestChunkableFlag(t *testing.T) {
	s := newTestStore(8, 1<<20)

	s.Put("/big", "content", true)
	assert.True(t, s.entries["/big"].Chunkable)

	// The flag is informational and never gates a read.
	_, ok := s.Get("/big")
	assert.True(t, ok)
}

func TestStats(t *testing.T) {
	s := newTestStore(4, 1024)

	s.Put("/a", "0123456789", false)
	stats := s.Stats()

	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, uint64(10*2+entryOverhead), stats.EstimatedBytes)
	assert.Equal(t, 4, stats.Capacity)
	assert.Equal(t, uint64(4*1024), stats.MemoryCeiling)
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore(64, 1<<20)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				path := fmt.Sprintf("/worker-%d/file-%d", g, i%10)
				s.Put(path, "content", false)
				s.Get(path)
			}
		}(g)
	}
	wg.Wait()

	// The counter saw every access exactly once.
	assert.Equal(t, uint64(8*100*2), s.counter)
}
