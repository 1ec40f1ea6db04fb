// Package store is the read/write facade tying together path resolution,
// encoding, caching, and the chunked transfer engine.
//
// Hosts interact with this package only: Save and Load take logical paths and
// typed values, and every failure comes back as a classified result instead
// of a raised error. The facade never panics and never terminates the host;
// unexpected failures surface as KindUndefined.
package store

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/stashfs/stashfs/pkg/cache"
	"github.com/stashfs/stashfs/pkg/codec"
	"github.com/stashfs/stashfs/pkg/pathres"
	"github.com/stashfs/stashfs/pkg/transfer"
)

// Store orchestrates saves and loads. Safe for concurrent use.
//
// Concurrent saves to the same logical path are not serialized; last writer
// wins at the file level. Concurrent cache-missing loads of the same path are
// coalesced into a single read.
type Store struct {
	resolver *pathres.Resolver
	codec    codec.Codec
	cache    *cache.Store
	engine   *transfer.Engine

	loads singleflight.Group
}

// New creates a facade over the given collaborators.
//
// cache may be nil to run uncached. The codec defaults to JSON when nil.
func New(resolver *pathres.Resolver, cdc codec.Codec, cacheStore *cache.Store, engine *transfer.Engine) (*Store, error) {
	if resolver == nil {
		return nil, fmt.Errorf("store: resolver is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("store: engine is required")
	}
	if cdc == nil {
		cdc = codec.JSON{}
	}

	return &Store{
		resolver: resolver,
		codec:    cdc,
		cache:    cacheStore,
		engine:   engine,
	}, nil
}

// Codec returns the store's codec.
func (s *Store) Codec() codec.Codec {
	return s.codec
}

// Engine returns the underlying transfer engine.
func (s *Store) Engine() *transfer.Engine {
	return s.engine
}

// Resolver returns the underlying path resolver.
func (s *Store) Resolver() *pathres.Resolver {
	return s.resolver
}

// CacheStats returns cache occupancy, or zero stats when running uncached.
func (s *Store) CacheStats() cache.Stats {
	if s.cache == nil {
		return cache.Stats{}
	}
	return s.cache.Stats()
}

// cachePut records content after a confirmed successful transfer.
//
// Empty content is never cached: an empty load must keep falling through to
// the storage existence check, so a file deleted behind the cache reports
// not_found instead of a stale empty_content.
func (s *Store) cachePut(absPath, content string, chunked bool) {
	if s.cache == nil || !s.cache.Enabled() {
		return
	}
	if content == "" {
		return
	}
	s.cache.Put(absPath, content, chunked)
}

// cacheGet returns cached content for an absolute path.
func (s *Store) cacheGet(absPath string) (string, bool) {
	if s.cache == nil || !s.cache.Enabled() {
		return "", false
	}
	return s.cache.Get(absPath)
}
