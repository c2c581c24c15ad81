// Package cache holds parsed chunk corpora in memory for the lifetime of
// the process. Entries never expire on their own; callers evict explicitly
// when the underlying documentation changes.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/schemadoc/schemadoc/internal/chunk"
)

// Loader produces the chunk corpus for a corpus identifier on cache miss.
type Loader func(ctx context.Context) ([]*chunk.DocumentChunk, error)

// ChunkCache maps corpus identifiers to parsed chunk slices. Stored slices
// are treated as immutable; callers must not modify them after insertion.
type ChunkCache struct {
	mu      sync.RWMutex
	entries map[string][]*chunk.DocumentChunk
	group   singleflight.Group
}

// New returns an empty cache.
func New() *ChunkCache {
	return &ChunkCache{
		entries: make(map[string][]*chunk.DocumentChunk),
	}
}

// Get returns the cached corpus for corpusID, if present.
func (c *ChunkCache) Get(corpusID string) ([]*chunk.DocumentChunk, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	chunks, ok := c.entries[corpusID]
	return chunks, ok
}

// Set stores a corpus, replacing any existing entry.
func (c *ChunkCache) Set(corpusID string, chunks []*chunk.DocumentChunk) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[corpusID] = chunks
}

// GetOrLoad returns the cached corpus for corpusID, invoking loader on a
// miss. Concurrent calls for the same corpusID share a single loader
// invocation; losers of the race receive the winner's result. Loader
// failures are not cached, so a later call retries.
func (c *ChunkCache) GetOrLoad(ctx context.Context, corpusID string, loader Loader) ([]*chunk.DocumentChunk, error) {
	if chunks, ok := c.Get(corpusID); ok {
		return chunks, nil
	}

	result, err, shared := c.group.Do(corpusID, func() (any, error) {
		// Re-check under the flight: another caller may have populated
		// the entry between the miss and the Do.
		if chunks, ok := c.Get(corpusID); ok {
			return chunks, nil
		}

		chunks, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(corpusID, chunks)
		slog.Debug("corpus cached", "corpus_id", corpusID, "chunks", len(chunks))
		return chunks, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("corpus load shared across callers", "corpus_id", corpusID)
	}
	return result.([]*chunk.DocumentChunk), nil
}

// Clear evicts a single corpus. It returns true if an entry was removed.
func (c *ChunkCache) Clear(corpusID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[corpusID]
	delete(c.entries, corpusID)
	return ok
}

// ClearAll evicts every corpus.
func (c *ChunkCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]*chunk.DocumentChunk)
}

// Len reports the number of cached corpora.
func (c *ChunkCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
