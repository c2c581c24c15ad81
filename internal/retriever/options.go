package retriever

import "github.com/schemadoc/schemadoc/internal/cache"

// EngineOption customizes engine construction.
type EngineOption func(*Engine)

// WithCache supplies a shared chunk cache. Useful when several engines
// serve the same documentation root.
func WithCache(c *cache.ChunkCache) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithChunker supplies a custom chunker.
func WithChunker(c Chunker) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.chunker = c
		}
	}
}
