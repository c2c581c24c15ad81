// Package retriever orchestrates the retrieval pipeline: load a corpus,
// chunk it, score the chunks against a query, filter and truncate, then
// expand the result set with the overviews of related tables.
package retriever

import (
	"context"
	"errors"

	"github.com/schemadoc/schemadoc/internal/chunk"
	"github.com/schemadoc/schemadoc/internal/docs"
	"github.com/schemadoc/schemadoc/internal/rank"
)

// RelatedScore is the sentinel score assigned to chunks pulled in through
// relationship expansion. It is low enough to sort below genuine lexical
// matches at the default threshold.
const RelatedScore = 0.1

// ErrNilDependency is returned by NewEngine when a required dependency
// is missing.
var ErrNilDependency = errors.New("retriever: nil dependency")

// Result is one retrieved chunk with its relevance.
type Result struct {
	// Chunk is the retrieved documentation chunk.
	Chunk *chunk.DocumentChunk `json:"chunk"`

	// Score is the relevance score. For expanded results this is the
	// RelatedScore sentinel, not a lexical score.
	Score float64 `json:"score"`

	// MatchedTerms are the query terms found in the chunk.
	MatchedTerms []string `json:"matched_terms,omitempty"`

	// Related marks results added by relationship expansion rather than
	// lexical ranking.
	Related bool `json:"related,omitempty"`
}

// Options override per-request retrieval parameters. Zero values fall back
// to the engine configuration.
type Options struct {
	// TopK caps the number of results. Zero means the configured default.
	TopK int

	// Threshold overrides the relevance threshold. Nil means the
	// configured default; a pointer to zero disables filtering.
	Threshold *float64
}

// Config holds engine defaults.
type Config struct {
	// TopK is the default result cap.
	TopK int `yaml:"top_k"`

	// RelevanceThreshold is the default minimum score kept after ranking.
	RelevanceThreshold float64 `yaml:"relevance_threshold"`

	// Ranking configures scorer construction.
	Ranking rank.Config `yaml:"-"`

	// ScorerCacheSize bounds the number of per-corpus scorers kept alive.
	ScorerCacheSize int `yaml:"scorer_cache_size"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		TopK:               5,
		RelevanceThreshold: 0.5,
		Ranking:            rank.DefaultConfig(),
		ScorerCacheSize:    64,
	}
}

// DocumentSource loads the raw documentation files of a corpus.
type DocumentSource interface {
	Read(ctx context.Context, corpusID string) ([]*docs.Document, error)
}
