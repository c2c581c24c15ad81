// Package rank scores queries against a corpus of documentation chunks.
//
// The default native scorer implements BM25 with exact, reproducible
// numeric semantics. An alternative bleve-backed scorer trades those exact
// semantics for an inverted index on large corpora; both sit behind the
// Scorer interface and are selected through the factory.
package rank

import (
	"context"
	"errors"

	"github.com/schemadoc/schemadoc/internal/chunk"
)

// ErrNoChunks is returned when a scorer is built over an empty corpus.
var ErrNoChunks = errors.New("no chunks to score")

// Params are the BM25 tuning parameters.
type Params struct {
	// K1 is the term frequency saturation parameter.
	K1 float64

	// B is the length normalization parameter.
	B float64
}

// DefaultParams returns the standard BM25 parameters.
func DefaultParams() Params {
	return Params{K1: 1.5, B: 0.75}
}

// Config configures scorer construction.
type Config struct {
	// Backend selects the scorer implementation: "native" (default) or "bleve".
	Backend string

	// Params are the BM25 parameters for the native backend.
	Params Params
}

// DefaultConfig returns the default scorer configuration.
func DefaultConfig() Config {
	return Config{
		Backend: string(BackendNative),
		Params:  DefaultParams(),
	}
}

// ChunkScore is the relevance of one chunk for a query. The slice returned
// by Score is aligned with the corpus order the scorer was built over.
type ChunkScore struct {
	// Score is the raw relevance value. For the native backend this is an
	// unnormalized BM25 score and may be negative for very common terms.
	Score float64

	// MatchedTerms are the query terms that contributed to the score.
	MatchedTerms []string
}

// Stats describes the scored corpus.
type Stats struct {
	ChunkCount     int
	TermCount      int
	AvgChunkLength float64
}

// Scorer computes a deterministic relevance score for a query against every
// chunk of the corpus it was built over. Implementations are safe for
// concurrent Score calls.
type Scorer interface {
	// Score returns one ChunkScore per corpus chunk, in corpus order.
	Score(ctx context.Context, query string) ([]ChunkScore, error)

	// Stats returns corpus statistics.
	Stats() *Stats

	// Close releases scorer resources.
	Close() error
}

// averageChunkLength returns the mean token estimate across chunks.
func averageChunkLength(chunks []*chunk.DocumentChunk) float64 {
	if len(chunks) == 0 {
		return 0
	}
	total := 0
	for _, c := range chunks {
		total += c.TokenEstimate
	}
	return float64(total) / float64(len(chunks))
}
