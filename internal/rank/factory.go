package rank

import (
	"fmt"
	"log/slog"

	"github.com/schemadoc/schemadoc/internal/chunk"
)

// Backend identifies a scorer implementation.
type Backend string

const (
	// BackendNative is the built-in BM25 scorer with exact raw scores.
	BackendNative Backend = "native"

	// BackendBleve scores through an in-memory bleve inverted index.
	BackendBleve Backend = "bleve"
)

// NewScorer constructs the scorer selected by cfg.Backend over the corpus.
// An empty backend falls back to native.
func NewScorer(chunks []*chunk.DocumentChunk, cfg Config) (Scorer, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	params := cfg.Params
	if params.K1 == 0 {
		params = DefaultParams()
	}

	backend := Backend(cfg.Backend)
	if backend == "" {
		backend = BackendNative
	}

	switch backend {
	case BackendNative:
		slog.Debug("creating native BM25 scorer",
			"chunks", len(chunks), "k1", params.K1, "b", params.B)
		return NewBM25Scorer(chunks, params), nil

	case BackendBleve:
		slog.Debug("creating bleve scorer", "chunks", len(chunks))
		return NewBleveScorer(chunks)

	default:
		return nil, fmt.Errorf("unknown ranking backend: %q", cfg.Backend)
	}
}
