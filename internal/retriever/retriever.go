package retriever

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/schemadoc/schemadoc/internal/cache"
	"github.com/schemadoc/schemadoc/internal/chunk"
	"github.com/schemadoc/schemadoc/internal/errors"
	"github.com/schemadoc/schemadoc/internal/rank"
)

// Chunker splits one documentation file into chunks.
type Chunker interface {
	Chunk(ctx context.Context, input *chunk.FileInput) ([]*chunk.DocumentChunk, error)
}

// Engine runs the retrieval pipeline over a document source. It keeps
// parsed corpora in a chunk cache for the process lifetime and derived
// scorers in a bounded LRU.
type Engine struct {
	source  DocumentSource
	chunker Chunker
	cache   *cache.ChunkCache
	scorers *lru.Cache[string, rank.Scorer]
	cfg     Config
}

// NewEngine creates a retrieval engine over source.
func NewEngine(source DocumentSource, cfg Config, opts ...EngineOption) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: document source", ErrNilDependency)
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultConfig().TopK
	}
	if cfg.ScorerCacheSize <= 0 {
		cfg.ScorerCacheSize = DefaultConfig().ScorerCacheSize
	}

	e := &Engine{
		source:  source,
		chunker: chunk.NewChunker(),
		cache:   cache.New(),
		cfg:     cfg,
	}
	for _, opt := range opts {
		opt(e)
	}

	scorers, err := lru.NewWithEvict(cfg.ScorerCacheSize, func(corpusID string, s rank.Scorer) {
		if err := s.Close(); err != nil {
			slog.Warn("closing evicted scorer", "corpus_id", corpusID, "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create scorer cache: %w", err)
	}
	e.scorers = scorers
	return e, nil
}

// Retrieve returns the chunks of the corpus most relevant to query,
// ordered by descending score. Results below the relevance threshold are
// dropped, the rest is capped at top-K, and overview chunks of tables the
// results reference are appended at a sentinel score. A query with no
// scoring terms yields an empty result, not an error.
func (e *Engine) Retrieve(ctx context.Context, corpusID, query string, opts *Options) ([]*Result, error) {
	if len(rank.Tokenize(query)) == 0 {
		slog.Warn("query has no scoring terms", "corpus_id", corpusID, "query", query)
		return []*Result{}, nil
	}

	topK, threshold := e.cfg.TopK, e.cfg.RelevanceThreshold
	if opts != nil {
		if opts.TopK > 0 {
			topK = opts.TopK
		}
		if opts.Threshold != nil {
			threshold = *opts.Threshold
		}
	}

	chunks, err := e.loadChunks(ctx, corpusID)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		slog.Warn("no documentation available", "corpus_id", corpusID)
		return []*Result{}, nil
	}

	scorer, err := e.scorerFor(corpusID, chunks)
	if err != nil {
		return nil, err
	}

	scores, err := scorer.Score(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRankingFailed, err).
			WithDetail("corpus_id", corpusID)
	}

	results := make([]*Result, len(chunks))
	for i, c := range chunks {
		results[i] = &Result{
			Chunk:        c,
			Score:        scores[i].Score,
			MatchedTerms: scores[i].MatchedTerms,
		}
	}
	sortByScore(results)

	retained := results[:0:0]
	for _, r := range results {
		if r.Score >= threshold {
			retained = append(retained, r)
		}
	}
	if len(retained) > topK {
		retained = retained[:topK]
	}

	retained = append(retained, e.expand(chunks, retained)...)
	sortByScore(retained)
	if len(retained) > topK {
		retained = retained[:topK]
	}

	slog.Debug("retrieval complete",
		"corpus_id", corpusID, "chunks", len(chunks), "results", len(retained))
	return retained, nil
}

// Chunks returns the parsed chunks of a corpus, loading and caching them
// if needed.
func (e *Engine) Chunks(ctx context.Context, corpusID string) ([]*chunk.DocumentChunk, error) {
	return e.loadChunks(ctx, corpusID)
}

// ClearCache evicts one corpus and its derived scorer.
func (e *Engine) ClearCache(corpusID string) {
	e.cache.Clear(corpusID)
	e.scorers.Remove(corpusID)
}

// ClearAll evicts every cached corpus and scorer.
func (e *Engine) ClearAll() {
	e.cache.ClearAll()
	e.scorers.Purge()
}

// loadChunks returns the cached chunk corpus, reading and chunking the
// documentation files on first access.
func (e *Engine) loadChunks(ctx context.Context, corpusID string) ([]*chunk.DocumentChunk, error) {
	return e.cache.GetOrLoad(ctx, corpusID, func(ctx context.Context) ([]*chunk.DocumentChunk, error) {
		documents, err := e.source.Read(ctx, corpusID)
		if err != nil {
			return nil, err
		}

		var chunks []*chunk.DocumentChunk
		for _, doc := range documents {
			cs, err := e.chunker.Chunk(ctx, &chunk.FileInput{Path: doc.Path, Content: doc.Content})
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeChunkingFailed, err).
					WithDetail("path", doc.Path)
			}
			chunks = append(chunks, cs...)
		}
		return chunks, nil
	})
}

// scorerFor returns the cached scorer for corpusID, building one from
// chunks on a miss. A concurrent build of the same corpus keeps the first
// scorer and closes the loser.
func (e *Engine) scorerFor(corpusID string, chunks []*chunk.DocumentChunk) (rank.Scorer, error) {
	if scorer, ok := e.scorers.Get(corpusID); ok {
		return scorer, nil
	}

	scorer, err := rank.NewScorer(chunks, e.cfg.Ranking)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRankingFailed, err).
			WithDetail("corpus_id", corpusID)
	}

	if previous, ok, _ := e.scorers.PeekOrAdd(corpusID, scorer); ok {
		_ = scorer.Close()
		return previous, nil
	}
	return scorer, nil
}

// expand returns overview chunks for tables the retained results reference
// but do not already cover. The first overview chunk of each table in
// corpus order is used; chunks already retained are not duplicated.
func (e *Engine) expand(corpus []*chunk.DocumentChunk, retained []*Result) []*Result {
	represented := make(map[string]bool, len(retained))
	seen := make(map[*chunk.DocumentChunk]bool, len(retained))
	for _, r := range retained {
		represented[r.Chunk.Table] = true
		seen[r.Chunk] = true
	}

	var wanted []string
	wantedSet := make(map[string]bool)
	for _, r := range retained {
		for _, table := range r.Chunk.RelatedTables {
			if represented[table] || wantedSet[table] {
				continue
			}
			wantedSet[table] = true
			wanted = append(wanted, table)
		}
	}

	var expanded []*Result
	for _, table := range wanted {
		for _, c := range corpus {
			if c.Table != table || c.Type != chunk.ChunkTypeOverview {
				continue
			}
			if !seen[c] {
				seen[c] = true
				expanded = append(expanded, &Result{Chunk: c, Score: RelatedScore, Related: true})
			}
			break
		}
	}
	return expanded
}

// sortByScore orders results by descending score, preserving corpus order
// among equals.
func sortByScore(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
