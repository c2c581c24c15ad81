package rank

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"

	"github.com/schemadoc/schemadoc/internal/chunk"
)

// BleveScorer scores queries through an in-memory bleve index. Scoring
// semantics are bleve's own (normalized, never negative), so it does not
// reproduce the native scorer's raw BM25 values; it exists as an inverted
// index alternative for large corpora.
type BleveScorer struct {
	index  bleve.Index
	count  int
	avgLen float64
}

// bleveDocument is the document shape indexed per chunk.
type bleveDocument struct {
	Content string `json:"content"`
}

// NewBleveScorer builds an in-memory bleve index over the corpus. Document
// IDs are corpus positions so hits map back to chunks.
func NewBleveScorer(chunks []*chunk.DocumentChunk) (*BleveScorer, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create in-memory index: %w", err)
	}

	batch := idx.NewBatch()
	for i, c := range chunks {
		if err := batch.Index(strconv.Itoa(i), bleveDocument{Content: c.Content}); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index chunk %d: %w", i, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("execute index batch: %w", err)
	}

	return &BleveScorer{
		index:  idx,
		count:  len(chunks),
		avgLen: averageChunkLength(chunks),
	}, nil
}

// Score runs a match query and maps hits back onto corpus positions.
// Chunks without a hit score zero.
func (s *BleveScorer) Score(ctx context.Context, query string) ([]ChunkScore, error) {
	scores := make([]ChunkScore, s.count)
	if strings.TrimSpace(query) == "" || s.count == 0 {
		return scores, nil
	}

	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetField("content")

	req := bleve.NewSearchRequest(matchQuery)
	req.Size = s.count
	req.IncludeLocations = true

	result, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	for _, hit := range result.Hits {
		pos, err := strconv.Atoi(hit.ID)
		if err != nil || pos < 0 || pos >= s.count {
			continue
		}
		scores[pos] = ChunkScore{
			Score:        hit.Score,
			MatchedTerms: matchedTerms(hit),
		}
	}
	return scores, nil
}

// Stats returns corpus statistics. Bleve does not expose a term count.
func (s *BleveScorer) Stats() *Stats {
	return &Stats{
		ChunkCount:     s.count,
		AvgChunkLength: s.avgLen,
	}
}

// Close closes the underlying index.
func (s *BleveScorer) Close() error {
	return s.index.Close()
}

// matchedTerms extracts the matched content terms from a search hit,
// sorted so repeated queries report terms in a stable order.
func matchedTerms(hit *search.DocumentMatch) []string {
	seen := make(map[string]struct{})
	for field, locations := range hit.Locations {
		if field != "content" {
			continue
		}
		for term := range locations {
			seen[term] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

var _ Scorer = (*BleveScorer)(nil)
