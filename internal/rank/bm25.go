package rank

import (
	"context"
	"math"

	"github.com/schemadoc/schemadoc/internal/chunk"
)

// BM25Scorer is the native BM25 implementation. All statistics are computed
// once at construction; Score is read-only and safe for concurrent use.
//
// Chunk length for normalization is the chunk's token estimate, not its
// tokenized term count, so scores stay stable across tokenizer changes.
type BM25Scorer struct {
	params    Params
	termFreqs []map[string]int
	lengths   []float64
	docFreq   map[string]int
	avgLen    float64
}

// NewBM25Scorer builds a scorer over the given corpus.
func NewBM25Scorer(chunks []*chunk.DocumentChunk, params Params) *BM25Scorer {
	s := &BM25Scorer{
		params:    params,
		termFreqs: make([]map[string]int, len(chunks)),
		lengths:   make([]float64, len(chunks)),
		docFreq:   make(map[string]int),
		avgLen:    averageChunkLength(chunks),
	}
	if s.avgLen == 0 {
		// Degenerate corpus of empty chunks; avoid division by zero.
		s.avgLen = 1
	}

	for i, c := range chunks {
		freqs := termFrequencies(c.Content)
		s.termFreqs[i] = freqs
		s.lengths[i] = float64(c.TokenEstimate)
		for term := range freqs {
			s.docFreq[term]++
		}
	}
	return s
}

// Score computes the BM25 score of query against every chunk.
//
// Per distinct query term t present in a chunk with frequency tf:
//
//	idf = ln((N - df + 0.5) / (df + 0.5))
//	norm = tf*(k1+1) / (tf + k1*(1 - b + b*len/avgLen))
//
// The chunk score is the sum of idf*norm over terms. Scores are raw BM25
// values: they may be negative for very common terms and are not bounded.
func (s *BM25Scorer) Score(ctx context.Context, query string) ([]ChunkScore, error) {
	scores := make([]ChunkScore, len(s.termFreqs))
	terms := distinctTokens(query)
	if len(terms) == 0 {
		return scores, nil
	}

	n := float64(len(s.termFreqs))
	k1, b := s.params.K1, s.params.B

	for i, freqs := range s.termFreqs {
		var total float64
		var matched []string

		for _, term := range terms {
			tf := float64(freqs[term])
			df := float64(s.docFreq[term])
			if tf == 0 || df == 0 {
				continue
			}

			idf := math.Log((n - df + 0.5) / (df + 0.5))
			norm := tf * (k1 + 1) / (tf + k1*(1-b+b*(s.lengths[i]/s.avgLen)))
			total += idf * norm
			matched = append(matched, term)
		}

		scores[i] = ChunkScore{Score: total, MatchedTerms: matched}
	}
	return scores, nil
}

// Stats returns corpus statistics.
func (s *BM25Scorer) Stats() *Stats {
	return &Stats{
		ChunkCount:     len(s.termFreqs),
		TermCount:      len(s.docFreq),
		AvgChunkLength: s.avgLen,
	}
}

// Close is a no-op; the native scorer holds no external resources.
func (s *BM25Scorer) Close() error {
	return nil
}

var _ Scorer = (*BM25Scorer)(nil)
