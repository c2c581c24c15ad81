package rank

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadoc/schemadoc/internal/chunk"
)

func testChunk(table, content string) *chunk.DocumentChunk {
	return &chunk.DocumentChunk{
		Content:       content,
		Table:         table,
		Type:          chunk.ChunkTypeOverview,
		TokenEstimate: (len(content) + 3) / 4,
	}
}

func testCorpus() []*chunk.DocumentChunk {
	return []*chunk.DocumentChunk{
		testChunk("users", "The users table stores accounts. The email column is unique per user."),
		testChunk("users", "Common queries filter users by email and created_at ranges."),
		testChunk("orders", "The orders table records purchases with a total amount per order."),
		testChunk("orders", "Orders reference users through user_id for ownership."),
	}
}

func TestBM25Scorer_RanksMatchingChunksHigher(t *testing.T) {
	scorer := NewBM25Scorer(testCorpus(), DefaultParams())

	scores, err := scorer.Score(context.Background(), "email")
	require.NoError(t, err)
	require.Len(t, scores, 4)

	// Only the two email-bearing chunks score.
	assert.Greater(t, scores[0].Score, 0.0)
	assert.Greater(t, scores[1].Score, 0.0)
	assert.Zero(t, scores[2].Score)
	assert.Zero(t, scores[3].Score)

	assert.Equal(t, []string{"email"}, scores[0].MatchedTerms)
	assert.Empty(t, scores[2].MatchedTerms)
}

func TestBM25Scorer_AbsentTermScoresZero(t *testing.T) {
	scorer := NewBM25Scorer(testCorpus(), DefaultParams())

	scores, err := scorer.Score(context.Background(), "nonexistent")
	require.NoError(t, err)
	for _, s := range scores {
		assert.Zero(t, s.Score)
		assert.Empty(t, s.MatchedTerms)
	}
}

func TestBM25Scorer_EmptyQuery(t *testing.T) {
	scorer := NewBM25Scorer(testCorpus(), DefaultParams())

	scores, err := scorer.Score(context.Background(), "  ...  ")
	require.NoError(t, err)
	require.Len(t, scores, 4)
	for _, s := range scores {
		assert.Zero(t, s.Score)
	}
}

func TestBM25Scorer_Deterministic(t *testing.T) {
	scorer := NewBM25Scorer(testCorpus(), DefaultParams())

	first, err := scorer.Score(context.Background(), "orders email user")
	require.NoError(t, err)
	second, err := scorer.Score(context.Background(), "orders email user")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBM25Scorer_CommonTermNegativeIDF(t *testing.T) {
	// "table" appears in every chunk: idf = ln(0.5/(N+0.5)) < 0.
	corpus := []*chunk.DocumentChunk{
		testChunk("users", "users table description"),
		testChunk("orders", "orders table description"),
	}
	scorer := NewBM25Scorer(corpus, DefaultParams())

	scores, err := scorer.Score(context.Background(), "table")
	require.NoError(t, err)
	assert.Negative(t, scores[0].Score)
	assert.Negative(t, scores[1].Score)
}

func TestBM25Scorer_ExactFormula(t *testing.T) {
	// Single-term corpus where the numbers are easy to recompute by hand.
	corpus := []*chunk.DocumentChunk{
		testChunk("users", "email email sent"),
		testChunk("orders", "total amount due"),
	}
	scorer := NewBM25Scorer(corpus, DefaultParams())

	scores, err := scorer.Score(context.Background(), "email")
	require.NoError(t, err)

	n, df, tf := 2.0, 1.0, 2.0
	k1, b := 1.5, 0.75
	length := float64(corpus[0].TokenEstimate)
	avg := (float64(corpus[0].TokenEstimate) + float64(corpus[1].TokenEstimate)) / 2

	idf := math.Log((n - df + 0.5) / (df + 0.5))
	norm := tf * (k1 + 1) / (tf + k1*(1-b+b*(length/avg)))
	assert.InDelta(t, idf*norm, scores[0].Score, 1e-12)
	assert.Zero(t, scores[1].Score)
}

func TestBM25Scorer_Stats(t *testing.T) {
	corpus := testCorpus()
	scorer := NewBM25Scorer(corpus, DefaultParams())

	stats := scorer.Stats()
	assert.Equal(t, len(corpus), stats.ChunkCount)
	assert.Greater(t, stats.TermCount, 0)
	assert.Greater(t, stats.AvgChunkLength, 0.0)
}

func TestBM25Scorer_EmptyChunks(t *testing.T) {
	corpus := []*chunk.DocumentChunk{testChunk("users", "")}
	scorer := NewBM25Scorer(corpus, DefaultParams())

	scores, err := scorer.Score(context.Background(), "anything")
	require.NoError(t, err)
	assert.Zero(t, scores[0].Score)
}
