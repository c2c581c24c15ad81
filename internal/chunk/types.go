// Package chunk parses schema documentation into typed, retrievable chunks.
//
// Documents follow a markdown convention: an optional "# Table: name"
// declaration, "##" section headers, and "###" sub-headers inside column
// sections. The chunker is a line-oriented scanner; anything that does not
// match a marker is treated as plain body text.
package chunk

// TokensPerChar is the rough approximation used for token estimates: 4 chars = 1 token.
const TokensPerChar = 4

// MaxKeywords caps the number of keywords extracted per chunk.
const MaxKeywords = 10

// ChunkType categorizes how a chunk was produced and how it is used
// during relationship expansion.
type ChunkType string

const (
	ChunkTypeOverview     ChunkType = "overview"
	ChunkTypeColumn       ChunkType = "column"
	ChunkTypeQuery        ChunkType = "query"
	ChunkTypeRelationship ChunkType = "relationship"
	ChunkTypeExample      ChunkType = "example"
)

// DocumentChunk is the atomic retrievable unit of documentation.
//
// Every chunk belongs to exactly one table. Column is set only when
// Type is ChunkTypeColumn. Content is immutable after construction;
// callers borrow chunks and must not modify them.
type DocumentChunk struct {
	// Content is the trimmed text body of the chunk.
	Content string `json:"content"`

	// Table is the logical entity this chunk describes, lowercased.
	// Derived from the document's "# Table:" declaration or, if absent,
	// from the source file's base name.
	Table string `json:"table"`

	// Type is the semantic category of the chunk.
	Type ChunkType `json:"type"`

	// Column is the field name for column chunks, empty otherwise.
	Column string `json:"column,omitempty"`

	// RelatedTables lists other tables referenced by the content
	// (FROM/JOIN targets, dotted table.column pairs, "references" mentions).
	// Lowercased, deduplicated, sorted, and never includes Table itself.
	RelatedTables []string `json:"related_tables,omitempty"`

	// Keywords holds up to 10 salient terms from the section header,
	// emphasized text, and SQL reserved words in the body. Auxiliary
	// metadata only; not used for scoring.
	Keywords []string `json:"keywords,omitempty"`

	// TokenEstimate is ceil(len(Content)/4), used for BM25 length
	// normalization.
	TokenEstimate int `json:"token_estimate"`
}

// FileInput is a single raw document handed to the Chunker.
type FileInput struct {
	// Path is the source file path; its base name is the fallback table name.
	Path string

	// Content is the raw document text.
	Content []byte
}

// estimateTokens approximates token count from character length, rounding up.
func estimateTokens(content string) int {
	return (len(content) + TokensPerChar - 1) / TokensPerChar
}
