package chunk

import (
	"context"
	"path/filepath"
	"strings"
)

// Structural markers recognized by the scanner.
const (
	tableMarker      = "# Table:"
	sectionMarker    = "## "
	subsectionMarker = "### "
	queryMarker      = "Query Pattern:"
)

// Chunker converts one raw document into typed chunks. It is stateless
// and safe for concurrent use.
type Chunker struct{}

// NewChunker creates a new chunker.
func NewChunker() *Chunker {
	return &Chunker{}
}

// section is an intermediate parse product: one "##" header and its body.
// The preamble before the first header is a section with an empty header.
type section struct {
	header string
	lines  []string
}

// Chunk splits a document into chunks. A document without section headers
// yields a single chunk covering the whole body; empty sections yield none.
func (c *Chunker) Chunk(ctx context.Context, file *FileInput) ([]*DocumentChunk, error) {
	content := string(file.Content)
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	lines := splitLines(content)
	table, lines := scanTitle(file.Path, lines)
	sections := scanSections(lines)

	var chunks []*DocumentChunk
	for _, sec := range sections {
		chunks = append(chunks, c.sectionChunks(table, sec)...)
	}
	return chunks, nil
}

// splitLines splits on newlines, dropping trailing carriage returns.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// scanTitle extracts the owning table name from the first "# Table:" line,
// removing that line from the document. Falls back to the file's base name.
func scanTitle(path string, lines []string) (string, []string) {
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, tableMarker); ok {
			table := strings.ToLower(strings.TrimSpace(rest))
			if table != "" {
				remaining := make([]string, 0, len(lines)-1)
				remaining = append(remaining, lines[:i]...)
				remaining = append(remaining, lines[i+1:]...)
				return table, remaining
			}
		}
	}

	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base), lines
}

// scanSections splits lines into top-level sections at "##" headers.
// Content before the first header becomes a section with an empty header.
func scanSections(lines []string) []*section {
	var sections []*section
	current := &section{}

	for _, line := range lines {
		if rest, ok := strings.CutPrefix(line, sectionMarker); ok {
			sections = append(sections, current)
			current = &section{header: strings.TrimSpace(rest)}
			continue
		}
		current.lines = append(current.lines, line)
	}
	sections = append(sections, current)
	return sections
}

// classify maps a section header label to a chunk type by keyword matching.
func classify(header string) ChunkType {
	label := strings.ToLower(header)
	switch {
	case strings.Contains(label, "purpose"), strings.Contains(label, "business context"):
		return ChunkTypeOverview
	case strings.Contains(label, "column"):
		return ChunkTypeColumn
	case strings.Contains(label, "query"), strings.Contains(label, "queries"):
		return ChunkTypeQuery
	case strings.Contains(label, "relationship"):
		return ChunkTypeRelationship
	case strings.Contains(label, "example"), strings.Contains(label, "note"):
		return ChunkTypeExample
	default:
		return ChunkTypeOverview
	}
}

// sectionChunks produces the chunks for one section according to its type.
func (c *Chunker) sectionChunks(table string, sec *section) []*DocumentChunk {
	body := strings.TrimSpace(strings.Join(sec.lines, "\n"))
	if body == "" {
		return nil
	}

	switch classify(sec.header) {
	case ChunkTypeColumn:
		return c.columnChunks(table, sec)
	case ChunkTypeQuery:
		return c.queryChunks(table, sec.header, body)
	case ChunkTypeRelationship:
		return []*DocumentChunk{newChunk(table, ChunkTypeRelationship, "", sec.header, body)}
	case ChunkTypeExample:
		return []*DocumentChunk{newChunk(table, ChunkTypeExample, "", sec.header, body)}
	default:
		return []*DocumentChunk{newChunk(table, ChunkTypeOverview, "", sec.header, body)}
	}
}

// columnChunks re-splits a column section at "###" headers, one chunk per
// named column. Intro text before the first sub-header (or a column section
// with no sub-headers at all) degrades to a single overview chunk, since a
// column chunk must carry a column name.
func (c *Chunker) columnChunks(table string, sec *section) []*DocumentChunk {
	var chunks []*DocumentChunk

	column := ""
	var body []string
	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text == "" {
			return
		}
		if column == "" {
			chunks = append(chunks, newChunk(table, ChunkTypeOverview, "", sec.header, text))
			return
		}
		chunks = append(chunks, newChunk(table, ChunkTypeColumn, column, column, text))
	}

	for _, line := range sec.lines {
		if rest, ok := strings.CutPrefix(line, subsectionMarker); ok {
			flush()
			column = strings.TrimSpace(rest)
			body = nil
			continue
		}
		body = append(body, line)
	}
	flush()
	return chunks
}

// queryChunks re-splits a query section at the literal "Query Pattern:"
// marker, one chunk per pattern. A section without the marker becomes a
// single query chunk.
func (c *Chunker) queryChunks(table, header, body string) []*DocumentChunk {
	segments := strings.Split(body, queryMarker)
	if len(segments) == 1 {
		return []*DocumentChunk{newChunk(table, ChunkTypeQuery, "", header, body)}
	}

	var chunks []*DocumentChunk
	if intro := strings.TrimSpace(segments[0]); intro != "" {
		chunks = append(chunks, newChunk(table, ChunkTypeQuery, "", header, intro))
	}
	for _, seg := range segments[1:] {
		text := strings.TrimSpace(queryMarker + " " + strings.TrimSpace(seg))
		if strings.TrimSpace(seg) == "" {
			continue
		}
		chunks = append(chunks, newChunk(table, ChunkTypeQuery, "", header, text))
	}
	return chunks
}

// newChunk assembles a chunk and derives its metadata from the content.
func newChunk(table string, typ ChunkType, column, header, content string) *DocumentChunk {
	content = strings.TrimSpace(content)
	return &DocumentChunk{
		Content:       content,
		Table:         table,
		Type:          typ,
		Column:        column,
		RelatedTables: relatedTables(content, table),
		Keywords:      extractKeywords(header, content),
		TokenEstimate: estimateTokens(content),
	}
}
