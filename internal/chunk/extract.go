package chunk

import (
	"regexp"
	"sort"
	"strings"
)

// Lexical patterns for metadata extraction.
var (
	// Tables referenced as FROM/JOIN targets in SQL fragments.
	fromJoinPattern = regexp.MustCompile(`(?i)\b(?:from|join)\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

	// Tables referenced as the left side of a dotted table.column pair.
	dottedPattern = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\.[a-zA-Z_][a-zA-Z0-9_]*`)

	// Tables referenced in prose ("table: users", "references orders").
	mentionPattern = regexp.MustCompile(`(?i)\b(?:table:|references)\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

	// Bold-marked terms in markdown.
	boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

	// Word tokens for keyword extraction.
	wordPattern = regexp.MustCompile(`[a-zA-Z0-9_]+`)
)

// sqlReservedWords are counted as keywords when present in chunk content.
var sqlReservedWords = []string{
	"select", "from", "where", "join", "order", "group", "count", "sum", "avg",
}

// relatedTables scans content for lexical table references. Matches are
// lowercased, deduplicated, and sorted; the chunk's own table is excluded.
func relatedTables(content, ownTable string) []string {
	seen := make(map[string]struct{})

	collect := func(matches [][]string) {
		for _, m := range matches {
			name := strings.ToLower(m[1])
			if name == ownTable {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	collect(fromJoinPattern.FindAllStringSubmatch(content, -1))
	collect(dottedPattern.FindAllStringSubmatch(content, -1))
	collect(mentionPattern.FindAllStringSubmatch(content, -1))

	if len(seen) == 0 {
		return nil
	}
	tables := make([]string, 0, len(seen))
	for name := range seen {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables
}

// extractKeywords collects salient terms: header words longer than 3 chars,
// bold-marked terms, and SQL reserved words appearing in the body. Order of
// discovery is preserved; the result is capped at MaxKeywords.
func extractKeywords(header, content string) []string {
	var keywords []string
	seen := make(map[string]struct{})

	add := func(term string) {
		if len(keywords) >= MaxKeywords {
			return
		}
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		keywords = append(keywords, term)
	}

	for _, word := range wordPattern.FindAllString(header, -1) {
		if len(word) > 3 {
			add(word)
		}
	}

	for _, m := range boldPattern.FindAllStringSubmatch(content, -1) {
		add(m[1])
	}

	lowerContent := strings.ToLower(content)
	for _, word := range sqlReservedWords {
		if containsWord(lowerContent, word) {
			add(word)
		}
	}

	return keywords
}

// containsWord reports whether text contains word with non-word boundaries.
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
