package rank

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLength is the minimum token length kept by the tokenizer.
// Shorter tokens are discarded as noise.
const minTokenLength = 3

// Tokenize lowercases text, replaces every non-alphanumeric character with
// a space, splits on whitespace, and discards tokens shorter than 3 chars.
// Queries and chunk content are tokenized identically so term frequencies
// line up.
func Tokenize(text string) []string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(mapped)
	tokens := fields[:0]
	for _, f := range fields {
		// Rune count, not bytes: a two-rune accented token is still short.
		if utf8.RuneCountInString(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// termFrequencies counts occurrences of each token in text.
func termFrequencies(text string) map[string]int {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	freqs := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freqs[t]++
	}
	return freqs
}

// distinctTokens returns the unique tokens of text in first-seen order.
func distinctTokens(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	distinct := tokens[:0]
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		distinct = append(distinct, t)
	}
	return distinct
}
