// Package fuzzy implements the order-preserving approximate matcher used by
// the search resolver's scan fallback.
package fuzzy

import "strings"

// Score matches pattern against candidate and returns a binary score.
//
// A case-insensitive substring hit scores 1. Otherwise the pattern's
// characters are walked left to right against a forward-only cursor into
// the candidate: each character must occur at or after the position reached
// by the previous one. Any miss scores 0 immediately - no partial credit
// and no backtracking, so "AB" never matches "BA".
func Score(pattern, candidate string) float64 {
	if pattern == "" {
		return 1
	}
	p := strings.ToLower(pattern)
	c := strings.ToLower(candidate)
	if strings.Contains(c, p) {
		return 1
	}

	runes := []rune(c)
	cursor := 0
	for _, pr := range p {
		found := -1
		for i := cursor; i < len(runes); i++ {
			if runes[i] == pr {
				found = i
				break
			}
		}
		if found < 0 {
			return 0
		}
		cursor = found + 1
	}
	return 1
}

// MatchAllWords reports whether every whitespace-delimited word of text
// scores against candidate (AND semantics).
func MatchAllWords(text, candidate string) bool {
	for _, word := range strings.Fields(text) {
		if Score(word, candidate) == 0 {
			return false
		}
	}
	return true
}
