package search

import (
	"strings"

	"golang.org/x/text/width"
)

// normalizeText prepares a query for matching: trims surrounding space and
// folds full-width characters to their canonical width, so "ＡＢＣ" and
// "ABC" resolve identically.
func normalizeText(text string) string {
	return strings.TrimSpace(width.Fold.String(text))
}

// cleanName is the candidate-side counterpart of normalizeText.
func cleanName(name string) string {
	return width.Fold.String(name)
}

// containsAllWords reports whether name contains every whitespace-delimited
// word of text as a case-insensitive substring. Literal substring only:
// "精金" does not match "鉍金精準指環" even though both characters appear.
func containsAllWords(text, name string) bool {
	lowered := strings.ToLower(name)
	for _, word := range strings.Fields(text) {
		if !strings.Contains(lowered, strings.ToLower(word)) {
			return false
		}
	}
	return true
}
