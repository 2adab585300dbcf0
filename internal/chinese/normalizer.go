// Package chinese converts item-name text between Traditional and
// Simplified Chinese and answers script-membership questions for the
// search resolver.
package chinese

import (
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/siongui/gojianfan"
)

// memoSize bounds the per-direction conversion memo. Conversion is pure, so
// a bounded LRU is safe; the catalog cache elsewhere deliberately is not LRU.
const memoSize = 4096

// Normalizer performs deterministic Traditional/Simplified conversion.
// Both directions never fail outward: on an internal conversion panic the
// input text is returned unchanged.
type Normalizer struct {
	toSimp *lru.Cache[string, string]
	toTrad *lru.Cache[string, string]
}

// NewNormalizer creates a normalizer with bounded conversion memos.
func NewNormalizer() *Normalizer {
	toSimp, _ := lru.New[string, string](memoSize)
	toTrad, _ := lru.New[string, string](memoSize)
	return &Normalizer{toSimp: toSimp, toTrad: toTrad}
}

// ToSimplified converts text to Simplified Chinese.
func (n *Normalizer) ToSimplified(text string) string {
	return n.convert(n.toSimp, gojianfan.T2S, text)
}

// ToTraditional converts text to Traditional Chinese.
func (n *Normalizer) ToTraditional(text string) string {
	return n.convert(n.toTrad, gojianfan.S2T, text)
}

// IsTraditional reports whether text contains at least one character that
// changes when converted to Simplified. Characters shared by both scripts
// do not count.
func (n *Normalizer) IsTraditional(text string) bool {
	return n.ToSimplified(text) != text
}

func (n *Normalizer) convert(memo *lru.Cache[string, string], fn func(string) string, text string) string {
	if out, ok := memo.Get(text); ok {
		return out
	}
	out := safeConvert(fn, text)
	memo.Add(text, out)
	return out
}

// safeConvert shields callers from conversion-table panics: the original
// text is the fallback, never an error.
func safeConvert(fn func(string) string, text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = text
		}
	}()
	return fn(text)
}

// ContainsHan reports whether text contains any CJK Unified Ideograph.
func ContainsHan(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
