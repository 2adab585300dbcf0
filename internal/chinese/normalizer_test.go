package chinese

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSimplified(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, "精金锭", n.ToSimplified("精金錠"))
	assert.Equal(t, "abc 123", n.ToSimplified("abc 123"), "non-Han text passes through")
}

func TestToTraditional(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, "精金錠", n.ToTraditional("精金锭"))
}

func TestConversionDeterministic(t *testing.T) {
	n := NewNormalizer()
	first := n.ToSimplified("鉍金精準指環")
	second := n.ToSimplified("鉍金精準指環")
	assert.Equal(t, first, second, "memoized result must match the first conversion")
}

func TestIsTraditional(t *testing.T) {
	n := NewNormalizer()
	assert.True(t, n.IsTraditional("精金錠"))
	assert.False(t, n.IsTraditional("精金锭"))
	assert.False(t, n.IsTraditional("hello"))
	// Characters shared by both scripts do not mark text as traditional
	assert.False(t, n.IsTraditional("人"))
}

func TestContainsHan(t *testing.T) {
	assert.True(t, ContainsHan("精金"))
	assert.True(t, ContainsHan("adamantite 錠"))
	assert.False(t, ContainsHan("adamantite ingot"))
	assert.False(t, ContainsHan(""))
}
