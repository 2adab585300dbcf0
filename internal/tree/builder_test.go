package tree

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenpixels/xivcraft/internal/domain"
)

type mockCatalog struct {
	mu      sync.Mutex
	recipes map[int]*domain.Recipe
	calls   int
	err     error
}

func (m *mockCatalog) RecipeForItem(ctx context.Context, itemID int) (*domain.Recipe, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.recipes[itemID], nil
}

func recipe(id, resultID, yield int, ingredients ...domain.RecipeIngredient) *domain.Recipe {
	return &domain.Recipe{
		ID:           id,
		ResultItemID: resultID,
		Job:          "BSM",
		Level:        50,
		Yield:        yield,
		Ingredients:  ingredients,
	}
}

func mat(itemID, qty int) domain.RecipeIngredient {
	return domain.RecipeIngredient{ItemID: itemID, Quantity: qty}
}

func TestBuildBaseMaterial(t *testing.T) {
	b := NewBuilder(&mockCatalog{recipes: map[int]*domain.Recipe{}})

	node, err := b.Build(context.Background(), 500, 3, false)
	require.NoError(t, err)
	assert.Equal(t, 500, node.ItemID)
	assert.Equal(t, 3, node.Quantity)
	assert.True(t, node.IsBaseMaterial)
	assert.Empty(t, node.Children)
	assert.Zero(t, node.CraftsNeeded)
}

func TestBuildQuantityPropagation(t *testing.T) {
	c := &mockCatalog{recipes: map[int]*domain.Recipe{
		// 3 ingots per craft, recipe yields 2
		100: recipe(1, 100, 2, mat(200, 3)),
	}}
	b := NewBuilder(c)

	// Need 5 with yield 2: 3 crafts, 9 ingots.
	node, err := b.Build(context.Background(), 100, 5, false)
	require.NoError(t, err)
	assert.Equal(t, 3, node.CraftsNeeded)
	assert.Equal(t, 2, node.Yield)
	require.Len(t, node.Children, 1)
	assert.Equal(t, 200, node.Children[0].ItemID)
	assert.Equal(t, 9, node.Children[0].Quantity)
	assert.True(t, node.Children[0].IsBaseMaterial)
}

func TestBuildCycleDetection(t *testing.T) {
	c := &mockCatalog{recipes: map[int]*domain.Recipe{
		100: recipe(1, 100, 1, mat(200, 1)),
		200: recipe(2, 200, 1, mat(100, 1)),
	}}
	b := NewBuilder(c)

	node, err := b.Build(context.Background(), 100, 1, false)
	require.NoError(t, err)
	require.Len(t, node.Children, 1)
	inner := node.Children[0]
	require.Len(t, inner.Children, 1)
	revisit := inner.Children[0]
	assert.Equal(t, 100, revisit.ItemID)
	assert.True(t, revisit.IsCyclic)
	assert.Empty(t, revisit.Children, "a cyclic leaf is never expanded")
}

func TestBuildSiblingsMayRepeatAnID(t *testing.T) {
	// The visited path is per branch: the same base material in two
	// sibling branches is expanded in both, not flagged cyclic.
	c := &mockCatalog{recipes: map[int]*domain.Recipe{
		100: recipe(1, 100, 1, mat(200, 1), mat(300, 1)),
		200: recipe(2, 200, 1, mat(400, 2)),
		300: recipe(3, 300, 1, mat(400, 5)),
	}}
	b := NewBuilder(c)

	node, err := b.Build(context.Background(), 100, 1, false)
	require.NoError(t, err)
	require.Len(t, node.Children, 2)
	left, right := node.Children[0], node.Children[1]
	require.Len(t, left.Children, 1)
	require.Len(t, right.Children, 1)
	assert.False(t, left.Children[0].IsCyclic)
	assert.False(t, right.Children[0].IsCyclic)
}

func TestBuildDepthBound(t *testing.T) {
	// A chain deeper than the cap: each item crafts from the next.
	recipes := make(map[int]*domain.Recipe)
	for i := 0; i < 15; i++ {
		recipes[100+i] = recipe(i+1, 100+i, 1, mat(100+i+1, 1))
	}
	b := NewBuilder(&mockCatalog{recipes: recipes})

	node, err := b.Build(context.Background(), 100, 1, false)
	require.NoError(t, err)

	depth := 0
	for len(node.Children) > 0 {
		node = node.Children[0]
		depth++
	}
	assert.Equal(t, MaxDepth+1, depth, "expansion stops one level past the cap")
	assert.True(t, node.MaxDepthReached)
	assert.False(t, node.IsBaseMaterial)
}

func TestBuildChildrenKeepIngredientOrder(t *testing.T) {
	c := &mockCatalog{recipes: map[int]*domain.Recipe{
		100: recipe(1, 100, 1, mat(300, 1), mat(200, 1), mat(400, 1)),
	}}
	b := NewBuilder(c)

	node, err := b.Build(context.Background(), 100, 1, false)
	require.NoError(t, err)
	require.Len(t, node.Children, 3)
	assert.Equal(t, 300, node.Children[0].ItemID)
	assert.Equal(t, 200, node.Children[1].ItemID)
	assert.Equal(t, 400, node.Children[2].ItemID)
}

func TestBuildCrystalInterleaving(t *testing.T) {
	c := &mockCatalog{recipes: map[int]*domain.Recipe{
		100: recipe(1, 100, 1, mat(2, 4), mat(3, 2), mat(200, 1), mat(201, 1), mat(202, 1), mat(203, 1)),
	}}
	b := NewBuilder(c)

	node, err := b.Build(context.Background(), 100, 1, false)
	require.NoError(t, err)
	require.Len(t, node.Children, 6)
	assert.Equal(t, 200, node.Children[0].ItemID, "no crystal precedes the first material")
	assert.Equal(t, 2, node.Children[1].ItemID)
	assert.Equal(t, 201, node.Children[2].ItemID)
	assert.Equal(t, 3, node.Children[3].ItemID)
}

func TestBuildExcludeCrystals(t *testing.T) {
	c := &mockCatalog{recipes: map[int]*domain.Recipe{
		100: recipe(1, 100, 1, mat(2, 4), mat(200, 1)),
	}}
	b := NewBuilder(c)

	node, err := b.Build(context.Background(), 100, 1, true)
	require.NoError(t, err)
	require.Len(t, node.Children, 1)
	assert.Equal(t, 200, node.Children[0].ItemID)
}

func TestBuildRejectsNonPositiveQuantity(t *testing.T) {
	b := NewBuilder(&mockCatalog{})
	_, err := b.Build(context.Background(), 100, 0, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildCancellationPropagates(t *testing.T) {
	b := NewBuilder(&mockCatalog{err: context.Canceled})
	_, err := b.Build(context.Background(), 100, 1, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildStoreFailureBecomesBaseLeaf(t *testing.T) {
	b := NewBuilder(&mockCatalog{err: fmt.Errorf("%w: 502", domain.ErrStoreUnavailable)})
	node, err := b.Build(context.Background(), 100, 1, false)
	require.NoError(t, err)
	assert.True(t, node.IsBaseMaterial)
}

func TestFlattenSumsAcrossBranches(t *testing.T) {
	c := &mockCatalog{recipes: map[int]*domain.Recipe{
		100: recipe(1, 100, 1, mat(200, 1), mat(300, 1)),
		200: recipe(2, 200, 1, mat(400, 3)),
		300: recipe(3, 300, 1, mat(400, 5)),
	}}
	b := NewBuilder(c)

	node, err := b.Build(context.Background(), 100, 1, false)
	require.NoError(t, err)

	totals := Flatten(node)
	assert.Equal(t, 8, totals[400], "an id in two branches reports the combined total")
	assert.Equal(t, 1, totals[100])
	assert.Equal(t, 1, totals[200])
}

func TestCollectIDs(t *testing.T) {
	c := &mockCatalog{recipes: map[int]*domain.Recipe{
		100: recipe(1, 100, 1, mat(300, 1), mat(200, 1)),
		200: recipe(2, 200, 1, mat(300, 2)),
	}}
	b := NewBuilder(c)

	node, err := b.Build(context.Background(), 100, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200, 300}, CollectIDs(node))
}
