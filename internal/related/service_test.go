package related

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenpixels/xivcraft/internal/domain"
)

type mockCatalog struct {
	usingRecipes []domain.Recipe
	usingErr     error
	allRecipes   []domain.Recipe
	allErr       error
	usingCalls   int
	allCalls     int
}

func (m *mockCatalog) RecipesUsingItem(ctx context.Context, itemID int) ([]domain.Recipe, error) {
	m.usingCalls++
	return m.usingRecipes, m.usingErr
}

func (m *mockCatalog) AllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	m.allCalls++
	return m.allRecipes, m.allErr
}

func consuming(recipeID, resultID, ingredientID int) domain.Recipe {
	return domain.Recipe{
		ID:           recipeID,
		ResultItemID: resultID,
		Ingredients:  []domain.RecipeIngredient{{ItemID: ingredientID, Quantity: 1}},
	}
}

func TestRelatedItemsTargetedPath(t *testing.T) {
	c := &mockCatalog{usingRecipes: []domain.Recipe{
		consuming(1, 300, 5),
		consuming(2, 100, 5),
		consuming(3, 300, 5), // second job crafting the same result
	}}
	s := NewService(c)

	ids, err := s.RelatedItems(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 300}, ids, "distinct result ids, ascending")
	assert.Zero(t, c.allCalls, "the targeted predicate avoids the scan")
}

func TestRelatedItemsScanFallback(t *testing.T) {
	c := &mockCatalog{
		usingErr: fmt.Errorf("%w: no containment operator", domain.ErrPredicateUnsupported),
		allRecipes: []domain.Recipe{
			consuming(1, 300, 5),
			consuming(2, 400, 6),
		},
	}
	s := NewService(c)

	ids, err := s.RelatedItems(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int{300}, ids)
	assert.Equal(t, 1, c.allCalls)
}

func TestRelatedItemsCancellationSkipsFallback(t *testing.T) {
	c := &mockCatalog{usingErr: context.Canceled}
	s := NewService(c)

	_, err := s.RelatedItems(context.Background(), 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.allCalls)
}

func TestRelatedItemsNoConsumers(t *testing.T) {
	s := NewService(&mockCatalog{})
	ids, err := s.RelatedItems(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
