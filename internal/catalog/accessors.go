package catalog

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/sevenpixels/xivcraft/internal/domain"
)

// Typed accessors. These are the only way domain types leave the gateway;
// resolver and tree builder never touch raw rows.

// Item returns the item with the given id, or nil when it does not exist.
func (g *Gateway) Item(ctx context.Context, id int) (*domain.Item, error) {
	row, ok, err := g.GetByID(ctx, TableItems, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	item := itemFromRow(row)
	return &item, nil
}

// ItemDescription lazily resolves an item's description. List endpoints
// omit the field; the point lookup carries it, and the row cache makes the
// second ask free.
func (g *Gateway) ItemDescription(ctx context.Context, id int) (string, error) {
	row, ok, err := g.GetByID(ctx, TableItems, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrItemNotFound
	}
	return row.Get("description").String(), nil
}

// ItemsByIDs batch-fetches items for an id set.
func (g *Gateway) ItemsByIDs(ctx context.Context, ids []int) (map[int]domain.Item, error) {
	rows, err := g.GetByIDs(ctx, TableItems, ids)
	if err != nil {
		return nil, err
	}
	items := make(map[int]domain.Item, len(rows))
	for id, row := range rows {
		items[id] = itemFromRow(row)
	}
	return items, nil
}

// AllItems scans the whole item table. Fallback path only.
func (g *Gateway) AllItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := g.FullScan(ctx, TableItems)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, len(rows))
	for i, row := range rows {
		items[i] = itemFromRow(row)
	}
	return items, nil
}

// AllRecipes scans the whole recipe table. Fallback path only.
func (g *Gateway) AllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := g.FullScan(ctx, TableRecipes)
	if err != nil {
		return nil, err
	}
	recipes := make([]domain.Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = recipeFromRow(row)
	}
	return recipes, nil
}

// RecipesForResult returns every recipe producing the item, ordered by
// registration (ascending recipe id). A transient store failure falls back
// once to a recipe-table scan.
func (g *Gateway) RecipesForResult(ctx context.Context, itemID int) ([]domain.Recipe, error) {
	key := cacheKeySearch + TableRecipes + ":result:" + strconv.Itoa(itemID)
	return fetch(ctx, g, key, func(ctx context.Context) ([]domain.Recipe, error) {
		rows, err := g.store.SelectIn(ctx, TableRecipes, "item_id", []int{itemID})
		if err == nil {
			recipes := make([]domain.Recipe, len(rows))
			for i, row := range rows {
				recipes[i] = recipeFromRow(row)
			}
			sortRecipes(recipes)
			return recipes, nil
		}
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, err
		}

		all, scanErr := g.AllRecipes(ctx)
		if scanErr != nil {
			return nil, scanErr
		}
		var recipes []domain.Recipe
		for _, rec := range all {
			if rec.ResultItemID == itemID {
				recipes = append(recipes, rec)
			}
		}
		sortRecipes(recipes)
		return recipes, nil
	})
}

// RecipeForItem returns the canonical recipe for an item, or nil when the
// item is a base material. When several jobs can craft the item the
// first-registered recipe wins.
func (g *Gateway) RecipeForItem(ctx context.Context, itemID int) (*domain.Recipe, error) {
	recipes, err := g.RecipesForResult(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// MarketableIDs returns the market-eligibility id set: the single source of
// truth for tradeability.
func (g *Gateway) MarketableIDs(ctx context.Context) (map[int]struct{}, error) {
	rows, err := g.FullScan(ctx, TableMarketItems)
	if err != nil {
		return nil, err
	}
	ids := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		ids[int(row.Get("id").Int())] = struct{}{}
	}
	return ids, nil
}

// SearchItemNames runs a targeted name search against the item table.
func (g *Gateway) SearchItemNames(ctx context.Context, text string, fuzzy bool) (map[int]string, error) {
	return g.SearchByText(ctx, TableItems, ColumnName, text, fuzzy)
}

// SearchSimplifiedNames runs an exact-substring AND search against the
// simplified-script name table.
func (g *Gateway) SearchSimplifiedNames(ctx context.Context, text string) (map[int]string, error) {
	return g.SearchByText(ctx, TableSimplifiedNames, ColumnName, text, false)
}

// LegacySimplifiedNames fetches the legacy plain-HTTP name dataset,
// cached wholesale for the process lifetime.
func (g *Gateway) LegacySimplifiedNames(ctx context.Context) (map[int]string, error) {
	return fetch(ctx, g, cacheKeyLegacy, func(ctx context.Context) (map[int]string, error) {
		return g.legacy.Fetch(ctx)
	})
}

// RecipesUsingItem returns every recipe whose ingredient list contains the
// item, via the store's structural containment predicate. Stores without
// the predicate surface domain.ErrPredicateUnsupported; the caller decides
// whether to fall back to a scan.
func (g *Gateway) RecipesUsingItem(ctx context.Context, itemID int) ([]domain.Recipe, error) {
	key := cacheKeySearch + TableRecipes + ":using:" + strconv.Itoa(itemID)
	return fetch(ctx, g, key, func(ctx context.Context) ([]domain.Recipe, error) {
		rows, err := g.store.ContainsIngredient(ctx, TableRecipes, itemID)
		if err != nil {
			return nil, err
		}
		recipes := make([]domain.Recipe, len(rows))
		for i, row := range rows {
			recipes[i] = recipeFromRow(row)
		}
		sortRecipes(recipes)
		return recipes, nil
	})
}

func sortRecipes(recipes []domain.Recipe) {
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
}
