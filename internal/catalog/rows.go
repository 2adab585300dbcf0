package catalog

import (
	"github.com/tidwall/gjson"

	"github.com/sevenpixels/xivcraft/internal/domain"
)

// Row normalization lives here and nowhere else: everything downstream of
// the gateway operates on typed domain structs, never on raw rows.

func itemFromRow(row gjson.Result) domain.Item {
	return domain.Item{
		ID:          int(row.Get("id").Int()),
		Name:        row.Get("name").String(),
		Tradeable:   !row.Get("untradeable").Bool(),
		Level:       int(row.Get("item_level").Int()),
		Description: row.Get("description").String(),
		CanBeHQ:     row.Get("can_be_hq").Bool(),
	}
}

func recipeFromRow(row gjson.Result) domain.Recipe {
	rec := domain.Recipe{
		ID:           int(row.Get("id").Int()),
		ResultItemID: int(row.Get("item_id").Int()),
		Job:          row.Get("job").String(),
		Level:        int(row.Get("level").Int()),
		Yield:        int(row.Get("yield").Int()),
	}
	if rec.Yield < 1 {
		rec.Yield = 1
	}
	row.Get("ingredients").ForEach(func(_, ing gjson.Result) bool {
		qty := int(ing.Get("quantity").Int())
		if qty < 1 {
			qty = 1
		}
		rec.Ingredients = append(rec.Ingredients, domain.RecipeIngredient{
			ItemID:   int(ing.Get("item_id").Int()),
			Quantity: qty,
		})
		return true
	})
	return rec
}
