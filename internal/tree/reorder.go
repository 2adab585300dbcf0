package tree

import "github.com/sevenpixels/xivcraft/internal/domain"

// Elemental crystals occupy a fixed low-id range in the catalog. They are
// treated as secondary in ordering: either dropped entirely or spread into
// the gaps between the real materials.
const (
	crystalMinID = 2
	crystalMaxID = 19
)

func isCrystal(itemID int) bool {
	return itemID >= crystalMinID && itemID <= crystalMaxID
}

// orderIngredients applies the crystal policy. With excludeCrystals the
// crystal group is dropped. Otherwise crystals are redistributed as evenly
// as possible into the gaps between consecutive non-crystal ingredients
// (ceil/floor split, remainder after the last gap). With no non-crystal
// ingredients the original order is kept.
func orderIngredients(ingredients []domain.RecipeIngredient, excludeCrystals bool) []domain.RecipeIngredient {
	var crystals, materials []domain.RecipeIngredient
	for _, ing := range ingredients {
		if isCrystal(ing.ItemID) {
			crystals = append(crystals, ing)
		} else {
			materials = append(materials, ing)
		}
	}

	if excludeCrystals {
		return materials
	}
	if len(crystals) == 0 {
		return materials
	}
	if len(materials) == 0 {
		return ingredients
	}

	out := make([]domain.RecipeIngredient, 0, len(ingredients))
	gaps := len(materials) - 1
	if gaps == 0 {
		out = append(out, materials[0])
		return append(out, crystals...)
	}

	perGap := len(crystals) / gaps
	extra := len(crystals) % gaps
	next := 0
	for i, mat := range materials[:gaps] {
		out = append(out, mat)
		take := perGap
		if i < extra {
			take++
		}
		out = append(out, crystals[next:next+take]...)
		next += take
	}
	out = append(out, materials[gaps])
	return append(out, crystals[next:]...)
}
