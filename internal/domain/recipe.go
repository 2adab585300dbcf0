package domain

// RecipeIngredient represents a single material requirement for a recipe
type RecipeIngredient struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// Recipe represents one crafting recipe. Several recipes may share a
// ResultItemID (one per job); the first-registered one is treated as
// canonical by the gateway.
type Recipe struct {
	ID           int                `json:"recipe_id"`
	ResultItemID int                `json:"item_id"`
	Job          string             `json:"job"`
	Level        int                `json:"level"`
	Yield        int                `json:"yield"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
}
