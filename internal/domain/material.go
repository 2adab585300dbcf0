package domain

// MaterialNode is one node of an expanded crafting dependency tree.
// Recipe fields are zero when the node is a leaf (base material, cycle, or
// depth cutoff). Children preserves ingredient order.
type MaterialNode struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`

	RecipeID     int    `json:"recipe_id,omitempty"`
	Job          string `json:"job,omitempty"`
	Level        int    `json:"level,omitempty"`
	Yield        int    `json:"yield,omitempty"`
	CraftsNeeded int    `json:"crafts_needed,omitempty"`

	IsBaseMaterial  bool `json:"is_base_material,omitempty"`
	IsCyclic        bool `json:"is_cyclic,omitempty"`
	MaxDepthReached bool `json:"max_depth_reached,omitempty"`

	Children []*MaterialNode `json:"children,omitempty"`
}
