package catalog

// Remote store tables
const (
	TableItems           = "items"
	TableRecipes         = "recipes"
	TableMarketItems     = "marketable_items"
	TableSimplifiedNames = "item_names_cn"
)

// Columns used by targeted queries
const (
	ColumnID   = "id"
	ColumnName = "name"
)

// Cache key prefixes. A key is prefix + query signature; identical
// signatures share one cache entry and one in-flight fetch.
const (
	cacheKeyRow    = "row:"
	cacheKeySearch = "search:"
	cacheKeyIDSet  = "ids:"
	cacheKeyScan   = "scan:"
	cacheKeyLegacy = "legacy"
)
