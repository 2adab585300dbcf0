package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Store metric names
const (
	MetricNameStoreRequestsTotal = "store_requests_total"
	MetricNameStoreFullScans     = "store_full_scans_total"
)

// Cache metric names
const (
	MetricNameCacheHits         = "catalog_cache_hits_total"
	MetricNameCacheMisses       = "catalog_cache_misses_total"
	MetricNameCoalescedRequests = "catalog_coalesced_requests_total"
)

// Business metric names
const (
	MetricNameSearchesPerformed = "searches_performed_total"
	MetricNameTreesBuilt        = "crafting_trees_built_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// Store metric help text
const (
	HelpTextStoreRequestsTotal = "Total number of remote store requests"
	HelpTextStoreFullScans     = "Total number of discouraged full-table scans"
)

// Cache metric help text
const (
	HelpTextCacheHits         = "Total number of catalog cache hits"
	HelpTextCacheMisses       = "Total number of catalog cache misses"
	HelpTextCoalescedRequests = "Total number of requests coalesced onto an in-flight fetch"
)

// Business metric help text
const (
	HelpTextSearchesPerformed = "Total number of item searches, by resolving stage"
	HelpTextTreesBuilt        = "Total number of crafting trees built"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelTable   = "table"
	LabelOutcome = "outcome"
	LabelStage   = "stage"
)

// Outcome label values
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)
