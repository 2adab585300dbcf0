package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store Metrics
var (
	StoreRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoreRequestsTotal,
			Help: HelpTextStoreRequestsTotal,
		},
		[]string{LabelTable, LabelOutcome},
	)

	StoreFullScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoreFullScans,
			Help: HelpTextStoreFullScans,
		},
		[]string{LabelTable},
	)
)

// Cache Metrics
var (
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCacheHits,
			Help: HelpTextCacheHits,
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCacheMisses,
			Help: HelpTextCacheMisses,
		},
	)

	CoalescedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoalescedRequests,
			Help: HelpTextCoalescedRequests,
		},
	)
)

// Business Metrics
var (
	SearchesPerformed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSearchesPerformed,
			Help: HelpTextSearchesPerformed,
		},
		[]string{LabelStage},
	)

	TreesBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTreesBuilt,
			Help: HelpTextTreesBuilt,
		},
	)
)
