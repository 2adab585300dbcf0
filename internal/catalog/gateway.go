// Package catalog is the single access path to the remote item/recipe/
// market store. It caches every lookup for the process lifetime, coalesces
// identical in-flight requests, and normalizes loosely-typed rows into
// domain structs at this boundary.
package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/sevenpixels/xivcraft/internal/logger"
	"github.com/sevenpixels/xivcraft/internal/metrics"
	"github.com/sevenpixels/xivcraft/internal/store"
)

// Store defines the remote query operations required by the gateway
type Store interface {
	GetByID(ctx context.Context, table string, id int) (gjson.Result, bool, error)
	MatchAll(ctx context.Context, table, column string, patterns []string) ([]gjson.Result, error)
	SelectIn(ctx context.Context, table, column string, values []int) ([]gjson.Result, error)
	Page(ctx context.Context, table string, offset, limit int) ([]gjson.Result, error)
	ContainsIngredient(ctx context.Context, table string, itemID int) ([]gjson.Result, error)
}

// LegacySource fetches the legacy simplified-name dataset wholesale
type LegacySource interface {
	Fetch(ctx context.Context) (map[int]string, error)
}

// Gateway wraps the store with a process-lifetime cache and an in-flight
// request registry. Entries have no TTL and no eviction: the catalog is
// slow-changing reference data, and Reset is the only invalidation.
type Gateway struct {
	store    Store
	legacy   LegacySource
	pageSize int

	mu     sync.Mutex
	cache  map[string]any
	flight singleflight.Group
}

// NewGateway creates a gateway over the given store and legacy source.
func NewGateway(st Store, legacy LegacySource) *Gateway {
	return &Gateway{
		store:    st,
		legacy:   legacy,
		pageSize: store.DefaultPageSize,
		cache:    make(map[string]any),
	}
}

// Reset drops every cached entry. Used for test isolation.
func (g *Gateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cache = make(map[string]any)
}

// fetch is the cache/coalescing core. Concurrent calls with the same key
// share one underlying fetch; the shared result is cached until Reset.
// The shared call runs detached from the triggering caller, so each waiter
// observes only its own cancellation: checked before the call and while
// awaiting it, and returned as ctx.Err() - never as an empty result or a
// store error, and never from another caller's context.
func fetch[T any](ctx context.Context, g *Gateway, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	g.mu.Lock()
	if v, ok := g.cache[key]; ok {
		g.mu.Unlock()
		metrics.CacheHits.Inc()
		return v.(T), nil
	}
	g.mu.Unlock()

	ch := g.flight.DoChan(key, func() (any, error) {
		metrics.CacheMisses.Inc()
		v, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		g.mu.Lock()
		g.cache[key] = v
		g.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			metrics.CoalescedRequests.Inc()
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return res.Val.(T), nil
	}
}

// rowHit is a cached point lookup; OK false is a cached miss, so repeated
// lookups of an absent id stay local.
type rowHit struct {
	Row gjson.Result
	OK  bool
}

// GetByID fetches one row by id.
func (g *Gateway) GetByID(ctx context.Context, table string, id int) (gjson.Result, bool, error) {
	key := cacheKeyRow + table + ":" + strconv.Itoa(id)
	hit, err := fetch(ctx, g, key, func(ctx context.Context) (rowHit, error) {
		row, ok, err := g.store.GetByID(ctx, table, id)
		if err != nil {
			return rowHit{}, err
		}
		return rowHit{Row: row, OK: ok}, nil
	})
	if err != nil {
		return gjson.Result{}, false, err
	}
	return hit.Row, hit.OK, nil
}

// SearchByText returns an id-to-name mapping for rows whose column matches
// every whitespace-delimited word of text. Exact mode matches each word as
// a case-insensitive substring; fuzzy mode turns each word into a chained
// ordered-subsequence pattern (c1 then c2 ... in order, gaps allowed).
func (g *Gateway) SearchByText(ctx context.Context, table, column, text string, fuzzy bool) (map[int]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return map[int]string{}, nil
	}

	mode := "exact"
	if fuzzy {
		mode = "fuzzy"
	}
	key := cacheKeySearch + table + ":" + column + ":" + mode + ":" + strings.Join(words, " ")

	return fetch(ctx, g, key, func(ctx context.Context) (map[int]string, error) {
		patterns := make([]string, len(words))
		for i, w := range words {
			if fuzzy {
				patterns[i] = subsequencePattern(w)
			} else {
				patterns[i] = "*" + w + "*"
			}
		}
		rows, err := g.store.MatchAll(ctx, table, column, patterns)
		if err != nil {
			return nil, err
		}
		names := make(map[int]string, len(rows))
		for _, row := range rows {
			names[int(row.Get("id").Int())] = row.Get(column).String()
		}
		return names, nil
	})
}

// GetByIDs batch-fetches rows for an id set, chunked to the store's
// predicate-list limit and merged into one map. The cache key is the table
// plus the sorted id list, so permutations of the same set share an entry.
func (g *Gateway) GetByIDs(ctx context.Context, table string, ids []int) (map[int]gjson.Result, error) {
	if len(ids) == 0 {
		return map[int]gjson.Result{}, nil
	}
	sorted := dedupeSorted(ids)
	key := cacheKeyIDSet + table + ":" + joinIDs(sorted)

	return fetch(ctx, g, key, func(ctx context.Context) (map[int]gjson.Result, error) {
		merged := make(map[int]gjson.Result, len(sorted))
		for start := 0; start < len(sorted); start += store.MaxPredicateListSize {
			end := start + store.MaxPredicateListSize
			if end > len(sorted) {
				end = len(sorted)
			}
			rows, err := g.store.SelectIn(ctx, table, ColumnID, sorted[start:end])
			if err != nil {
				return nil, err
			}
			for _, row := range rows {
				merged[int(row.Get("id").Int())] = row
			}
		}
		return merged, nil
	})
}

// FullScan pages through the entire table. It is the discouraged path,
// reachable only from the fuzzy-search fallback and on-error recovery;
// every default path stays targeted.
func (g *Gateway) FullScan(ctx context.Context, table string) ([]gjson.Result, error) {
	key := cacheKeyScan + table
	return fetch(ctx, g, key, func(ctx context.Context) ([]gjson.Result, error) {
		logger.FromContext(ctx).Warn("full table scan", "table", table)
		metrics.StoreFullScans.WithLabelValues(table).Inc()

		var all []gjson.Result
		offset := 0
		for {
			page, err := g.store.Page(ctx, table, offset, g.pageSize)
			if err != nil {
				return nil, err
			}
			all = append(all, page...)
			if len(page) < g.pageSize {
				return all, nil
			}
			offset += g.pageSize
		}
	})
}

// subsequencePattern turns a word into the store's ordered-subsequence
// wildcard form: "商金" becomes "*商*金*".
func subsequencePattern(word string) string {
	var b strings.Builder
	b.WriteString("*")
	for _, r := range word {
		b.WriteRune(r)
		b.WriteString("*")
	}
	return b.String()
}

func dedupeSorted(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
