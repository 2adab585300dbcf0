// Package search resolves free-form user text into catalog items through a
// strictly ordered fallback cascade: exact same-script, fuzzy same-script,
// script-converted rerun, and finally the simplified-name table.
package search

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sevenpixels/xivcraft/internal/chinese"
	"github.com/sevenpixels/xivcraft/internal/domain"
	"github.com/sevenpixels/xivcraft/internal/fuzzy"
	"github.com/sevenpixels/xivcraft/internal/logger"
	"github.com/sevenpixels/xivcraft/internal/metrics"
)

// Stage labels for the searches_performed metric.
const (
	stageExact      = "exact"
	stageFuzzy      = "fuzzy"
	stageConverted  = "converted"
	stageSimplified = "simplified"
	stageExhausted  = "exhausted"
)

// Catalog defines the gateway operations required by the resolver
type Catalog interface {
	SearchItemNames(ctx context.Context, text string, fuzzy bool) (map[int]string, error)
	ItemsByIDs(ctx context.Context, ids []int) (map[int]domain.Item, error)
	AllItems(ctx context.Context) ([]domain.Item, error)
	MarketableIDs(ctx context.Context) (map[int]struct{}, error)
	SearchSimplifiedNames(ctx context.Context, text string) (map[int]string, error)
	LegacySimplifiedNames(ctx context.Context) (map[int]string, error)
}

// Resolver orchestrates the search cascade.
type Resolver struct {
	catalog Catalog
	norm    *chinese.Normalizer
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(catalog Catalog, norm *chinese.Normalizer) *Resolver {
	return &Resolver{catalog: catalog, norm: norm}
}

// Search resolves text into catalog items. Stages run strictly in order and
// a later stage starts only when every earlier stage produced zero results.
// An exhausted cascade returns an empty outcome with conversion metadata,
// never an error; only cancellation unwinds as an error.
func (r *Resolver) Search(ctx context.Context, text string, fuzzyOnly bool) (domain.SearchOutcome, error) {
	trimmed := normalizeText(text)
	outcome := domain.SearchOutcome{Results: []domain.Item{}, OriginalText: trimmed}
	if trimmed == "" {
		return outcome, nil
	}
	log := logger.FromContext(ctx)

	if fuzzyOnly {
		items, err := r.fuzzyScan(ctx, trimmed)
		if err != nil {
			return outcome, err
		}
		outcome.Results = items
		metrics.SearchesPerformed.WithLabelValues(stageFuzzy).Inc()
		return outcome, nil
	}

	// Stage 1: exact, same script.
	items, err := r.exactStage(ctx, trimmed)
	if err != nil {
		return outcome, err
	}
	if len(items) > 0 {
		outcome.Results = items
		metrics.SearchesPerformed.WithLabelValues(stageExact).Inc()
		return outcome, nil
	}

	// Stage 2: fuzzy, same script. A single unspaced token is assumed
	// name-order-significant and is never fuzzy-matched.
	if strings.Contains(trimmed, " ") {
		items, err = r.fuzzyScan(ctx, trimmed)
		if err != nil {
			return outcome, err
		}
		if len(items) > 0 {
			outcome.Results = items
			metrics.SearchesPerformed.WithLabelValues(stageFuzzy).Inc()
			return outcome, nil
		}
	}

	// Stage 3: rerun stages 1 and 2 against the script-converted text.
	converted := r.convertQuery(trimmed)
	if converted != trimmed && chinese.ContainsHan(converted) {
		outcome.ConvertedText = converted
		log.Debug("retrying with converted text", "original", trimmed, "converted", converted)

		items, err = r.exactStage(ctx, converted)
		if err != nil {
			return outcome, err
		}
		if len(items) == 0 && strings.Contains(converted, " ") {
			items, err = r.fuzzyScan(ctx, converted)
			if err != nil {
				return outcome, err
			}
		}
		if len(items) > 0 {
			outcome.Results = items
			outcome.Converted = true
			metrics.SearchesPerformed.WithLabelValues(stageConverted).Inc()
			return outcome, nil
		}
	}

	// Stage 4: exact matching against the simplified-name table, mapped
	// back to canonical items by id. Never fuzzy.
	items, err = r.simplifiedStage(ctx, trimmed)
	if err != nil {
		return outcome, err
	}
	if len(items) > 0 {
		outcome.Results = items
		outcome.SearchedSimplified = true
		metrics.SearchesPerformed.WithLabelValues(stageSimplified).Inc()
		return outcome, nil
	}

	metrics.SearchesPerformed.WithLabelValues(stageExhausted).Inc()
	return outcome, nil
}

// exactStage runs the targeted substring search. A transient store failure
// is retried exactly once via a full scan with a local exact filter; a
// second failure leaves the stage empty. Cancellation is never retried.
func (r *Resolver) exactStage(ctx context.Context, text string) ([]domain.Item, error) {
	hits, err := r.catalog.SearchItemNames(ctx, text, false)
	if err != nil {
		if isCancelled(err) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("targeted search failed, falling back to scan", "error", err)
		return r.scanWithFilter(ctx, func(name string) bool {
			return containsAllWords(text, name)
		})
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return r.resolveHits(ctx, hits)
}

// fuzzyScan is stage 2: full scan plus the order-preserving matcher,
// AND across words.
func (r *Resolver) fuzzyScan(ctx context.Context, text string) ([]domain.Item, error) {
	return r.scanWithFilter(ctx, func(name string) bool {
		return fuzzy.MatchAllWords(text, name)
	})
}

// simplifiedStage searches the alternate-script name table, consulting the
// legacy dataset only when the primary store yields nothing.
func (r *Resolver) simplifiedStage(ctx context.Context, text string) ([]domain.Item, error) {
	simplified := r.norm.ToSimplified(text)
	hits, err := r.catalog.SearchSimplifiedNames(ctx, simplified)
	if err != nil {
		if isCancelled(err) {
			return nil, err
		}
		hits = nil
	}
	if len(hits) == 0 {
		legacy, legacyErr := r.catalog.LegacySimplifiedNames(ctx)
		if legacyErr != nil {
			if isCancelled(legacyErr) {
				return nil, legacyErr
			}
			return nil, nil
		}
		hits = make(map[int]string)
		for id, name := range legacy {
			if containsAllWords(simplified, name) {
				hits[id] = name
			}
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return r.resolveHits(ctx, hits)
}

// scanWithFilter is the discouraged path shared by the fuzzy stage and
// on-error recovery: one cached full scan, filtered locally.
func (r *Resolver) scanWithFilter(ctx context.Context, match func(name string) bool) ([]domain.Item, error) {
	all, err := r.catalog.AllItems(ctx)
	if err != nil {
		if isCancelled(err) {
			return nil, err
		}
		return nil, nil
	}
	var matched []domain.Item
	for _, item := range all {
		if match(cleanName(item.Name)) {
			matched = append(matched, item)
		}
	}
	return r.filterAndOrder(ctx, matched)
}

// resolveHits turns an id-to-name mapping into full ordered items.
func (r *Resolver) resolveHits(ctx context.Context, hits map[int]string) ([]domain.Item, error) {
	ids := make([]int, 0, len(hits))
	for id := range hits {
		ids = append(ids, id)
	}
	items, err := r.catalog.ItemsByIDs(ctx, ids)
	if err != nil {
		if isCancelled(err) {
			return nil, err
		}
		return nil, nil
	}
	flat := make([]domain.Item, 0, len(items))
	for _, item := range items {
		flat = append(flat, item)
	}
	return r.filterAndOrder(ctx, flat)
}

// filterAndOrder resolves tradeability from the market-eligibility set,
// falling back to the per-row flag only when that set is unavailable.
// Tradeable items are kept, everything else is excluded, and the output is
// ordered tradeable-first then by ascending id.
func (r *Resolver) filterAndOrder(ctx context.Context, items []domain.Item) ([]domain.Item, error) {
	marketable, err := r.catalog.MarketableIDs(ctx)
	if err != nil {
		if isCancelled(err) {
			return nil, err
		}
		marketable = nil
	}

	var out []domain.Item
	for _, item := range items {
		if marketable != nil {
			_, item.Tradeable = marketable[item.ID]
		}
		if item.Tradeable {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tradeable != out[j].Tradeable {
			return out[i].Tradeable
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// convertQuery maps the input to the catalog's canonical script. Input
// already in that script is canonicalized through a round trip instead, so
// variant characters still normalize.
func (r *Resolver) convertQuery(text string) string {
	converted := r.norm.ToTraditional(text)
	if converted == text {
		converted = r.norm.ToTraditional(r.norm.ToSimplified(text))
	}
	return converted
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
