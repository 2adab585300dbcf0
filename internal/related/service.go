// Package related answers the reverse question of the tree builder: which
// items consume a given item as an ingredient.
package related

import (
	"context"
	"errors"
	"sort"

	"github.com/sevenpixels/xivcraft/internal/domain"
	"github.com/sevenpixels/xivcraft/internal/logger"
)

// Catalog defines the gateway operations required by the reverse index
type Catalog interface {
	RecipesUsingItem(ctx context.Context, itemID int) ([]domain.Recipe, error)
	AllRecipes(ctx context.Context) ([]domain.Recipe, error)
}

// Service resolves reverse ingredient lookups.
type Service struct {
	catalog Catalog
}

// NewService creates a reverse-index service over the given catalog.
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// RelatedItems returns the distinct result-item ids of every recipe whose
// ingredient list contains itemID, ascending. The preferred path is one
// targeted containment query; stores lacking the predicate fall back to a
// scan-and-filter.
func (s *Service) RelatedItems(ctx context.Context, itemID int) ([]int, error) {
	recipes, err := s.catalog.RecipesUsingItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("containment query failed, scanning recipes",
			"itemID", itemID, "error", err)
		recipes, err = s.scanForConsumers(ctx, itemID)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[int]struct{}, len(recipes))
	ids := make([]int, 0, len(recipes))
	for _, rec := range recipes {
		if _, dup := seen[rec.ResultItemID]; dup {
			continue
		}
		seen[rec.ResultItemID] = struct{}{}
		ids = append(ids, rec.ResultItemID)
	}
	sort.Ints(ids)
	return ids, nil
}

func (s *Service) scanForConsumers(ctx context.Context, itemID int) ([]domain.Recipe, error) {
	all, err := s.catalog.AllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	var consumers []domain.Recipe
	for _, rec := range all {
		for _, ing := range rec.Ingredients {
			if ing.ItemID == itemID {
				consumers = append(consumers, rec)
				break
			}
		}
	}
	return consumers, nil
}
