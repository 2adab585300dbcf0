// Package engine is the facade consumed by callers: text-to-item search,
// point item lookup, crafting-tree expansion, and reverse ingredient
// lookup, all sharing one catalog gateway.
package engine

import (
	"context"

	"github.com/sevenpixels/xivcraft/internal/catalog"
	"github.com/sevenpixels/xivcraft/internal/chinese"
	"github.com/sevenpixels/xivcraft/internal/domain"
	"github.com/sevenpixels/xivcraft/internal/related"
	"github.com/sevenpixels/xivcraft/internal/search"
	"github.com/sevenpixels/xivcraft/internal/tree"
)

// Service defines the engine operations exposed to callers
type Service interface {
	SearchItems(ctx context.Context, text string, fuzzyOnly bool) (domain.SearchOutcome, error)
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	BuildCraftingTree(ctx context.Context, itemID, quantity int, excludeCrystals bool) (*domain.MaterialNode, error)
	FindRelatedItems(ctx context.Context, itemID int) ([]int, error)
	Reset()
}

type service struct {
	gateway  *catalog.Gateway
	resolver *search.Resolver
	builder  *tree.Builder
	reverse  *related.Service
}

// NewService wires the resolver, tree builder, and reverse index over a
// shared gateway.
func NewService(gateway *catalog.Gateway) Service {
	norm := chinese.NewNormalizer()
	return &service{
		gateway:  gateway,
		resolver: search.NewResolver(gateway, norm),
		builder:  tree.NewBuilder(gateway),
		reverse:  related.NewService(gateway),
	}
}

func (s *service) SearchItems(ctx context.Context, text string, fuzzyOnly bool) (domain.SearchOutcome, error) {
	return s.resolver.Search(ctx, text, fuzzyOnly)
}

func (s *service) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	return s.gateway.Item(ctx, id)
}

func (s *service) BuildCraftingTree(ctx context.Context, itemID, quantity int, excludeCrystals bool) (*domain.MaterialNode, error) {
	return s.builder.Build(ctx, itemID, quantity, excludeCrystals)
}

func (s *service) FindRelatedItems(ctx context.Context, itemID int) ([]int, error) {
	return s.reverse.RelatedItems(ctx, itemID)
}

// Reset drops every catalog cache entry. Test isolation only.
func (s *service) Reset() {
	s.gateway.Reset()
}
