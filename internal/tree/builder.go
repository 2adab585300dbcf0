// Package tree expands a crafting recipe into its full dependency tree of
// base materials, with quantity propagation, cycle detection, a hard depth
// bound, and deterministic ingredient ordering.
package tree

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sevenpixels/xivcraft/internal/domain"
	"github.com/sevenpixels/xivcraft/internal/logger"
	"github.com/sevenpixels/xivcraft/internal/metrics"
)

const (
	// MaxDepth caps logical expansion depth, independent of the call stack.
	MaxDepth = 10
	// maxConcurrentExpansions bounds sibling recipe lookups in flight.
	maxConcurrentExpansions = 8
)

// Catalog defines the gateway operations required by the builder
type Catalog interface {
	RecipeForItem(ctx context.Context, itemID int) (*domain.Recipe, error)
}

// Builder expands crafting trees against the catalog.
type Builder struct {
	catalog Catalog
}

// NewBuilder creates a tree builder over the given catalog.
func NewBuilder(catalog Catalog) *Builder {
	return &Builder{catalog: catalog}
}

// frame is one pending expansion on the worklist. Each frame owns its
// root-to-node path, so sibling branches may revisit the same id.
type frame struct {
	node  *domain.MaterialNode
	path  []int
	depth int
}

// Build expands the item into a materials tree. Sibling expansions run
// concurrently, but children are assembled in ingredient order regardless
// of completion order, so the output is deterministic. Only cancellation
// aborts the build; a store failure turns the affected node into a base
// material leaf.
func (b *Builder) Build(ctx context.Context, itemID, quantity int, excludeCrystals bool) (*domain.MaterialNode, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	root := &domain.MaterialNode{ItemID: itemID, Quantity: quantity}
	wave := []*frame{{node: root, depth: 0}}

	// Breadth-first worklist: one wave per depth level. The depth bound is
	// enforced by the frame counter, not by stack growth.
	for len(wave) > 0 {
		expanded := make([][]*frame, len(wave))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentExpansions)
		for i, fr := range wave {
			g.Go(func() error {
				children, err := b.expand(gctx, fr, excludeCrystals)
				if err != nil {
					return err
				}
				expanded[i] = children
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []*frame
		for _, children := range expanded {
			next = append(next, children...)
		}
		wave = next
	}

	metrics.TreesBuilt.Inc()
	return root, nil
}

// expand fills in one node and returns the frames for its children.
func (b *Builder) expand(ctx context.Context, fr *frame, excludeCrystals bool) ([]*frame, error) {
	node := fr.node

	for _, ancestor := range fr.path {
		if ancestor == node.ItemID {
			node.IsCyclic = true
			return nil, nil
		}
	}
	if fr.depth > MaxDepth {
		node.MaxDepthReached = true
		return nil, nil
	}

	recipe, err := b.catalog.RecipeForItem(ctx, node.ItemID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("recipe lookup failed, treating as base material",
			"itemID", node.ItemID, "error", err)
		node.IsBaseMaterial = true
		return nil, nil
	}
	if recipe == nil {
		node.IsBaseMaterial = true
		return nil, nil
	}

	node.RecipeID = recipe.ID
	node.Job = recipe.Job
	node.Level = recipe.Level
	node.Yield = recipe.Yield
	node.CraftsNeeded = ceilDiv(node.Quantity, recipe.Yield)

	ingredients := orderIngredients(recipe.Ingredients, excludeCrystals)
	path := append(append([]int{}, fr.path...), node.ItemID)

	frames := make([]*frame, 0, len(ingredients))
	for _, ing := range ingredients {
		child := &domain.MaterialNode{
			ItemID:   ing.ItemID,
			Quantity: ing.Quantity * node.CraftsNeeded,
		}
		node.Children = append(node.Children, child)
		frames = append(frames, &frame{node: child, path: path, depth: fr.depth + 1})
	}
	return frames, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
