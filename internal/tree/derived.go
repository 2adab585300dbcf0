package tree

import (
	"sort"

	"github.com/sevenpixels/xivcraft/internal/domain"
)

// Flatten sums the required quantity per unique item id across every
// occurrence in the whole tree: an id appearing in two branches reports the
// combined total.
func Flatten(root *domain.MaterialNode) map[int]int {
	totals := make(map[int]int)
	walk(root, func(node *domain.MaterialNode) {
		totals[node.ItemID] += node.Quantity
	})
	return totals
}

// CollectIDs returns the unique, ascending id set of the tree, sized for
// batched downstream fetches.
func CollectIDs(root *domain.MaterialNode) []int {
	seen := make(map[int]struct{})
	walk(root, func(node *domain.MaterialNode) {
		seen[node.ItemID] = struct{}{}
	})
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func walk(node *domain.MaterialNode, visit func(*domain.MaterialNode)) {
	if node == nil {
		return
	}
	stack := []*domain.MaterialNode{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		// push in reverse so iteration observes ingredient order
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
