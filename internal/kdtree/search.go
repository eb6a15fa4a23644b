package kdtree

import (
	"github.com/hupe1980/lunavdb/distance"
	"github.com/hupe1980/lunavdb/internal/queue"
)

// Nearest returns the k stored points closest to query, ordered by ascending
// squared distance and then by ascending key. The result has length
// min(k, Len()).
//
// The search is best-first: nodes are expanded in order of the lower bound
// between the query and their bounding box, and a node is pruned once its
// bound exceeds the current k-th best distance.
func (t *Tree) Nearest(query []float32, k int) ([]Neighbor, error) {
	if err := t.checkDim(query); err != nil {
		return nil, err
	}
	if k <= 0 || t.root == nil {
		return nil, nil
	}

	top := queue.NewTopK(min(k, t.size))

	// The frontier is a min-queue of lower bounds; Item.Key indexes nodes.
	nodes := []*node{t.root}
	frontier := queue.NewMin(16)
	frontier.PushItem(queue.Item{Key: 0, Distance: distance.SquaredL2Box(query, t.root.lo, t.root.hi)})

	for {
		cur, ok := frontier.PopItem()
		if !ok {
			break
		}
		if top.Full() && cur.Distance > top.Worst() {
			break
		}

		n := nodes[cur.Key]
		if n.isLeaf() {
			for _, it := range n.items {
				top.Offer(queue.Item{Key: it.key, Distance: distance.SquaredL2(query, it.vec)})
			}
			continue
		}

		for _, child := range [2]*node{n.left, n.right} {
			lb := distance.SquaredL2Box(query, child.lo, child.hi)
			if top.Full() && lb > top.Worst() {
				continue
			}
			frontier.PushItem(queue.Item{Key: uint64(len(nodes)), Distance: lb})
			nodes = append(nodes, child)
		}
	}

	return top.Sorted(), nil
}
