package quadtree

import (
	"github.com/go-sod/quadtree/pkg/geom"
	"github.com/tidwall/tinyqueue"
)

// queueItem holds either a node or an entity; dist is the lower bound of the
// distance to the query point (exact for entities).
type queueItem struct {
	node   *Node
	entity Entity
	dist   float64
}

func (item *queueItem) Less(b tinyqueue.Item) bool {
	return item.dist < b.(*queueItem).dist
}

// Nearest streams up to k entities from nearest to farthest from q, with
// their distances. Iteration stops early when iter returns false. Entities at
// equal distance come out in no particular order.
//
// Results are exact when no entity moved since the last Insert or Update.
func (t *Tree) Nearest(q geom.Point, k int, iter func(e Entity, dist float64) bool) {
	if k <= 0 {
		return
	}
	queue := tinyqueue.New(nil)
	queue.Push(&queueItem{node: t.root, dist: t.root.boundary.Distance(q)})

	var emitted int
	for queue.Len() > 0 {
		item := queue.Pop().(*queueItem)
		switch {
		case item.node == nil:
			emitted++
			if !iter(item.entity, item.dist) || emitted == k {
				return
			}
		case item.node.leaf:
			for _, e := range item.node.bucket {
				queue.Push(&queueItem{entity: e, dist: e.Position().Distance(q)})
			}
		default:
			for _, child := range item.node.children {
				queue.Push(&queueItem{node: child, dist: child.boundary.Distance(q)})
			}
		}
	}
}

// KNN returns up to k entities ordered by ascending distance to q. Fewer than
// k are returned when the tree holds fewer entities.
func (t *Tree) KNN(q geom.Point, k int) []Entity {
	var points []Entity
	t.Nearest(q, k, func(e Entity, _ float64) bool {
		points = append(points, e)
		return true
	})
	if points == nil {
		points = []Entity{}
	}
	return points
}
