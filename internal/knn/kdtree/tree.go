// Package kdtree is a 2d-tree index rebuilt from scratch on every Update.
package kdtree

import (
	"math"
	"sort"

	"github.com/go-sod/quadtree/pkg/container/pqueue"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
)

type Option func(*Tree)

// WithUniverse makes the tree reject entities outside r and drop them on
// Update once they leave it.
func WithUniverse(r geom.Rect) Option {
	return func(t *Tree) {
		t.universe = &r
	}
}

func New(opts ...Option) *Tree {
	t := &Tree{}
	for _, f := range opts {
		f(t)
	}
	return t
}

type Tree struct {
	root     *node
	len      int
	universe *geom.Rect
}

func (t *Tree) accepts(e quadtree.Entity) bool {
	return e != nil && (t.universe == nil || t.universe.Contains(e.Position()))
}

func (t *Tree) Len() int {
	return t.len
}

// Insert bulk loads a balanced tree when empty; otherwise entities are added
// without rebalancing until the next Update.
func (t *Tree) Insert(entities ...quadtree.Entity) int {
	if t.root == nil {
		return t.Build(entities...)
	}
	var inserted int
	for _, e := range entities {
		if !t.accepts(e) {
			continue
		}
		t.root.insert(newNode(e), 0)
		t.len++
		inserted++
	}
	return inserted
}

// Build replaces the content with a balanced tree over entities.
func (t *Tree) Build(entities ...quadtree.Entity) int {
	nodes := make([]*node, 0, len(entities))
	for _, e := range entities {
		if t.accepts(e) {
			nodes = append(nodes, newNode(e))
		}
	}
	t.len = len(nodes)
	t.root = buildTreeRecursive(nodes, 0)
	return t.len
}

// Update drops entities that left the universe and rebuilds a balanced tree
// from the current positions of the rest.
func (t *Tree) Update() quadtree.UpdateStats {
	var stats quadtree.UpdateStats
	if t.root == nil {
		return stats
	}
	nodes := t.root.collect(make([]*node, 0, t.len))
	kept := nodes[:0]
	for _, n := range nodes {
		n.left, n.right = nil, nil
		pos := n.entity.Position()
		if !t.accepts(n.entity) {
			stats.Dropped++
			continue
		}
		if !pos.Equal(n.pos) {
			stats.Relocated++
			n.pos = pos
		}
		kept = append(kept, n)
	}
	t.len = len(kept)
	t.root = buildTreeRecursive(kept, 0)
	return stats
}

func (t *Tree) Entities() []quadtree.Entity {
	if t.root == nil {
		return []quadtree.Entity{}
	}
	nodes := t.root.collect(make([]*node, 0, t.len))
	entities := make([]quadtree.Entity, len(nodes))
	for i, n := range nodes {
		entities[i] = n.entity
	}
	return entities
}

// KNN returns up to k entities nearest first, by the positions recorded at
// the last Insert, Build or Update.
func (t *Tree) KNN(q geom.Point, k int) []quadtree.Entity {
	if t.root == nil || k <= 0 {
		return []quadtree.Entity{}
	}
	queue := pqueue.New(pqueue.WithCap(uint(k)))
	t.knn(q, k, t.root, 0, queue)

	knn := make([]quadtree.Entity, queue.Len())
	for i, v := range queue.PopAll() {
		knn[i] = v.(quadtree.Entity)
	}
	return knn
}

func (t *Tree) knn(q geom.Point, k int, n *node, dim int, queue *pqueue.Queue) {
	if n == nil {
		return
	}
	queue.Push(n.entity, q.Distance(n.pos))

	diff := q.Dim(dim) - n.pos.Dim(dim)
	near, far := n.left, n.right
	if diff >= 0 {
		near, far = n.right, n.left
	}
	next := (dim + 1) % q.Dimensions()
	t.knn(q, k, near, next, queue)
	if math.Abs(diff) <= getKthOrLastDistance(queue, k-1) {
		t.knn(q, k, far, next, queue)
	}
}

type sortNodes struct {
	dim   int
	nodes []*node
}

func (b *sortNodes) Len() int {
	return len(b.nodes)
}

func (b *sortNodes) Less(i, j int) bool {
	return b.nodes[i].pos.Dim(b.dim) < b.nodes[j].pos.Dim(b.dim)
}

func (b *sortNodes) Swap(i, j int) {
	b.nodes[i], b.nodes[j] = b.nodes[j], b.nodes[i]
}

// buildTreeRecursive splits at the median. Equal keys left of the median
// may sit in the left subtree, so KNN prunes with <=.
func buildTreeRecursive(nodes []*node, dim int) *node {
	if len(nodes) == 0 {
		return nil
	}
	sort.Sort(&sortNodes{dim: dim, nodes: nodes})
	mid := len(nodes) / 2
	root := nodes[mid]
	next := (dim + 1) % root.pos.Dimensions()
	root.left = buildTreeRecursive(nodes[:mid], next)
	root.right = buildTreeRecursive(nodes[mid+1:], next)
	return root
}

func getKthOrLastDistance(queue *pqueue.Queue, i int) float64 {
	if queue.Len() <= i {
		return math.MaxFloat64
	}
	_, distance := queue.Seek(i)
	return distance
}
