package kdtree

import (
	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
)

// node keeps the entity position seen when the node was built; Update
// compares it with the live position.
type node struct {
	entity quadtree.Entity
	pos    geom.Point
	left   *node
	right  *node
}

func newNode(e quadtree.Entity) *node {
	return &node{entity: e, pos: e.Position()}
}

func (n *node) collect(out []*node) []*node {
	if n.left != nil {
		out = n.left.collect(out)
	}
	out = append(out, n)
	if n.right != nil {
		out = n.right.collect(out)
	}
	return out
}

func (n *node) insert(nn *node, dim int) {
	next := (dim + 1) % n.pos.Dimensions()
	if nn.pos.Dim(dim) < n.pos.Dim(dim) {
		if n.left == nil {
			n.left = nn
			return
		}
		n.left.insert(nn, next)
		return
	}
	if n.right == nil {
		n.right = nn
		return
	}
	n.right.insert(nn, next)
}
