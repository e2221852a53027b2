package quadtree

import (
	"github.com/go-sod/quadtree/pkg/geom"
)

// Node is either a leaf holding a bucket of entities or an internal node with
// exactly four children (NW, NE, SW, SE). Nodes are owned top-down by their
// tree; the parent link is only followed upwards during relocation.
type Node struct {
	tree     *Tree
	parent   *Node
	boundary geom.Rect
	children [4]*Node
	bucket   []Entity
	leaf     bool
	depth    int
}

func newNode(tree *Tree, parent *Node, boundary geom.Rect) *Node {
	n := &Node{
		tree:     tree,
		parent:   parent,
		boundary: boundary,
		leaf:     true,
	}
	if parent != nil {
		n.depth = parent.depth + 1
	}
	return n
}

func (n *Node) Boundary() geom.Rect {
	return n.boundary
}

func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Parent returns nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Depth() int {
	return n.depth
}

// Children returns the four children of an internal node; all entries are
// nil for a leaf.
func (n *Node) Children() [4]*Node {
	return n.children
}

func (n *Node) Child(idx int) *Node {
	return n.children[idx]
}

// Bucket returns a copy of the entities stored directly in this node.
func (n *Node) Bucket() []Entity {
	bucket := make([]Entity, len(n.bucket))
	copy(bucket, n.bucket)
	return bucket
}

func (n *Node) Len() int {
	return len(n.bucket)
}

func (n *Node) insert(e Entity) bool {
	if !n.boundary.Contains(e.Position()) {
		return false
	}
	if n.leaf {
		if len(n.bucket) < n.tree.bucketSize || n.depth >= n.tree.maxDepth {
			n.bucket = append(n.bucket, e)
			return true
		}
		n.subdivide()
	}
	return n.propagate(e)
}

// propagate hands e to the leaf under n that owns its position. The caller
// has already validated e against the universe.
func (n *Node) propagate(e Entity) bool {
	p := e.Position()
	if !n.boundary.Contains(p) {
		return false
	}
	if n.leaf {
		return n.insert(e)
	}
	return n.children[n.boundary.QuadrantOf(p)].propagate(e)
}

func (n *Node) subdivide() {
	for i, quadrant := range n.boundary.Quadrants() {
		n.children[i] = newNode(n.tree, n, quadrant)
	}
	n.leaf = false
	n.tree.stats.Subdivided++

	// Entities that moved out of n since the last pass count as relocated.
	bucket := n.bucket
	n.bucket = nil
	for _, e := range bucket {
		stale := !n.boundary.Contains(e.Position())
		switch {
		case !n.relocate(e):
			n.tree.dropped(e)
		case stale:
			n.tree.stats.Relocated++
		}
	}
}

// relocate walks up from n to the first ancestor containing e and descends
// from there. It returns false when no ancestor contains e, i.e. e has left
// the universe and is no longer indexed.
func (n *Node) relocate(e Entity) bool {
	p := e.Position()
	for cur := n; cur != nil; cur = cur.parent {
		if cur.boundary.Contains(p) {
			return cur.propagate(e)
		}
	}
	return false
}

// update repairs the subtree post-order: children first, then this node.
func (n *Node) update() {
	if !n.leaf {
		for _, child := range n.children {
			child.update()
		}
		n.consolidate()
		return
	}

	var displaced []Entity
	kept := n.bucket[:0]
	for _, e := range n.bucket {
		if n.boundary.Contains(e.Position()) {
			kept = append(kept, e)
		} else {
			displaced = append(displaced, e)
		}
	}
	for i := len(kept); i < len(n.bucket); i++ {
		n.bucket[i] = nil
	}
	n.bucket = kept

	for _, e := range displaced {
		if n.relocate(e) {
			n.tree.stats.Relocated++
		} else {
			n.tree.dropped(e)
		}
	}
}

// consolidate merges the children of an internal node back into it when at
// most one child is occupied and its entities fit in a bucket. It merges one
// level only.
func (n *Node) consolidate() bool {
	if n.leaf {
		return false
	}

	var (
		occupied int
		count    int
		single   *Node
	)
	for _, child := range n.children {
		if !child.leaf || len(child.bucket) > 0 {
			occupied++
			count += len(child.bucket)
			single = child
		}
	}

	switch {
	case occupied == 0:
		n.collapse(nil)
	case occupied == 1 && single.leaf && count <= n.tree.bucketSize:
		n.collapse(single.bucket)
	default:
		return false
	}
	n.tree.stats.Consolidated++
	return true
}

func (n *Node) collapse(bucket []Entity) {
	for i, child := range n.children {
		child.parent = nil
		n.children[i] = nil
	}
	n.bucket = bucket
	n.leaf = true
}

func (n *Node) walk(fn func(*Node) bool) {
	if !fn(n) || n.leaf {
		return
	}
	for _, child := range n.children {
		child.walk(fn)
	}
}
