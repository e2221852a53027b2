// Package quadtree implements a dynamic bucketed region quadtree over
// point-positioned entities. Entities are inserted once and re-indexed in
// bulk by Update after their positions change; Update also merges regions
// that emptied out. KNN answers best-first nearest neighbour queries.
//
// A Tree is not safe for concurrent use. Callers sharing a tree between
// goroutines must serialize Insert, Update and KNN themselves.
package quadtree

import (
	"errors"
	"fmt"

	"github.com/go-sod/quadtree/pkg/geom"
	"go.uber.org/zap"
)

const (
	DefaultBucketSize = 4
	// DefaultMaxDepth bounds subdivision. Leaves at this depth accept
	// entities beyond the bucket size, so coincident entities cannot
	// subdivide forever.
	DefaultMaxDepth = 32
)

var (
	ErrInvalidBucketSize = errors.New("bucket size must be positive")
	ErrInvalidMaxDepth   = errors.New("max depth must be positive")
)

// Entity is anything with a position in the plane. The tree keeps the handle
// it is given and reads Position on every containment check.
type Entity interface {
	Position() geom.Point
}

type Option func(*Tree)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

func WithMaxDepth(depth int) Option {
	return func(t *Tree) {
		t.maxDepth = depth
	}
}

// Stats are cumulative counters over the life of a tree.
type Stats struct {
	Inserted     int
	Rejected     int
	Relocated    int
	Dropped      int
	Subdivided   int
	Consolidated int
}

// UpdateStats describes one Update pass.
type UpdateStats struct {
	Relocated    int
	Dropped      int
	Consolidated int
}

type Tree struct {
	root       *Node
	bucketSize int
	maxDepth   int
	logger     *zap.SugaredLogger
	stats      Stats
}

// New creates an empty tree indexing the given boundary. Entities outside it
// are never stored.
func New(boundary geom.Rect, bucketSize int, opts ...Option) (*Tree, error) {
	if !boundary.IsValid() {
		return nil, fmt.Errorf("quadtree boundary %s: %w", boundary, geom.ErrInvalidRect)
	}
	if bucketSize < 1 {
		return nil, fmt.Errorf("quadtree bucket size %d: %w", bucketSize, ErrInvalidBucketSize)
	}
	t := &Tree{
		bucketSize: bucketSize,
		maxDepth:   DefaultMaxDepth,
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxDepth < 1 {
		return nil, fmt.Errorf("quadtree max depth %d: %w", t.maxDepth, ErrInvalidMaxDepth)
	}
	if t.logger == nil {
		t.logger = zap.NewNop().Sugar()
	}
	t.root = newNode(t, nil, boundary)
	return t, nil
}

func NewWithDefaults(boundary geom.Rect, opts ...Option) (*Tree, error) {
	return New(boundary, DefaultBucketSize, opts...)
}

// Insert adds every entity whose position lies inside the tree boundary and
// returns how many were stored. The rest are dropped without error.
func (t *Tree) Insert(entities ...Entity) int {
	var inserted int
	for _, e := range entities {
		if e == nil {
			t.stats.Rejected++
			continue
		}
		if !t.root.insert(e) {
			t.stats.Rejected++
			t.logger.Debugw("entity outside universe rejected",
				"position", e.Position().String(), "boundary", t.root.boundary.String())
			continue
		}
		inserted++
	}
	t.stats.Inserted += inserted
	return inserted
}

// Update re-indexes every entity whose position left its leaf and merges
// regions that became empty or singly occupied. Entities that left the tree
// boundary are removed from the index.
func (t *Tree) Update() UpdateStats {
	before := t.stats
	t.root.update()
	us := UpdateStats{
		Relocated:    t.stats.Relocated - before.Relocated,
		Dropped:      t.stats.Dropped - before.Dropped,
		Consolidated: t.stats.Consolidated - before.Consolidated,
	}
	if us.Relocated > 0 || us.Dropped > 0 || us.Consolidated > 0 {
		t.logger.Debugw("update pass",
			"relocated", us.Relocated, "dropped", us.Dropped, "consolidated", us.Consolidated)
	}
	return us
}

func (t *Tree) dropped(e Entity) {
	t.stats.Dropped++
	t.logger.Debugw("entity left universe, dropped from index",
		"position", e.Position().String(), "boundary", t.root.boundary.String())
}

func (t *Tree) Root() *Node {
	return t.root
}

func (t *Tree) Boundary() geom.Rect {
	return t.root.boundary
}

func (t *Tree) BucketSize() int {
	return t.bucketSize
}

func (t *Tree) MaxDepth() int {
	return t.maxDepth
}

func (t *Tree) Stats() Stats {
	return t.stats
}

// Walk visits nodes in pre-order. Returning false from fn skips the
// children of that node.
func (t *Tree) Walk(fn func(n *Node) bool) {
	t.root.walk(fn)
}

// Len counts the indexed entities.
func (t *Tree) Len() int {
	var l int
	t.Walk(func(n *Node) bool {
		l += len(n.bucket)
		return true
	})
	return l
}

func (t *Tree) Entities() []Entity {
	var entities []Entity
	t.Walk(func(n *Node) bool {
		entities = append(entities, n.bucket...)
		return true
	})
	return entities
}

// Depth is the depth of the deepest node; a lone root has depth 0.
func (t *Tree) Depth() int {
	var depth int
	t.Walk(func(n *Node) bool {
		if n.depth > depth {
			depth = n.depth
		}
		return true
	})
	return depth
}
