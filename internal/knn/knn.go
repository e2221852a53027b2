// Package knn defines the index contract shared by the quadtree and the
// brute-force reference, and picks an implementation from configuration.
package knn

import (
	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
)

type ProvideFn func() (Index, error)

// Index is a point index re-synchronised with moving entities by Update.
type Index interface {
	Insert(entities ...quadtree.Entity) int
	Update() quadtree.UpdateStats
	KNN(q geom.Point, k int) []quadtree.Entity
	Len() int
	Entities() []quadtree.Entity
}

var (
	_ Index = (*quadtree.Tree)(nil)
)
