// Package brute answers nearest neighbour queries by scanning every entity.
// It is the reference the quadtree is checked against.
package brute

import (
	"github.com/go-sod/quadtree/pkg/container/pqueue"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
)

type Option func(*Brute)

// WithUniverse rejects entities outside r on Insert and drops them on Update.
func WithUniverse(r geom.Rect) Option {
	return func(b *Brute) {
		b.universe = &r
	}
}

func New(opts ...Option) *Brute {
	b := &Brute{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type Brute struct {
	data     []quadtree.Entity
	universe *geom.Rect
}

func (b *Brute) accepts(e quadtree.Entity) bool {
	return e != nil && (b.universe == nil || b.universe.Contains(e.Position()))
}

func (b *Brute) Insert(entities ...quadtree.Entity) int {
	var inserted int
	for _, e := range entities {
		if !b.accepts(e) {
			continue
		}
		b.data = append(b.data, e)
		inserted++
	}
	return inserted
}

func (b *Brute) Update() quadtree.UpdateStats {
	var stats quadtree.UpdateStats
	kept := b.data[:0]
	for _, e := range b.data {
		if b.accepts(e) {
			kept = append(kept, e)
			continue
		}
		stats.Dropped++
	}
	for i := len(kept); i < len(b.data); i++ {
		b.data[i] = nil
	}
	b.data = kept
	return stats
}

func (b *Brute) Len() int {
	return len(b.data)
}

func (b *Brute) Entities() []quadtree.Entity {
	entities := make([]quadtree.Entity, len(b.data))
	copy(entities, b.data)
	return entities
}

// KNN returns up to k entities nearest first. Ties keep insertion order.
func (b *Brute) KNN(q geom.Point, k int) []quadtree.Entity {
	if k <= 0 {
		return []quadtree.Entity{}
	}
	pq := pqueue.New(pqueue.WithCap(uint(k)))
	for _, e := range b.data {
		pq.Push(e, q.Distance(e.Position()))
	}
	knn := make([]quadtree.Entity, pq.Len())
	for i, v := range pq.PopAll() {
		knn[i] = v.(quadtree.Entity)
	}
	return knn
}
