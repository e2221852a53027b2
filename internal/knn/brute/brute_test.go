package brute

import (
	"testing"

	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
)

type point struct {
	pos geom.Point
}

func (p *point) Position() geom.Point {
	return p.pos
}

func TestBrute_KNN(t *testing.T) {
	t.Parallel()
	a := &point{geom.Point{X: 0, Y: 0}}
	b := &point{geom.Point{X: 3, Y: 0}}
	c := &point{geom.Point{X: 2, Y: 2}}
	d := &point{geom.Point{X: 10, Y: 10}}

	tests := []struct {
		name     string
		k        int
		expected []quadtree.Entity
	}{
		{name: "euclidean", k: 3, expected: []quadtree.Entity{a, c, b}},
		{name: "k_exceeds_len", k: 10, expected: []quadtree.Entity{a, c, b, d}},
		{name: "zero_k", k: 0, expected: []quadtree.Entity{}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			br := New()
			br.Insert(d, b, c, a)
			got := br.KNN(geom.Point{X: -1, Y: 0}, test.k)
			if len(got) != len(test.expected) {
				t.Fatalf("knn length got: %d, expected: %d", len(got), len(test.expected))
			}
			for i := range got {
				if got[i] != test.expected[i] {
					t.Errorf("knn[%d] got: %s, expected: %s", i, got[i].Position(), test.expected[i].Position())
				}
			}
		})
	}
}

func TestBrute_Universe(t *testing.T) {
	t.Parallel()
	universe := geom.Rect{Max: geom.Point{X: 10, Y: 10}}
	br := New(WithUniverse(universe))
	in := &point{geom.Point{X: 5, Y: 5}}
	out := &point{geom.Point{X: 15, Y: 5}}
	if got := br.Insert(in, out, nil); got != 1 {
		t.Fatalf("inserted got: %d, expected: 1", got)
	}

	in.pos = geom.Point{X: 11, Y: 5}
	stats := br.Update()
	if stats.Dropped != 1 || br.Len() != 0 {
		t.Errorf("update got: %+v len %d, expected one drop and an empty index", stats, br.Len())
	}
}
