package knn

import (
	"errors"
	"testing"

	"github.com/go-sod/quadtree/internal/knn/brute"
	"github.com/go-sod/quadtree/internal/knn/kdtree"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
)

func TestIndexFor(t *testing.T) {
	t.Parallel()
	universe := geom.Rect{Max: geom.Point{X: 100, Y: 100}}
	tests := []struct {
		name     string
		alg      AlgType
		cfg      Config
		err      error
		expected string
	}{
		{name: "quadtree", alg: AlgTypeQuadTree, cfg: Config{Universe: universe, BucketSize: 4, MaxDepth: 8}, expected: "quadtree"},
		{name: "brute", alg: AlgTypeBrute, cfg: Config{Universe: universe}, expected: "brute"},
		{name: "kdtree", alg: AlgTypeKDTree, cfg: Config{Universe: universe}, expected: "kdtree"},
		{name: "kdtree_bad_universe", alg: AlgTypeKDTree, cfg: Config{Universe: geom.Rect{Min: geom.Point{Y: 1}}}, err: geom.ErrInvalidRect},
		{name: "quadtree_bad_bucket", alg: AlgTypeQuadTree, cfg: Config{Universe: universe}, err: quadtree.ErrInvalidBucketSize},
		{name: "brute_bad_universe", alg: AlgTypeBrute, cfg: Config{Universe: geom.Rect{Min: geom.Point{X: 1}}}, err: geom.ErrInvalidRect},
		{name: "unknown", alg: "BALL_TREE", cfg: Config{Universe: universe, BucketSize: 4}, err: ErrUnknownAlg},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			idx, err := IndexFor(test.alg, test.cfg)
			if !errors.Is(err, test.err) {
				t.Fatalf("IndexFor error got: %v, expected: %v", err, test.err)
			}
			if err != nil {
				return
			}
			var got string
			switch idx.(type) {
			case *quadtree.Tree:
				got = "quadtree"
			case *brute.Brute:
				got = "brute"
			case *kdtree.Tree:
				got = "kdtree"
			}
			if got != test.expected {
				t.Errorf("index type got: %T, expected: %s", idx, test.expected)
			}
		})
	}
}
