package knn

import (
	"errors"
	"fmt"

	"github.com/go-sod/quadtree/internal/knn/brute"
	"github.com/go-sod/quadtree/internal/knn/kdtree"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
	"go.uber.org/zap"
)

type AlgType string

const (
	AlgTypeQuadTree AlgType = "QUADTREE"
	AlgTypeBrute    AlgType = "BRUTE"
	AlgTypeKDTree   AlgType = "KDTREE"
)

var ErrUnknownAlg = errors.New("unknown knn algorithm")

var (
	_ Index = (*brute.Brute)(nil)
	_ Index = (*kdtree.Tree)(nil)
)

type Config struct {
	Universe   geom.Rect
	BucketSize int
	MaxDepth   int
	Logger     *zap.SugaredLogger
}

// IndexFor builds an empty index of the requested kind over cfg.Universe.
func IndexFor(a AlgType, cfg Config) (Index, error) {
	switch a {
	case AlgTypeQuadTree:
		opts := []quadtree.Option{quadtree.WithLogger(cfg.Logger)}
		if cfg.MaxDepth > 0 {
			opts = append(opts, quadtree.WithMaxDepth(cfg.MaxDepth))
		}
		tree, err := quadtree.New(cfg.Universe, cfg.BucketSize, opts...)
		if err != nil {
			return nil, fmt.Errorf("unable to create quadtree index: %w", err)
		}
		return tree, nil
	case AlgTypeBrute:
		if !cfg.Universe.IsValid() {
			return nil, fmt.Errorf("unable to create brute index %s: %w", cfg.Universe, geom.ErrInvalidRect)
		}
		return brute.New(brute.WithUniverse(cfg.Universe)), nil
	case AlgTypeKDTree:
		if !cfg.Universe.IsValid() {
			return nil, fmt.Errorf("unable to create kdtree index %s: %w", cfg.Universe, geom.ErrInvalidRect)
		}
		return kdtree.New(kdtree.WithUniverse(cfg.Universe)), nil
	default:
		return nil, fmt.Errorf("unable to create index with alg type %s: %w", a, ErrUnknownAlg)
	}
}
