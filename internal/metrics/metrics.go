// Package metrics records index activity with OpenCensus and exposes it to
// Prometheus.
package metrics

import (
	"context"
	"fmt"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const Namespace = "qtree"

var (
	KeyAlg, _      = tag.NewKey("alg")
	KeyScenario, _ = tag.NewKey("scenario")
)

var (
	MInserted     = stats.Int64("qtree/inserted", "Entities accepted by the index", stats.UnitDimensionless)
	MRejected     = stats.Int64("qtree/rejected", "Entities rejected outside the universe", stats.UnitDimensionless)
	MRelocated    = stats.Int64("qtree/relocated", "Entities re-indexed by update passes", stats.UnitDimensionless)
	MDropped      = stats.Int64("qtree/dropped", "Entities dropped after leaving the universe", stats.UnitDimensionless)
	MConsolidated = stats.Int64("qtree/consolidated", "Nodes merged back into leaves", stats.UnitDimensionless)
	MIndexed      = stats.Int64("qtree/indexed", "Entities held by the index after an update", stats.UnitDimensionless)
	MUpdateMs     = stats.Float64("qtree/update_latency", "Update pass latency", stats.UnitMilliseconds)
	MKNNMs        = stats.Float64("qtree/knn_latency", "KNN query latency", stats.UnitMilliseconds)
)

var latencyDistribution = view.Distribution(0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000)

func Views() []*view.View {
	tags := []tag.Key{KeyAlg, KeyScenario}
	sum := func(m stats.Measure) *view.View {
		return &view.View{
			Name:        m.Name(),
			Description: m.Description(),
			Measure:     m,
			TagKeys:     tags,
			Aggregation: view.Sum(),
		}
	}
	return []*view.View{
		sum(MInserted),
		sum(MRejected),
		sum(MRelocated),
		sum(MDropped),
		sum(MConsolidated),
		{
			Name:        MIndexed.Name(),
			Description: MIndexed.Description(),
			Measure:     MIndexed,
			TagKeys:     tags,
			Aggregation: view.LastValue(),
		},
		{
			Name:        MUpdateMs.Name(),
			Description: MUpdateMs.Description(),
			Measure:     MUpdateMs,
			TagKeys:     tags,
			Aggregation: latencyDistribution,
		},
		{
			Name:        MKNNMs.Name(),
			Description: MKNNMs.Description(),
			Measure:     MKNNMs,
			TagKeys:     tags,
			Aggregation: latencyDistribution,
		},
	}
}

func Register() error {
	if err := view.Register(Views()...); err != nil {
		return fmt.Errorf("unable to register views: %w", err)
	}
	return nil
}

// NewExporter returns a Prometheus handler serving every registered view.
func NewExporter() (*prometheus.Exporter, error) {
	pe, err := prometheus.NewExporter(prometheus.Options{Namespace: Namespace})
	if err != nil {
		return nil, fmt.Errorf("unable to create prometheus exporter: %w", err)
	}
	return pe, nil
}

// WithTags tags ctx with the index algorithm and scenario name.
func WithTags(ctx context.Context, alg, scenario string) (context.Context, error) {
	return tag.New(ctx, tag.Upsert(KeyAlg, alg), tag.Upsert(KeyScenario, scenario))
}

func RecordInsert(ctx context.Context, inserted, rejected int) {
	stats.Record(ctx, MInserted.M(int64(inserted)), MRejected.M(int64(rejected)))
}

func RecordUpdate(ctx context.Context, us quadtree.UpdateStats, latency time.Duration, indexed int) {
	stats.Record(ctx,
		MRelocated.M(int64(us.Relocated)),
		MDropped.M(int64(us.Dropped)),
		MConsolidated.M(int64(us.Consolidated)),
		MIndexed.M(int64(indexed)),
		MUpdateMs.M(millis(latency)),
	)
}

func RecordKNN(ctx context.Context, latency time.Duration) {
	stats.Record(ctx, MKNNMs.M(millis(latency)))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
