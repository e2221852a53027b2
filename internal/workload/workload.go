// Package workload drives an index through discrete steps of moving
// particles, update passes and nearest neighbour queries.
package workload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sod/quadtree/internal/config"
	"github.com/go-sod/quadtree/internal/knn"
	"github.com/go-sod/quadtree/internal/knn/brute"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/metrics"
	"github.com/go-sod/quadtree/internal/particle"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
	"golang.org/x/sync/errgroup"
)

var ErrMismatch = errors.New("knn result differs from brute force")

type Result struct {
	Scenario     string
	Alg          knn.AlgType
	Replica      int
	Inserted     int
	Rejected     int
	Steps        int
	Relocated    int
	Dropped      int
	Consolidated int
	Indexed      int
	Queries      int
	Verified     int
	InsertTime   time.Duration
	UpdateTime   time.Duration
	QueryTime    time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("%-16s %-9s #%d  indexed %6d  relocated %8d  dropped %6d  merged %6d  update %10v  knn %10v  verified %d/%d",
		r.Scenario, r.Alg, r.Replica, r.Indexed, r.Relocated, r.Dropped, r.Consolidated,
		r.UpdateTime.Round(time.Microsecond), r.QueryTime.Round(time.Microsecond), r.Verified, r.Queries)
}

type Runner struct {
	scenario  config.Scenario
	universe  geom.Rect
	index     knn.Index
	particles []*particle.Particle
	replica   int
	// oracle shadows the index over every particle when verification is on.
	oracle *brute.Brute
}

// New creates a runner over an empty index built for the scenario.
func New(scenario config.Scenario, index knn.Index, replica int) (*Runner, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	universe, err := scenario.Universe()
	if err != nil {
		return nil, err
	}
	return &Runner{
		scenario: scenario,
		universe: universe,
		index:    index,
		replica:  replica,
	}, nil
}

// spawn creates the scenario particles. Outside particles are placed in a
// region of the same size right of the universe.
func (r *Runner) spawn() {
	r.particles = particle.RandomN(r.scenario.Particles, r.universe, r.scenario.MaxSpeed)
	if r.scenario.Outside > 0 {
		offset := geom.Point{X: r.universe.Width() + 1}
		outside := geom.Rect{Min: r.universe.Min.Add(offset), Max: r.universe.Max.Add(offset)}
		r.particles = append(r.particles, particle.RandomN(r.scenario.Outside, outside, r.scenario.MaxSpeed)...)
	}
	if r.scenario.Verify {
		r.oracle = brute.New(brute.WithUniverse(r.universe))
		r.oracle.Insert(particle.Entities(r.particles)...)
	}
}

func (r *Runner) Run(ctx context.Context) (Result, error) {
	logger := logging.FromContext(ctx).With("scenario", r.scenario.Name, "replica", r.replica)
	res := Result{Scenario: r.scenario.Name, Alg: r.scenario.Alg, Replica: r.replica}

	ctx, err := metrics.WithTags(ctx, string(r.scenario.Alg), r.scenario.Name)
	if err != nil {
		return res, fmt.Errorf("unable to tag metrics: %w", err)
	}

	r.spawn()
	start := time.Now()
	res.Inserted = r.index.Insert(particle.Entities(r.particles)...)
	res.InsertTime = time.Since(start)
	res.Rejected = len(r.particles) - res.Inserted
	metrics.RecordInsert(ctx, res.Inserted, res.Rejected)
	logger.Debugw("particles inserted", "inserted", res.Inserted, "rejected", res.Rejected)

	for step := 0; step < r.scenario.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		for _, p := range r.particles {
			p.Jitter(r.scenario.MaxSpeed)
			p.Step(1)
		}
		start := time.Now()
		us := r.index.Update()
		latency := time.Since(start)

		res.Steps++
		res.UpdateTime += latency
		res.Relocated += us.Relocated
		res.Dropped += us.Dropped
		res.Consolidated += us.Consolidated
		metrics.RecordUpdate(ctx, us, latency, r.index.Len())
		if r.oracle != nil {
			r.oracle.Update()
		}
	}
	res.Indexed = r.index.Len()

	if err := r.query(ctx, &res); err != nil {
		return res, err
	}
	logger.Infow("scenario finished", "indexed", res.Indexed, "relocated", res.Relocated,
		"dropped", res.Dropped, "consolidated", res.Consolidated, "update_time", res.UpdateTime.String())
	return res, nil
}

func (r *Runner) query(ctx context.Context, res *Result) error {
	if r.oracle != nil && r.oracle.Len() != res.Indexed {
		return fmt.Errorf("scenario %s indexes %d entities, expected %d: %w",
			r.scenario.Name, res.Indexed, r.oracle.Len(), ErrMismatch)
	}
	for i := 0; i < r.scenario.Queries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		q := particle.RandomPoint(r.universe)
		start := time.Now()
		got := r.index.KNN(q, r.scenario.K)
		latency := time.Since(start)
		res.QueryTime += latency
		res.Queries++
		metrics.RecordKNN(ctx, latency)

		if r.oracle == nil {
			continue
		}
		if err := Verify(q, got, r.oracle.KNN(q, r.scenario.K)); err != nil {
			return fmt.Errorf("scenario %s query %d: %w", r.scenario.Name, i, err)
		}
		res.Verified++
	}
	return nil
}

// Verify compares two neighbour lists rank by rank on distance, so ties may
// come back in either order.
func Verify(q geom.Point, got, expected []quadtree.Entity) error {
	if len(got) != len(expected) {
		return fmt.Errorf("query %s returned %d entities, expected %d: %w", q, len(got), len(expected), ErrMismatch)
	}
	for i := range got {
		d, d1 := got[i].Position().Distance(q), expected[i].Position().Distance(q)
		if d != d1 {
			return fmt.Errorf("query %s rank %d at distance %f, expected %f: %w", q, i, d, d1, ErrMismatch)
		}
	}
	return nil
}

// RunAll runs every scenario replicas times concurrently. Each run owns its
// index; indexes are never shared between goroutines.
func RunAll(ctx context.Context, scenarios []config.Scenario, replicas int,
	provide func(config.Scenario) (knn.Index, error)) ([]Result, error) {
	if replicas < 1 {
		replicas = 1
	}
	results := make([]Result, len(scenarios)*replicas)
	g, ctx := errgroup.WithContext(ctx)
	for i := range scenarios {
		for rep := 0; rep < replicas; rep++ {
			scenario, slot, rep := scenarios[i], i*replicas+rep, rep
			g.Go(func() error {
				idx, err := provide(scenario)
				if err != nil {
					return err
				}
				runner, err := New(scenario, idx, rep)
				if err != nil {
					return err
				}
				res, err := runner.Run(ctx)
				results[slot] = res
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
