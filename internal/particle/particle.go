// Package particle provides the moving entities the workloads index.
package particle

import (
	"fmt"

	"github.com/go-sod/quadtree/pkg/container/quadtree"
	"github.com/go-sod/quadtree/pkg/geom"
	"github.com/google/uuid"
	"github.com/valyala/fastrand"
)

var _ quadtree.Entity = (*Particle)(nil)

type Particle struct {
	ID       uuid.UUID
	Pos      geom.Point
	Velocity geom.Point
}

func New(pos, velocity geom.Point) *Particle {
	return &Particle{
		ID:       uuid.New(),
		Pos:      pos,
		Velocity: velocity,
	}
}

func (p *Particle) Position() geom.Point {
	return p.Pos
}

// Step advances the particle by its velocity over dt.
func (p *Particle) Step(dt float64) {
	p.Pos = p.Pos.Add(p.Velocity.Scale(dt))
}

// Jitter replaces the velocity with a random one bounded by maxSpeed on
// each axis.
func (p *Particle) Jitter(maxSpeed float64) {
	p.Velocity = geom.Point{
		X: (Float64()*2 - 1) * maxSpeed,
		Y: (Float64()*2 - 1) * maxSpeed,
	}
}

func (p *Particle) String() string {
	return fmt.Sprintf("particle %s at %s", p.ID, p.Pos)
}

// Float64 returns a pseudo-random number in [0, 1).
func Float64() float64 {
	return float64(fastrand.Uint32()) / (1 << 32)
}

// RandomPoint returns a point uniformly distributed inside r.
func RandomPoint(r geom.Rect) geom.Point {
	return geom.Point{
		X: r.Min.X + Float64()*r.Width(),
		Y: r.Min.Y + Float64()*r.Height(),
	}
}

func Random(r geom.Rect, maxSpeed float64) *Particle {
	p := New(RandomPoint(r), geom.Point{})
	p.Jitter(maxSpeed)
	return p
}

func RandomN(n int, r geom.Rect, maxSpeed float64) []*Particle {
	particles := make([]*Particle, n)
	for i := range particles {
		particles[i] = Random(r, maxSpeed)
	}
	return particles
}

func Entities(particles []*Particle) []quadtree.Entity {
	entities := make([]quadtree.Entity, len(particles))
	for i := range particles {
		entities[i] = particles[i]
	}
	return entities
}
