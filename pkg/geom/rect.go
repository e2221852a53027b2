package geom

import (
	"errors"
	"fmt"
)

var ErrInvalidRect = errors.New("rect min corner exceeds max corner")

// Quadrant indexes, in the order children are stored. Y grows to the south.
const (
	NW = iota
	NE
	SW
	SE
)

// Rect is an axis-aligned rectangle. A valid Rect has Min <= Max on both axes.
type Rect struct {
	Min Point
	Max Point
}

// NewRect rejects corners that would produce an invalid rectangle instead of
// swapping them.
func NewRect(min, max Point) (Rect, error) {
	r := Rect{Min: min, Max: max}
	if !r.IsValid() {
		return Rect{}, fmt.Errorf("new rect %s: %w", r, ErrInvalidRect)
	}
	return r, nil
}

// IsValid reports whether r has finite corners with min <= max on both axes.
func (r Rect) IsValid() bool {
	if r.Min.IsNaN() || r.Max.IsNaN() || r.Min.IsInf() || r.Max.IsInf() {
		return false
	}
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y
}

func (r Rect) Center() Point {
	return r.Min.Mid(r.Max)
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Contains is inclusive on all four edges.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports a strict overlap; rectangles sharing only an edge do not
// intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X < other.Max.X && r.Max.X > other.Min.X &&
		r.Min.Y < other.Max.Y && r.Max.Y > other.Min.Y
}

func (r Rect) IsWithin(other Rect) bool {
	return r.Min.X >= other.Min.X && r.Max.X <= other.Max.X &&
		r.Min.Y >= other.Min.Y && r.Max.Y <= other.Max.Y
}

// Distance returns 0 for a contained point, otherwise the Euclidean distance
// to the nearest edge or corner.
func (r Rect) Distance(p Point) float64 {
	var dx, dy float64
	if p.X < r.Min.X {
		dx = r.Min.X - p.X
	} else if p.X > r.Max.X {
		dx = p.X - r.Max.X
	}
	if p.Y < r.Min.Y {
		dy = r.Min.Y - p.Y
	} else if p.Y > r.Max.Y {
		dy = p.Y - r.Max.Y
	}
	return Point{X: dx, Y: dy}.Magnitude()
}

// Quadrants splits r at its center into NW, NE, SW, SE.
func (r Rect) Quadrants() [4]Rect {
	c := r.Center()
	return [4]Rect{
		NW: {Min: r.Min, Max: c},
		NE: {Min: Point{X: c.X, Y: r.Min.Y}, Max: Point{X: r.Max.X, Y: c.Y}},
		SW: {Min: Point{X: r.Min.X, Y: c.Y}, Max: Point{X: c.X, Y: r.Max.Y}},
		SE: {Min: c, Max: r.Max},
	}
}

// QuadrantOf returns the quadrant owning p. Points on the vertical split line
// belong to the west half and points on the horizontal split line to the
// north (lower Y) half, so the lower/left quadrant owns every shared edge.
func (r Rect) QuadrantOf(p Point) int {
	c := r.Center()
	q := NW
	if p.X > c.X {
		q |= NE
	}
	if p.Y > c.Y {
		q |= SW
	}
	return q
}

func (r Rect) Equal(other Rect) bool {
	return r.Min.Equal(other.Min) && r.Max.Equal(other.Max)
}

func (r Rect) String() string {
	return "[Min:" + r.Min.String() + ", Max:" + r.Max.String() + "]"
}
