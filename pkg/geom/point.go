package geom

import (
	"math"
	"strconv"
)

// Point is a position or displacement in the plane.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Dimensions() int {
	return 2
}

func (p Point) Dim(idx int) float64 {
	if idx == 0 {
		return p.X
	}
	return p.Y
}

func (p Point) Points() []float64 {
	return []float64{p.X, p.Y}
}

func (p Point) Add(p1 Point) Point {
	return Point{X: p.X + p1.X, Y: p.Y + p1.Y}
}

func (p Point) Sub(p1 Point) Point {
	return Point{X: p.X - p1.X, Y: p.Y - p1.Y}
}

func (p Point) Scale(value float64) Point {
	return Point{X: p.X * value, Y: p.Y * value}
}

// Mid returns the midpoint between p and p1. Halves are summed so that
// coordinates near math.MaxFloat64 do not overflow.
func (p Point) Mid(p1 Point) Point {
	return Point{X: p.X/2 + p1.X/2, Y: p.Y/2 + p1.Y/2}
}

func (p Point) Magnitude() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance is the Euclidean distance between p and p1.
func (p Point) Distance(p1 Point) float64 {
	return math.Hypot(p.X-p1.X, p.Y-p1.Y)
}

func (p Point) Equal(p1 Point) bool {
	return p.X == p1.X && p.Y == p1.Y
}

func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

func (p Point) IsInf() bool {
	return math.IsInf(p.X, 0) || math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}
