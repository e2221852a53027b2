package geom

import (
	"errors"
	"math"
	"testing"
)

func mustRect(t *testing.T, x0, y0, x1, y1 float64) Rect {
	t.Helper()
	r, err := NewRect(Point{x0, y0}, Point{x1, y1})
	if err != nil {
		t.Fatalf("NewRect: %v", err)
	}
	return r
}

func TestNewRect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		min  Point
		max  Point
		err  error
	}{
		{name: "positive", min: Point{0, 0}, max: Point{100, 100}},
		{name: "degenerate_point", min: Point{5, 5}, max: Point{5, 5}},
		{name: "inverted_x", min: Point{10, 0}, max: Point{0, 10}, err: ErrInvalidRect},
		{name: "inverted_y", min: Point{0, 10}, max: Point{10, 0}, err: ErrInvalidRect},
		{name: "nan", min: Point{math.NaN(), 0}, max: Point{10, 10}, err: ErrInvalidRect},
		{name: "negative_inf", min: Point{math.Inf(-1), math.Inf(-1)}, max: Point{10, 10}, err: ErrInvalidRect},
		{name: "positive_inf", min: Point{0, 0}, max: Point{10, math.Inf(1)}, err: ErrInvalidRect},
		{name: "max_float", min: Point{-math.MaxFloat64, -math.MaxFloat64}, max: Point{math.MaxFloat64, math.MaxFloat64}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewRect(test.min, test.max)
			if !errors.Is(err, test.err) {
				t.Errorf("NewRect error got: %v, expected: %v", err, test.err)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	t.Parallel()
	r := mustRect(t, 0, 0, 100, 100)
	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{name: "inside", p: Point{50, 50}, expected: true},
		{name: "min_corner", p: Point{0, 0}, expected: true},
		{name: "max_corner", p: Point{100, 100}, expected: true},
		{name: "left_edge", p: Point{0, 30}, expected: true},
		{name: "bottom_edge", p: Point{30, 100}, expected: true},
		{name: "outside_x", p: Point{100.0001, 50}, expected: false},
		{name: "outside_y", p: Point{50, -1}, expected: false},
	}
	for _, test := range tests {
		if got := r.Contains(test.p); got != test.expected {
			t.Errorf("%s: Contains(%s) got: %v, expected: %v", test.name, test.p, got, test.expected)
		}
	}
}

func TestRect_Distance(t *testing.T) {
	t.Parallel()
	r := mustRect(t, 0, 0, 10, 10)
	tests := []struct {
		name     string
		p        Point
		expected float64
	}{
		{name: "inside", p: Point{5, 5}, expected: 0},
		{name: "on_edge", p: Point{10, 5}, expected: 0},
		{name: "left", p: Point{-3, 5}, expected: 3},
		{name: "below", p: Point{5, 14}, expected: 4},
		{name: "corner", p: Point{13, 14}, expected: 5},
		{name: "min_corner", p: Point{-3, -4}, expected: 5},
	}
	for _, test := range tests {
		if got := r.Distance(test.p); got != test.expected {
			t.Errorf("%s: Distance(%s) got: %f, expected: %f", test.name, test.p, got, test.expected)
		}
	}
}

func TestRect_Quadrants(t *testing.T) {
	t.Parallel()
	r := mustRect(t, 0, 0, 100, 60)
	qs := r.Quadrants()
	expected := [4]Rect{
		NW: {Min: Point{0, 0}, Max: Point{50, 30}},
		NE: {Min: Point{50, 0}, Max: Point{100, 30}},
		SW: {Min: Point{0, 30}, Max: Point{50, 60}},
		SE: {Min: Point{50, 30}, Max: Point{100, 60}},
	}
	var area float64
	for i := range qs {
		if !qs[i].Equal(expected[i]) {
			t.Errorf("quadrant %d got: %s, expected: %s", i, qs[i], expected[i])
		}
		if !qs[i].IsWithin(r) {
			t.Errorf("quadrant %d %s is not within %s", i, qs[i], r)
		}
		area += qs[i].Width() * qs[i].Height()
		for j := i + 1; j < len(qs); j++ {
			if qs[i].Intersects(qs[j]) {
				t.Errorf("quadrants %d and %d overlap: %s %s", i, j, qs[i], qs[j])
			}
		}
	}
	if area != r.Width()*r.Height() {
		t.Errorf("quadrant area got: %f, expected: %f", area, r.Width()*r.Height())
	}
}

func TestRect_QuadrantOf(t *testing.T) {
	t.Parallel()
	r := mustRect(t, 0, 0, 100, 100)
	tests := []struct {
		name     string
		p        Point
		expected int
	}{
		{name: "nw", p: Point{10, 10}, expected: NW},
		{name: "ne", p: Point{80, 20}, expected: NE},
		{name: "sw", p: Point{20, 80}, expected: SW},
		{name: "se", p: Point{80, 80}, expected: SE},
		{name: "center", p: Point{50, 50}, expected: NW},
		{name: "vertical_split", p: Point{50, 80}, expected: SW},
		{name: "horizontal_split", p: Point{80, 50}, expected: NE},
	}
	qs := r.Quadrants()
	for _, test := range tests {
		got := r.QuadrantOf(test.p)
		if got != test.expected {
			t.Errorf("%s: QuadrantOf(%s) got: %d, expected: %d", test.name, test.p, got, test.expected)
		}
		if !qs[got].Contains(test.p) {
			t.Errorf("%s: quadrant %s does not contain %s", test.name, qs[got], test.p)
		}
	}
}

func TestRect_Intersects(t *testing.T) {
	t.Parallel()
	a := mustRect(t, 0, 0, 10, 10)
	tests := []struct {
		name     string
		b        Rect
		expected bool
	}{
		{name: "overlap", b: mustRect(t, 5, 5, 15, 15), expected: true},
		{name: "shared_edge", b: mustRect(t, 10, 0, 20, 10), expected: false},
		{name: "disjoint", b: mustRect(t, 20, 20, 30, 30), expected: false},
		{name: "inner", b: mustRect(t, 2, 2, 3, 3), expected: true},
	}
	for _, test := range tests {
		if got := a.Intersects(test.b); got != test.expected {
			t.Errorf("%s: Intersects got: %v, expected: %v", test.name, got, test.expected)
		}
	}
}

func TestRect_CenterHugeCoordinates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		rect     Rect
		expected Point
	}{
		{name: "symmetric", rect: mustRect(t, -math.MaxFloat64, -math.MaxFloat64, math.MaxFloat64, math.MaxFloat64), expected: Point{0, 0}},
		{name: "upper_half", rect: mustRect(t, math.MaxFloat64/2, 0, math.MaxFloat64, 0), expected: Point{math.MaxFloat64 / 4 * 3, 0}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := test.rect.Center()
			if got.IsInf() || !got.Equal(test.expected) {
				t.Errorf("center got: %v, expected: %v", got, test.expected)
			}
		})
	}
}
