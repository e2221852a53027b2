package geom

import "testing"

func TestPoint_Dim(t *testing.T) {
	t.Parallel()
	p := NewPoint(1, 2)
	if p.Dimensions() != 2 {
		t.Errorf("dimensions got: %d, expected: 2", p.Dimensions())
	}
	if p.Dim(0) != 1 || p.Dim(1) != 2 {
		t.Errorf("dimension specified incorrectly, got: %f %f", p.Dim(0), p.Dim(1))
	}
	slice := p.Points()
	if len(slice) != 2 || slice[0] != 1 || slice[1] != 2 {
		t.Errorf("conversion to []float64 got: %v", slice)
	}
}

func TestPoint_Arithmetic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		got      Point
		expected Point
	}{
		{name: "add", got: Point{1, 2}.Add(Point{3, 4}), expected: Point{4, 6}},
		{name: "sub", got: Point{1, 2}.Sub(Point{3, 4}), expected: Point{-2, -2}},
		{name: "scale", got: Point{1, 2}.Scale(2.5), expected: Point{2.5, 5}},
		{name: "mid", got: Point{0, 0}.Mid(Point{100, 50}), expected: Point{50, 25}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if !test.got.Equal(test.expected) {
				t.Errorf("got: %s, expected: %s", test.got, test.expected)
			}
		})
	}
}

func TestPoint_Equal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		p        Point
		p1       Point
		expected bool
	}{
		{name: "positive", p: Point{10, 10}, p1: Point{10, 10}, expected: true},
		{name: "negative", p: Point{10, 10}, p1: Point{11, 10}, expected: false},
	}
	for _, test := range tests {
		if test.p.Equal(test.p1) != test.expected {
			t.Errorf("the comparison of points, got: %v, expected: %v", test.p.Equal(test.p1), test.expected)
		}
	}
}

func TestPoint_String(t *testing.T) {
	t.Parallel()
	if got := (Point{1.5, -2}).String(); got != "(1.5,-2)" {
		t.Errorf("string got: %s, expected: (1.5,-2)", got)
	}
}

func TestPoint_Distance(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		p1       Point
		expected float64
	}{
		{name: "positive", p: Point{0, 0}, p1: Point{3, 4}, expected: 5},
		{name: "positive_reversed", p: Point{10, 2.0}, p1: Point{4, 10.0}, expected: 10},
		{name: "same", p: Point{3, 3}, p1: Point{3, 3}, expected: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.p.Distance(test.p1)
			if got != test.expected {
				t.Errorf(
					"the distance obtained does not correspond to the expected distance, got %f, expected %f",
					got, test.expected)
			}
		})
	}
}
