package geom

import (
	"image"
	"testing"
)

func covered(s Shape, r image.Rectangle) map[image.Point]bool {
	res := map[image.Point]bool{}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if s.Contains(float64(x)+0.5, float64(y)+0.5) {
				res[image.Pt(x, y)] = true
			}
		}
	}
	return res
}

func TestRectNormalization(t *testing.T) {
	area := image.Rect(0, 0, 20, 20)
	a := covered(Rect{X: 10, Y: 10, W: -5, H: -5}, area)
	b := covered(Rect{X: 5, Y: 5, W: 5, H: 5}, area)

	if len(a) != 25 {
		t.Errorf("expected 25 pixels, got %d", len(a))
	}
	if len(a) != len(b) {
		t.Fatalf("expected same pixel count, got %d and %d", len(a), len(b))
	}
	for p := range b {
		if !a[p] {
			t.Errorf("pixel %v missing from normalized rect", p)
		}
	}

	if got := (Rect{X: 10, Y: 10, W: -5, H: -5}).Bounds(); got != image.Rect(5, 5, 10, 10) {
		t.Errorf("expected bounds (5,5)-(10,10), got %v", got)
	}
}

func TestRectInclusiveEdges(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 2, H: 2}
	if !r.Contains(2, 2) {
		t.Error("expected corner (2,2) to be inside")
	}
	if r.Contains(2.01, 1) {
		t.Error("expected (2.01,1) to be outside")
	}
}

func TestDegenerateShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
	}{
		{"zero width rect", Rect{X: 3, Y: 3, W: 0, H: 5}},
		{"zero height rect", Rect{X: 3, Y: 3, W: 5, H: 0}},
		{"zero circle", Circle{X: 4, Y: 4, W: 0, H: 8}},
		{"flat ellipse", Ellipse{X: 4, Y: 4, W: 8, H: 0}},
		{"two point lasso", Lasso{Points: []Point{{0, 0}, {5, 5}}}},
		{"empty lasso", Lasso{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.shape.Bounds().Empty() {
				t.Errorf("expected empty bounds, got %v", tt.shape.Bounds())
			}
			if n := len(covered(tt.shape, image.Rect(0, 0, 10, 10))); n != 0 {
				t.Errorf("expected no covered pixels, got %d", n)
			}
		})
	}
}

func TestCircleUsesShorterSide(t *testing.T) {
	c := Circle{X: 0, Y: 0, W: 10, H: 4}
	// centre (5,2), radius 2
	if !c.Contains(5, 2) {
		t.Error("expected centre inside")
	}
	if !c.Contains(7, 2) {
		t.Error("expected point on radius inside")
	}
	if c.Contains(7.5, 2) {
		t.Error("expected point beyond radius outside")
	}

	neg := Circle{X: 10, Y: 4, W: -10, H: -4}
	if len(covered(neg, image.Rect(0, 0, 10, 4))) != len(covered(c, image.Rect(0, 0, 10, 4))) {
		t.Error("expected negative-size circle to match positive one")
	}
}

func TestEllipse(t *testing.T) {
	e := Ellipse{X: 0, Y: 0, W: 10, H: 4}
	if !e.Contains(10, 2) || !e.Contains(5, 0) {
		t.Error("expected axis extremes inside")
	}
	if e.Contains(9, 0.5) {
		t.Error("expected (9,0.5) outside")
	}
	if got := e.Bounds(); got != image.Rect(0, 0, 10, 4) {
		t.Errorf("expected bounds (0,0)-(10,4), got %v", got)
	}
}

func TestLasso(t *testing.T) {
	tri := Lasso{Points: []Point{{0, 0}, {10, 0}, {0, 10}}}
	if !tri.Contains(2, 2) {
		t.Error("expected (2,2) inside triangle")
	}
	if tri.Contains(8, 8) {
		t.Error("expected (8,8) outside triangle")
	}

	// reversed winding selects the same pixels
	rev := Lasso{Points: []Point{{0, 10}, {10, 0}, {0, 0}}}
	a, b := covered(tri, image.Rect(0, 0, 10, 10)), covered(rev, image.Rect(0, 0, 10, 10))
	if len(a) != len(b) || len(a) == 0 {
		t.Errorf("expected identical non-empty coverage, got %d and %d", len(a), len(b))
	}
}

func TestLassoSelfOverlapStaysFilled(t *testing.T) {
	// square traced twice: winding number 2 everywhere inside
	sq := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	l := Lasso{Points: append(append([]Point{}, sq...), sq...)}
	if !l.Contains(2, 2) {
		t.Error("expected doubly wound interior to stay filled")
	}
}

func TestBoundsContainCoverage(t *testing.T) {
	shapes := []Shape{
		Rect{X: 1.3, Y: 2.7, W: 6.1, H: 3.2},
		Circle{X: 0.2, Y: 0.9, W: 9.3, H: 9.9},
		Ellipse{X: 2, Y: 1, W: 7.7, H: 3.3},
		Lasso{Points: []Point{{1, 1}, {9, 2}, {5, 9}, {2, 6}}},
	}
	area := image.Rect(-5, -5, 20, 20)
	for _, s := range shapes {
		b := s.Bounds()
		for p := range covered(s, area) {
			if !p.In(b) {
				t.Errorf("%T: covered pixel %v outside bounds %v", s, p, b)
			}
		}
	}
}
